package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Cache adapters and ledger clients
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// - ErrNotFound: the key or identifier does not exist in the backing store
// - ErrUnavailable: the backend is not reachable right now
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
