// Package ledger declares the collaborators this module drives but does not
// implement: the ledger transport client and the signer.
//
// Requests and replies are opaque payloads. The core only reads the typed
// values the client parses out of them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"didpool/pkg/platform/sentinel"
)

// ErrIdentifierNotFound is returned (optionally wrapped) by ParseIdentifierReply
// or SubmitRead when the pool has no record of the identifier. It matches
// sentinel.ErrNotFound under errors.Is.
var ErrIdentifierNotFound = fmt.Errorf("identifier %w", sentinel.ErrNotFound)

// IsNotFound reports whether err signals an absent identifier.
func IsNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}

// Handle is an open connection to one pool, owned by the client.
type Handle any

// Request is an unsigned request built by the client.
type Request []byte

// SignedRequest is a request carrying the submitter's signature.
type SignedRequest []byte

// Reply is a raw ledger reply.
type Reply []byte

// ConnectionParams are passed through to the client untouched.
type ConnectionParams struct {
	GenesisPath         string
	GenesisTransactions string
}

// Identifier is the parsed content of an identifier (NYM) reply.
type Identifier struct {
	DID    string
	Verkey string
	Role   string
}

// Agreement is the transaction author agreement currently in force on a pool.
type Agreement struct {
	Text       string
	Version    string
	Digest     string
	RatifiedAt time.Time
}

// AcceptanceMechanisms is the acceptance mechanism list (AML) of a pool,
// keyed by mechanism name.
type AcceptanceMechanisms struct {
	Version    string
	Mechanisms map[string]string
}

// TAAAcceptance is the proof of agreement appended to a write request.
type TAAAcceptance struct {
	Text       string
	Version    string
	Digest     string
	Mechanism  string
	AcceptedAt int64 // seconds since epoch
}

// Connector opens and closes pool connections.
type Connector interface {
	Connect(ctx context.Context, poolID string, params ConnectionParams) (Handle, error)
	Close(ctx context.Context, h Handle) error
}

// Client is the ledger transport client. Every method may fail with a
// client-specific error; callers translate it into domain errors.
type Client interface {
	Connector

	SubmitRead(ctx context.Context, h Handle, req Request) (Reply, error)
	SubmitWrite(ctx context.Context, h Handle, req SignedRequest) (Reply, error)

	BuildGetIdentifierRequest(did string) (Request, error)
	BuildGetTAARequest() (Request, error)
	BuildGetAcceptanceMechanismsRequest() (Request, error)
	AppendTAAAcceptance(req Request, acceptance TAAAcceptance) (Request, error)

	ParseIdentifierReply(reply Reply) (Identifier, error)
	// ParseTAAReply returns nil when the pool enforces no agreement.
	ParseTAAReply(reply Reply) (*Agreement, error)
	ParseAcceptanceMechanismsReply(reply Reply) (AcceptanceMechanisms, error)
}

// Signer signs requests with key material held outside this module.
type Signer interface {
	Sign(ctx context.Context, signerDID string, req Request) (SignedRequest, error)
}
