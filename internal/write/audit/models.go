// Package audit records TAA acceptances made on behalf of write submitters.
package audit

import (
	"context"
	"time"
)

// Action names an audited write-path action.
type Action string

const (
	ActionTAAAccepted Action = "taa_accepted"
)

// Event is the audit record of one acceptance appended to a ledger write.
// AcceptedAt is the value written into the acceptance proof, in seconds.
type Event struct {
	ID           string    `json:"id"`
	Action       Action    `json:"action"`
	Timestamp    time.Time `json:"timestamp"`
	SubmissionID string    `json:"submission_id"`
	PoolID       string    `json:"pool_id"`
	SignerDID    string    `json:"signer_did"`
	TAAVersion   string    `json:"taa_version"`
	Mechanism    string    `json:"mechanism"`
	Digest       string    `json:"digest"`
	AcceptedAt   int64     `json:"accepted_at"`
}

// Publisher delivers audit events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
