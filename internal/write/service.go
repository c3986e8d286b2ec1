// Package write coordinates ledger writes with the transaction author
// agreement (TAA) protocol.
//
// Before a write is signed the coordinator checks the pool's agreement,
// fetched once per pool and memoized on the pool itself. Pools without an
// agreement receive the request unmodified. Pools with one require the
// locally configured version and mechanism to match what the ledger
// currently enforces; the acceptance proof is then appended with the
// submission time.
package write

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"didpool/internal/ledger"
	"didpool/internal/pool"
	"didpool/internal/write/audit"
	"didpool/internal/write/metrics"
	dErrors "didpool/pkg/domain-errors"
)

// Pools hands out connection handles.
type Pools interface {
	Handle(ctx context.Context, p *pool.Pool) (ledger.Handle, error)
}

type Service struct {
	pools     Pools
	client    ledger.Client
	signer    ledger.Signer
	publisher audit.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	clock     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditPublisher records every appended acceptance.
func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithClock sets the clock used to stamp acceptances.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(pools Pools, client ledger.Client, signer ledger.Signer, opts ...Option) (*Service, error) {
	if pools == nil {
		return nil, errors.New("pool registry is required")
	}
	if client == nil {
		return nil, errors.New("ledger client is required")
	}
	if signer == nil {
		return nil, errors.New("signer is required")
	}
	s := &Service{
		pools:  pools,
		client: client,
		signer: signer,
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer("didpool/internal/write"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SubmitWrite signs req as signerDID and submits it to p, appending a TAA
// acceptance when the pool enforces an agreement. Agreement violations fail
// before anything is signed.
func (s *Service) SubmitWrite(ctx context.Context, p *pool.Pool, req ledger.Request, signerDID string) (ledger.Reply, error) {
	if p == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "pool is required")
	}
	if signerDID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "signer DID is required")
	}

	submissionID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "write.SubmitWrite", trace.WithAttributes(
		attribute.String("pool.id", p.ID()),
		attribute.String("submission.id", submissionID),
	))
	defer span.End()

	start := time.Now()
	reply, err := s.submitWrite(ctx, p, req, signerDID, submissionID)
	s.metrics.RecordWrite(p.ID(), writeOutcome(err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		s.logger.WarnContext(ctx, "ledger write rejected",
			"submission_id", submissionID,
			"pool_id", p.ID(),
			"signer_did", signerDID,
			"error", err,
		)
		return nil, err
	}
	return reply, nil
}

func (s *Service) submitWrite(ctx context.Context, p *pool.Pool, req ledger.Request, signerDID, submissionID string) (ledger.Reply, error) {
	snapshot, present, err := s.TAASnapshot(ctx, p)
	if err != nil {
		return nil, err
	}

	var acceptance *ledger.TAAAcceptance
	if present {
		configured, err := requireAcceptance(p, snapshot)
		if err != nil {
			return nil, err
		}
		acceptance = &ledger.TAAAcceptance{
			Text:       snapshot.Text,
			Version:    snapshot.Version,
			Digest:     snapshot.Digest,
			Mechanism:  configured.AcceptanceMechanism,
			AcceptedAt: s.clock().Unix(),
		}
		req, err = s.client.AppendTAAAcceptance(req, *acceptance)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeLedgerClient, "append agreement acceptance")
		}
	}

	signed, err := s.signer.Sign(ctx, signerDID, req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerClient, "sign request")
	}
	h, err := s.pools.Handle(ctx, p)
	if err != nil {
		return nil, err
	}
	reply, err := s.client.SubmitWrite(ctx, h, signed)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerClient, fmt.Sprintf("submit write to pool %s", p.ID()))
	}

	s.logger.InfoContext(ctx, "ledger write submitted",
		"submission_id", submissionID,
		"pool_id", p.ID(),
		"signer_did", signerDID,
		"taa_accepted", acceptance != nil,
	)
	if acceptance != nil {
		s.recordAcceptance(ctx, submissionID, p, signerDID, *acceptance)
	}
	return reply, nil
}

// SubmitRead sends an already built read request to p.
func (s *Service) SubmitRead(ctx context.Context, p *pool.Pool, req ledger.Request) (ledger.Reply, error) {
	if p == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "pool is required")
	}
	h, err := s.pools.Handle(ctx, p)
	if err != nil {
		return nil, err
	}
	reply, err := s.client.SubmitRead(ctx, h, req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerClient, fmt.Sprintf("submit read to pool %s", p.ID()))
	}
	return reply, nil
}

// requireAcceptance checks the pool's local acceptance against the agreement
// it enforces.
func requireAcceptance(p *pool.Pool, snapshot pool.TAASnapshot) (*pool.TAAAcceptance, error) {
	mechanisms := strings.Join(snapshot.AcceptanceMechanisms, ", ")
	configured := p.TAAConfig()
	if configured == nil {
		return nil, dErrors.Newf(dErrors.CodeTaaConfigurationRequired,
			"pool %s requires transaction author agreement version %q with one of the acceptance mechanisms [%s]; configure transactionAuthorAgreement for this pool",
			p.ID(), snapshot.Version, mechanisms)
	}
	if configured.Version != snapshot.Version || !snapshot.HasMechanism(configured.AcceptanceMechanism) {
		return nil, dErrors.Newf(dErrors.CodeTaaMismatch,
			"pool %s requires transaction author agreement version %q with one of [%s], configured version %q with mechanism %q",
			p.ID(), snapshot.Version, mechanisms, configured.Version, configured.AcceptanceMechanism)
	}
	return configured, nil
}

func (s *Service) recordAcceptance(ctx context.Context, submissionID string, p *pool.Pool, signerDID string, acceptance ledger.TAAAcceptance) {
	if s.publisher == nil {
		return
	}
	event := audit.Event{
		ID:           uuid.NewString(),
		Action:       audit.ActionTAAAccepted,
		Timestamp:    s.clock(),
		SubmissionID: submissionID,
		PoolID:       p.ID(),
		SignerDID:    signerDID,
		TAAVersion:   acceptance.Version,
		Mechanism:    acceptance.Mechanism,
		Digest:       acceptance.Digest,
		AcceptedAt:   acceptance.AcceptedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.IncAuditPublishFailure()
		s.logger.ErrorContext(ctx, "failed to publish agreement acceptance",
			"submission_id", submissionID,
			"pool_id", p.ID(),
			"error", err,
		)
	}
}

func writeOutcome(err error) string {
	switch {
	case err == nil:
		return "submitted"
	case dErrors.HasCode(err, dErrors.CodeTaaConfigurationRequired):
		return "taa_configuration_required"
	case dErrors.HasCode(err, dErrors.CodeTaaMismatch):
		return "taa_mismatch"
	default:
		return "failed"
	}
}
