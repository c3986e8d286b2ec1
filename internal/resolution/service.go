// Package resolution resolves DIDs across every configured ledger pool.
//
// A resolution first consults the cache. On a miss every pool is queried
// concurrently and the engine waits for all of them to settle before picking
// one answer, because the preference rules need the complete outcome set:
// self-certified records beat everything, production pools beat test pools,
// and configured order breaks the remaining ties.
package resolution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"didpool/internal/ledger"
	"didpool/internal/pool"
	"didpool/internal/resolution/metrics"
	"didpool/internal/resolution/models"
	"didpool/pkg/did"
	dErrors "didpool/pkg/domain-errors"
	"didpool/pkg/platform/sentinel"
)

// DefaultQueryTimeout bounds a single pool query.
const DefaultQueryTimeout = 10 * time.Second

// Cache stores resolved records. Get returns sentinel.ErrNotFound on a miss.
// Implementations own their consistency; the service adds no locking.
type Cache interface {
	Get(ctx context.Context, key string) (models.CacheEntry, error)
	Set(ctx context.Context, key string, entry models.CacheEntry) error
}

// Pools is the part of the pool registry resolution needs.
type Pools interface {
	Pools() []*pool.Pool
	PoolByID(id string) (*pool.Pool, bool)
	Handle(ctx context.Context, p *pool.Pool) (ledger.Handle, error)
}

type Service struct {
	pools        Pools
	client       ledger.Client
	cache        Cache
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	queryTimeout time.Duration
	now          func() time.Time
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

// WithCache enables the resolution cache.
func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithQueryTimeout sets the deadline for each pool query. Zero disables it
// and leaves timeouts to the ledger client.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.queryTimeout = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(pools Pools, client ledger.Client, opts ...Option) (*Service, error) {
	if pools == nil {
		return nil, errors.New("pool registry is required")
	}
	if client == nil {
		return nil, errors.New("ledger client is required")
	}
	s := &Service{
		pools:        pools,
		client:       client,
		logger:       slog.New(slog.DiscardHandler),
		tracer:       otel.Tracer("didpool/internal/resolution"),
		queryTimeout: DefaultQueryTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Resolve returns the preferred record for d and the pool that served it.
func (s *Service) Resolve(ctx context.Context, d string) (models.DidRecord, *pool.Pool, error) {
	pools := s.pools.Pools()

	ctx, span := s.tracer.Start(ctx, "resolution.Resolve", trace.WithAttributes(
		attribute.String("did", d),
		attribute.Int("pool.count", len(pools)),
	))
	defer span.End()

	record, p, err := s.resolve(ctx, d, pools)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return models.DidRecord{}, nil, err
	}
	span.SetAttributes(attribute.String("pool.id", p.ID()))
	return record, p, nil
}

func (s *Service) resolve(ctx context.Context, d string, pools []*pool.Pool) (models.DidRecord, *pool.Pool, error) {
	if len(pools) == 0 {
		s.metrics.IncrementOutcome("not_configured")
		return models.DidRecord{}, nil, dErrors.New(dErrors.CodePoolNotConfigured, "no ledger pools configured")
	}

	if record, p, ok := s.fromCache(ctx, d); ok {
		s.metrics.IncrementOutcome("cache_hit")
		return record, p, nil
	}

	outcomes := s.queryAll(ctx, d, pools)

	winner, reason, ok := choose(outcomes)
	if !ok {
		err := failure(d, outcomes)
		if dErrors.HasCode(err, dErrors.CodeDidNotFound) {
			s.metrics.IncrementOutcome("did_not_found")
		} else {
			s.metrics.IncrementOutcome("failed")
		}
		s.logger.InfoContext(ctx, "did resolution failed",
			"did", d,
			"pools", len(pools),
			"error", err,
		)
		return models.DidRecord{}, nil, err
	}
	s.metrics.RecordSelection(string(reason))
	s.metrics.IncrementOutcome("resolved")
	s.logger.DebugContext(ctx, "did resolved",
		"did", d,
		"pool_id", winner.pool.ID(),
		"reason", reason,
	)

	s.toCache(ctx, d, winner)
	return winner.record, winner.pool, nil
}

// queryAll queries every pool concurrently and returns the outcomes in pool
// order. Every query settles; none cancels the others.
func (s *Service) queryAll(ctx context.Context, d string, pools []*pool.Pool) []poolOutcome {
	outcomes := make([]poolOutcome, len(pools))
	var wg sync.WaitGroup
	for i, p := range pools {
		wg.Go(func() {
			outcomes[i] = s.queryPool(ctx, d, p)
		})
	}
	wg.Wait()
	return outcomes
}

func (s *Service) queryPool(ctx context.Context, d string, p *pool.Pool) poolOutcome {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	outcome := s.lookup(ctx, d, p)
	s.metrics.ObservePoolQuery(p.ID(), outcome.kind.String(), time.Since(start))

	if outcome.kind == outcomeFailed {
		s.logger.WarnContext(ctx, "pool identifier query failed",
			"did", d,
			"pool_id", p.ID(),
			"error", outcome.err,
		)
	}
	return outcome
}

func (s *Service) lookup(ctx context.Context, d string, p *pool.Pool) poolOutcome {
	fail := func(err error) poolOutcome {
		if ledger.IsNotFound(err) {
			return poolOutcome{pool: p, kind: outcomeNotFound, err: err}
		}
		return poolOutcome{pool: p, kind: outcomeFailed, err: err}
	}

	h, err := s.pools.Handle(ctx, p)
	if err != nil {
		return fail(err)
	}
	req, err := s.client.BuildGetIdentifierRequest(d)
	if err != nil {
		return fail(dErrors.Wrap(err, dErrors.CodeLedgerClient, "build identifier request"))
	}
	reply, err := s.client.SubmitRead(ctx, h, req)
	if err != nil {
		return fail(dErrors.Wrap(err, dErrors.CodeLedgerClient, fmt.Sprintf("query pool %s", p.ID())))
	}
	identifier, err := s.client.ParseIdentifierReply(reply)
	if err != nil {
		return fail(dErrors.Wrap(err, dErrors.CodeLedgerClient, "parse identifier reply"))
	}

	subject := identifier.DID
	if subject == "" {
		subject = d
	}
	return poolOutcome{
		pool: p,
		kind: outcomeFound,
		record: models.DidRecord{
			DID:           subject,
			Verkey:        identifier.Verkey,
			Role:          identifier.Role,
			SelfCertified: did.IsSelfCertified(subject, identifier.Verkey),
			PoolID:        p.ID(),
		},
	}
}

// fromCache returns a cached record whose pool is still configured. Cache
// failures degrade to a miss.
func (s *Service) fromCache(ctx context.Context, d string) (models.DidRecord, *pool.Pool, bool) {
	if s.cache == nil {
		return models.DidRecord{}, nil, false
	}
	entry, err := s.cache.Get(ctx, models.CacheKey(d))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordCacheLookup("miss")
		} else {
			s.metrics.RecordCacheLookup("error")
			s.logger.WarnContext(ctx, "resolution cache read failed", "did", d, "error", err)
		}
		return models.DidRecord{}, nil, false
	}
	p, ok := s.pools.PoolByID(entry.PoolID)
	if !ok {
		s.metrics.RecordCacheLookup("stale")
		s.logger.DebugContext(ctx, "ignoring cached did whose pool is no longer configured",
			"did", d,
			"pool_id", entry.PoolID,
		)
		return models.DidRecord{}, nil, false
	}
	s.metrics.RecordCacheLookup("hit")
	return entry.Record, p, true
}

func (s *Service) toCache(ctx context.Context, d string, winner poolOutcome) {
	if s.cache == nil {
		return
	}
	entry := models.CacheEntry{
		Record:   winner.record,
		PoolID:   winner.pool.ID(),
		StoredAt: s.now(),
	}
	if err := s.cache.Set(ctx, models.CacheKey(d), entry); err != nil {
		s.logger.WarnContext(ctx, "resolution cache write failed", "did", d, "error", err)
	}
}
