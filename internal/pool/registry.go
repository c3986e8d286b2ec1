// Package pool owns the configured ledger pools: the ordered registry, the
// per-pool connection handle and the memoized agreement snapshot, and the
// namespace router used on the write path.
//
// The pool list is set once with Configure before any concurrent use.
// Reconfiguring while resolutions or writes are in flight is not supported.
package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"didpool/internal/ledger"
	"didpool/internal/pool/metrics"
	dErrors "didpool/pkg/domain-errors"
)

// Registry is the ordered list of configured pools.
type Registry struct {
	connector ledger.Connector
	pools     []*Pool
	// retired holds connections of pools dropped by Configure until Close.
	retired []retiredHandle
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry that opens connections through
// connector.
func NewRegistry(connector ledger.Connector, opts ...Option) (*Registry, error) {
	if connector == nil {
		return nil, errors.New("ledger connector is required")
	}
	r := &Registry{
		connector: connector,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type retiredHandle struct {
	poolID string
	handle ledger.Handle
}

// Configure replaces the pool list. It performs no I/O. A pool that keeps its
// id and connection parameters keeps its open connection; other open
// connections are released by Close. Callers must not invoke it while other
// goroutines use the registry.
func (r *Registry) Configure(configs []Config) error {
	pools := make([]*Pool, 0, len(configs))
	seen := make(map[string]bool, len(configs))
	for i, cfg := range configs {
		if cfg.ID == "" {
			return dErrors.Newf(dErrors.CodeInvalidInput, "pool at index %d has no id", i)
		}
		if seen[cfg.ID] {
			r.logger.Warn("duplicate pool id in configuration", "pool_id", cfg.ID)
		}
		seen[cfg.ID] = true
		pools = append(pools, newPool(cfg))
	}
	r.carryHandles(pools)
	r.pools = pools
	return nil
}

// carryHandles moves open connections from the current pools onto matching
// new pools and retires the rest.
func (r *Registry) carryHandles(next []*Pool) {
	for _, old := range r.pools {
		old.mu.Lock()
		h := old.handle
		old.handle = nil
		old.mu.Unlock()
		if h == nil {
			continue
		}
		if p := adoptable(next, old); p != nil {
			p.handle = h
			continue
		}
		r.retired = append(r.retired, retiredHandle{poolID: old.id, handle: h})
	}
}

func adoptable(next []*Pool, old *Pool) *Pool {
	for _, p := range next {
		if p.id == old.id && p.connection == old.connection && p.handle == nil {
			return p
		}
	}
	return nil
}

// ConnectAll opens a connection to every pool, one at a time in registry
// order. A failed pool does not stop the loop; it is logged and left
// unconnected. It returns how many pools hold a connection afterwards.
func (r *Registry) ConnectAll(ctx context.Context) int {
	connected := 0
	for _, p := range r.pools {
		if _, err := r.connect(ctx, p); err != nil {
			r.logger.ErrorContext(ctx, "pool connection failed",
				"pool_id", p.id,
				"error", err,
			)
			continue
		}
		r.logger.InfoContext(ctx, "pool connected", "pool_id", p.id)
		connected++
	}
	r.metrics.SetConnectedPools(connected)
	return connected
}

// Handle returns the pool's connection, connecting first if needed.
func (r *Registry) Handle(ctx context.Context, p *Pool) (ledger.Handle, error) {
	h, err := r.connect(ctx, p)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerClient, fmt.Sprintf("connect to pool %s", p.id))
	}
	return h, nil
}

func (r *Registry) connect(ctx context.Context, p *Pool) (ledger.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle != nil {
		return p.handle, nil
	}
	h, err := r.connector.Connect(ctx, p.id, p.connection)
	r.metrics.RecordConnect(p.id, err)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("connector returned no handle for pool %s", p.id)
	}
	p.handle = h
	return h, nil
}

// Close releases every open connection. Errors are joined; every pool is
// attempted.
func (r *Registry) Close(ctx context.Context) error {
	var errs []error
	for _, rh := range r.retired {
		if err := r.connector.Close(ctx, rh.handle); err != nil {
			errs = append(errs, fmt.Errorf("close pool %s: %w", rh.poolID, err))
		}
	}
	r.retired = nil
	for _, p := range r.pools {
		p.mu.Lock()
		h := p.handle
		p.handle = nil
		p.mu.Unlock()
		if h == nil {
			continue
		}
		if err := r.connector.Close(ctx, h); err != nil {
			errs = append(errs, fmt.Errorf("close pool %s: %w", p.id, err))
		}
	}
	r.metrics.SetConnectedPools(0)
	return errors.Join(errs...)
}

// Health reports, per pool id, whether the pool holds a connection.
func (r *Registry) Health(_ context.Context) map[string]error {
	results := make(map[string]error, len(r.pools))
	for _, p := range r.pools {
		if p.Connected() {
			results[p.id] = nil
			continue
		}
		results[p.id] = fmt.Errorf("pool %s is not connected", p.id)
	}
	return results
}

// Pools returns the pools in configured order.
func (r *Registry) Pools() []*Pool {
	out := make([]*Pool, len(r.pools))
	copy(out, r.pools)
	return out
}

func (r *Registry) Len() int {
	return len(r.pools)
}

// PoolByID returns the pool with the given id.
func (r *Registry) PoolByID(id string) (*Pool, bool) {
	for _, p := range r.pools {
		if p.id == id {
			return p, true
		}
	}
	return nil, false
}

// PoolByNamespace returns the pool routed by namespace. An empty namespace
// selects the first configured pool; that fallback is deprecated and logged.
func (r *Registry) PoolByNamespace(namespace string) (*Pool, error) {
	if len(r.pools) == 0 {
		return nil, dErrors.New(dErrors.CodePoolNotConfigured, "no ledger pools configured")
	}
	if namespace == "" {
		first := r.pools[0]
		r.logger.Warn("selecting first configured pool because no namespace was given; this fallback is deprecated",
			"pool_id", first.id,
		)
		return first, nil
	}
	for _, p := range r.pools {
		if p.namespace == namespace {
			return p, nil
		}
	}
	return nil, dErrors.Newf(dErrors.CodePoolNotFound, "no ledger pool configured for namespace %q", namespace)
}
