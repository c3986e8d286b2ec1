// Package httptransport exposes DID resolution and pool state over HTTP.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"didpool/internal/pool"
	"didpool/internal/resolution/models"
	dErrors "didpool/pkg/domain-errors"
	"didpool/pkg/platform/httputil"
)

// Resolver resolves a DID across the configured pools.
type Resolver interface {
	Resolve(ctx context.Context, did string) (models.DidRecord, *pool.Pool, error)
}

// Agreements returns a pool's transaction author agreement.
type Agreements interface {
	TAASnapshot(ctx context.Context, p *pool.Pool) (pool.TAASnapshot, bool, error)
}

// Pools is the read side of the pool registry.
type Pools interface {
	Pools() []*pool.Pool
	PoolByID(id string) (*pool.Pool, bool)
	Health(ctx context.Context) map[string]error
}

// Handler wires resolution and pool endpoints to the services.
type Handler struct {
	resolver   Resolver
	agreements Agreements
	pools      Pools
	logger     *slog.Logger
}

func New(resolver Resolver, agreements Agreements, pools Pools, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		resolver:   resolver,
		agreements: agreements,
		pools:      pools,
		logger:     logger,
	}
}

// Register mounts the endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dids/{did}", h.HandleResolve)
	r.Get("/pools", h.HandleListPools)
	r.Get("/pools/{poolID}/taa", h.HandlePoolAgreement)
	r.Get("/healthz", h.HandleHealth)
}

// HandleResolve handles GET /dids/{did}.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)
	start := time.Now()

	d := chi.URLParam(r, "did")
	if d == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "did is required"))
		return
	}

	record, p, err := h.resolver.Resolve(ctx, d)
	if err != nil {
		h.logger.InfoContext(ctx, "did resolution request failed",
			"request_id", requestID,
			"did", d,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.DebugContext(ctx, "did resolution request served",
		"request_id", requestID,
		"did", d,
		"pool_id", p.ID(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, toDidResponse(record))
}

// HandleListPools handles GET /pools.
func (h *Handler) HandleListPools(w http.ResponseWriter, _ *http.Request) {
	pools := h.pools.Pools()
	resp := make([]PoolResponse, 0, len(pools))
	for _, p := range pools {
		resp = append(resp, toPoolResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandlePoolAgreement handles GET /pools/{poolID}/taa, fetching the
// agreement if it has not been read yet.
func (h *Handler) HandlePoolAgreement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	poolID := chi.URLParam(r, "poolID")

	p, ok := h.pools.PoolByID(poolID)
	if !ok {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodePoolNotFound, "no ledger pool with id %q", poolID))
		return
	}
	snapshot, present, err := h.agreements.TAASnapshot(ctx, p)
	if err != nil {
		h.logger.WarnContext(ctx, "agreement fetch failed",
			"request_id", middleware.GetReqID(ctx),
			"pool_id", poolID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAgreementResponse(snapshot, present))
}

// HandleHealth handles GET /healthz. The service is healthy while at least
// one pool is connected.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	results := h.pools.Health(r.Context())
	resp := HealthResponse{Status: "ok", Pools: make(map[string]string, len(results))}
	connected := 0
	for id, err := range results {
		if err != nil {
			resp.Pools[id] = err.Error()
			continue
		}
		resp.Pools[id] = "connected"
		connected++
	}
	status := http.StatusOK
	if connected == 0 {
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, resp)
}
