// Package app assembles the pool registry, resolution and write services
// from process configuration. The host supplies the ledger client and the
// signer; everything else is built from config.Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"didpool/internal/ledger"
	"didpool/internal/platform/config"
	"didpool/internal/platform/httpserver"
	"didpool/internal/platform/kafka"
	"didpool/internal/platform/logger"
	"didpool/internal/platform/postgres"
	"didpool/internal/platform/redis"
	"didpool/internal/pool"
	poolmetrics "didpool/internal/pool/metrics"
	"didpool/internal/resolution"
	resolutionmetrics "didpool/internal/resolution/metrics"
	"didpool/internal/resolution/store"
	httptransport "didpool/internal/transport/http"
	"didpool/internal/write"
	"didpool/internal/write/audit"
	writemetrics "didpool/internal/write/metrics"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired services.
type App struct {
	Logger   *slog.Logger
	Registry *pool.Registry
	Router   *pool.Router
	Resolver *resolution.Service
	Writer   *write.Service
	Handler  http.Handler
	// Metrics gathers every collector the app registered.
	Metrics *prometheus.Registry

	closers []func() error
}

type options struct {
	logger   *slog.Logger
	registry *prometheus.Registry
	pools    []pool.Config
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry registers metrics with reg. Without it each App gets its own
// registry carrying the Go and process collectors.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithPools uses configs instead of reading cfg.PoolsFile.
func WithPools(configs []pool.Config) Option {
	return func(o *options) {
		o.pools = configs
	}
}

// New wires the application. Infrastructure opened by a failed New is
// released before it returns; otherwise Close releases it.
func New(ctx context.Context, cfg config.Config, client ledger.Client, signer ledger.Signer, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.New(cfg.LogLevel)
	}
	reg := o.registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	a := &App{Logger: o.logger, Metrics: reg}
	if err := a.wire(ctx, cfg, client, signer, o, reg); err != nil {
		_ = a.closeInfra()
		return nil, err
	}
	a.Handler = httptransport.NewRouter(httptransport.New(a.Resolver, a.Writer, a.Registry, o.logger), reg)
	return a, nil
}

func (a *App) wire(ctx context.Context, cfg config.Config, client ledger.Client, signer ledger.Signer, o *options, registerer prometheus.Registerer) error {
	configs := o.pools
	var err error
	if configs == nil {
		if configs, err = config.LoadPools(cfg.PoolsFile); err != nil {
			return err
		}
	}

	a.Registry, err = pool.NewRegistry(client,
		pool.WithLogger(o.logger),
		pool.WithMetrics(poolmetrics.NewWithRegisterer(registerer)),
	)
	if err != nil {
		return err
	}
	if err = a.Registry.Configure(configs); err != nil {
		return err
	}
	a.Router = pool.NewRouter(a.Registry)

	cache, err := a.openCache(ctx, cfg)
	if err != nil {
		return err
	}
	a.Resolver, err = resolution.New(a.Registry, client,
		resolution.WithLogger(o.logger),
		resolution.WithMetrics(resolutionmetrics.NewWithRegisterer(registerer)),
		resolution.WithCache(cache),
		resolution.WithQueryTimeout(cfg.QueryTimeout),
	)
	if err != nil {
		return err
	}

	writeOpts := []write.Option{
		write.WithLogger(o.logger),
		write.WithMetrics(writemetrics.NewWithRegisterer(registerer)),
	}
	publisher, err := a.openPublisher(ctx, cfg.Kafka)
	if err != nil {
		return err
	}
	if publisher != nil {
		writeOpts = append(writeOpts, write.WithAuditPublisher(publisher))
	}
	a.Writer, err = write.New(a.Registry, client, signer, writeOpts...)
	return err
}

// openCache picks Redis, then PostgreSQL, then process memory.
func (a *App) openCache(ctx context.Context, cfg config.Config) (resolution.Cache, error) {
	if cfg.Redis.URL != "" {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.Logger.InfoContext(ctx, "using redis resolution cache")
		return store.NewRedisCache(client, cfg.CacheTTL), nil
	}
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		cache := store.NewPostgresCache(db, cfg.CacheTTL)
		if err := cache.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		a.Logger.InfoContext(ctx, "using postgres resolution cache")
		return cache, nil
	}
	a.Logger.InfoContext(ctx, "using in-memory resolution cache")
	return store.NewMemoryCache(cfg.CacheTTL), nil
}

func (a *App) openPublisher(ctx context.Context, cfg config.KafkaConfig) (audit.Publisher, error) {
	client, err := kafka.New(ctx, cfg)
	if err != nil || client == nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		client.Close()
		return nil
	})
	if err := kafka.EnsureTopic(ctx, client, cfg.AuditTopic, 1, 1); err != nil {
		return nil, err
	}
	return audit.NewKafkaPublisher(client, audit.WithTopic(cfg.AuditTopic))
}

// Start connects every configured pool and returns how many connected.
func (a *App) Start(ctx context.Context) int {
	connected := a.Registry.ConnectAll(ctx)
	a.Logger.InfoContext(ctx, "ledger pools connected",
		"connected", connected,
		"configured", a.Registry.Len(),
	)
	return connected
}

// Serve exposes the HTTP handler on addr until ctx is cancelled.
func (a *App) Serve(ctx context.Context, addr string) error {
	a.Logger.InfoContext(ctx, "starting didpool http server", "addr", addr)
	if err := httpserver.Serve(ctx, httpserver.New(addr, a.Handler), shutdownTimeout); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Close releases pool connections and infrastructure clients.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Registry != nil {
		errs = append(errs, a.Registry.Close(ctx))
	}
	errs = append(errs, a.closeInfra())
	return errors.Join(errs...)
}

func (a *App) closeInfra() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
