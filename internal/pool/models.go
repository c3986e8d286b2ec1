package pool

import (
	"sync"
	"sync/atomic"
	"time"

	"didpool/internal/ledger"
)

// TAAAcceptance is the locally configured acceptance of a pool's transaction
// author agreement.
type TAAAcceptance struct {
	Version             string `yaml:"version"`
	AcceptanceMechanism string `yaml:"acceptanceMechanism"`
}

// Config describes one pool at startup.
type Config struct {
	ID           string
	IsProduction bool
	// Namespace routes writes; empty means the pool has none.
	Namespace  string
	Connection ledger.ConnectionParams
	TAA        *TAAAcceptance
}

// TAASnapshot is the agreement a pool enforced when it was first fetched.
type TAASnapshot struct {
	Text                 string
	Version              string
	Digest               string
	AcceptanceMechanisms []string
	// RatifiedAt is informational; acceptances are stamped with the
	// submission time.
	RatifiedAt time.Time
}

// HasMechanism reports whether name is an accepted mechanism.
func (s TAASnapshot) HasMechanism(name string) bool {
	for _, m := range s.AcceptanceMechanisms {
		if m == name {
			return true
		}
	}
	return false
}

// taaState is the memoized outcome of a fetch. A nil *taaState means the
// agreement has not been fetched yet.
type taaState struct {
	snapshot TAASnapshot
	present  bool
}

// Pool is a configured ledger network. Configuration fields are immutable
// after the registry is configured.
type Pool struct {
	id           string
	namespace    string
	isProduction bool
	connection   ledger.ConnectionParams
	taaConfig    *TAAAcceptance

	mu     sync.Mutex
	handle ledger.Handle

	taa atomic.Pointer[taaState]
}

func newPool(cfg Config) *Pool {
	p := &Pool{
		id:           cfg.ID,
		namespace:    cfg.Namespace,
		isProduction: cfg.IsProduction,
		connection:   cfg.Connection,
	}
	if cfg.TAA != nil {
		acceptance := *cfg.TAA
		p.taaConfig = &acceptance
	}
	return p
}

// New builds a standalone pool, mostly for callers that manage their own list.
func New(cfg Config) *Pool {
	return newPool(cfg)
}

func (p *Pool) ID() string                          { return p.id }
func (p *Pool) Namespace() string                   { return p.namespace }
func (p *Pool) IsProduction() bool                  { return p.isProduction }
func (p *Pool) Connection() ledger.ConnectionParams { return p.connection }

// TAAConfig returns the configured acceptance, or nil.
func (p *Pool) TAAConfig() *TAAAcceptance {
	if p.taaConfig == nil {
		return nil
	}
	acceptance := *p.taaConfig
	return &acceptance
}

// Connected reports whether a connection handle is held.
func (p *Pool) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle != nil
}

// CachedTAA returns the memoized snapshot. fetched is false until
// StoreTAA has been called; present is false when the pool enforces no
// agreement.
func (p *Pool) CachedTAA() (snapshot TAASnapshot, present, fetched bool) {
	state := p.taa.Load()
	if state == nil {
		return TAASnapshot{}, false, false
	}
	return state.snapshot, state.present, true
}

// StoreTAA memoizes a fetched snapshot. A nil snapshot records that the pool
// has no agreement. Concurrent stores overwrite each other.
func (p *Pool) StoreTAA(snapshot *TAASnapshot) {
	if snapshot == nil {
		p.taa.Store(&taaState{})
		return
	}
	p.taa.Store(&taaState{snapshot: *snapshot, present: true})
}
