package audit

import (
	"context"
	"sync"
)

// MemoryPublisher keeps events in process memory.
type MemoryPublisher struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{events: make(map[string][]Event)}
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[event.PoolID] = append(p.events[event.PoolID], event)
	return nil
}

// ListByPool returns the events recorded for one pool in publish order.
func (p *MemoryPublisher) ListByPool(poolID string) []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Event{}, p.events[poolID]...)
}

// Len returns the number of recorded events across all pools.
func (p *MemoryPublisher) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	n := 0
	for _, events := range p.events {
		n += len(events)
	}
	return n
}

func (p *MemoryPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = make(map[string][]Event)
}
