package spoollog

import (
	"context"
	"sync"

	"github.com/hyp3rd/spoollog/internal/constants"
)

// Stats is a snapshot of the pending queue and the cumulative pipeline counters.
type Stats struct {
	// Records is the number of records currently queued.
	Records int
	// Bytes is the payload size of the records currently queued.
	Bytes int
	// Enqueued counts records accepted into the queue.
	Enqueued uint64
	// Dropped counts records abandoned before or instead of being written.
	Dropped uint64
	// Filtered counts queued records discarded by the keyword filter at flush.
	Filtered uint64
	// Written counts records handed to the device.
	Written uint64
	// WriteErrors counts device writes that failed.
	WriteErrors uint64
	// Flushes counts completed flush passes.
	Flushes uint64
}

// StatsHandler receives a snapshot after every flush.
type StatsHandler func(context.Context, Stats)

//nolint:gochecknoglobals // flush observers use a package-level registry.
var statsRegistryOnce = sync.OnceValue(func() *statsHandlerRegistry {
	return &statsHandlerRegistry{}
})

// RegisterStatsHandler adds a global handler invoked after each flush.
func RegisterStatsHandler(handler StatsHandler) {
	if handler == nil {
		return
	}

	statsRegistryOnce().register(handler)
}

// ClearStatsHandlers removes all registered stats handlers.
func ClearStatsHandlers() {
	statsRegistryOnce().reset()
}

// EmitStats notifies global handlers with the provided snapshot.
func EmitStats(ctx context.Context, stats Stats) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	statsRegistryOnce().emit(ctx, stats)
}

type statsHandlerRegistry struct {
	mu       sync.RWMutex
	handlers []StatsHandler
}

func (r *statsHandlerRegistry) register(handler StatsHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers = append(r.handlers, handler)
}

func (r *statsHandlerRegistry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers = nil
}

func (r *statsHandlerRegistry) emit(ctx context.Context, stats Stats) {
	for _, handler := range r.snapshot() {
		handler(ctx, stats)
	}
}

func (r *statsHandlerRegistry) snapshot() []StatsHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.handlers) == 0 {
		return nil
	}

	clone := make([]StatsHandler, len(r.handlers))
	copy(clone, r.handlers)

	return clone
}
