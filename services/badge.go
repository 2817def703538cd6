package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"storefront-service/database"
)

// CartBadge caches the per-session item count shown in the header badge. It
// subscribes to same-process store changes on construction; cross-process
// changes are fed in through Invalidate by the store watcher in main.
type CartBadge struct {
	store  database.Store
	logger *zap.Logger

	mu     sync.RWMutex
	counts map[string]int
	gens   map[string]uint64
}

func NewCartBadge(store database.Store, logger *zap.Logger) *CartBadge {
	b := &CartBadge{
		store:  store,
		logger: logger,
		counts: make(map[string]int),
		gens:   make(map[string]uint64),
	}
	store.Subscribe(b.onChange)
	return b
}

func (b *CartBadge) onChange(ev database.ChangeEvent) {
	if ev.Record == database.CartRecord {
		b.Invalidate(ev.Session)
	}
}

// Invalidate drops the cached count; the next Count reloads from the store.
func (b *CartBadge) Invalidate(session string) {
	b.mu.Lock()
	delete(b.counts, session)
	b.gens[session]++
	b.mu.Unlock()
}

// Count returns the total quantity across the session's cart lines.
func (b *CartBadge) Count(ctx context.Context, session string) (int, *ServiceError) {
	b.mu.RLock()
	count, ok := b.counts[session]
	gen := b.gens[session]
	b.mu.RUnlock()
	if ok {
		return count, nil
	}

	items, _, err := b.store.Load(ctx, session)
	if err != nil {
		b.logger.Error("Failed to load cart for badge", zap.Error(err))
		return 0, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}

	count = 0
	for _, item := range items {
		count += item.Quantity
	}

	// Cache only if no invalidation landed while the load was in flight;
	// a stale count would otherwise survive until the next change event.
	b.mu.Lock()
	if b.gens[session] == gen {
		b.counts[session] = count
	}
	b.mu.Unlock()
	return count, nil
}
