// Package notify implements the in-process change hub behind live
// queries. Repositories publish the table they touched after a
// successful commit; subscribers re-run their query on each signal and
// hand consumers a full fresh snapshot.
package notify

import (
	"context"
	"sync"
)

// Hub fans out table-change signals to interested subscribers.
// Signals are coalesced: a subscriber that has not yet consumed a
// pending signal will not queue further ones, but is guaranteed at
// least one delivery after the last write.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscription
}

type subscription struct {
	tables map[string]struct{}
	ch     chan struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscription)}
}

// Subscribe registers interest in the given tables. The returned
// channel receives a signal after each commit touching one of them.
// The subscription is removed when ctx ends.
func (h *Hub) Subscribe(ctx context.Context, tables ...string) <-chan struct{} {
	sub := &subscription{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}()

	return sub.ch
}

// Publish signals every subscriber watching table.
func (h *Hub) Publish(table string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if _, ok := sub.tables[table]; !ok {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
			// A signal is already pending; coalesce.
		}
	}
}
