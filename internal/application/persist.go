package application

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BookPersister writes a fresh snapshot after every accepted transition.
// Persistence failures are logged, never propagated: the in-memory book is
// the source of truth and a lost snapshot only costs restart continuity.
type BookPersister struct {
	Book    *OrderBook
	Store   SnapshotStore
	Log     *zap.Logger
	Timeout time.Duration
}

func NewBookPersister(book *OrderBook, store SnapshotStore, log *zap.Logger) *BookPersister {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookPersister{Book: book, Store: store, Log: log, Timeout: 3 * time.Second}
}

func (p *BookPersister) OnTransition(Transition) {
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()
	if err := p.Store.Save(ctx, p.Book.Snapshot()); err != nil {
		p.Log.Warn("order snapshot save failed", zap.Error(err))
	}
}
