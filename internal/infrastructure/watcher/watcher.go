package watcher

import (
	"context"
	"math/big"
	"time"

	"go.uber.org/zap"

	"swapcore/internal/application"
	"swapcore/internal/domain"
	"swapcore/internal/infrastructure/operator"
)

// DefaultPollInterval matches the operator API poll interval the trade UI
// has always used.
const DefaultPollInterval = 10 * time.Second

// OrderReader is the slice of the operator API the watcher needs.
type OrderReader interface {
	GetOrder(ctx context.Context, chainID domain.ChainID, id domain.OrderID) (*operator.OrderMetaData, error)
}

// Watcher polls the operator for every pending order and moves settled ones
// to their terminal bucket. Orders the API does not know yet stay pending
// until a later tick.
type Watcher struct {
	Book      *application.OrderBook
	Reader    OrderReader
	PollEvery time.Duration
	Log       *zap.Logger

	now func() time.Time
}

func New(book *application.OrderBook, reader OrderReader, pollEvery time.Duration, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{Book: book, Reader: reader, PollEvery: pollEvery, Log: log, now: time.Now}
}

func (w *Watcher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.PollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("order watcher stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs a single reconciliation pass over all chains.
func (w *Watcher) Tick(ctx context.Context) {
	for _, chainID := range w.Book.Chains() {
		w.reconcileChain(ctx, chainID)
	}
}

func (w *Watcher) reconcileChain(ctx context.Context, chainID domain.ChainID) {
	pending := w.Book.PendingIDs(chainID)
	if len(pending) == 0 {
		return
	}

	var fulfilled, expired, cancelled []domain.OrderID
	nowUnix := w.now().Unix()

	for _, id := range pending {
		meta, err := w.fetchOrder(ctx, chainID, id)
		if err != nil {
			w.Log.Warn("order lookup failed",
				zap.Uint64("chain", uint64(chainID)),
				zap.String("order", string(id)),
				zap.Error(err))
			continue
		}
		if meta == nil {
			continue
		}
		switch {
		case meta.Invalidated:
			cancelled = append(cancelled, id)
		case executed(meta):
			fulfilled = append(fulfilled, id)
		case meta.ValidTo > 0 && meta.ValidTo < nowUnix:
			expired = append(expired, id)
		}
	}

	if len(fulfilled) > 0 {
		w.Book.FulfillBatch(chainID, fulfilled)
	}
	if len(expired) > 0 {
		w.Book.ExpireBatch(chainID, expired)
	}
	if len(cancelled) > 0 {
		w.Book.CancelBatch(chainID, cancelled)
	}
}

func (w *Watcher) fetchOrder(ctx context.Context, chainID domain.ChainID, id domain.OrderID) (*operator.OrderMetaData, error) {
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return w.Reader.GetOrder(c, chainID, id)
}

// executed reports whether the order has traded: either side's executed
// amount being nonzero counts.
func executed(meta *operator.OrderMetaData) bool {
	return positive(meta.ExecutedSellAmount) || positive(meta.ExecutedBuyAmount)
}

func positive(s string) bool {
	if s == "" {
		return false
	}
	n, ok := new(big.Int).SetString(s, 10)
	return ok && n.Sign() > 0
}
