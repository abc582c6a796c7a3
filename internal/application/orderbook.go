package application

import (
	"sync"

	"swapcore/internal/domain"
)

type TransitionKind string

const (
	TransitionSubmitted TransitionKind = "submitted"
	TransitionFulfilled TransitionKind = "fulfilled"
	TransitionExpired   TransitionKind = "expired"
	TransitionCancelled TransitionKind = "cancelled"
)

// Transition is one accepted order state change. Listeners receive exactly
// one Transition per accepted change, batch or not.
type Transition struct {
	Kind    TransitionKind
	ChainID domain.ChainID
	Order   domain.Order
	Batch   bool
}

type chainOrders struct {
	pending   map[domain.OrderID]domain.Order
	fulfilled map[domain.OrderID]domain.Order
	expired   map[domain.OrderID]domain.Order
	cancelled map[domain.OrderID]domain.Order
}

func newChainOrders() *chainOrders {
	return &chainOrders{
		pending:   make(map[domain.OrderID]domain.Order),
		fulfilled: make(map[domain.OrderID]domain.Order),
		expired:   make(map[domain.OrderID]domain.Order),
		cancelled: make(map[domain.OrderID]domain.Order),
	}
}

func (c *chainOrders) bucket(status domain.OrderStatus) map[domain.OrderID]domain.Order {
	switch status {
	case domain.OrderStatusPending:
		return c.pending
	case domain.OrderStatusFulfilled:
		return c.fulfilled
	case domain.OrderStatusExpired:
		return c.expired
	default:
		return c.cancelled
	}
}

// OrderBook tracks orders per chain across the four disjoint lifecycle
// buckets. Transitions move an order between buckets, never duplicate it, and
// terminal states are final. Mutations happen under one lock and listeners
// are notified after the state change is applied, so a reader never observes
// a partially applied transition.
type OrderBook struct {
	mu        sync.Mutex
	chains    map[domain.ChainID]*chainOrders
	listeners []TransitionListener
}

func NewOrderBook() *OrderBook {
	return &OrderBook{chains: make(map[domain.ChainID]*chainOrders)}
}

// Subscribe registers a listener for every subsequent accepted transition.
func (b *OrderBook) Subscribe(l TransitionListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// notify takes the listener slice captured under the lock so a concurrent
// Subscribe cannot race the iteration.
func notify(listeners []TransitionListener, ts []Transition) {
	for _, t := range ts {
		for _, l := range listeners {
			l.OnTransition(t)
		}
	}
}

// AddPending inserts a new order into the pending bucket, initializing the
// chain state on first use. Re-adding a known id is a no-op.
func (b *OrderBook) AddPending(order domain.Order) {
	b.mu.Lock()
	chain := b.chains[order.ChainID]
	if chain == nil {
		chain = newChainOrders()
		b.chains[order.ChainID] = chain
	}
	if b.find(chain, order.ID) != nil {
		b.mu.Unlock()
		return
	}
	order.Status = domain.OrderStatusPending
	chain.pending[order.ID] = order
	t := Transition{Kind: TransitionSubmitted, ChainID: order.ChainID, Order: order}
	listeners := b.listeners
	b.mu.Unlock()

	notify(listeners, []Transition{t})
}

func (b *OrderBook) find(chain *chainOrders, id domain.OrderID) *domain.Order {
	for _, bucket := range []map[domain.OrderID]domain.Order{
		chain.pending, chain.fulfilled, chain.expired, chain.cancelled,
	} {
		if o, ok := bucket[id]; ok {
			return &o
		}
	}
	return nil
}

// move applies one pending -> terminal transition. Unknown ids and orders
// already in a terminal bucket are skipped silently.
func (b *OrderBook) move(chain *chainOrders, id domain.OrderID, to domain.OrderStatus, kind TransitionKind, batch bool) (Transition, bool) {
	order, ok := chain.pending[id]
	if !ok {
		return Transition{}, false
	}
	delete(chain.pending, id)
	order.Status = to
	chain.bucket(to)[id] = order
	return Transition{Kind: kind, ChainID: order.ChainID, Order: order, Batch: batch}, true
}

func (b *OrderBook) apply(chainID domain.ChainID, ids []domain.OrderID, to domain.OrderStatus, kind TransitionKind, batch bool) {
	b.mu.Lock()
	chain := b.chains[chainID]
	if chain == nil {
		// lifecycle action for a chain we have no state for: defensive no-op
		b.mu.Unlock()
		return
	}
	var ts []Transition
	for _, id := range ids {
		if t, ok := b.move(chain, id, to, kind, batch); ok {
			ts = append(ts, t)
		}
	}
	listeners := b.listeners
	b.mu.Unlock()

	notify(listeners, ts)
}

func (b *OrderBook) Fulfill(chainID domain.ChainID, id domain.OrderID) {
	b.apply(chainID, []domain.OrderID{id}, domain.OrderStatusFulfilled, TransitionFulfilled, false)
}

func (b *OrderBook) Expire(chainID domain.ChainID, id domain.OrderID) {
	b.apply(chainID, []domain.OrderID{id}, domain.OrderStatusExpired, TransitionExpired, false)
}

func (b *OrderBook) Cancel(chainID domain.ChainID, id domain.OrderID) {
	b.apply(chainID, []domain.OrderID{id}, domain.OrderStatusCancelled, TransitionCancelled, false)
}

// Batch variants apply the same transition to many ids for a chain in one
// atomic update.

func (b *OrderBook) FulfillBatch(chainID domain.ChainID, ids []domain.OrderID) {
	b.apply(chainID, ids, domain.OrderStatusFulfilled, TransitionFulfilled, true)
}

func (b *OrderBook) ExpireBatch(chainID domain.ChainID, ids []domain.OrderID) {
	b.apply(chainID, ids, domain.OrderStatusExpired, TransitionExpired, true)
}

func (b *OrderBook) CancelBatch(chainID domain.ChainID, ids []domain.OrderID) {
	b.apply(chainID, ids, domain.OrderStatusCancelled, TransitionCancelled, true)
}

// Order looks up an order across all buckets of a chain.
func (b *OrderBook) Order(chainID domain.ChainID, id domain.OrderID) (domain.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	chain := b.chains[chainID]
	if chain == nil {
		return domain.Order{}, false
	}
	if o := b.find(chain, id); o != nil {
		return *o, true
	}
	return domain.Order{}, false
}

// ByStatus returns the orders in one bucket of a chain.
func (b *OrderBook) ByStatus(chainID domain.ChainID, status domain.OrderStatus) []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	chain := b.chains[chainID]
	if chain == nil {
		return nil
	}
	bucket := chain.bucket(status)
	out := make([]domain.Order, 0, len(bucket))
	for _, o := range bucket {
		out = append(out, o)
	}
	return out
}

// PendingIDs lists the ids the order watcher needs to poll for a chain.
func (b *OrderBook) PendingIDs(chainID domain.ChainID) []domain.OrderID {
	b.mu.Lock()
	defer b.mu.Unlock()
	chain := b.chains[chainID]
	if chain == nil {
		return nil
	}
	out := make([]domain.OrderID, 0, len(chain.pending))
	for id := range chain.pending {
		out = append(out, id)
	}
	return out
}

// Chains lists the chains with any known order state.
func (b *OrderBook) Chains() []domain.ChainID {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.ChainID, 0, len(b.chains))
	for id := range b.chains {
		out = append(out, id)
	}
	return out
}

// OrderSnapshot is the serializable form of the book, used by the snapshot
// store to survive restarts.
type OrderSnapshot struct {
	Chains map[domain.ChainID]ChainSnapshot `json:"chains"`
}

type ChainSnapshot struct {
	Pending   []domain.Order `json:"pending"`
	Fulfilled []domain.Order `json:"fulfilled"`
	Expired   []domain.Order `json:"expired"`
	Cancelled []domain.Order `json:"cancelled"`
}

func (b *OrderBook) Snapshot() OrderSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	snap := OrderSnapshot{Chains: make(map[domain.ChainID]ChainSnapshot, len(b.chains))}
	for id, chain := range b.chains {
		snap.Chains[id] = ChainSnapshot{
			Pending:   collect(chain.pending),
			Fulfilled: collect(chain.fulfilled),
			Expired:   collect(chain.expired),
			Cancelled: collect(chain.cancelled),
		}
	}
	return snap
}

// Restore replaces the book contents with a snapshot. No transitions are
// emitted: restoring is not a lifecycle change.
func (b *OrderBook) Restore(snap OrderSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chains = make(map[domain.ChainID]*chainOrders, len(snap.Chains))
	for id, cs := range snap.Chains {
		chain := newChainOrders()
		fill(chain.pending, cs.Pending)
		fill(chain.fulfilled, cs.Fulfilled)
		fill(chain.expired, cs.Expired)
		fill(chain.cancelled, cs.Cancelled)
		b.chains[id] = chain
	}
}

func collect(bucket map[domain.OrderID]domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(bucket))
	for _, o := range bucket {
		out = append(out, o)
	}
	return out
}

func fill(bucket map[domain.OrderID]domain.Order, orders []domain.Order) {
	for _, o := range orders {
		bucket[o.ID] = o
	}
}
