package application

import (
	"context"

	"swapcore/internal/domain"
)

// FeeQuoter fetches the protocol fee for a prospective trade.
type FeeQuoter interface {
	GetFeeQuote(ctx context.Context, params domain.QuoteParams) (domain.FeeInformation, error)
}

// PriceSource is a single external price estimator. Sources are queried
// concurrently and any subset of failures is tolerated as long as one
// succeeds.
type PriceSource interface {
	Name() string
	Query(ctx context.Context, params domain.PriceQuoteParams) (domain.PriceInformation, error)
}

// NotificationSink receives one payload per accepted order transition. It is
// responsible for rendering and dismissal; the core only produces payloads.
type NotificationSink interface {
	Notify(p NotificationPayload)
}

// SoundPlayer plays one audio cue per accepted order transition.
type SoundPlayer interface {
	Play(c Cue)
}

// TransitionListener observes accepted order-lifecycle transitions.
type TransitionListener interface {
	OnTransition(t Transition)
}

// SnapshotStore persists the order book across process restarts.
type SnapshotStore interface {
	Save(ctx context.Context, snap OrderSnapshot) error
	Load(ctx context.Context) (OrderSnapshot, bool, error)
}

// NoopSnapshots disables persistence; the book then lives only in memory.
type NoopSnapshots struct{}

func (NoopSnapshots) Save(context.Context, OrderSnapshot) error { return nil }
func (NoopSnapshots) Load(context.Context) (OrderSnapshot, bool, error) {
	return OrderSnapshot{}, false, nil
}
