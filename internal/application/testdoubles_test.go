package application

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"swapcore/internal/domain"
)

var (
	gno  = common.HexToAddress("0x6810e776880c02933d47db1b9fc05908e5386b96")
	weth = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

func sellParams(amount int64) domain.QuoteParams {
	return domain.QuoteParams{
		SellToken: gno,
		BuyToken:  weth,
		Amount:    big.NewInt(amount),
		Kind:      domain.OrderKindSell,
		ChainID:   domain.Mainnet,
	}
}

type fakeFeeQuoter struct {
	mu    sync.Mutex
	fee   domain.FeeInformation
	err   error
	calls int
}

func (f *fakeFeeQuoter) GetFeeQuote(_ context.Context, _ domain.QuoteParams) (domain.FeeInformation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return domain.FeeInformation{}, f.err
	}
	return f.fee, nil
}

func (f *fakeFeeQuoter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSource struct {
	name   string
	amount *big.Int
	err    error
	delay  time.Duration

	mu    sync.Mutex
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Query(ctx context.Context, params domain.PriceQuoteParams) (domain.PriceInformation, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.PriceInformation{}, ctx.Err()
		}
	}
	if f.err != nil {
		return domain.PriceInformation{}, f.err
	}
	return domain.PriceInformation{Token: params.QuoteToken, Amount: f.amount}, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingSink struct {
	mu       sync.Mutex
	payloads []NotificationPayload
}

func (r *recordingSink) Notify(p NotificationPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
}

func (r *recordingSink) all() []NotificationPayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]NotificationPayload(nil), r.payloads...)
}

type recordingPlayer struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *recordingPlayer) Play(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

func (r *recordingPlayer) all() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}
