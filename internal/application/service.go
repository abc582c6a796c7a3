package application

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"swapcore/internal/domain"
)

// DefaultSourceTimeout bounds each price source request independently so one
// slow source cannot block the rest.
const DefaultSourceTimeout = 5 * time.Second

// RefetchParams carries one quote-refetch request into the engine.
type RefetchParams struct {
	Params      domain.QuoteParams
	FetchFee    bool
	PreviousFee *domain.FeeInformation

	// Loading-state callbacks. OnLoadingStart fires once at entry and
	// OnLoadingDone once on every exit, including cancellation and failure.
	OnLoadingStart func()
	OnLoadingDone  func()
}

type quoteResult struct {
	fee    domain.FeeInformation
	price  domain.PriceInformation
	winner string
}

type QuoteServiceOption func(*QuoteService)

func WithSourceTimeout(d time.Duration) QuoteServiceOption {
	return func(s *QuoteService) { s.sourceTimeout = d }
}

func WithClock(now func() time.Time) QuoteServiceOption {
	return func(s *QuoteService) { s.now = now }
}

// QuoteService orchestrates fee and price acquisition and reconciles
// overlapping refetches through a latest-only resolver keyed by
// (chain, sellToken).
type QuoteService struct {
	fees          FeeQuoter
	sources       []PriceSource
	store         *QuoteStore
	resolver      *Resolver[RefetchParams, quoteResult]
	sourceTimeout time.Duration
	now           func() time.Time
	log           *zap.Logger
}

func NewQuoteService(fees FeeQuoter, sources []PriceSource, store *QuoteStore, log *zap.Logger, opts ...QuoteServiceOption) *QuoteService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &QuoteService{
		fees:          fees,
		sources:       sources,
		store:         store,
		sourceTimeout: DefaultSourceTimeout,
		now:           time.Now,
		log:           log,
	}
	s.resolver = NewResolver(s.fetchQuote)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func quoteKey(p domain.QuoteParams) string {
	return fmt.Sprintf("%d:%s", p.ChainID, p.SellToken.Hex())
}

// RefetchQuote acquires a fresh quote and dispatches the outcome into the
// store. Every failure path ends in a store write; the caller never sees an
// error and the loading callbacks always run.
func (s *QuoteService) RefetchQuote(ctx context.Context, p RefetchParams) {
	if p.OnLoadingStart != nil {
		p.OnLoadingStart()
	}
	if p.OnLoadingDone != nil {
		defer p.OnLoadingDone()
	}

	result, cancelled, err := s.resolver.Do(ctx, quoteKey(p.Params), p)
	if cancelled {
		s.log.Debug("quote refetch superseded",
			zap.Uint64("chain", uint64(p.Params.ChainID)),
			zap.String("sell_token", p.Params.SellToken.Hex()))
		return
	}
	if err != nil {
		s.handleQuoteError(p.Params, err)
		return
	}

	// a previously unsupported token may be valid again: self-heal the set
	for _, token := range []domain.Address{p.Params.SellToken, p.Params.BuyToken} {
		if s.store.IsUnsupported(p.Params.ChainID, token) {
			s.log.Info("previously unsupported token now supported, re-enabling",
				zap.String("token", token.Hex()))
			s.store.RemoveUnsupported(p.Params.ChainID, token)
		}
	}

	s.store.Update(p.Params, result.fee, result.price)
	s.log.Debug("quote updated",
		zap.Uint64("chain", uint64(p.Params.ChainID)),
		zap.String("sell_token", p.Params.SellToken.Hex()),
		zap.String("winner", result.winner))
}

func (s *QuoteService) fetchQuote(ctx context.Context, p RefetchParams) (quoteResult, error) {
	fee, err := s.resolveFee(ctx, p)
	if err != nil {
		return quoteResult{}, err
	}

	exchangeAmount := p.Params.Amount
	if p.Params.Kind == domain.OrderKindSell {
		// sell orders swap the amount net of fee; zero or negative
		// remainder means no price request is worth issuing
		remainder := new(big.Int).Sub(p.Params.Amount, fee.Amount)
		if remainder.Sign() <= 0 {
			return quoteResult{}, domain.NewQuoteError(domain.KindFeeExceedsFrom,
				"fee amount exceeds the sell amount")
		}
		exchangeAmount = remainder
	}

	base, quote := domain.CanonicalMarket(p.Params.SellToken, p.Params.BuyToken, p.Params.Kind)
	price, winner, err := s.bestPrice(ctx, domain.PriceQuoteParams{
		BaseToken:  base,
		QuoteToken: quote,
		Amount:     exchangeAmount,
		Kind:       p.Params.Kind,
		ChainID:    p.Params.ChainID,
	})
	if err != nil {
		return quoteResult{}, err
	}
	return quoteResult{fee: fee, price: price, winner: winner}, nil
}

func (s *QuoteService) resolveFee(ctx context.Context, p RefetchParams) (domain.FeeInformation, error) {
	if !p.FetchFee && p.PreviousFee != nil && !p.PreviousFee.Expired(s.now()) {
		return *p.PreviousFee, nil
	}
	return s.fees.GetFeeQuote(ctx, p.Params)
}

// bestPrice queries every source concurrently, each bounded by its own
// timeout, and keeps all settled results: one source failing never aborts the
// others. Sell orders take the maximum amount, buy orders the minimum. Ties
// go to the earlier source in registration order, a display-only choice since
// tied sources share the amount.
func (s *QuoteService) bestPrice(ctx context.Context, params domain.PriceQuoteParams) (domain.PriceInformation, string, error) {
	type settled struct {
		price domain.PriceInformation
		err   error
	}
	results := make([]settled, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			qctx, cancel := context.WithTimeout(gctx, s.sourceTimeout)
			defer cancel()
			price, err := src.Query(qctx, params)
			if err == nil && price.Amount == nil {
				err = domain.NewQuoteError(domain.KindInsufficientLiquidity,
					fmt.Sprintf("source %s returned no viable price", src.Name()))
			}
			results[i] = settled{price: price, err: err}
			return nil
		})
	}
	_ = g.Wait()

	best := -1
	var failures []error
	for i, r := range results {
		if r.err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", s.sources[i].Name(), r.err))
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		cmp := r.price.Amount.Cmp(results[best].price.Amount)
		if (params.Kind == domain.OrderKindSell && cmp > 0) ||
			(params.Kind == domain.OrderKindBuy && cmp < 0) {
			best = i
		}
	}
	if best == -1 {
		return domain.PriceInformation{}, "", fmt.Errorf("all price sources failed: %w", multierr.Combine(failures...))
	}
	return results[best].price, s.sources[best].Name(), nil
}

func (s *QuoteService) handleQuoteError(params domain.QuoteParams, err error) {
	var qe *domain.QuoteError
	if !errors.As(err, &qe) {
		s.log.Error("quote refetch failed", zap.Error(err))
		s.store.SetError(params, domain.KindUnhandledError)
		return
	}

	switch qe.Kind {
	case domain.KindUnsupportedToken:
		token, ok := tokenFromDescription(qe.Description)
		if !ok {
			// the API names the offending token in the description; if it
			// does not, assume the sell side
			token = params.SellToken
		}
		s.log.Warn("unsupported token, disabling", zap.String("token", token.Hex()), zap.String("description", qe.Description))
		s.store.AddUnsupported(params.ChainID, token)
	case domain.KindFeeExceedsFrom, domain.KindInsufficientLiquidity, domain.KindNotFound:
		s.log.Warn("quote error", zap.String("kind", string(qe.Kind)), zap.String("description", qe.Description))
		s.store.SetError(params, qe.Kind)
	default:
		s.log.Error("unhandled operator error", zap.Error(qe))
		s.store.SetError(params, domain.KindUnhandledError)
	}
}

// tokenFromDescription scans an API error description for the token address
// it refers to, e.g. "Token address 0xabc... is not supported".
func tokenFromDescription(description string) (domain.Address, bool) {
	for _, field := range strings.Fields(description) {
		if common.IsHexAddress(field) {
			return common.HexToAddress(field), true
		}
	}
	return domain.Address{}, false
}
