package pricesource

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"swapcore/internal/domain"
)

// ZeroExSource estimates prices through the 0x aggregation API. It is a
// secondary estimator: chains it is not configured for simply fail the
// query, which the quote engine tolerates as long as another source answers.
type ZeroExSource struct {
	endpoints map[domain.ChainID]string
	http      *http.Client
	log       *zap.Logger
}

func NewZeroExSource(endpoints map[domain.ChainID]string, httpClient *http.Client, log *zap.Logger) *ZeroExSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ZeroExSource{endpoints: endpoints, http: httpClient, log: log}
}

func (s *ZeroExSource) Name() string { return "0x" }

type zeroExPrice struct {
	Price      string `json:"price"`
	SellAmount string `json:"sellAmount"`
	BuyAmount  string `json:"buyAmount"`
}

func (s *ZeroExSource) Query(ctx context.Context, params domain.PriceQuoteParams) (domain.PriceInformation, error) {
	base, ok := s.endpoints[params.ChainID]
	if !ok || base == "" {
		return domain.PriceInformation{}, fmt.Errorf("0x: no endpoint for network %d", params.ChainID)
	}

	// Sell estimates trade base into quote; buy estimates how much quote is
	// needed to receive the base amount.
	q := url.Values{}
	if params.Kind == domain.OrderKindSell {
		q.Set("sellToken", params.BaseToken.Hex())
		q.Set("buyToken", params.QuoteToken.Hex())
		q.Set("sellAmount", params.Amount.String())
	} else {
		q.Set("sellToken", params.QuoteToken.Hex())
		q.Set("buyToken", params.BaseToken.Hex())
		q.Set("buyAmount", params.Amount.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/swap/v1/price?"+q.Encode(), nil)
	if err != nil {
		return domain.PriceInformation{}, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return domain.PriceInformation{}, fmt.Errorf("0x: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Debug("0x: price request rejected", zap.Int("status", resp.StatusCode))
		return domain.PriceInformation{}, fmt.Errorf("0x: status %d", resp.StatusCode)
	}
	var body zeroExPrice
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.PriceInformation{}, fmt.Errorf("0x: decode: %w", err)
	}

	raw := body.BuyAmount
	if params.Kind == domain.OrderKindBuy {
		raw = body.SellAmount
	}
	if raw == "" {
		return domain.PriceInformation{Token: params.QuoteToken}, nil
	}
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return domain.PriceInformation{}, fmt.Errorf("0x: malformed amount %q", raw)
	}
	return domain.PriceInformation{Token: params.QuoteToken, Amount: amount}, nil
}
