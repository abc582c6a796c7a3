package pricesource

import (
	"context"

	"swapcore/internal/domain"
)

// priceQuoter is the subset of the operator client needed here.
type priceQuoter interface {
	GetPriceQuote(ctx context.Context, params domain.PriceQuoteParams) (domain.PriceInformation, error)
}

// OperatorSource estimates prices off the operator's own order book markets.
type OperatorSource struct {
	client priceQuoter
}

func NewOperatorSource(client priceQuoter) *OperatorSource {
	return &OperatorSource{client: client}
}

func (s *OperatorSource) Name() string { return "operator" }

func (s *OperatorSource) Query(ctx context.Context, params domain.PriceQuoteParams) (domain.PriceInformation, error) {
	return s.client.GetPriceQuote(ctx, params)
}
