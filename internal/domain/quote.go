package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Address aliases the canonical EVM address type so most packages only
// import domain.
type Address = common.Address

// QuoteParams identifies a quote request. Immutable once issued.
type QuoteParams struct {
	SellToken Address
	BuyToken  Address
	Amount    *big.Int
	Kind      OrderKind
	ChainID   ChainID
}

// FeeInformation is a time-bounded protocol fee. A previously fetched fee may
// be reused until the caller explicitly asks for a refresh.
type FeeInformation struct {
	Amount         *big.Int
	ExpirationDate time.Time
}

func (f FeeInformation) Expired(now time.Time) bool {
	return !f.ExpirationDate.IsZero() && now.After(f.ExpirationDate)
}

// PriceInformation is a single price estimate. A nil Amount signals that no
// viable price exists for the request.
type PriceInformation struct {
	Token  Address
	Amount *big.Int
}

// PriceQuoteParams addresses a price source in canonical market terms.
type PriceQuoteParams struct {
	BaseToken  Address
	QuoteToken Address
	Amount     *big.Int
	Kind       OrderKind
	ChainID    ChainID
}
