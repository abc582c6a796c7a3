package domain

import "math/big"

type TradeType int

const (
	ExactInput TradeType = iota
	ExactOutput
)

// Price is the ratio of an output amount over an input amount. Kept as a
// fraction so applying it to another amount loses no precision before the
// final division.
type Price struct {
	numerator   *big.Int
	denominator *big.Int
}

// NewPrice returns nil when the ratio is undefined (missing terms or a zero
// denominator).
func NewPrice(numerator, denominator *big.Int) *Price {
	if numerator == nil || denominator == nil || denominator.Sign() == 0 {
		return nil
	}
	return &Price{
		numerator:   new(big.Int).Set(numerator),
		denominator: new(big.Int).Set(denominator),
	}
}

// Apply converts an input-denominated amount into output units at this price.
func (p *Price) Apply(amount *big.Int) *big.Int {
	out := new(big.Int).Mul(amount, p.numerator)
	return out.Quo(out, p.denominator)
}

func (p *Price) Invert() *Price { return NewPrice(p.denominator, p.numerator) }

func (p *Price) Numerator() *big.Int   { return new(big.Int).Set(p.numerator) }
func (p *Price) Denominator() *big.Int { return new(big.Int).Set(p.denominator) }

// Trade is a fee-adjusted trade derived from a quote and a user amount. It is
// ephemeral: never persisted, recomputed on every relevant input change.
type Trade struct {
	InputAmount            *big.Int
	InputAmountWithFee     *big.Int
	OutputAmount           *big.Int
	OutputAmountWithoutFee *big.Int
	Fee                    FeeInformation
	ExecutionPrice         *Price
	Type                   TradeType
}

// TradeExactIn builds a trade for a fixed input amount. The fee comes out of
// the input first; a fee at or above the input means no trade, matching the
// quote engine's fee-exceeds short circuit. OutputAmountWithoutFee applies the
// execution price to the original pre-fee input and feeds fee-impact display.
func TradeExactIn(parsedInput *big.Int, fee *FeeInformation, price *PriceInformation) *Trade {
	if parsedInput == nil || fee == nil || fee.Amount == nil || price == nil || price.Amount == nil {
		return nil
	}
	if fee.Amount.Cmp(parsedInput) >= 0 {
		return nil
	}
	inputWithFee := new(big.Int).Sub(parsedInput, fee.Amount)
	outputAmount := new(big.Int).Set(price.Amount)

	executionPrice := NewPrice(outputAmount, inputWithFee)
	if executionPrice == nil {
		return nil
	}

	return &Trade{
		InputAmount:            new(big.Int).Set(parsedInput),
		InputAmountWithFee:     inputWithFee,
		OutputAmount:           outputAmount,
		OutputAmountWithoutFee: executionPrice.Apply(parsedInput),
		Fee:                    *fee,
		ExecutionPrice:         executionPrice,
		Type:                   ExactInput,
	}
}

// TradeExactOut builds a trade for a fixed output amount. The quoted price
// amount is the required input before fees; the fee is added on top to get
// what the user must actually supply.
func TradeExactOut(parsedOutput *big.Int, fee *FeeInformation, price *PriceInformation) *Trade {
	if parsedOutput == nil || fee == nil || fee.Amount == nil || price == nil || price.Amount == nil {
		return nil
	}
	inputBeforeFee := new(big.Int).Set(price.Amount)
	inputWithFee := new(big.Int).Add(inputBeforeFee, fee.Amount)

	executionPrice := NewPrice(parsedOutput, inputBeforeFee)
	if executionPrice == nil {
		return nil
	}

	return &Trade{
		InputAmount:            inputWithFee,
		InputAmountWithFee:     inputWithFee,
		OutputAmount:           new(big.Int).Set(parsedOutput),
		OutputAmountWithoutFee: new(big.Int).Set(parsedOutput),
		Fee:                    *fee,
		ExecutionPrice:         executionPrice,
		Type:                   ExactOutput,
	}
}
