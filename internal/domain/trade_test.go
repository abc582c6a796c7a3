package domain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	tokenA = common.HexToAddress("0x6810e776880c02933d47db1b9fc05908e5386b96")
	tokenB = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

func feeOf(n int64) *FeeInformation {
	return &FeeInformation{Amount: big.NewInt(n)}
}

func priceOf(n int64) *PriceInformation {
	return &PriceInformation{Token: tokenB, Amount: big.NewInt(n)}
}

func Test_TradeExactIn(t *testing.T) {
	t.Parallel()
	trade := TradeExactIn(big.NewInt(100), feeOf(10), priceOf(200))
	require.NotNil(t, trade)
	require.Equal(t, big.NewInt(100), trade.InputAmount)
	require.Equal(t, big.NewInt(90), trade.InputAmountWithFee)
	require.Equal(t, big.NewInt(200), trade.OutputAmount)
	// 100 * 200/90, truncated
	require.Equal(t, big.NewInt(222), trade.OutputAmountWithoutFee)
	require.Equal(t, ExactInput, trade.Type)
}

func Test_TradeExactIn_FeeEqualsInput(t *testing.T) {
	t.Parallel()
	require.Nil(t, TradeExactIn(big.NewInt(100), feeOf(100), priceOf(200)))
}

func Test_TradeExactIn_FeeExceedsInput(t *testing.T) {
	t.Parallel()
	require.Nil(t, TradeExactIn(big.NewInt(100), feeOf(150), priceOf(200)))
}

func Test_TradeExactIn_PartialQuote(t *testing.T) {
	t.Parallel()
	require.Nil(t, TradeExactIn(big.NewInt(100), nil, priceOf(200)))
	require.Nil(t, TradeExactIn(big.NewInt(100), feeOf(10), nil))
	require.Nil(t, TradeExactIn(big.NewInt(100), feeOf(10), &PriceInformation{Token: tokenB}))
	require.Nil(t, TradeExactIn(nil, feeOf(10), priceOf(200)))
}

func Test_TradeExactOut(t *testing.T) {
	t.Parallel()
	// price amount is the required input before fee
	trade := TradeExactOut(big.NewInt(200), feeOf(10), priceOf(100))
	require.NotNil(t, trade)
	require.Equal(t, big.NewInt(110), trade.InputAmount)
	require.Equal(t, big.NewInt(110), trade.InputAmountWithFee)
	require.Equal(t, big.NewInt(200), trade.OutputAmount)
	require.Equal(t, big.NewInt(200), trade.OutputAmountWithoutFee)
	require.Equal(t, ExactOutput, trade.Type)
}

func Test_TradeExactOut_UndefinedPrice(t *testing.T) {
	t.Parallel()
	// zero quoted input makes the execution price undefined
	require.Nil(t, TradeExactOut(big.NewInt(200), feeOf(10), priceOf(0)))
}

func Test_Price_Apply(t *testing.T) {
	t.Parallel()
	p := NewPrice(big.NewInt(200), big.NewInt(90))
	require.NotNil(t, p)
	require.Equal(t, big.NewInt(222), p.Apply(big.NewInt(100)))

	inv := p.Invert()
	require.Equal(t, big.NewInt(90), inv.Apply(big.NewInt(200)))
}

func Test_NewPrice_ZeroDenominator(t *testing.T) {
	t.Parallel()
	require.Nil(t, NewPrice(big.NewInt(1), big.NewInt(0)))
	require.Nil(t, NewPrice(nil, big.NewInt(1)))
}

func Test_CanonicalMarket(t *testing.T) {
	t.Parallel()
	base, quote := CanonicalMarket(tokenA, tokenB, OrderKindSell)
	require.Equal(t, tokenA, base)
	require.Equal(t, tokenB, quote)

	base, quote = CanonicalMarket(tokenA, tokenB, OrderKindBuy)
	require.Equal(t, tokenB, base)
	require.Equal(t, tokenA, quote)
}

func Test_KindFromAPI(t *testing.T) {
	t.Parallel()
	require.Equal(t, KindUnsupportedToken, KindFromAPI("UnsupportedToken"))
	require.Equal(t, KindNotFound, KindFromAPI("NotFound"))
	require.Equal(t, KindUnhandledError, KindFromAPI("SomethingNew"))
	require.Equal(t, KindUnhandledError, KindFromAPI(""))
}
