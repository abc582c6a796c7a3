package domain

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

type ChainID uint64

const (
	Mainnet ChainID = 1
	Rinkeby ChainID = 4
	XDai    ChainID = 100
)

func (c ChainID) String() string { return strconv.FormatUint(uint64(c), 10) }

type OrderKind string

const (
	OrderKindSell OrderKind = "sell"
	OrderKindBuy  OrderKind = "buy"
)

func (k OrderKind) Valid() bool { return k == OrderKindSell || k == OrderKindBuy }

// CanonicalMarket maps a (sell, buy, kind) triple onto the market used for
// price discovery: sell orders price the sell token against the buy token,
// buy orders the other way around.
func CanonicalMarket(sellToken, buyToken common.Address, kind OrderKind) (base, quote common.Address) {
	if kind == OrderKindBuy {
		return buyToken, sellToken
	}
	return sellToken, buyToken
}
