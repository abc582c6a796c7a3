package operator

import (
	"github.com/ethereum/go-ethereum/common"

	"swapcore/internal/domain"
)

func commonAddress(s string) domain.Address {
	return common.HexToAddress(s)
}

// SignedOrder is the wire shape of an order submission. Amounts are decimal
// strings and validTo is a unix timestamp, matching what the settlement
// contract signs over.
type SignedOrder struct {
	SellToken         domain.Address   `json:"sellToken"`
	BuyToken          domain.Address   `json:"buyToken"`
	SellAmount        string           `json:"sellAmount"`
	BuyAmount         string           `json:"buyAmount"`
	ValidTo           int64            `json:"validTo"`
	AppData           string           `json:"appData"`
	FeeAmount         string           `json:"feeAmount"`
	Kind              domain.OrderKind `json:"kind"`
	PartiallyFillable bool             `json:"partiallyFillable"`
	Signature         string           `json:"signature"`
	SigningScheme     string           `json:"signingScheme"`
	From              domain.Address   `json:"from"`
	Receiver          *domain.Address  `json:"receiver,omitempty"`
}

// OrderMetaData is the remote view of a submitted order, used by the pending
// order watcher to detect fills, expiry and invalidation.
type OrderMetaData struct {
	UID                 string `json:"uid"`
	ValidTo             int64  `json:"validTo"`
	ExecutedSellAmount  string `json:"executedSellAmount"`
	ExecutedBuyAmount   string `json:"executedBuyAmount"`
	ExecutedFeeAmount   string `json:"executedFeeAmount"`
	Invalidated         bool   `json:"invalidated"`
	CreationDate        string `json:"creationDate"`
	PartiallyFillable   bool   `json:"partiallyFillable"`
	AvailableBalance    string `json:"availableBalance,omitempty"`
	FullFeeAmount       string `json:"fullFeeAmount,omitempty"`
	ExecutedSurplusFee  string `json:"executedSurplusFee,omitempty"`
	Status              string `json:"status,omitempty"`
}
