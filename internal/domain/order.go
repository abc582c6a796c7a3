package domain

// OrderID is the content-derived unique identifier assigned by the settlement
// layer at creation; it is never reused.
type OrderID string

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusExpired   OrderStatus = "expired"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool { return s != OrderStatusPending }

type Order struct {
	ID      OrderID     `json:"id"`
	ChainID ChainID     `json:"chainId"`
	Summary string      `json:"summary"`
	Status  OrderStatus `json:"status"`
}
