package models

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Opposite returns the side an order of side s trades against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OrderType is the kind of order submitted to the engine.
type OrderType string

const (
	OrderTypeLimit  OrderType = "limit"
	OrderTypeMarket OrderType = "market"

	// Stop variants are accepted at the API boundary but not matched yet;
	// the engine rejects them with ErrUnsupportedOrderType.
	OrderTypeStopLimit  OrderType = "stop_limit"
	OrderTypeStopMarket OrderType = "stop_market"
)

// TimeInForce controls what happens to the unfilled remainder of an
// order after a matching pass.
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC" // rest any remainder
	TimeInForceIOC TimeInForce = "IOC" // discard any remainder
	TimeInForceFOK TimeInForce = "FOK" // fill entirely or do nothing
	TimeInForceGTD TimeInForce = "GTD" // rest until expiry timestamp
)

func (t TimeInForce) Valid() bool {
	switch t {
	case TimeInForceGTC, TimeInForceIOC, TimeInForceFOK, TimeInForceGTD:
		return true
	}
	return false
}

// OrderStatus is the lifecycle state of an order.
//
// New -> {PartiallyFilled, Filled, Canceled, Rejected, Expired}
// PartiallyFilled -> {Filled, Canceled, Expired}
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "new"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusCanceled        OrderStatus = "canceled"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusExpired         OrderStatus = "expired"
)

// Terminal reports whether no further mutation of the order is permitted.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusCanceled, OrderStatusRejected, OrderStatusExpired:
		return true
	}
	return false
}
