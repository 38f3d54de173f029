package models

import "github.com/shopspring/decimal"

type PlaceOrderResponse struct {
	OrderID           string          `json:"order_id"`
	Status            OrderStatus     `json:"status"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	Trades            []Trade         `json:"trades,omitempty"`
	Message           string          `json:"message,omitempty"`
}

type CancelOrderResponse struct {
	OrderID  string `json:"order_id"`
	Canceled bool   `json:"canceled"`
	Message  string `json:"message"`
}

type OrderStatusResponse struct {
	OrderID           string          `json:"order_id"`
	Symbol            string          `json:"symbol"`
	Status            OrderStatus     `json:"status"`
	ExecutedQuantity  decimal.Decimal `json:"executed_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
}

// OrderBookEntry is one aggregated (price, quantity) level of a depth
// snapshot.
type OrderBookEntry struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

type OrderBookResponse struct {
	Symbol string           `json:"symbol"`
	Bids   []OrderBookEntry `json:"bids"`
	Asks   []OrderBookEntry `json:"asks"`
}

type TradesResponse struct {
	Symbol string  `json:"symbol"`
	Trades []Trade `json:"trades"`
}

type SymbolsResponse struct {
	Symbols []string `json:"symbols"`
}
