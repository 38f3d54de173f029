package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

// priceLevel is the FIFO queue of resting orders sharing one price.
// orders[0] is the oldest (first to be consumed); total caches the sum
// of the queued orders' remaining quantities so depth snapshots do not
// walk the queue.
type priceLevel struct {
	price  decimal.Decimal
	orders []*models.Order
	total  decimal.Decimal
}

func newPriceLevel(price decimal.Decimal) *priceLevel {
	return &priceLevel{
		price: price,
		total: decimal.Zero,
	}
}

func (l *priceLevel) push(o *models.Order) {
	l.orders = append(l.orders, o)
	l.total = l.total.Add(o.RemainingQuantity())
}

// remove takes the order with the given id out of the queue, keeping
// time priority of the remaining orders intact.
func (l *priceLevel) remove(id uuid.UUID) (*models.Order, bool) {
	for i, o := range l.orders {
		if o.ID == id {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			l.reduce(o.RemainingQuantity())
			return o, true
		}
	}
	return nil, false
}

// popFront drops the fully consumed order at the head of the queue.
// The aggregate has already been reduced by the fill that consumed it.
func (l *priceLevel) popFront() {
	l.orders = l.orders[1:]
}

// reduce lowers the cached aggregate after a fill or removal. Driving
// it negative means the aggregate and the queue have diverged, which is
// a programming error.
func (l *priceLevel) reduce(qty decimal.Decimal) {
	l.total = l.total.Sub(qty)
	if l.total.IsNegative() {
		panic(fmt.Sprintf("price level %s: aggregate quantity went negative", l.price))
	}
}

func (l *priceLevel) empty() bool {
	return len(l.orders) == 0
}
