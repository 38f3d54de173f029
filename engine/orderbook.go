package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

// levelRef locates a resting order inside the book for O(1)
// cancellation: which side it rests on and at what price.
type levelRef struct {
	side  models.Side
	price decimal.Decimal
}

// OrderBook is the per-symbol book: bids ordered by price descending,
// asks by price ascending, plus an order-id index into the levels.
// Each resting order exists exactly once, as a single *models.Order
// shared by its level queue and nothing else, so a maker fill updates
// the order and the level aggregate together.
//
// The book is not safe for concurrent use; the owning MatchingEngine
// serializes access to it.
type OrderBook struct {
	symbol     string
	bids       *bookSide
	asks       *bookSide
	index      map[uuid.UUID]levelRef
	lastUpdate time.Time
}

func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		bids:   newBookSide(models.SideBuy),
		asks:   newBookSide(models.SideSell),
		index:  make(map[uuid.UUID]levelRef),
	}
}

func (b *OrderBook) Symbol() string { return b.symbol }

func (b *OrderBook) sideFor(s models.Side) *bookSide {
	if s == models.SideBuy {
		return b.bids
	}
	return b.asks
}

// AddResting inserts a non-marketable limit order into the correct
// side and price level.
func (b *OrderBook) AddResting(o *models.Order) error {
	if o.Symbol != b.symbol {
		return ErrSymbolMismatch
	}
	if !o.Price.IsPositive() || !o.RemainingQuantity().IsPositive() {
		return ErrInvalidOrderParameters
	}
	b.rest(o)
	return nil
}

func (b *OrderBook) rest(o *models.Order) {
	b.sideFor(o.Side).getOrCreate(o.Price).push(o)
	b.index[o.ID] = levelRef{side: o.Side, price: o.Price}
	b.touch()
}

// Remove takes the order out of the book and returns it, compacting
// the price level if it empties. A missing id returns nil: cancelling
// an order that already left the book is expected and harmless.
func (b *OrderBook) Remove(id uuid.UUID) *models.Order {
	ref, ok := b.index[id]
	if !ok {
		return nil
	}
	delete(b.index, id)
	side := b.sideFor(ref.side)
	lvl, ok := side.level(ref.price)
	if !ok {
		return nil
	}
	o, ok := lvl.remove(id)
	if !ok {
		return nil
	}
	if lvl.empty() {
		side.deleteLevel(ref.price)
	}
	b.touch()
	return o
}

func (b *OrderBook) BestBid() (decimal.Decimal, bool) { return b.bids.bestPrice() }
func (b *OrderBook) BestAsk() (decimal.Decimal, bool) { return b.asks.bestPrice() }

// Depth returns up to levels aggregated (price, quantity) entries per
// side, best price first on both.
func (b *OrderBook) Depth(levels int) (bids, asks []models.OrderBookEntry) {
	return b.bids.depth(levels), b.asks.depth(levels)
}

// MatchLimit runs the incoming limit order against the opposite side,
// then applies its time-in-force policy to any remainder.
func (b *OrderBook) MatchLimit(o *models.Order) ([]models.Trade, error) {
	if o.Symbol != b.symbol {
		return nil, ErrSymbolMismatch
	}
	if !o.Price.IsPositive() {
		return nil, ErrInvalidOrderParameters
	}

	opp := b.sideFor(o.Side.Opposite())

	// FillOrKill is all-or-nothing: prove feasibility before touching
	// any book state so a shortfall leaves the book untouched.
	if o.TimeInForce == models.TimeInForceFOK {
		if !opp.canFill(o.RemainingQuantity(), o.Price, true) {
			o.Status = models.OrderStatusCanceled
			o.UpdatedAt = time.Now().UTC()
			return nil, ErrInsufficientLiquidity
		}
	}

	trades := b.matchAgainst(opp, o, o.Price, true)

	switch {
	case o.RemainingQuantity().IsZero():
		// fully filled, nothing to rest
	case o.TimeInForce == models.TimeInForceGTC, o.TimeInForce == models.TimeInForceGTD:
		// rest the remainder; CreatedAt is untouched so the order keeps
		// its original time priority
		b.rest(o)
	default: // IOC (FOK cannot reach here with a remainder)
		if o.FilledQty.IsZero() {
			o.Status = models.OrderStatusCanceled
			o.UpdatedAt = time.Now().UTC()
		}
	}

	b.touch()
	return trades, nil
}

// MatchMarket runs the incoming market order against the opposite side
// until its quantity or the book's liquidity is exhausted. A market
// order that cannot fill at all is rejected, never queued.
func (b *OrderBook) MatchMarket(o *models.Order) ([]models.Trade, error) {
	if o.Symbol != b.symbol {
		return nil, ErrSymbolMismatch
	}
	o.Price = decimal.Zero // never a matching bound

	trades := b.matchAgainst(b.sideFor(o.Side.Opposite()), o, decimal.Zero, false)

	if o.FilledQty.IsZero() {
		o.Status = models.OrderStatusRejected
		o.UpdatedAt = time.Now().UTC()
	}

	b.touch()
	return trades, nil
}

// matchAgainst is the single walk-and-consume pass shared by limit and
// market matching: visit the opposite side's levels in priority order,
// consume resting orders oldest-first, and emit one trade per fill at
// the resting order's price.
func (b *OrderBook) matchAgainst(opp *bookSide, taker *models.Order, limit decimal.Decimal, limited bool) []models.Trade {
	var trades []models.Trade

	for taker.RemainingQuantity().IsPositive() {
		lvl, ok := opp.levels.Min()
		if !ok || !opp.marketable(lvl.price, limit, limited) {
			break
		}

		for !lvl.empty() && taker.RemainingQuantity().IsPositive() {
			maker := lvl.orders[0]
			qty := decimal.Min(taker.RemainingQuantity(), maker.RemainingQuantity())

			// one atomic step: maker fill, taker fill, level aggregate
			maker.ApplyFill(qty)
			taker.ApplyFill(qty)
			lvl.reduce(qty)

			trades = append(trades, models.NewTrade(
				b.symbol, taker.ID, maker.ID, lvl.price, qty, taker.Side,
			))

			if maker.Status == models.OrderStatusFilled {
				lvl.popFront()
				delete(b.index, maker.ID)
			}
		}

		if lvl.empty() {
			opp.deleteLevel(lvl.price)
		}
	}

	return trades
}

func (b *OrderBook) touch() {
	b.lastUpdate = time.Now().UTC()
}

// LastUpdate is the timestamp of the most recent book mutation.
func (b *OrderBook) LastUpdate() time.Time { return b.lastUpdate }
