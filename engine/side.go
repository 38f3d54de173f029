package engine

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

const btreeDegree = 8

// bookSide holds the price levels of one side of a book in a B-tree
// ordered best-first: highest price first for bids, lowest first for
// asks. Walking Ascend therefore visits levels in matching priority,
// and Min is the best price. The two matching branches differ only in
// this comparator, so the walk-and-consume logic lives here once.
type bookSide struct {
	side   models.Side
	levels *btree.BTreeG[*priceLevel]
}

func newBookSide(side models.Side) *bookSide {
	less := func(a, b *priceLevel) bool {
		if side == models.SideBuy {
			return a.price.GreaterThan(b.price)
		}
		return a.price.LessThan(b.price)
	}
	return &bookSide{
		side:   side,
		levels: btree.NewG[*priceLevel](btreeDegree, less),
	}
}

func (s *bookSide) getOrCreate(price decimal.Decimal) *priceLevel {
	if lvl, ok := s.levels.Get(&priceLevel{price: price}); ok {
		return lvl
	}
	lvl := newPriceLevel(price)
	s.levels.ReplaceOrInsert(lvl)
	return lvl
}

func (s *bookSide) level(price decimal.Decimal) (*priceLevel, bool) {
	return s.levels.Get(&priceLevel{price: price})
}

func (s *bookSide) deleteLevel(price decimal.Decimal) {
	s.levels.Delete(&priceLevel{price: price})
}

func (s *bookSide) bestPrice() (decimal.Decimal, bool) {
	lvl, ok := s.levels.Min()
	if !ok {
		return decimal.Zero, false
	}
	return lvl.price, true
}

// marketable reports whether a resting level at levelPrice is eligible
// against an incoming order bounded by limit. A market order (limited
// false) matches any level.
func (s *bookSide) marketable(levelPrice, limit decimal.Decimal, limited bool) bool {
	if !limited {
		return true
	}
	if s.side == models.SideSell {
		return levelPrice.LessThanOrEqual(limit) // asks vs an incoming buy limit
	}
	return levelPrice.GreaterThanOrEqual(limit) // bids vs an incoming sell limit
}

// canFill reports whether the resting quantity at marketable levels is
// at least need. It never mutates the side; FillOrKill uses it to prove
// feasibility before any trade happens.
func (s *bookSide) canFill(need, limit decimal.Decimal, limited bool) bool {
	available := decimal.Zero
	enough := false
	s.levels.Ascend(func(lvl *priceLevel) bool {
		if !s.marketable(lvl.price, limit, limited) {
			return false
		}
		available = available.Add(lvl.total)
		if available.GreaterThanOrEqual(need) {
			enough = true
			return false
		}
		return true
	})
	return enough
}

// depth returns up to n aggregated (price, quantity) levels, best
// price first.
func (s *bookSide) depth(n int) []models.OrderBookEntry {
	if n <= 0 {
		return nil
	}
	entries := make([]models.OrderBookEntry, 0, n)
	s.levels.Ascend(func(lvl *priceLevel) bool {
		entries = append(entries, models.OrderBookEntry{
			Price:    lvl.price,
			Quantity: lvl.total,
		})
		return len(entries) < n
	})
	return entries
}

func (s *bookSide) len() int {
	return s.levels.Len()
}
