package repository

import (
	"context"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/db/postgres/providers"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

// TradeRepository persists committed trades. Trades are append-only;
// there is no update path.
type TradeRepository struct {
	DBHelper *providers.DBHelper
}

func NewTradeRepository(db *providers.DBHelper) *TradeRepository {
	return &TradeRepository{DBHelper: db}
}

// CreateTrade saves one committed trade.
func (r *TradeRepository) CreateTrade(ctx context.Context, trade *models.Trade) error {
	query := `
		INSERT INTO trades (id, symbol, taker_order_id, maker_order_id, price, quantity, side, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query,
		trade.ID, trade.Symbol, trade.TakerOrderID, trade.MakerOrderID,
		trade.Price, trade.Quantity, trade.Side, trade.CreatedAt,
	)
	return err
}

// ListTradesBySymbol fetches persisted trades for a symbol, most
// recent first.
func (r *TradeRepository) ListTradesBySymbol(ctx context.Context, symbol string, limit int) ([]models.Trade, error) {
	query := `
		SELECT id, symbol, taker_order_id, maker_order_id, price, quantity, side, created_at
		FROM trades
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.Symbol, &t.TakerOrderID, &t.MakerOrderID,
			&t.Price, &t.Quantity, &t.Side, &t.CreatedAt); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
