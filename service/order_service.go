package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/engine"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

const defaultDepthLevels = 20
const defaultTradeLimit = 50

// ErrInvalidRequest marks malformed intake requests (bad ids, missing
// prices, non-positive quantities) before they reach the engine.
var ErrInvalidRequest = errors.New("invalid request")

// OrderService orchestrates the intake path: risk check, persistence,
// routing through the matching engine manager, then settlement,
// caching and broadcast of whatever the engine committed. The engine
// itself performs no I/O; everything here happens outside its locks.
type OrderService struct {
	Orders  OrderStore
	Trades  TradeStore
	Engines *engine.Manager
	Cache   *MarketCache
	Hub     Broadcaster
	Risk    RiskChecker
	Settler Settler
	Logger  *slog.Logger
}

func NewOrderService(orders OrderStore, trades TradeStore, engines *engine.Manager, cache *MarketCache, hub Broadcaster, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		Orders:  orders,
		Trades:  trades,
		Engines: engines,
		Cache:   cache,
		Hub:     hub,
		Risk:    NoopRiskChecker{},
		Settler: NoopSettler{},
		Logger:  logger,
	}
}

// PlaceOrder validates the request, runs it through the symbol's
// matching engine and fans the result out to the persistence,
// settlement and market-data collaborators.
func (s *OrderService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.PlaceOrderResponse, error) {
	order, err := s.orderFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.Risk.ValidateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("risk check failed: %w", err)
	}

	if s.Orders != nil {
		if err := s.Orders.CreateOrder(ctx, order); err != nil {
			return nil, fmt.Errorf("failed to persist order: %w", err)
		}
	}

	trades, err := s.Engines.ProcessOrder(order)
	if err != nil {
		if errors.Is(err, engine.ErrInsufficientLiquidity) {
			// FOK shortfall: the engine guarantees zero side effects,
			// the order is killed with nothing filled.
			s.persistOrderStatus(ctx, order.ID, order.Status)
			return &models.PlaceOrderResponse{
				OrderID:           order.ID.String(),
				Status:            order.Status,
				RemainingQuantity: order.RemainingQuantity(),
				Message:           "insufficient liquidity, order killed",
			}, nil
		}
		s.persistOrderStatus(ctx, order.ID, models.OrderStatusRejected)
		return nil, err
	}

	s.recordMatchResult(ctx, order, trades)

	return &models.PlaceOrderResponse{
		OrderID:           order.ID.String(),
		Status:            order.Status,
		RemainingQuantity: order.RemainingQuantity(),
		Trades:            trades,
		Message:           "order accepted",
	}, nil
}

// CancelOrder removes a resting order. Cancelling an unknown or
// already inactive order is not an error.
func (s *OrderService) CancelOrder(ctx context.Context, symbol, orderIDStr string) (*models.CancelOrderResponse, error) {
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed order id", ErrInvalidRequest)
	}

	order, err := s.Engines.CancelOrder(symbol, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return &models.CancelOrderResponse{
			OrderID:  orderIDStr,
			Canceled: false,
			Message:  "order not found or already inactive",
		}, nil
	}

	s.persistOrderStatus(ctx, order.ID, order.Status)
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, symbol)
	}
	s.publishDepth(symbol)

	return &models.CancelOrderResponse{
		OrderID:  orderIDStr,
		Canceled: true,
		Message:  "order canceled",
	}, nil
}

// GetOrderBook serves a depth snapshot, preferring the short-lived
// Redis cache for standard-size requests.
func (s *OrderService) GetOrderBook(ctx context.Context, symbol string, levels int) (*models.OrderBookResponse, error) {
	if levels <= 0 {
		levels = defaultDepthLevels
	}

	if levels <= cachedDepth {
		if cached, err := s.Cache.GetDepth(ctx, symbol); err == nil && cached != nil {
			return truncateDepth(cached, levels), nil
		}
		bids, asks, err := s.Engines.Depth(symbol, cachedDepth)
		if err != nil {
			return nil, err
		}
		book := &models.OrderBookResponse{Symbol: symbol, Bids: bids, Asks: asks}
		if err := s.Cache.SetDepth(ctx, symbol, book); err != nil {
			s.Logger.Warn("failed to cache depth snapshot", "symbol", symbol, "error", err)
		}
		return truncateDepth(book, levels), nil
	}

	bids, asks, err := s.Engines.Depth(symbol, levels)
	if err != nil {
		return nil, err
	}
	return &models.OrderBookResponse{Symbol: symbol, Bids: bids, Asks: asks}, nil
}

// GetRecentTrades returns the engine's in-memory trade history,
// most recent first.
func (s *OrderService) GetRecentTrades(ctx context.Context, symbol string, limit int) (*models.TradesResponse, error) {
	if limit <= 0 {
		limit = defaultTradeLimit
	}
	trades, err := s.Engines.RecentTrades(symbol, limit)
	if err != nil {
		return nil, err
	}
	return &models.TradesResponse{Symbol: symbol, Trades: trades}, nil
}

// GetTradeHistory returns persisted trades, surviving restarts, most
// recent first.
func (s *OrderService) GetTradeHistory(ctx context.Context, symbol string, limit int) (*models.TradesResponse, error) {
	if limit <= 0 {
		limit = defaultTradeLimit
	}
	if s.Trades == nil {
		return s.GetRecentTrades(ctx, symbol, limit)
	}
	trades, err := s.Trades.ListTradesBySymbol(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}
	return &models.TradesResponse{Symbol: symbol, Trades: trades}, nil
}

// GetOrderStatus looks up a persisted order by id.
func (s *OrderService) GetOrderStatus(ctx context.Context, orderIDStr string) (*models.OrderStatusResponse, error) {
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed order id", ErrInvalidRequest)
	}
	if s.Orders == nil {
		return nil, fmt.Errorf("order store not configured")
	}
	order, err := s.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &models.OrderStatusResponse{
		OrderID:           order.ID.String(),
		Symbol:            order.Symbol,
		Status:            order.Status,
		ExecutedQuantity:  order.FilledQty,
		RemainingQuantity: order.RemainingQuantity(),
	}, nil
}

// RegisterSymbol opens a new market.
func (s *OrderService) RegisterSymbol(symbol string) error {
	if err := s.Engines.RegisterSymbol(symbol); err != nil {
		return err
	}
	s.Logger.Info("symbol registered", "symbol", symbol)
	return nil
}

func (s *OrderService) Symbols() []string {
	return s.Engines.Symbols()
}

// orderFromRequest builds and validates the engine-facing order.
func (s *OrderService) orderFromRequest(req *models.PlaceOrderRequest) (*models.Order, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user id", ErrInvalidRequest)
	}

	side := models.Side(req.Side)
	typ := models.OrderType(req.Type)
	if !side.Valid() {
		return nil, fmt.Errorf("%w: unknown side %q", ErrInvalidRequest, req.Side)
	}
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidRequest)
	}

	tif := models.TimeInForce(req.TimeInForce)
	if req.TimeInForce == "" {
		// market orders never rest, limit orders default to resting
		if typ == models.OrderTypeMarket {
			tif = models.TimeInForceIOC
		} else {
			tif = models.TimeInForceGTC
		}
	}
	if !tif.Valid() {
		return nil, fmt.Errorf("%w: unknown time in force %q", ErrInvalidRequest, req.TimeInForce)
	}

	switch typ {
	case models.OrderTypeLimit:
		if !req.Price.IsPositive() {
			return nil, fmt.Errorf("%w: limit orders require a positive price", ErrInvalidRequest)
		}
	case models.OrderTypeMarket:
		if tif == models.TimeInForceGTD {
			return nil, fmt.Errorf("%w: market orders cannot be good-till-date", ErrInvalidRequest)
		}
	}

	order := models.NewOrder(userID, req.Symbol, side, typ, req.Price, req.Quantity, tif)
	if tif == models.TimeInForceGTD {
		if !req.ExpiresAt.After(time.Now()) {
			return nil, fmt.Errorf("%w: good-till-date orders require a future expiry", ErrInvalidRequest)
		}
		order.ExpiresAt = req.ExpiresAt.UTC()
	}
	return order, nil
}

// recordMatchResult persists and fans out a committed matching pass.
// The engine's mutations cannot be rolled back, so persistence
// failures are logged and surfaced to operators rather than failing
// the already-executed trade.
func (s *OrderService) recordMatchResult(ctx context.Context, order *models.Order, trades []models.Trade) {
	if s.Trades != nil {
		for i := range trades {
			if err := s.Trades.CreateTrade(ctx, &trades[i]); err != nil {
				s.Logger.Error("failed to persist trade", "trade_id", trades[i].ID, "error", err)
			}
			if s.Orders != nil {
				if err := s.Orders.RecordMakerFill(ctx, trades[i].MakerOrderID, trades[i].Quantity); err != nil {
					s.Logger.Error("failed to persist maker fill", "order_id", trades[i].MakerOrderID, "error", err)
				}
			}
		}
	}
	if s.Orders != nil {
		if err := s.Orders.UpdateOrderFill(ctx, order.ID, order.FilledQty, order.Status); err != nil {
			s.Logger.Error("failed to persist order fill", "order_id", order.ID, "error", err)
		}
	}

	if len(trades) > 0 {
		if err := s.Settler.SettleTrades(ctx, trades); err != nil {
			s.Logger.Error("settlement failed", "symbol", order.Symbol, "trades", len(trades), "error", err)
		}
		if s.Hub != nil {
			s.Hub.PublishTrades(order.Symbol, trades)
		}
	}

	if s.Cache != nil {
		s.Cache.Invalidate(ctx, order.Symbol)
	}
	s.publishDepth(order.Symbol)

	s.Logger.Info("order processed",
		"order_id", order.ID,
		"symbol", order.Symbol,
		"status", order.Status,
		"trades", len(trades),
	)
}

func (s *OrderService) publishDepth(symbol string) {
	if s.Hub == nil {
		return
	}
	bids, asks, err := s.Engines.Depth(symbol, defaultDepthLevels)
	if err != nil {
		return
	}
	s.Hub.PublishDepth(symbol, bids, asks)
}

// persistOrderStatus best-effort records a terminal status.
func (s *OrderService) persistOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) {
	if s.Orders == nil {
		return
	}
	if err := s.Orders.UpdateOrderStatus(ctx, id, status); err != nil {
		s.Logger.Error("failed to persist order status", "order_id", id, "status", status, "error", err)
	}
}

func truncateDepth(book *models.OrderBookResponse, levels int) *models.OrderBookResponse {
	out := &models.OrderBookResponse{Symbol: book.Symbol, Bids: book.Bids, Asks: book.Asks}
	if len(out.Bids) > levels {
		out.Bids = out.Bids[:levels]
	}
	if len(out.Asks) > levels {
		out.Asks = out.Asks[:levels]
	}
	return out
}
