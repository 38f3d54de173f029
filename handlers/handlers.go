package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/engine"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/repository"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/service"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/utils"
)

type OrderHandler struct {
	Service   *service.OrderService
	Validator *validator.Validate
}

func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Service:   s,
		Validator: utils.GetValidator(),
	}
}

func formatValidationError(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			out[e.Field()] = "failed on tag '" + e.Tag() + "'"
		}
	}
	return out
}

// statusForError maps engine and intake errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, engine.ErrSymbolNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrUnsupportedOrderType),
		errors.Is(err, engine.ErrInvalidOrderParameters),
		errors.Is(err, engine.ErrSymbolMismatch),
		errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrSymbolAlreadyExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validation_errors": formatValidationError(err)})
		return
	}

	resp, err := h.Service.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/orders/:id?symbol=XYZ
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'symbol' query parameter"})
		return
	}

	resp, err := h.Service.CancelOrder(c.Request.Context(), symbol, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	resp, err := h.Service.GetOrderStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/orderbook?symbol=XYZ&levels=20
func (h *OrderHandler) GetOrderBook(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'symbol' query parameter"})
		return
	}
	levels, _ := strconv.Atoi(c.Query("levels"))

	resp, err := h.Service.GetOrderBook(c.Request.Context(), symbol, levels)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/trades?symbol=XYZ&limit=50
func (h *OrderHandler) GetRecentTrades(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'symbol' query parameter"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.Service.GetRecentTrades(c.Request.Context(), symbol, limit)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/trades/history?symbol=XYZ&limit=50
func (h *OrderHandler) GetTradeHistory(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'symbol' query parameter"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.Service.GetTradeHistory(c.Request.Context(), symbol, limit)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/symbols
func (h *OrderHandler) ListSymbols(c *gin.Context) {
	c.JSON(http.StatusOK, models.SymbolsResponse{Symbols: h.Service.Symbols()})
}

// POST /api/symbols
func (h *OrderHandler) RegisterSymbol(c *gin.Context) {
	var req models.RegisterSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validation_errors": formatValidationError(err)})
		return
	}

	if err := h.Service.RegisterSymbol(req.Symbol); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"symbol": req.Symbol})
}
