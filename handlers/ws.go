package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientSendSize = 64
)

// WSRequest is what clients send: subscribe/unsubscribe to symbols.
type WSRequest struct {
	Type    string   `json:"type"` // "subscribe" | "unsubscribe"
	Symbols []string `json:"symbols"`
}

// WSEvent is the envelope broadcast to subscribers.
type WSEvent struct {
	Type   string      `json:"type"` // "trade" | "depth"
	Symbol string      `json:"symbol"`
	Data   interface{} `json:"data"`
}

type depthPayload struct {
	Bids []models.OrderBookEntry `json:"bids"`
	Asks []models.OrderBookEntry `json:"asks"`
}

// Hub fans trade and depth events out to websocket subscribers. It is
// the market-data collaborator: it only ever sees snapshots and
// committed trades handed to it by the service layer, never the book
// itself.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan wsMessage
	clients    map[*Client]struct{}
	logger     *slog.Logger
}

type wsMessage struct {
	symbol string
	data   []byte
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan wsMessage, 256),
		clients:    make(map[*Client]struct{}),
		logger:     logger,
	}
}

// Run owns the client set; all membership changes and broadcasts go
// through this loop.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			for c := range h.clients {
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				if !c.subscribed(msg.symbol) {
					continue
				}
				select {
				case c.send <- msg.data:
				default:
					// slow consumer, drop it
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// PublishTrades broadcasts committed trades to the symbol's
// subscribers.
func (h *Hub) PublishTrades(symbol string, trades []models.Trade) {
	data, err := json.Marshal(WSEvent{Type: "trade", Symbol: symbol, Data: trades})
	if err != nil {
		return
	}
	h.publish(symbol, data)
}

// PublishDepth broadcasts a depth snapshot to the symbol's
// subscribers.
func (h *Hub) PublishDepth(symbol string, bids, asks []models.OrderBookEntry) {
	data, err := json.Marshal(WSEvent{Type: "depth", Symbol: symbol, Data: depthPayload{Bids: bids, Asks: asks}})
	if err != nil {
		return
	}
	h.publish(symbol, data)
}

func (h *Hub) publish(symbol string, data []byte) {
	select {
	case h.broadcast <- wsMessage{symbol: symbol, data: data}:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping event", "symbol", symbol)
	}
}

// ServeWS upgrades the connection and starts the client pumps.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, clientSendSize),
		symbols: make(map[string]bool),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Client is one websocket subscriber and its set of symbols.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	symbols map[string]bool
	mu      sync.RWMutex
}

func (c *Client) subscribed(symbol string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.symbols[symbol]
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var req WSRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			continue
		}
		c.mu.Lock()
		switch req.Type {
		case "subscribe":
			for _, s := range req.Symbols {
				c.symbols[s] = true
			}
		case "unsubscribe":
			for _, s := range req.Symbols {
				delete(c.symbols, s)
			}
		}
		c.mu.Unlock()
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
