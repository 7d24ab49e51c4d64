package v1

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/boardland/boardland-api/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

// LiveHandler broadcasts registered sales to connected dashboards over
// WebSocket, so counter screens refresh without polling.
type LiveHandler struct {
	clients      map[*liveClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *liveClient
	unregister   chan *liveClient
}

func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		clients:    make(map[*liveClient]struct{}),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
	}
}

func (h *LiveHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case message := <-h.broadcast:
			h.clientsMutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// Notify implements the sale feed. Marshalling failures and a saturated
// broadcast channel drop the event rather than block the sale.
func (h *LiveHandler) Notify(event domain.SaleEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Warn("failed to marshal sale event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		zap.L().Warn("sale feed broadcast channel is full, dropping event")
	}
}

// HandleLiveSales godoc
// @Summary      Subscribe to the live sales feed
// @Description  Upgrades to a WebSocket connection that receives every registered sale as a JSON event.
// @Tags         sales
// @Produce      json
// @Success      101 {string} string "Switching Protocols to WebSocket"
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Router       /live/sales [get]
// @Security     BearerAuth
func (h *LiveHandler) HandleLiveSales(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("failed to upgrade sale feed connection", zap.Error(err))
		return
	}

	client := &liveClient{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *liveClient) writePump() {
	defer func() {
		c.conn.Close()
	}()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; the feed is one-way. It exists to detect
// closed connections.
func (c *liveClient) readPump(h *LiveHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
