// Package notify pushes order events to connected websocket clients, used
// by the admin dashboard to refresh without polling.
package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"foodiehub/models"
)

type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler upgrades the connection and keeps it registered until the client
// goes away. Incoming messages are drained and ignored.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("websocket upgrade failed:", err)
			return
		}
		defer conn.Close()

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				break
			}
		}
	}
}

func (h *Hub) OrderCreated(order *models.Order) {
	h.broadcast(Event{Event: "newOrder", Payload: order})
}

func (h *Hub) OrderUpdated(order *models.Order) {
	h.broadcast(Event{Event: "orderStatus", Payload: order})
}

func (h *Hub) broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Println("error marshaling event:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
}
