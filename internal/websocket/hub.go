// Package websocket pushes new-donor events to connected wall viewers.
package websocket

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"donorwall/internal/models"
)

type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// WallEvent is what every connected viewer receives when a contribution
// lands on the wall.
type WallEvent struct {
	Type     string       `json:"type"`
	Donor    models.Donor `json:"donor"`
	TotalUSD int          `json:"total_usd"`
}

const EventDonor = "donor"

// Hub fans wall events out to every connected viewer. The wall is
// public, so there is no per-client routing: everyone gets everything.
type Hub struct {
	Clients    map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan WallEvent

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan WallEvent),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = struct{}{}
			h.logger.Info("wall viewer connected", zap.Int("viewers", len(h.Clients)))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				h.logger.Info("wall viewer disconnected", zap.Int("viewers", len(h.Clients)))
			}

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("failed to marshal wall event", zap.Error(err))
				continue
			}
			for client := range h.Clients {
				select {
				case client.Send <- payload:
				default:
					// Slow consumer: drop it rather than block the hub.
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}
