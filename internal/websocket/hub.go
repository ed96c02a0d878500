package websocket

import (
	"encoding/json"
	"sync"

	"roomfund/internal/fund"
)

// FundUpdate is pushed to every connected dashboard after a transaction
// mutation changes the fund.
type FundUpdate struct {
	Stats fund.Stats `json:"stats"`
}

// Hub fans fund updates out to all connected clients. The fund is shared, so
// there is no per-user keying; every dashboard sees the same numbers.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// BroadcastFund is best-effort: clients that cannot keep up drop frames.
func (h *Hub) BroadcastFund(update FundUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
		}
	}
}
