package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub - the broadcast gateway. It owns every live connection and is the only
// place events turn into frames. Emissions are fire-and-forget: a client with
// a full send buffer loses the frame instead of blocking the room logic.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
	}
}

func (that *Hub) ToClient(clientID, event string, payload any) {
	data := encode(event, payload)

	that.mu.RLock()
	defer that.mu.RUnlock()

	if target, ok := that.clients[clientID]; ok {
		that.send(target, data)
	}
}

func (that *Hub) ToClients(clientIDs []string, event string, payload any) {
	data := encode(event, payload)

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, clientID := range clientIDs {
		if target, ok := that.clients[clientID]; ok {
			that.send(target, data)
		}
	}
}

func (that *Hub) ToAll(event string, payload any) {
	data := encode(event, payload)

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, target := range that.clients {
		that.send(target, data)
	}
}

func (that *Hub) register(target *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[target.id] = target
}

// unregister - removes the client and closes its send channel, which stops
// the write pump. Safe to call once per client only; serveWS guarantees that.
func (that *Hub) unregister(target *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clients[target.id]; !ok {
		return
	}

	delete(that.clients, target.id)
	close(target.send)
}

// send - must be called with at least a read lock held, so the channel cannot
// be closed mid-send.
func (that *Hub) send(target *client, data []byte) {
	select {
	case target.send <- data:
	default:
		that.logger.Warn("send buffer full, dropping frame", "clientID", target.id)
	}
}

func encode(event string, payload any) []byte {
	return mustMarshal(Message{
		Action:  event,
		Payload: json.RawMessage(mustMarshal(payload)),
	})
}
