package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"lawpro-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "lawpro_cluster_events"

// Event is the envelope pushed to browsers.
type Event struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Data      interface{} `json:"data"`
}

type clusterMessage struct {
	Origin     string          `json:"origin"`
	BrowserKey string          `json:"browser_key"`
	Message    json.RawMessage `json:"message"`
}

type Hub struct {
	// Registered clients: browser key -> open tabs
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, may be nil
	rdb *redis.Client
	// instanceID lets an instance skip its own cluster messages
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.BrowserKey] = append(h.clients[client.BrowserKey], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"browser_key": client.BrowserKey})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.BrowserKey]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.BrowserKey] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.BrowserKey]) == 0 {
		delete(h.clients, client.BrowserKey)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"browser_key": client.BrowserKey})
	}
}

// Push delivers an event to every tab of one browser, here and on the other
// instances through Redis.
func (h *Hub) Push(browserKey string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode event", map[string]interface{}{"type": event.Type, "error": err.Error()})
		return
	}

	h.deliverLocal(browserKey, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{Origin: h.instanceID, BrowserKey: browserKey, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish to Redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

// ConnectedTabs reports how many sockets a browser holds on this instance.
func (h *Hub) ConnectedTabs(browserKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[browserKey])
}

func (h *Hub) deliverLocal(browserKey string, data []byte) {
	// read lock held while sending so remove cannot close a channel mid-send
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[browserKey] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"browser_key": browserKey})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(payload.BrowserKey, payload.Message)
	}
}
