package hub

import (
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/logger"
	"github.com/osse101/GatherNode_Go/internal/metrics"
)

// Client is one connected websocket peer or SSE observer
type Client struct {
	ID       string
	PlayerID string
	Kind     string
	Messages chan domain.Message
	filter   map[domain.MessageKind]bool // nil means all kinds
}

// Wants reports whether the client subscribed to messages of kind k
func (c *Client) Wants(k domain.MessageKind) bool {
	return c.filter == nil || c.filter[k]
}

// Hub fans protocol messages out to connected clients
type Hub struct {
	clients   map[string]*Client
	broadcast chan domain.Message
	mu        sync.RWMutex
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan domain.Message, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop gracefully shuts down the hub and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, client := range h.clients {
			close(client.Messages)
			metrics.ConnectedClients.WithLabelValues(client.Kind).Dec()
			delete(h.clients, id)
		}
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case msg := <-h.broadcast:
			h.fanOut(msg)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) fanOut(msg domain.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.Wants(msg.Kind) {
			continue
		}
		// Non-blocking send
		select {
		case client.Messages <- msg:
		default:
			logger.Debug(LogMsgClientLagging, "client_id", client.ID, "kind", msg.Kind)
		}
	}
}

// Register adds a client. An empty kinds list subscribes to every message kind.
func (h *Hub) Register(kind, playerID string, kinds []domain.MessageKind) *Client {
	client := &Client{
		ID:       uuid.New().String(),
		PlayerID: playerID,
		Kind:     kind,
		Messages: make(chan domain.Message, ClientMessageBuffer),
	}
	if len(kinds) > 0 {
		client.filter = make(map[domain.MessageKind]bool, len(kinds))
		for _, k := range kinds {
			client.filter[k] = true
		}
	}

	h.mu.Lock()
	select {
	case <-h.shutdown:
		// stopped hubs hand out closed channels so handlers return at once
		close(client.Messages)
	default:
		h.clients[client.ID] = client
		metrics.ConnectedClients.WithLabelValues(kind).Inc()
	}
	h.mu.Unlock()
	return client
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Messages)
		metrics.ConnectedClients.WithLabelValues(client.Kind).Dec()
		delete(h.clients, clientID)
	}
}

// Broadcast queues msg for every interested client
func (h *Hub) Broadcast(msg domain.Message) {
	select {
	case h.broadcast <- msg:
	default:
		metrics.BroadcastsDropped.Inc()
		logger.Warn(LogMsgBroadcastDropped, "kind", msg.Kind, "node", msg.Key().String())
	}
}

// SendTo delivers msg to a single client, reporting false when the client
// is gone or its buffer is full
func (h *Hub) SendTo(clientID string, msg domain.Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[clientID]
	if !ok {
		return false
	}
	select {
	case client.Messages <- msg:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
