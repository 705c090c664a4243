package main

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

type Hub struct {
	mu               sync.Mutex
	clients          map[*Client]struct{}
	broadcastHistory chan historyPayload
	broadcastStatus  chan StatusResponse
	broadcastReset   chan StatusResponse
	logger           *zap.SugaredLogger
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Hub{
		clients:          make(map[*Client]struct{}),
		broadcastHistory: make(chan historyPayload, 32),
		broadcastStatus:  make(chan StatusResponse, 32),
		broadcastReset:   make(chan StatusResponse, 8),
		logger:           logger,
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastHistory:
			h.publish("history", payload)
		case payload := <-h.broadcastStatus:
			h.publish("status", payload)
		case payload := <-h.broadcastReset:
			h.publish("reset", payload)
		}
	}
}

func (h *Hub) publish(kind string, payload any) {
	msg := wsMessage{Type: kind, Payload: mustMarshal(payload)}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debugw("websocket client registered")
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Debugw("websocket client unregistered")
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

// leave detaches the client from its hub and closes its send channel.
func (c *Client) leave() {
	c.hub.Unregister(c)
}

// sendJSON drops the message when the client is not keeping up.
func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) PublishHistory(payload historyPayload) {
	select {
	case h.broadcastHistory <- payload:
	default:
	}
}

func (h *Hub) PublishStatus(payload StatusResponse) {
	select {
	case h.broadcastStatus <- payload:
	default:
	}
}

func (h *Hub) PublishReset(payload StatusResponse) {
	select {
	case h.broadcastReset <- payload:
	default:
	}
}
