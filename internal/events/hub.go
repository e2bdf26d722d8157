// Package events broadcasts job state changes to websocket subscribers.
package events

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jslate/intake/internal/jobs"
	"github.com/jslate/intake/pkg/lifecycle"
)

// Hub fans job updates out to every connected websocket client. Slow or
// broken clients are dropped rather than blocking the pipeline.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
	logger     *slog.Logger
}

// NewHub creates a Hub. Call Start before registering clients.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     logger.With("system", "events"),
	}
}

// Start launches the dispatch loop and registers connection teardown with
// the lifecycle coordinator.
func (h *Hub) Start(lc *lifecycle.Coordinator) error {
	ctx := lc.Context()

	go func() {
		for {
			select {
			case <-ctx.Done():
				h.closeAll()
				return
			case conn := <-h.register:
				h.mu.Lock()
				h.clients[conn] = true
				total := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("websocket client connected", "clients", total)
			case conn := <-h.unregister:
				h.mu.Lock()
				if _, ok := h.clients[conn]; ok {
					delete(h.clients, conn)
					conn.Close()
				}
				total := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("websocket client disconnected", "clients", total)
			case message := <-h.broadcast:
				h.mu.Lock()
				for conn := range h.clients {
					if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
						h.logger.Warn("dropping websocket client", "error", err)
						conn.Close()
						delete(h.clients, conn)
					}
				}
				h.mu.Unlock()
			}
		}
	}()

	return nil
}

// JobUpdated implements jobs.Notifier, broadcasting the new job state.
func (h *Hub) JobUpdated(job *jobs.Job) {
	update := map[string]any{
		"type":      "job_update",
		"job_id":    job.ID.String(),
		"status":    job.Status,
		"node":      job.CurrentStep,
		"timestamp": job.UpdatedAt,
	}
	if job.Status == jobs.StatusFailed && job.ErrorMessage != "" {
		update["error"] = job.ErrorMessage
	}

	data, err := json.Marshal(update)
	if err != nil {
		h.logger.Error("failed to marshal job update", "error", err)
		return
	}

	// Drop updates instead of blocking workers when the hub is saturated.
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast buffer full, dropping update", "job_id", job.ID)
	}
}

// Register adds a client connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

// Unregister removes a client connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
