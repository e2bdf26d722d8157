package events

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/jslate/intake/pkg/routes"
)

// Handler upgrades HTTP requests to websocket subscriptions.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a Handler for the given hub. Origin checks are
// delegated to the CORS middleware in front of the module.
func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("handler", "events"),
	}
}

// Routes returns the route group definition for the event stream.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/ws", Handler: h.Subscribe},
		},
	}
}

// Subscribe upgrades the connection and keeps it registered until the
// client disconnects.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	h.hub.Register(conn)

	// Reads are discarded; the loop exists to detect disconnects.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
