package server

import (
	"net/http"
	"sync"

	"SqueezeFM/logger"

	"github.com/gorilla/websocket"
)

var catalogUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CatalogHub pushes snapshot version bumps to connected storefront clients
// so they refetch the catalog after an ingest.
type CatalogHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewCatalogHub creates an empty hub.
func NewCatalogHub() *CatalogHub {
	return &CatalogHub{clients: make(map[*websocket.Conn]struct{})}
}

// HandleWS upgrades the connection and keeps it registered until it closes.
func (hub *CatalogHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := catalogUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade catalog websocket", logger.ErrorField(err))
		return
	}

	hub.mu.Lock()
	hub.clients[conn] = struct{}{}
	hub.mu.Unlock()

	// Reader loop only drains control frames; the hub never expects
	// client messages.
	go func() {
		defer func() {
			hub.mu.Lock()
			delete(hub.clients, conn)
			hub.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// BroadcastCatalogUpdated announces that the catalog changed.
func (hub *CatalogHub) BroadcastCatalogUpdated(newTracks int) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	payload := map[string]interface{}{
		"type":      "catalog_updated",
		"newTracks": newTracks,
	}
	for conn := range hub.clients {
		if err := conn.WriteJSON(payload); err != nil {
			logger.Warn("Failed to push catalog update, dropping client", logger.ErrorField(err))
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
