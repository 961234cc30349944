package gateway

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handler serves the WebSocket upgrade endpoint for scrim event feeds.
type Handler struct {
	connectionManager *ConnectionManager
}

func NewHandler(cm *ConnectionManager) *Handler {
	return &Handler{connectionManager: cm}
}

// HandleScrimConnection upgrades a request watching a single scrim.
func (h *Handler) HandleScrimConnection(w http.ResponseWriter, r *http.Request) {
	scrimIDStr := r.URL.Query().Get("scrim_id")
	if scrimIDStr == "" {
		http.Error(w, "scrim_id is required", http.StatusBadRequest)
		return
	}

	scrimID, err := uuid.Parse(scrimIDStr)
	if err != nil {
		http.Error(w, "invalid scrim_id format", http.StatusBadRequest)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "anonymous"
	}

	if err := h.connectionManager.UpgradeConnection(w, r, userID, scrimID); err != nil {
		log.Error().
			Err(err).
			Str("scrim_id", scrimID.String()).
			Str("user_id", userID).
			Msg("failed to upgrade websocket connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
		return
	}
}

// HandleConnectionStats reports active connection counts.
func (h *Handler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	total, scrims := h.connectionManager.ConnectionStats()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"total_connections":%d,"active_scrims":%d}`, total, scrims)
}

// RegisterRoutes mounts the gateway endpoints on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/scrim", h.HandleScrimConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
