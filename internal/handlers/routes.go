package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"recents-server/internal/middleware"
)

// NewRouter wires every API route onto a new router.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)

	api := r.PathPrefix("/api/recents").Subrouter()
	api.HandleFunc("", h.GetRecents).Methods(http.MethodGet)
	api.HandleFunc("", h.AddRecent).Methods(http.MethodPost)
	api.HandleFunc("", h.ClearRecents).Methods(http.MethodDelete)
	api.HandleFunc("/item", h.RemoveRecent).Methods(http.MethodDelete)
	api.HandleFunc("/enabled", h.SetRecentsEnabled).Methods(http.MethodPut)
	api.HandleFunc("/playlist", h.GetRecentPlaylist).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/playlist.wpl", h.ExportRecentPlaylist).Methods(http.MethodGet)
	api.HandleFunc("/ws", h.MenuSocket).Methods(http.MethodGet)

	return r
}
