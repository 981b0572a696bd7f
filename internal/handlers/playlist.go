package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"recents-server/internal/logging"
	"recents-server/internal/mediatypes"
	"recents-server/internal/playlist"
	"recents-server/internal/recents"
)

var errBadLimit = errors.New("limit must be a non-negative integer")

// parseLimit reads the optional limit query parameter; absent means 0 (all).
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errBadLimit
	}
	return limit, nil
}

// buildRecentPlaylist materializes the list into a fresh playlist tree and
// writes an error response on failure.
func (h *Handlers) buildRecentPlaylist(w http.ResponseWriter, r *http.Request) (*playlist.Node, bool) {
	limit, err := parseLimit(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	var entries []string
	h.withRecents(func(l *recents.List) { entries = l.Snapshot() })

	node, err := playlist.NewTree().Materialize(entries, limit)
	if errors.Is(err, playlist.ErrNoRoot) {
		writeJSONError(w, "Playlist unavailable", http.StatusServiceUnavailable)
		return nil, false
	}
	if err != nil {
		logging.Error("failed to build recently played playlist: %v", err)
		writeJSONError(w, "Failed to build playlist", http.StatusInternalServerError)
		return nil, false
	}
	return node, true
}

// GetRecentPlaylist returns the "Recently Played" playlist node as JSON
func (h *Handlers) GetRecentPlaylist(w http.ResponseWriter, r *http.Request) {
	node, ok := h.buildRecentPlaylist(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, node)
}

// ExportRecentPlaylist returns the "Recently Played" playlist as a WPL file
func (h *Handlers) ExportRecentPlaylist(w http.ResponseWriter, r *http.Request) {
	node, ok := h.buildRecentPlaylist(w, r)
	if !ok {
		return
	}

	data, err := playlist.ExportWPL(node)
	if err != nil {
		logging.Error("failed to export WPL: %v", err)
		writeJSONError(w, "Failed to export playlist", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mediatypes.GetMimeType(".wpl"))
	w.Header().Set("Content-Disposition", `attachment; filename="recently-played.wpl"`)
	if _, err := w.Write(data); err != nil {
		logging.Debug("failed to write WPL response: %v", err)
	}
}
