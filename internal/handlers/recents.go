package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"recents-server/internal/logging"
	"recents-server/internal/recents"
)

const maxBodySize = 64 << 10

// RecentsResponse is the JSON view of the recently played list.
type RecentsResponse struct {
	Enabled  bool     `json:"enabled"`
	Capacity int      `json:"capacity"`
	Entries  []string `json:"entries"`
}

// AddRecentRequest is the body of POST /api/recents.
type AddRecentRequest struct {
	MRL string `json:"mrl"`
}

// EnabledRequest is the body of PUT /api/recents/enabled.
type EnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func snapshot(l *recents.List) RecentsResponse {
	return RecentsResponse{
		Enabled:  l.Enabled(),
		Capacity: l.Capacity(),
		Entries:  l.Snapshot(),
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return err
	}
	return nil
}

// GetRecents returns the current list
func (h *Handlers) GetRecents(w http.ResponseWriter, _ *http.Request) {
	var resp RecentsResponse
	h.withRecents(func(l *recents.List) { resp = snapshot(l) })

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, resp)
}

// AddRecent records a played MRL. Filtered MRLs and a disabled list are
// not errors; the unchanged list is returned.
func (h *Handlers) AddRecent(w http.ResponseWriter, r *http.Request) {
	var req AddRecentRequest
	if err := decodeBody(w, r, &req); err != nil {
		logging.Debug("Bad add-recent body: %v", err)
		return
	}

	mrl := strings.TrimSpace(req.MRL)
	if mrl == "" {
		writeJSONError(w, "mrl is required", http.StatusBadRequest)
		return
	}

	var resp RecentsResponse
	h.withRecents(func(l *recents.List) {
		l.AddRecent(mrl)
		resp = snapshot(l)
	})

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}

// ClearRecents empties the list
func (h *Handlers) ClearRecents(w http.ResponseWriter, _ *http.Request) {
	var resp RecentsResponse
	h.withRecents(func(l *recents.List) {
		l.Clear()
		resp = snapshot(l)
	})

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}

// RemoveRecent forgets a single MRL given by the mrl query parameter
func (h *Handlers) RemoveRecent(w http.ResponseWriter, r *http.Request) {
	mrl := r.URL.Query().Get("mrl")
	if mrl == "" {
		writeJSONError(w, "mrl query parameter is required", http.StatusBadRequest)
		return
	}

	var (
		removed bool
		resp    RecentsResponse
	)
	h.withRecents(func(l *recents.List) {
		removed = l.Remove(mrl)
		resp = snapshot(l)
	})

	if !removed {
		writeJSONError(w, "MRL not in recently played list", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}

// SetRecentsEnabled turns the list on or off. Turning it off clears it.
func (h *Handlers) SetRecentsEnabled(w http.ResponseWriter, r *http.Request) {
	var req EnabledRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}
	if req.Enabled == nil {
		writeJSONError(w, "enabled is required", http.StatusBadRequest)
		return
	}

	var resp RecentsResponse
	h.withRecents(func(l *recents.List) {
		l.SetEnabled(*req.Enabled)
		resp = snapshot(l)
	})

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}
