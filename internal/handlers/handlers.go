package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"recents-server/internal/menu"
	"recents-server/internal/recents"
)

// Pinger reports whether the settings database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	mu        sync.Mutex
	recents   *recents.List
	hub       *menu.Hub
	db        Pinger
	startTime time.Time
}

func New(list *recents.List, hub *menu.Hub, db Pinger) *Handlers {
	return &Handlers{
		recents:   list,
		hub:       hub,
		db:        db,
		startTime: time.Now(),
	}
}

// withRecents runs fn with exclusive access to the list.
func (h *Handlers) withRecents(fn func(l *recents.List)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.recents)
}

// MenuSocket streams list updates to a menu widget over a websocket.
func (h *Handlers) MenuSocket(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeHTTP(w, r)
}
