package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"recents-server/internal/database"
	"recents-server/internal/menu"
	"recents-server/internal/playlist"
	"recents-server/internal/recents"
)

type testEnv struct {
	db     *database.Database
	hub    *menu.Hub
	h      *Handlers
	router *mux.Router
}

func setupTestEnv(t *testing.T, cfg recents.Config, persisted ...string) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.New(ctx, filepath.Join(t.TempDir(), "recents.db"), nil)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if persisted != nil {
		if err := db.SetStringList(ctx, recents.SettingsKey, persisted); err != nil {
			t.Fatalf("Failed to seed recents: %v", err)
		}
	}

	hub := menu.NewHub(nil)
	t.Cleanup(hub.Close)

	list, err := recents.New(ctx, cfg, db, hub, nil)
	if err != nil {
		t.Fatalf("recents.New() error = %v", err)
	}

	h := New(list, hub, db)
	return &testEnv{db: db, hub: hub, h: h, router: NewRouter(h)}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeRecents(t *testing.T, rec *httptest.ResponseRecorder) RecentsResponse {
	t.Helper()
	var resp RecentsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

func (e *testEnv) persisted(t *testing.T) []string {
	t.Helper()
	list, err := e.db.StringList(context.Background(), recents.SettingsKey)
	if err != nil {
		t.Fatalf("StringList: %v", err)
	}
	return list
}

func TestGetRecents(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true, Capacity: 5}, "file:///b.mkv", "file:///a.mkv")

	rec := env.do(t, http.MethodGet, "/api/recents", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	want := RecentsResponse{Enabled: true, Capacity: 5, Entries: []string{"file:///b.mkv", "file:///a.mkv"}}
	if diff := deep.Equal(decodeRecents(t, rec), want); diff != nil {
		t.Error(diff)
	}
}

func TestAddRecentPersists(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true}, "a", "b", "c")

	rec := env.do(t, http.MethodPost, "/api/recents", AddRecentRequest{MRL: "b"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	want := []string{"b", "a", "c"}
	if diff := deep.Equal(decodeRecents(t, rec).Entries, want); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(env.persisted(t), want); diff != nil {
		t.Errorf("persisted: %v", diff)
	}
	if diff := deep.Equal(env.hub.Current(), want); diff != nil {
		t.Errorf("menu: %v", diff)
	}
}

func TestAddRecentFilteredIsNotAnError(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true, Filter: "^http:"})

	rec := env.do(t, http.MethodPost, "/api/recents", AddRecentRequest{MRL: "HTTP://example.com/a.mp3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if entries := decodeRecents(t, rec).Entries; len(entries) != 0 {
		t.Errorf("entries = %v, want none", entries)
	}
	if got := env.persisted(t); got != nil {
		t.Errorf("filtered add was persisted: %v", got)
	}
}

func TestAddRecentBadRequests(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true})

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty mrl", AddRecentRequest{MRL: "   "}},
		{"malformed json", "{"},
		{"unknown field", `{"url":"file:///a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/recents", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestClearRecents(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true}, "a", "b")

	rec := env.do(t, http.MethodDelete, "/api/recents", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if entries := decodeRecents(t, rec).Entries; len(entries) != 0 {
		t.Errorf("entries = %v after clear", entries)
	}
	if diff := deep.Equal(env.persisted(t), []string{}); diff != nil {
		t.Errorf("persisted: %v", diff)
	}
}

func TestRemoveRecent(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true}, "file:///a b.mkv", "c")

	rec := env.do(t, http.MethodDelete, "/api/recents/item?mrl=file%3A%2F%2F%2Fa%20b.mkv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if diff := deep.Equal(decodeRecents(t, rec).Entries, []string{"c"}); diff != nil {
		t.Error(diff)
	}

	if rec := env.do(t, http.MethodDelete, "/api/recents/item?mrl=missing", nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing mrl status = %d, want 404", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/recents/item", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("no mrl status = %d, want 400", rec.Code)
	}
}

func TestSetRecentsEnabled(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true}, "a")

	rec := env.do(t, http.MethodPut, "/api/recents/enabled", `{"enabled":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeRecents(t, rec)
	if resp.Enabled || len(resp.Entries) != 0 {
		t.Errorf("after disable: %+v", resp)
	}

	env.do(t, http.MethodPost, "/api/recents", AddRecentRequest{MRL: "b"})
	if got := decodeRecents(t, env.do(t, http.MethodGet, "/api/recents", nil)).Entries; len(got) != 0 {
		t.Errorf("disabled list admitted %v", got)
	}

	if rec := env.do(t, http.MethodPut, "/api/recents/enabled", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing enabled status = %d, want 400", rec.Code)
	}
}

func TestGetRecentPlaylist(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true}, "file:///a.mkv", "file:///b.mkv", "file:///c.mkv")

	rec := env.do(t, http.MethodPost, "/api/recents/playlist?limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	var node playlist.Node
	if err := json.NewDecoder(rec.Body).Decode(&node); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if node.Name != playlist.RecentNodeName || !node.ReadOnly {
		t.Errorf("node = %q readOnly=%v", node.Name, node.ReadOnly)
	}
	if diff := deep.Equal(node.MRLs(), []string{"file:///a.mkv", "file:///b.mkv"}); diff != nil {
		t.Error(diff)
	}
}

func TestPlaylistLimitValidation(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true}, "a")

	for _, limit := range []string{"-1", "abc", "1.5"} {
		rec := env.do(t, http.MethodGet, "/api/recents/playlist?limit="+limit, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestExportRecentPlaylist(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true}, "file:///a.mkv", "file:///b.mkv")

	rec := env.do(t, http.MethodGet, "/api/recents/playlist.wpl", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.ms-wpl" {
		t.Errorf("Content-Type = %q", ct)
	}

	node, err := playlist.DecodeWPL(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("DecodeWPL: %v", err)
	}
	if diff := deep.Equal(node.MRLs(), []string{"file:///a.mkv", "file:///b.mkv"}); diff != nil {
		t.Error(diff)
	}
}

func TestMenuSocketReceivesUpdates(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true})
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/recents/ws", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	var msg menu.Message
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("initial frame: %v", err)
	}

	resp, err := http.Post(srv.URL+"/api/recents", "application/json", strings.NewReader(`{"mrl":"file:///new.mkv"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("update frame: %v", err)
	}
	if diff := deep.Equal(msg.Entries, []string{"file:///new.mkv"}); diff != nil {
		t.Error(diff)
	}
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("database is locked") }

func TestHealthAndReadiness(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true}, "a")

	rec := env.do(t, http.MethodGet, "/health", nil)
	var health HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != statusHealthy || health.RecentEntries != 1 || !health.RecentEnabled {
		t.Errorf("health = %+v", health)
	}

	if rec := env.do(t, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodHead, "/livez", nil); rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("HEAD livez = %d with %d body bytes", rec.Code, rec.Body.Len())
	}

	env.h.db = failingPinger{}
	if rec := env.do(t, http.MethodGet, "/readyz", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz with failing db = %d, want 503", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/health", nil)
	health = HealthResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != statusDegraded {
		t.Errorf("health status = %q, want degraded", health.Status)
	}
}

func TestGetVersion(t *testing.T) {
	env := setupTestEnv(t, recents.Config{Enabled: true})

	rec := env.do(t, http.MethodGet, "/version", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"?limit=0", 0, false},
		{"?limit=7", 7, false},
		{"?limit=-2", 0, true},
		{"?limit=x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := parseLimit(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("parseLimit(%q) = (%d, %v), want (%d, err=%v)", tt.query, got, err, tt.want, tt.wantErr)
			}
		})
	}
}
