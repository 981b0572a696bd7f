package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recents_server_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recents_server_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recents_server_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recents_server_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recents_server_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recents_server_db_connections_open",
			Help: "Number of open database connections",
		},
	)
)

// Recents list metrics
var (
	RecentsAdmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recents_server_recents_admissions_total",
			Help: "AddRecent calls by outcome",
		},
		[]string{"result"},
	)

	RecentsRemovalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recents_server_recents_removals_total",
			Help: "Entries removed individually from the recents list",
		},
	)

	RecentsClearsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recents_server_recents_clears_total",
			Help: "Number of times a non-empty recents list was cleared",
		},
	)

	RecentsEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recents_server_recents_entries",
			Help: "Current number of entries in the recents list",
		},
	)

	RecentsPersistErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recents_server_recents_persist_errors_total",
			Help: "Failed writes of the recents list to the settings store",
		},
	)
)

// Menu, shell and playlist metrics
var (
	MenuClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recents_server_menu_clients",
			Help: "Connected menu websocket clients",
		},
	)

	MenuBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recents_server_menu_broadcasts_total",
			Help: "Recents updates broadcast to menu clients",
		},
	)

	MenuDroppedClientsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recents_server_menu_dropped_clients_total",
			Help: "Menu clients disconnected because they could not keep up",
		},
	)

	ShellNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recents_server_shell_notifications_total",
			Help: "Recent-document notifications sent to the host OS",
		},
		[]string{"status"},
	)

	PlaylistMaterializationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recents_server_playlist_materializations_total",
			Help: "Recently Played playlist nodes built from the recents list",
		},
		[]string{"status"},
	)

	FilesystemRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recents_server_filesystem_retries_total",
			Help: "NFS stale file handle retries by operation and outcome",
		},
		[]string{"operation", "result"},
	)
)
