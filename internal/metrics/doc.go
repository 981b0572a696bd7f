// Package metrics declares the Prometheus collectors for the recents server.
//
// All collectors are registered on the default registry through promauto
// and are exposed by the metrics server at /metrics when METRICS_ENABLED is
// true.
//
// # Recents
//
//   - recents_server_recents_admissions_total{result}: AddRecent outcomes
//     (added, moved, filtered, disabled)
//   - recents_server_recents_removals_total: entries removed one at a time
//   - recents_server_recents_clears_total: clears that emptied a non-empty list
//   - recents_server_recents_entries: current list length
//   - recents_server_recents_persist_errors_total: failed settings writes
//
// # Menu and shell
//
//   - recents_server_menu_clients: connected menu websocket clients
//   - recents_server_menu_broadcasts_total: list updates pushed to clients
//   - recents_server_menu_dropped_clients_total: clients dropped on write failure
//   - recents_server_shell_notifications_total{status}: OS recent-document calls
//   - recents_server_playlist_materializations_total{status}
//
// # HTTP and database
//
// Request counters and latency histograms labelled by route template, and
// SQLite query counters and latency labelled by operation.
//
// Call InitializeMetrics once at startup so that every labelled series is
// exported from the first scrape.
package metrics
