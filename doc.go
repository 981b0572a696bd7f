// Package main provides the entry point for the recents server.
//
// The server keeps the "recently played" list of a media player: a short,
// de-duplicated, most-recent-first list of media resource locators (MRLs).
// The player reports each item it opens, menu widgets follow the list over a
// websocket, and the list survives restarts in a SQLite settings database.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads .env and environment variables, validates directories
//  2. Database Initialization: Opens the SQLite settings database in WAL mode
//  3. Recents Initialization: Loads the persisted list, applies the filter and capacity
//  4. HTTP Server Setup: Configures routes, middleware, and starts servers
//  5. Graceful Shutdown: Handles SIGINT/SIGTERM, disconnects menu clients, stops servers
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - /api/recents: list, add, clear and remove entries
//     - /api/recents/playlist: "Recently Played" playlist as JSON or WPL
//     - /api/recents/ws: menu websocket feed
//     - /health, /livez, /readyz, /version
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//
// # Environment Variables
//
//   - RECENTPLAY: Enable the recently played list (default: true)
//   - RECENTPLAY_FILTER: Case-insensitive regex; matching MRLs are never recorded
//   - RECENTS_CAPACITY: Maximum number of entries (default: 10)
//   - DATABASE_DIR: Directory for the SQLite database (default: /database)
//   - PORT: Main HTTP server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable metrics server (default: true)
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//   - LOG_HEALTH_CHECKS: Include health probes in the request log (default: true)
//
// # Related Packages
//
//   - [recents-server/internal/recents]: The recently played list
//   - [recents-server/internal/database]: SQLite settings store
//   - [recents-server/internal/menu]: Websocket menu hub
//   - [recents-server/internal/playlist]: Playlist materialization and WPL files
//   - [recents-server/internal/handlers]: HTTP request handlers
//   - [recents-server/internal/startup]: Configuration and initialization
//
// The recentsctl command in cmd/recentsctl edits the same database offline.
package main
