// Package startup handles configuration loading and startup/shutdown
// logging for the recents server.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// A .env file in the working directory is read first when present; real
// environment variables win over it.
//
//   - RECENTPLAY: Keep a recently played list (default: true)
//   - RECENTPLAY_FILTER: Case-insensitive regex; matching MRLs are never
//     recorded (default: empty, no filter)
//   - RECENTS_CAPACITY: Maximum number of entries (default: 10)
//   - DATABASE_DIR: Directory holding recents.db (default: /database)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Directory Setup
//
// The database directory is created if missing and must be writable;
// LoadConfig fails otherwise.
package startup
