// Package handlers provides HTTP request handlers for the recents API.
//
// It includes handlers for:
//   - Reading, adding to, pruning and clearing the recently played list
//   - Turning the list on and off at runtime
//   - Materializing the list as a "Recently Played" playlist (JSON or WPL)
//   - The menu websocket feed
//   - Health checks and build information
//
// A recents.List is not safe for concurrent use, so every handler that
// touches it holds Handlers.mu for the duration of the call.
package handlers
