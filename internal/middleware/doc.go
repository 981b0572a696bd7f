// Package middleware provides HTTP middleware for the recents server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics labelled by mux route template
//
// Both wrappers keep http.Hijacker working so the menu websocket can be
// upgraded behind them.
package middleware
