// Package logging is the leveled logger shared by the recents server and
// recentsctl.
//
// Messages are printf-style and prefixed with their level:
//   - DEBUG: list mutations, filter rejections, shell notifications
//   - INFO:  startup, configuration and shutdown
//   - WARN:  best-effort failures (persistence, websocket clients)
//   - ERROR: failures that need an operator
//
// The level comes from LOG_LEVEL (debug, info, warn, error) or DEBUG=true,
// read once on first use. SetLevel overrides it, which recentsctl does for -v.
package logging
