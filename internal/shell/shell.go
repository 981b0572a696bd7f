// Package shell tells the host operating system about recently played
// documents. On Windows played files show up in the taskbar jump list; on
// other platforms notifications are dropped.
package shell

import (
	"net/url"
	"path/filepath"
	"strings"

	"recents-server/internal/logging"
	"recents-server/internal/metrics"
)

// Shell forwards played MRLs that refer to local files to the OS.
type Shell struct {
	addToRecentDocs func(path string) error
}

// New returns the integration for the current platform.
func New() *Shell {
	return &Shell{addToRecentDocs: platformAddToRecentDocs}
}

// Supported reports whether notifications reach the OS on this platform.
func (s *Shell) Supported() bool {
	return s != nil && s.addToRecentDocs != nil
}

// NotifyRecentDocument registers mrl with the OS if it names a local file.
// Failures are logged and otherwise ignored.
func (s *Shell) NotifyRecentDocument(mrl string) {
	if !s.Supported() {
		return
	}

	path, ok := LocalPath(mrl)
	if !ok {
		metrics.ShellNotificationsTotal.WithLabelValues("skipped").Inc()
		return
	}

	if err := s.addToRecentDocs(path); err != nil {
		logging.Debug("Failed to add %s to OS recent documents: %v", path, err)
		metrics.ShellNotificationsTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.ShellNotificationsTotal.WithLabelValues("success").Inc()
}

// Nop discards notifications.
type Nop struct{}

// NotifyRecentDocument does nothing.
func (Nop) NotifyRecentDocument(string) {}

// LocalPath converts an MRL into a local filesystem path. Bare paths are
// returned unchanged; file:// URLs are decoded; anything else (network
// streams, discs, devices) has no local path.
func LocalPath(mrl string) (string, bool) {
	if mrl == "" {
		return "", false
	}
	if !strings.Contains(mrl, "://") {
		return mrl, true
	}

	u, err := url.Parse(mrl)
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return "", false
	}
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return "", false
	}

	p := u.Path
	if p == "" {
		return "", false
	}
	// file:///C:/dir/file -> C:/dir/file
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), true
}
