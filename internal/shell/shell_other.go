//go:build !windows

package shell

// No recent-documents API is wired up outside Windows.
var platformAddToRecentDocs func(path string) error
