// Package recents maintains the most-recently-used list of media resource
// locators (MRLs) shown in the player's "Open Recent" menu.
//
// A List is bounded, de-duplicated and ordered most recent first. An
// optional case-insensitive regular expression keeps matching MRLs out of
// the list, both when they are played and when the persisted list is
// loaded. When the feature is disabled the list stays empty.
//
// The list reports to three collaborators:
//
//   - SettingsStore persists the whole list under SettingsKey after every
//     mutation. Writes are best-effort; failures are logged.
//   - MenuNotifier receives a snapshot after every mutation while the
//     list is enabled.
//   - ShellIntegration is told about every admitted MRL so the host OS can
//     track recent documents.
//
// A List is not safe for concurrent use. Callers confine it to one
// goroutine or guard it with a mutex.
package recents
