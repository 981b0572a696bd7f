// Package database provides SQLite persistence for the recents server.
//
// It stores application settings as key/value rows. String lists, such as
// the recently played MRLs, are stored as JSON arrays so that their order
// survives a round trip. Database satisfies recents.SettingsStore.
//
// The database uses WAL mode and a busy timeout so the server and
// recentsctl can open the same file.
package database
