// Package playlist turns the recently played list into playlist nodes.
//
// A Tree holds a root container. Materialize appends a read-only
// "Recently Played" node under that root, filled with the first entries of
// the recents list in order. When the tree has no root the call fails with
// ErrNoRoot and nothing is created.
//
// Nodes can be written out as WPL (Windows Playlist), the XML format used by
// Windows Media Player, and WPL files can be read back as an ordered list of
// media sources for importing into the recents list.
package playlist
