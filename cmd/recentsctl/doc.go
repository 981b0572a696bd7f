// Command recentsctl inspects and edits the recently played list stored in
// the recents server database.
//
// Usage:
//
//	recentsctl [flags] <command> [args]
//
// Commands:
//
//	list              Print the list, most recent first.
//	add <mrl>...      Record MRLs as played, in the order given.
//	remove <mrl>      Forget a single MRL.
//	clear             Empty the list. Asks for confirmation on a terminal
//	                  unless -y is given.
//	export [limit]    Write the list as a WPL playlist to stdout.
//	import <file>     Record every media source of a WPL playlist. The first
//	                  entry in the file ends up most recent.
//
// Flags:
//
//	-y, --yes      Do not ask for confirmation
//	-v, --verbose  Enable debug logging
//
// Environment:
//
//	DATABASE_DIR      - Path to database directory (default: /database)
//	RECENTPLAY        - When false, add and import do nothing
//	RECENTPLAY_FILTER - MRLs matching this case-insensitive regex are ignored
//	RECENTS_CAPACITY  - Maximum number of entries (default: 10)
//
// The server keeps its copy of the list in memory; stop it before editing
// the database with this command or the server will overwrite the changes
// on its next update.
package main
