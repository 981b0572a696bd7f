// Package filesystem reads files that may live on network mounts.
//
// Playlists imported into the recents list often sit on an NFS share next to
// the media they reference. NFS clients can return ESTALE for a file handle
// that went stale after a server-side rename or export change; the operation
// usually succeeds when repeated. The helpers here retry such errors with
// capped exponential backoff and pass every other error straight through.
//
// Example:
//
//	data, err := filesystem.ReadFileWithRetry(path, filesystem.DefaultRetryConfig())
//	if err != nil {
//	    return err
//	}
//
// Retries and final failures are recorded in the
// recents_server_filesystem_retries_total metric, labeled by operation.
package filesystem
