// Package mediatypes classifies the MRLs that end up in the recently played
// list.
//
// The package is dependency-free so both the playlist builder and the HTTP
// handlers can import it without creating cycles.
//
// # MRL Types
//
//	mediatypes.FileTypeAudio    // Local or remote audio files (mp3, flac, ogg, etc.)
//	mediatypes.FileTypeVideo    // Video files (mp4, mkv, avi, etc.)
//	mediatypes.FileTypeImage    // Still images
//	mediatypes.FileTypePlaylist // Playlist files (wpl, m3u, xspf)
//	mediatypes.FileTypeDisc     // Optical media (dvd://, bluray://, cdda://, vcd://)
//	mediatypes.FileTypeStream   // Network streams with no recognizable extension
//	mediatypes.FileTypeOther    // Anything else
//
// Use ForMRL on a full MRL, or GetFileType on a lowercase extension:
//
//	switch mediatypes.ForMRL("file:///music/track.flac") {
//	case mediatypes.FileTypeAudio:
//	    // Show a note icon
//	}
//
// # MIME Types
//
// Use GetMimeType to get the MIME type for HTTP responses:
//
//	w.Header().Set("Content-Type", mediatypes.GetMimeType(".wpl"))
package mediatypes
