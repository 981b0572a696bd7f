package mediatypes

import (
	"net/url"
	"path"
	"strings"
)

// FileType represents the kind of media an MRL points at.
type FileType string

const (
	// FileTypeAudio represents an audio file.
	FileTypeAudio FileType = "audio"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypePlaylist represents a playlist file.
	FileTypePlaylist FileType = "playlist"
	// FileTypeDisc represents optical media.
	FileTypeDisc FileType = "disc"
	// FileTypeStream represents a network stream without a known extension.
	FileTypeStream FileType = "stream"
	// FileTypeOther represents an unknown or unsupported MRL.
	FileTypeOther FileType = "other"
)

// AudioExtensions maps file extensions to whether they are audio formats.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".opus": true,
	".m4a":  true,
	".aac":  true,
	".wav":  true,
	".wma":  true,
}

// VideoExtensions maps file extensions to whether they are video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
	".ts":   true,
}

// ImageExtensions maps file extensions to whether they are image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// PlaylistExtensions maps file extensions to whether they are playlist formats.
var PlaylistExtensions = map[string]bool{
	".wpl":  true,
	".m3u":  true,
	".m3u8": true,
	".xspf": true,
	".pls":  true,
}

// discSchemes are MRL access modules for optical media.
var discSchemes = map[string]bool{
	"dvd":       true,
	"dvdsimple": true,
	"bluray":    true,
	"cdda":      true,
	"vcd":       true,
}

// streamSchemes are network access modules.
var streamSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"rtsp":  true,
	"rtmp":  true,
	"rtp":   true,
	"udp":   true,
	"mms":   true,
	"ftp":   true,
	"smb":   true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Audio
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".wav":  "audio/wav",
	".wma":  "audio/x-ms-wma",

	// Videos
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",

	// Images
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",

	// Playlists
	".wpl":  "application/vnd.ms-wpl",
	".m3u":  "audio/x-mpegurl",
	".m3u8": "application/vnd.apple.mpegurl",
	".xspf": "application/xspf+xml",
	".pls":  "audio/x-scpls",
}

// GetFileType returns the FileType for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".mp3").
// Returns FileTypeOther if the extension is not recognized.
func GetFileType(ext string) FileType {
	switch {
	case AudioExtensions[ext]:
		return FileTypeAudio
	case VideoExtensions[ext]:
		return FileTypeVideo
	case ImageExtensions[ext]:
		return FileTypeImage
	case PlaylistExtensions[ext]:
		return FileTypePlaylist
	}
	return FileTypeOther
}

// GetMimeType returns the MIME type for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".mp3").
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// ForMRL classifies an MRL by its access scheme and path extension. Disc
// schemes win over the extension; network MRLs with an unknown extension are
// streams.
func ForMRL(mrl string) FileType {
	scheme, p := "", mrl
	if i := strings.Index(mrl, "://"); i > 0 {
		scheme = strings.ToLower(mrl[:i])
		if u, err := url.Parse(mrl); err == nil {
			p = u.Path
		} else {
			p = mrl[i+3:]
		}
	}

	if discSchemes[scheme] {
		return FileTypeDisc
	}

	p = strings.ReplaceAll(p, "\\", "/")
	if t := GetFileType(strings.ToLower(path.Ext(p))); t != FileTypeOther {
		return t
	}

	if streamSchemes[scheme] {
		return FileTypeStream
	}
	return FileTypeOther
}

// IsMediaFile returns true if the extension represents a playable file.
func IsMediaFile(ext string) bool {
	switch GetFileType(ext) {
	case FileTypeAudio, FileTypeVideo, FileTypeImage:
		return true
	}
	return false
}
