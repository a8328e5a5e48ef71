package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaKind selects the folder and the accepted file types of an upload.
type MediaKind string

const (
	KindThumbnail MediaKind = "thumbnail"
	KindVideo     MediaKind = "video"
)

var (
	ErrUnknownKind       = errors.New("kind must be thumbnail or video")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

var allowedExt = map[MediaKind]map[string]string{
	KindThumbnail: {
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
		".gif":  "image/gif",
	},
	KindVideo: {
		".mp4":  "video/mp4",
		".mov":  "video/quicktime",
		".avi":  "video/x-msvideo",
		".mkv":  "video/x-matroska",
		".webm": "video/webm",
	},
}

// MediaStore persists uploaded media and returns the opaque path stored on
// the video record.
type MediaStore interface {
	Save(ctx context.Context, kind MediaKind, filename string, r io.Reader, size int64, contentType string) (string, error)
	Ping(ctx context.Context) error
}

func ParseKind(s string) (MediaKind, error) {
	switch MediaKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindThumbnail:
		return KindThumbnail, nil
	case KindVideo:
		return KindVideo, nil
	}
	return "", ErrUnknownKind
}

func (k MediaKind) dir() string {
	if k == KindThumbnail {
		return "thumbnails"
	}
	return "videos"
}

// ObjectName builds "<kind dir>/<uuid><ext>" for filename. The client file
// name only contributes its extension.
func ObjectName(kind MediaKind, filename string) (string, error) {
	exts, ok := allowedExt[kind]
	if !ok {
		return "", ErrUnknownKind
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := exts[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return kind.dir() + "/" + uuid.New().String() + ext, nil
}

// ContentType returns the type for filename, falling back to the client
// supplied value and then to application/octet-stream.
func ContentType(kind MediaKind, filename, fallback string) string {
	if ct, ok := allowedExt[kind][strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	if fallback != "" {
		return fallback
	}
	return "application/octet-stream"
}
