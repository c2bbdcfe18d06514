package media

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind is the media class of an uploaded file.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

// MIME subtype -> file extension, per class.
var imageExtensions = map[string]string{
	"jpeg": "jpg",
	"jpg":  "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
}

var videoExtensions = map[string]string{
	"mp4":        "mp4",
	"mpeg":       "mpeg",
	"quicktime":  "mov",
	"webm":       "webm",
	"x-matroska": "mkv",
}

// Classify maps a MIME type to a media class and canonical extension.
// An unrecognized type is an unrecoverable error: the caller aborts the
// whole operation rather than committing a partial upload.
func Classify(mimeType string) (Kind, string, error) {
	subtype := mimeType
	if i := strings.Index(mimeType, "/"); i >= 0 {
		subtype = mimeType[i+1:]
	}
	subtype = strings.ToLower(subtype)

	if ext, ok := imageExtensions[subtype]; ok {
		return KindImage, ext, nil
	}
	if ext, ok := videoExtensions[subtype]; ok {
		return KindVideo, ext, nil
	}
	return 0, "", fmt.Errorf("invalid file type: %s", mimeType)
}

// StoragePath builds the storage path for a classified file.
func StoragePath(kind Kind, ext string) string {
	if kind == KindVideo {
		return fmt.Sprintf("videos/%s.%s", uuid.NewString(), ext)
	}
	return fmt.Sprintf("images/%s.%s", uuid.NewString(), ext)
}

// KindFromPath recovers the media kind from a storage path's prefix.
// Deletion needs it: the host tracks images and videos separately.
func KindFromPath(path string) Kind {
	if strings.HasPrefix(path, "videos/") {
		return KindVideo
	}
	return KindImage
}
