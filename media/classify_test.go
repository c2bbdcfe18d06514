package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyImages(t *testing.T) {
	for mime, ext := range map[string]string{
		"image/jpeg": "jpg",
		"image/png":  "png",
		"image/gif":  "gif",
		"image/webp": "webp",
	} {
		kind, got, err := Classify(mime)
		require.NoError(t, err, mime)
		assert.Equal(t, KindImage, kind, mime)
		assert.Equal(t, ext, got, mime)
	}
}

func TestClassifyVideos(t *testing.T) {
	for mime, ext := range map[string]string{
		"video/mp4":        "mp4",
		"video/quicktime":  "mov",
		"video/webm":       "webm",
		"video/x-matroska": "mkv",
	} {
		kind, got, err := Classify(mime)
		require.NoError(t, err, mime)
		assert.Equal(t, KindVideo, kind, mime)
		assert.Equal(t, ext, got, mime)
	}
}

func TestClassifyUnrecognized(t *testing.T) {
	for _, mime := range []string{"application/pdf", "text/plain", "audio/mpeg", ""} {
		_, _, err := Classify(mime)
		assert.Error(t, err, mime)
	}
}

func TestStoragePath(t *testing.T) {
	img := StoragePath(KindImage, "jpg")
	assert.True(t, strings.HasPrefix(img, "images/"))
	assert.True(t, strings.HasSuffix(img, ".jpg"))

	vid := StoragePath(KindVideo, "mp4")
	assert.True(t, strings.HasPrefix(vid, "videos/"))
	assert.True(t, strings.HasSuffix(vid, ".mp4"))

	// Paths are unique per call
	assert.NotEqual(t, StoragePath(KindImage, "png"), StoragePath(KindImage, "png"))
}

func TestKindFromPathRoundTrip(t *testing.T) {
	assert.Equal(t, KindImage, KindFromPath(StoragePath(KindImage, "jpg")))
	assert.Equal(t, KindVideo, KindFromPath(StoragePath(KindVideo, "mp4")))
}
