package storage

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetName(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)

	assert.Equal(t, "T1_20250314_150926.webm", AssetName("T1", "clip.webm", now))
	assert.Equal(t, "T1_20250314_150926.mp4", AssetName("T1", "noext", now))
}

func TestSaveAndPath(t *testing.T) {
	media, err := NewMediaStore(t.TempDir())
	require.NoError(t, err)

	written, err := media.Save("T1_20250314_150926.mp4", strings.NewReader("video-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), written)

	path, err := media.Path("T1_20250314_150926.mp4")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))
}

func TestPathRejectsEscapes(t *testing.T) {
	media, err := NewMediaStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../../etc/passwd", "a/b.mp4", ".hidden"} {
		_, err = media.Path(name)
		assert.ErrorIs(t, err, ErrInvalidFilename, "name %q", name)
	}
}

func TestPathMissingAsset(t *testing.T) {
	media, err := NewMediaStore(t.TempDir())
	require.NoError(t, err)

	_, err = media.Path("nope.mp4")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestRemoveIsBestEffort(t *testing.T) {
	media, err := NewMediaStore(t.TempDir())
	require.NoError(t, err)

	_, err = media.Save("gone.mp4", strings.NewReader("x"))
	require.NoError(t, err)

	media.Remove("gone.mp4")
	_, err = media.Path("gone.mp4")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	// Removing a missing asset is silent.
	media.Remove("gone.mp4")
}
