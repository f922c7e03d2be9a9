// ABOUTME: Tests for image discovery
// ABOUTME: Validates extension filtering and directory resolution

package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"luna.jpg", "max.PNG", "notes.txt", "toby.webp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album.jpg"), 0700))

	images, err := Discover(dir)
	require.NoError(t, err)

	var names []string
	for _, img := range images {
		names = append(names, img.Name)
		assert.Equal(t, filepath.Join(dir, img.Name), img.Path)
		assert.Equal(t, int64(1), img.Size)
	}
	assert.Equal(t, []string{"luna.jpg", "max.PNG", "toby.webp"}, names)
}

func TestDiscover_MissingDir(t *testing.T) {
	images, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestIsImage(t *testing.T) {
	tests := map[string]bool{
		"a.jpg":  true,
		"a.JPEG": true,
		"a.gif":  true,
		"a.json": false,
		"noext":  false,
	}
	for path, want := range tests {
		assert.Equal(t, want, IsImage(path), path)
	}
}

func TestFindDir_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAWS_PHOTOS_PATH", dir)
	assert.Equal(t, dir, FindDir(""))
}

func TestFindDir_EnvMissingFallsBackToPictures(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "Pictures"), 0700))
	t.Setenv("PAWS_PHOTOS_PATH", filepath.Join(home, "missing"))

	assert.Equal(t, filepath.Join(home, "Pictures"), FindDir(home))
}

func TestFindDir_None(t *testing.T) {
	t.Setenv("PAWS_PHOTOS_PATH", "")
	assert.Equal(t, "", FindDir(t.TempDir()))
}
