// ABOUTME: Discovers image files that can be uploaded as animal photos
// ABOUTME: Looks in PAWS_PHOTOS_PATH, then the user's Pictures directory

package gallery

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions lists the image types the photo endpoints accept.
var Extensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// Image is a discovered image file
type Image struct {
	Name string
	Path string
	Size int64
}

// IsImage reports whether path has an accepted image extension
func IsImage(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Discover lists the images directly inside dir, sorted by name.
// A missing directory yields an empty list.
func Discover(dir string) ([]Image, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []Image{}, nil
	}
	if err != nil {
		return nil, err
	}

	images := []Image{}
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		images = append(images, Image{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: size,
		})
	}
	return images, nil
}

// FindDir locates the directory to browse. Checks in order:
// 1. PAWS_PHOTOS_PATH environment variable
// 2. Pictures under home
func FindDir(home string) string {
	if envPath := os.Getenv("PAWS_PHOTOS_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	if home == "" {
		return ""
	}
	pictures := filepath.Join(home, "Pictures")
	if _, err := os.Stat(pictures); err == nil {
		return pictures
	}
	return ""
}
