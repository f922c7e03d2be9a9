// ABOUTME: Resolves backend media paths into absolute URLs
// ABOUTME: The backend returns paths like "storage/animal-photos/x.jpg"

package client

import "strings"

// PlaceholderImage is returned when no media path is available.
const PlaceholderImage = "/placeholder.svg"

// ResolveMediaURL builds an absolute URL for a backend media path.
// Absolute http(s) URLs are returned unchanged; an empty path yields fallback.
func ResolveMediaURL(origin, path, fallback string) string {
	if path == "" {
		return fallback
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	origin = strings.TrimRight(origin, "/")
	if strings.HasPrefix(path, "/") {
		return origin + path
	}
	return origin + "/" + path
}

// URL returns the photo's absolute URL, preferring image_url over photo_url.
func (p Photo) URL(origin string) string {
	path := p.ImageURL
	if path == "" {
		path = p.PhotoURL
	}
	return ResolveMediaURL(origin, path, PlaceholderImage)
}

// CoverURL returns the first photo's URL or the placeholder.
func (a Animal) CoverURL(origin string) string {
	if len(a.Photos) == 0 {
		return PlaceholderImage
	}
	return a.Photos[0].URL(origin)
}
