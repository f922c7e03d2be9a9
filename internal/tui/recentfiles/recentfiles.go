// ABOUTME: Remembers recently uploaded photo paths for the TUI photo picker
// ABOUTME: Persists the list as JSON in the config directory, newest first

package recentfiles

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// MaxRecentFiles is the maximum number of recent photos to keep
const MaxRecentFiles = 5

// FileName is the JSON file kept in the config directory.
const FileName = "recent_photos.json"

// Entry is one remembered photo
type Entry struct {
	Path   string    `json:"path"`
	UsedAt time.Time `json:"used_at"`
}

// RecentFiles manages the list of recently uploaded photos
type RecentFiles struct {
	configDir string
	entries   []Entry
	loaded    bool
	now       func() time.Time
}

// New creates a manager storing its list under configDir
func New(configDir string) *RecentFiles {
	return &RecentFiles{configDir: configDir, now: time.Now}
}

func (rf *RecentFiles) path() string {
	return filepath.Join(rf.configDir, FileName)
}

// Load reads the list from disk, dropping files that no longer exist.
// A missing or unreadable list starts empty.
func (rf *RecentFiles) Load() ([]Entry, error) {
	rf.loaded = true
	rf.entries = []Entry{}

	data, err := os.ReadFile(rf.path())
	if errors.Is(err, os.ErrNotExist) {
		return rf.entries, nil
	}
	if err != nil {
		return rf.entries, err
	}

	var stored []Entry
	if err := json.Unmarshal(data, &stored); err != nil {
		return rf.entries, nil
	}
	for _, e := range stored {
		if _, err := os.Stat(e.Path); err == nil {
			rf.entries = append(rf.entries, e)
		}
	}
	return rf.entries, nil
}

// Add moves path to the front of the list and saves it
func (rf *RecentFiles) Add(path string) error {
	if !rf.loaded {
		_, _ = rf.Load()
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	next := []Entry{{Path: path, UsedAt: rf.now()}}
	for _, e := range rf.entries {
		if e.Path != path {
			next = append(next, e)
		}
	}
	if len(next) > MaxRecentFiles {
		next = next[:MaxRecentFiles]
	}
	rf.entries = next
	return rf.save()
}

// save writes through a temp file so a crash never leaves half a list
func (rf *RecentFiles) save() error {
	if err := os.MkdirAll(rf.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rf.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := rf.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, rf.path())
}

// Paths returns the remembered paths, newest first
func (rf *RecentFiles) Paths() []string {
	if !rf.loaded {
		_, _ = rf.Load()
	}
	paths := make([]string, len(rf.entries))
	for i, e := range rf.entries {
		paths[i] = e.Path
	}
	return paths
}
