// ABOUTME: Tests for the session slot store drivers
// ABOUTME: Runs the same contract against file, sqlite and memory drivers

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drivers(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		"file":   NewFile(filepath.Join(t.TempDir(), "session")),
		"sqlite": sq,
		"memory": NewMemory(),
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(KeyToken)
			require.NoError(t, err)
			assert.False(t, ok, "fresh store should not hold a token")

			require.NoError(t, s.Set(KeyToken, "abc"))
			v, ok, err := s.Get(KeyToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "abc", v)

			require.NoError(t, s.Set(KeyToken, "def"))
			v, _, _ = s.Get(KeyToken)
			assert.Equal(t, "def", v, "Set should overwrite")

			require.NoError(t, s.Delete(KeyToken))
			_, ok, err = s.Get(KeyToken)
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, s.Delete(KeyRole), "deleting a missing key is not an error")
		})
	}
}

func TestStoreContract_EmptyValueIsPresent(t *testing.T) {
	for name, s := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(KeyUser, ""))
			v, ok, err := s.Get(KeyUser)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestFile_WritesOwnerOnlyFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "session")
	f := NewFile(dir)

	require.NoError(t, f.Set(KeyToken, "secret"))

	info, err := os.Stat(filepath.Join(dir, KeyToken))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyRole, "Admin"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(KeyRole)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Admin", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr error
	}{
		{name: "bare path", url: dir, want: "*store.File"},
		{name: "file scheme", url: "file://" + dir, want: "*store.File"},
		{name: "sqlite scheme", url: "sqlite://" + filepath.Join(dir, "s.db"), want: "*store.SQLite"},
		{name: "memory scheme", url: "memory://", want: "*store.Memory"},
		{name: "unknown scheme", url: "etcd://localhost", wantErr: ErrUnsupportedDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.url)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.Equal(t, tt.want, typeName(s))
		})
	}
}

func TestOpen_EmptyURL(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestFileURLPath(t *testing.T) {
	s, err := Open("file:///tmp/paws-session")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/paws-session", s.(*File).Dir())
}

func typeName(s Store) string {
	switch s.(type) {
	case *File:
		return "*store.File"
	case *SQLite:
		return "*store.SQLite"
	case *Memory:
		return "*store.Memory"
	case *Redis:
		return "*store.Redis"
	}
	return "unknown"
}
