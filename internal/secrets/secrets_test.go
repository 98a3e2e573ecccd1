// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "registry-mailto", "  librarian@example.org  \n")
				writeFile(t, dir, "registry-rate", "0.5")
				return dir
			},
			want: map[string]string{
				"registry-mailto": "librarian@example.org",
				"registry-rate":   "0.5",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "registry-mailto", "me@example.org")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"registry-mailto": "me@example.org",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "registry-mailto", "real@example.org")
				return dir
			},
			want: map[string]string{
				"registry-mailto": "real@example.org",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "registry-mailto", "sub@example.org")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"registry-mailto": "sub@example.org",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir, nil)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "registry-mailto", "me@example.org")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	var log bytes.Buffer
	got, err := Load(dir, &log)
	require.NoError(t, err)
	if os.Geteuid() != 0 {
		assert.Contains(t, log.String(), "could not read secret bad-key")
	}
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "me@example.org", got["registry-mailto"])
	if os.Geteuid() != 0 {
		_, hasBad := got["bad-key"]
		assert.False(t, hasBad, "unreadable file should not appear in result")
	}
}

func TestLoadValidatesMailto(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
		warn  string
	}{
		{"bare address", "librarian@example.org\n", "librarian@example.org", ""},
		{"not an address", "librarian", "", "ignoring secret registry-mailto"},
		{"display name", "Lib <librarian@example.org>", "", "want a bare address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, MailtoKey, tt.value)
			writeFile(t, dir, "registry-rate", "2")

			var log bytes.Buffer
			got, err := Load(dir, &log)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got[MailtoKey])
			assert.Equal(t, "2", got["registry-rate"], "other keys are unaffected")
			if tt.warn == "" {
				assert.Empty(t, log.String())
			} else {
				assert.Contains(t, log.String(), tt.warn)
				_, ok := got[MailtoKey]
				assert.False(t, ok)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	s := map[string]string{"registry-mailto": "file@example.org"}
	assert.Equal(t, "flag@example.org", Lookup(s, "registry-mailto", "flag@example.org"))
	assert.Equal(t, "file@example.org", Lookup(s, "registry-mailto", ""))
	assert.Empty(t, Lookup(s, "missing", ""))
	assert.Empty(t, Lookup(nil, "registry-mailto", ""))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
