// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ContactKey, "  ops@example.org  \n")
				writeFile(t, dir, "other", "x")
				return dir
			},
			want: Secrets{ContactKey: "ops@example.org", "other": "x"},
		},
		{
			name: "missing directory yields empty set",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty and whitespace-only files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ContactKey, "ops@example.org")
				writeFile(t, dir, "empty", "")
				writeFile(t, dir, "blank", "   \n\t  ")
				return dir
			},
			want: Secrets{ContactKey: "ops@example.org"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				writeFile(t, dir, ContactKey, "ops@example.org")
				return dir
			},
			want: Secrets{ContactKey: "ops@example.org"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	dir := t.TempDir()
	writeFile(t, dir, ContactKey, "ops@example.org")

	badPath := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.org", got[ContactKey])
	assert.NotContains(t, got, "bad")
}

func TestGetPrefersEnvironment(t *testing.T) {
	s := Secrets{ContactKey: "file@example.org"}
	assert.Equal(t, "file@example.org", s.Get(ContactKey))

	t.Setenv("WIKI_WATCH_WIKIMEDIA_CONTACT", "env@example.org")
	assert.Equal(t, "env@example.org", s.Get(ContactKey))

	assert.Empty(t, s.Get("unknown"))
}

func TestKeys(t *testing.T) {
	s := Secrets{"a": "1", "b": "2"}
	assert.ElementsMatch(t, []string{"a", "b"}, s.Keys())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
