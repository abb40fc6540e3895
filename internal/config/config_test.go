package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "primes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
op: largest-factor
workers: 3
json: true
`)
	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, &File{Op: "largest-factor", Workers: 3, JSON: true}, f)
}

func TestLoadMissingDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	f, err := Load("")
	require.NoError(t, err)
	require.Equal(t, &File{}, f)
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{name: "bad yaml", content: "op: [", contains: "parsing config"},
		{name: "negative workers", content: "workers: -1", contains: "workers must not be negative"},
		{name: "unknown op", content: "op: sieve", contains: "unknown operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}
