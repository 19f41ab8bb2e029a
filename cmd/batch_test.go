package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "descriptions.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDescriptions(t *testing.T) {
	path := writeInput(t, `
# warehouse A
Shuttle ASRS with closed-top combustible containers

Mini-load system with noncombustible bins
  # indented comment-looking line is still a comment after trimming
Top-loading robot system
`)

	got, err := readDescriptions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Shuttle ASRS with closed-top combustible containers",
		"Mini-load system with noncombustible bins",
		"Top-loading robot system",
	}, got)
}

func TestReadDescriptions_EmptyFile(t *testing.T) {
	path := writeInput(t, "\n\n# only comments\n")

	got, err := readDescriptions(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadDescriptions_MissingFile(t *testing.T) {
	_, err := readDescriptions(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}
