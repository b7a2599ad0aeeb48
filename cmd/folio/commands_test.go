package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunListWork(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WORK_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	write := func(slug, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".mdx"), []byte(body), 0o644))
	}
	write("old", "---\ntitle: \"Old\"\npublishedAt: \"2020-01-01\"\nsummary: \"s\"\n---\n\nx\n")
	write("star", "---\ntitle: \"Star\"\npublishedAt: \"2019-01-01\"\nsummary: \"s\"\nfeatured: true\n---\n\nx\n")
	write("broken", "no metadata here")

	var out bytes.Buffer
	require.NoError(t, runList(&out, "work"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "SLUG"))
	assert.True(t, strings.HasPrefix(lines[1], "star"))
	assert.Contains(t, lines[1], "yes")
	assert.True(t, strings.HasPrefix(lines[2], "old"))
	assert.Contains(t, out.String(), "skipped 1 unreadable document(s)")
}

func TestRunListUnknownCollection(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runList(&out, "drafts"))
}

func TestRunImagesEmpty(t *testing.T) {
	t.Setenv("PUBLIC_DIR", t.TempDir())

	var out bytes.Buffer
	require.NoError(t, runImages(&out))
	assert.Equal(t, "PATH  CATEGORY  SIZE  DIMENSIONS", strings.TrimSpace(out.String()))
}
