package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, slug, raw string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+Ext), []byte(raw), 0o644))
}

func slugs(items []Summary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Slug
	}
	return out
}

func TestListProjectsFeaturedFirst(t *testing.T) {
	s := setupTestStore(t)

	for _, in := range []Input{
		{Meta: Meta{Title: "First", PublishedAt: "2024-01-01", Summary: "s"}, Body: "b"},
		{Meta: Meta{Title: "Second", PublishedAt: "2024-03-01", Summary: "s"}, Body: "b"},
		{Meta: Meta{Title: "Third", PublishedAt: "2024-02-01", Summary: "s", Featured: true}, Body: "b"},
	} {
		_, err := s.Create(Work, in)
		require.NoError(t, err)
	}

	got, err := s.List(Work)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, slugs(got.Items))
	assert.True(t, got.Items[0].Featured)
	assert.Empty(t, got.Skipped)
}

func TestListOrderingInvariant(t *testing.T) {
	s := setupTestStore(t)
	dir := s.Dir(Work)

	writeDoc(t, dir, "a", "---\ntitle: \"A\"\npublishedAt: \"2023-05-01\"\nsummary: \"\"\nfeatured: true\n---\n")
	writeDoc(t, dir, "b", "---\ntitle: \"B\"\npublishedAt: \"2024-05-01\"\nsummary: \"\"\n---\n")
	writeDoc(t, dir, "c", "---\ntitle: \"C\"\npublishedAt: \"not a date\"\nsummary: \"\"\nfeatured: true\n---\n")
	writeDoc(t, dir, "d", "---\ntitle: \"D\"\nsummary: \"\"\n---\n")
	writeDoc(t, dir, "e", "---\ntitle: \"E\"\npublishedAt: \"2024-06-01T10:00:00Z\"\nsummary: \"\"\nfeatured: true\n---\n")

	got, err := s.List(Work)
	require.NoError(t, err)
	require.Len(t, got.Items, 5)
	assert.Equal(t, []string{"e", "a", "c", "b", "d"}, slugs(got.Items))

	seenPlain := false
	for i, it := range got.Items {
		if !it.Featured {
			seenPlain = true
		} else {
			assert.False(t, seenPlain, "featured %q after non-featured", it.Slug)
		}
		if i > 0 && got.Items[i-1].Featured == it.Featured {
			prev := PublishedTime(got.Items[i-1].PublishedAt)
			assert.False(t, PublishedTime(it.PublishedAt).After(prev), "%q out of date order", it.Slug)
		}
	}
}

func TestListBlogNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	dir := s.Dir(Blog)

	writeDoc(t, dir, "old", "---\ntitle: \"Old\"\npublishedAt: \"2020-01-01\"\nsummary: \"x\"\n---\n\nbody")
	writeDoc(t, dir, "new", "---\ntitle: \"New\"\npublishedAt: \"2025-01-01\"\nsummary: \"x\"\nfeatured: true\n---\n\nbody")

	got, err := s.List(Blog)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, slugs(got.Items))
	assert.False(t, got.Items[0].Featured, "blog summaries carry no featured flag")
}

func TestListDefaultsAndSkips(t *testing.T) {
	s := setupTestStore(t)
	dir := s.Dir(Blog)

	writeDoc(t, dir, "bare", "---\n---\n\nbody only")
	writeDoc(t, dir, "broken", "no metadata here")
	writeDoc(t, dir, "badyaml", "---\ntitle: [unclosed\n---\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.mdx"), 0o755))

	got, err := s.List(Blog)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, Summary{Slug: "bare", Title: "Untitled"}, got.Items[0])
	assert.ElementsMatch(t, []string{"broken", "badyaml"}, got.Skipped)
}

func TestListMissingDirectory(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.List(Blog)
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestListIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := s.Create(Blog, blogInput(title))
		require.NoError(t, err)
	}

	first, err := s.List(Blog)
	require.NoError(t, err)
	second, err := s.List(Blog)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, slugs(first.Items))
}

func TestPublishedTime(t *testing.T) {
	assert.True(t, PublishedTime("").IsZero())
	assert.True(t, PublishedTime("yesterday").IsZero())
	assert.Equal(t, 2024, PublishedTime("2024-02-01").Year())
	assert.Equal(t, 10, PublishedTime("2024-02-01T10:30:00Z").Hour())
	assert.Equal(t, 10, PublishedTime("2024-02-01T10:30:00").Hour())
}
