package content

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/fault"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	return NewStore(filepath.Join(root, "blog"), filepath.Join(root, "work"), zerolog.Nop())
}

func blogInput(title string) Input {
	return Input{
		Meta: Meta{Title: title, PublishedAt: "2024-01-01", Summary: "hi"},
		Body: "content",
	}
}

func TestCreateReturnsSlug(t *testing.T) {
	s := setupTestStore(t)

	slug, err := s.Create(Blog, blogInput("My First Post"))
	require.NoError(t, err)
	assert.Equal(t, "my-first-post", slug)

	_, err = os.Stat(filepath.Join(s.Dir(Blog), "my-first-post.mdx"))
	assert.NoError(t, err)
}

func TestCreateConflictOnSameSlug(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Create(Blog, blogInput("My First Post"))
	require.NoError(t, err)

	_, err = s.Create(Blog, blogInput("My First Post!!"))
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindConflict), "want conflict, got %v", err)
}

func TestCreateSameSlugInOtherCollection(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Create(Blog, blogInput("Shared"))
	require.NoError(t, err)
	_, err = s.Create(Work, blogInput("Shared"))
	assert.NoError(t, err)
}

func TestCreateMissingFields(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		name string
		in   Input
	}{
		{"no title", Input{Meta: Meta{PublishedAt: "2024-01-01", Summary: "s"}, Body: "b"}},
		{"no date", Input{Meta: Meta{Title: "T", Summary: "s"}, Body: "b"}},
		{"no summary", Input{Meta: Meta{Title: "T", PublishedAt: "2024-01-01"}, Body: "b"}},
		{"blank body", Input{Meta: Meta{Title: "T", PublishedAt: "2024-01-01", Summary: "s"}, Body: "  \n "}},
		{"title without slug characters", Input{Meta: Meta{Title: "!!!", PublishedAt: "2024-01-01", Summary: "s"}, Body: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(Blog, tt.in)
			require.Error(t, err)
			assert.Equal(t, fault.KindValidation, fault.KindOf(err))
		})
	}

	entries, _ := os.ReadDir(s.Dir(Blog))
	assert.Empty(t, entries, "validation failures must not write files")
}

func TestCreateConcurrentSameSlug(t *testing.T) {
	s := setupTestStore(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(Blog, blogInput("Race"))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, fault.Is(err, fault.KindConflict), "unexpected error %v", err)
	}
	assert.Equal(t, 1, created)
}

func TestCreateGetRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	in := Input{
		Meta: Meta{
			Title:       `Quotes "and" \ backslashes: yes`,
			PublishedAt: "2024-03-01",
			Summary:     "A summary with: colons # and hashes",
			Image:       "/images/projects/cover.jpg",
			Images:      []string{"/images/a.png", "/images/b.webp"},
			Tag:         "Go",
			Featured:    true,
		},
		Body: "\n\n# Heading\n\nBody text.\n\n",
	}
	slug, err := s.Create(Work, in)
	require.NoError(t, err)
	assert.Equal(t, "quotes-and-backslashes-yes", slug)

	doc, err := s.Get(Work, slug)
	require.NoError(t, err)
	assert.Equal(t, slug, doc.Slug)
	assert.Equal(t, in.Meta, doc.Meta)
	assert.Equal(t, "# Heading\n\nBody text.", doc.Body)
}

func TestBlogDropsProjectFields(t *testing.T) {
	s := setupTestStore(t)

	in := blogInput("Post")
	in.Tag = "ignored"
	in.Featured = true
	in.Images = []string{"/images/x.png"}
	slug, err := s.Create(Blog, in)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(s.Dir(Blog), slug+Ext))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tag:")
	assert.NotContains(t, string(raw), "featured")
	assert.NotContains(t, string(raw), "images")
}

func TestGetNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get(Blog, "nonexistent")
	assert.True(t, fault.Is(err, fault.KindNotFound))
}

func TestUpdateKeepsSlug(t *testing.T) {
	s := setupTestStore(t)

	slug, err := s.Create(Blog, blogInput("Original Title"))
	require.NoError(t, err)

	upd := blogInput("A Completely New Title")
	upd.Body = "rewritten"
	require.NoError(t, s.Update(Blog, slug, upd))

	doc, err := s.Get(Blog, slug)
	require.NoError(t, err)
	assert.Equal(t, "original-title", doc.Slug)
	assert.Equal(t, "A Completely New Title", doc.Title)
	assert.Equal(t, "rewritten", doc.Body)

	_, err = s.Get(Blog, Slugify(upd.Title))
	assert.True(t, fault.Is(err, fault.KindNotFound), "update must not create a file for the new title")
}

func TestUpdateNotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.Update(Blog, "missing", blogInput("Missing"))
	assert.True(t, fault.Is(err, fault.KindNotFound))
}

func TestUpdateValidatesBeforeLookup(t *testing.T) {
	s := setupTestStore(t)

	err := s.Update(Blog, "missing", Input{})
	assert.True(t, fault.Is(err, fault.KindValidation))
}

func TestDeleteTwice(t *testing.T) {
	s := setupTestStore(t)

	slug, err := s.Create(Blog, blogInput("Short Lived"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(Blog, slug))
	_, err = os.Stat(filepath.Join(s.Dir(Blog), slug+Ext))
	assert.True(t, os.IsNotExist(err))

	err = s.Delete(Blog, slug)
	assert.True(t, fault.Is(err, fault.KindNotFound))
}

func TestTraversalSlugIsNotFound(t *testing.T) {
	s := setupTestStore(t)

	outside := filepath.Join(filepath.Dir(s.Dir(Blog)), "secret.mdx")
	require.NoError(t, os.WriteFile(outside, []byte("---\ntitle: \"x\"\n---\n"), 0o644))

	for _, slug := range []string{"../secret", "..", "a/b", `a\b`, ""} {
		err := s.Delete(Blog, slug)
		assert.True(t, fault.Is(err, fault.KindNotFound), "slug %q", slug)
	}
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
