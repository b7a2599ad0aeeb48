package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/fault"
)

// Summary is the catalog view of one document.
type Summary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	Summary     string `json:"summary"`
	Image       string `json:"image"`
	Tag         string `json:"tag,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
}

// Listing is the sorted catalog of a collection. Skipped holds the slugs of
// documents whose metadata could not be parsed.
type Listing struct {
	Items   []Summary `json:"items"`
	Skipped []string  `json:"skipped,omitempty"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// PublishedTime parses a publishedAt value. Missing or unparsable dates
// return the zero time, which sorts as the earliest.
func PublishedTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// List scans the collection directory and returns one summary per
// document. Projects sort featured first; within a group documents are
// ordered by publishedAt descending, then by slug.
func (s *Store) List(c Collection) (Listing, error) {
	dir, ok := s.dirs[c]
	if !ok {
		return Listing{}, fault.NotFound("unknown collection %q", c)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Listing{Items: []Summary{}}, nil
		}
		return Listing{}, fault.IO("Failed to list "+c.Noun()+"s", err)
	}

	listing := Listing{Items: make([]Summary, 0, len(entries))}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, Ext) {
			continue
		}
		slug := strings.TrimSuffix(name, Ext)
		sum, err := readSummary(filepath.Join(dir, name), c)
		if err != nil {
			s.log.Warn().Err(err).Str("collection", string(c)).Str("slug", slug).Msg("skipping unreadable document")
			listing.Skipped = append(listing.Skipped, slug)
			continue
		}
		sum.Slug = slug
		listing.Items = append(listing.Items, sum)
	}
	sortSummaries(c, listing.Items)
	return listing, nil
}

func readSummary(path string, c Collection) (Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	block, _, err := split(raw)
	if err != nil {
		return Summary{}, err
	}
	var m Meta
	if err := yaml.Unmarshal(block, &m); err != nil {
		return Summary{}, err
	}
	sum := Summary{
		Title:       m.Title,
		PublishedAt: m.PublishedAt,
		Summary:     m.Summary,
		Image:       m.Image,
	}
	if sum.Title == "" {
		sum.Title = "Untitled"
	}
	if c.IsProject() {
		sum.Tag = m.Tag
		sum.Featured = m.Featured
	}
	return sum, nil
}

func sortSummaries(c Collection, items []Summary) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if c.IsProject() && a.Featured != b.Featured {
			return a.Featured
		}
		ta, tb := PublishedTime(a.PublishedAt), PublishedTime(b.PublishedAt)
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return a.Slug < b.Slug
	})
}
