package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/eringen/folio/fault"
)

// Store reads and writes documents under one directory per collection.
//
// Create reserves a slug with an exclusive create, so two concurrent creates
// of the same title cannot both succeed. Update and Delete act on exactly one
// file each; concurrent updates of one slug are last-writer-wins.
type Store struct {
	dirs map[Collection]string
	log  zerolog.Logger
}

// NewStore returns a Store keeping blog posts in blogDir and projects in
// workDir. Directories are created on first write.
func NewStore(blogDir, workDir string, log zerolog.Logger) *Store {
	return &Store{
		dirs: map[Collection]string{Blog: blogDir, Work: workDir},
		log:  log,
	}
}

// Dir returns the directory backing c.
func (s *Store) Dir(c Collection) string {
	return s.dirs[c]
}

// locate resolves the file for slug. Unknown collections and slugs that
// are not plain word/hyphen strings cannot exist, so they are NotFound.
func (s *Store) locate(c Collection, slug string) (string, error) {
	dir, ok := s.dirs[c]
	if !ok || !ValidSlug(slug) {
		return "", fault.NotFound("%s %q not found", c.Label(), slug)
	}
	return filepath.Join(dir, slug+Ext), nil
}

// Create validates in, derives the slug from its title and writes a new
// document. It returns the slug.
func (s *Store) Create(c Collection, in Input) (string, error) {
	in = in.normalize(c)
	if err := in.validate(); err != nil {
		return "", err
	}
	slug := Slugify(in.Title)
	if slug == "" {
		return "", fault.Validation("Title must contain at least one letter or digit")
	}
	path, err := s.locate(c, slug)
	if err != nil {
		return "", err
	}
	failMsg := "Failed to create " + c.Noun()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fault.IO(failMsg, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fault.Conflict("A %s with slug %q already exists. Please use a different title.", c.Noun(), slug)
		}
		return "", fault.IO(failMsg, err)
	}
	if _, err := f.Write(Encode(c, in.Meta, in.Body)); err != nil {
		f.Close()
		os.Remove(path)
		return "", fault.IO(failMsg, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fault.IO(failMsg, err)
	}
	return slug, nil
}

// Get returns the document stored under slug.
func (s *Store) Get(c Collection, slug string) (Document, error) {
	path, err := s.locate(c, slug)
	if err != nil {
		return Document{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, fault.NotFound("%s %q not found", c.Label(), slug)
		}
		return Document{}, fault.IO("Failed to read "+c.Noun(), err)
	}
	meta, body, err := Decode(raw)
	if err != nil {
		return Document{}, fault.IO("Failed to read "+c.Noun(), err)
	}
	if !c.IsProject() {
		meta.Images, meta.Tag, meta.Featured = nil, "", false
	}
	return Document{Slug: slug, Meta: meta, Body: body}, nil
}

// Update replaces the metadata and body of an existing document. The slug
// is never regenerated from the new title.
func (s *Store) Update(c Collection, slug string, in Input) error {
	in = in.normalize(c)
	if err := in.validate(); err != nil {
		return err
	}
	path, err := s.locate(c, slug)
	if err != nil {
		return err
	}
	failMsg := "Failed to update " + c.Noun()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fault.NotFound("%s %q not found", c.Label(), slug)
		}
		return fault.IO(failMsg, err)
	}
	if err := writeFileAtomic(path, Encode(c, in.Meta, in.Body)); err != nil {
		return fault.IO(failMsg, err)
	}
	return nil
}

// Delete removes the document stored under slug.
func (s *Store) Delete(c Collection, slug string) error {
	path, err := s.locate(c, slug)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fault.NotFound("%s %q not found", c.Label(), slug)
		}
		return fault.IO("Failed to delete "+c.Noun(), err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file beside path and renames it
// over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
