// Package assets manages the image library under the public images root:
// listing, validated batch upload and path-checked deletion.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"

	"github.com/eringen/folio/fault"
)

const (
	// Prefix is the public URL prefix every asset path starts with.
	Prefix = "/images/"

	// MaxUploadSize is the per-file upload ceiling.
	MaxUploadSize = 5 << 20

	uploadsSubdir   = "uploads"
	defaultCategory = "general"
)

var allowedTypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

var (
	reUnsafeName = regexp.MustCompile(`[^\w.-]`)
	reDashes     = regexp.MustCompile(`-{2,}`)
)

// Asset is one image file in the library.
type Asset struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Category string `json:"category"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Upload is one file of an upload batch. ContentType and Size are the
// values declared by the client.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Library serves images stored under <publicDir>/images.
type Library struct {
	publicDir string
	root      string
	log       zerolog.Logger
	now       func() time.Time
}

// NewLibrary returns a Library rooted at publicDir.
func NewLibrary(publicDir string, log zerolog.Logger) *Library {
	return &Library{
		publicDir: publicDir,
		root:      filepath.Join(publicDir, strings.Trim(Prefix, "/")),
		log:       log,
		now:       time.Now,
	}
}

// Root returns the images directory on disk.
func (l *Library) Root() string { return l.root }

// IsImage reports whether name has an image extension.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// Category returns the category of a public asset path: the directory
// directly under /images/ for nested files, "general" otherwise.
func Category(publicPath string) string {
	parts := strings.FieldsFunc(publicPath, func(r rune) bool { return r == '/' })
	if len(parts) > 2 {
		return parts[1]
	}
	return defaultCategory
}

// List walks the images root and returns every image sorted by path.
// Unreadable directories are logged and skipped.
func (l *Library) List() ([]Asset, error) {
	assets := []Asset{}
	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == l.root {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				return err
			}
			l.log.Warn().Err(err).Str("path", p).Msg("skipping unreadable image path")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsImage(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			l.log.Warn().Err(err).Str("path", p).Msg("skipping image without stat")
			return nil
		}
		rel, err := filepath.Rel(l.publicDir, p)
		if err != nil {
			return nil
		}
		pub := "/" + filepath.ToSlash(rel)
		a := Asset{
			Path:     pub,
			Name:     d.Name(),
			Size:     info.Size(),
			Category: Category(pub),
		}
		a.Width, a.Height = probe(p)
		assets = append(assets, a)
		return nil
	})
	if err != nil {
		return nil, fault.IO("Failed to list images", err)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	return assets, nil
}

// probe reads the dimensions of raster images. SVGs and undecodable files
// report zero.
func probe(p string) (int, int) {
	if strings.EqualFold(filepath.Ext(p), ".svg") {
		return 0, 0
	}
	f, err := os.Open(p)
	if err != nil {
		return 0, 0
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// SanitizeFilename lower-cases name, replaces characters outside word, dot
// and hyphen with hyphens, collapses hyphen runs and trims edge hyphens.
func SanitizeFilename(name string) string {
	s := strings.ToLower(name)
	s = reUnsafeName.ReplaceAllString(s, "-")
	s = reDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func validateUploads(files []Upload) error {
	if len(files) == 0 {
		return fault.Validation("No files provided")
	}
	for _, f := range files {
		if !allowedTypes[strings.ToLower(f.ContentType)] {
			return fault.Validation("Invalid file type: %s. Allowed: JPEG, PNG, GIF, WebP, SVG", f.ContentType)
		}
		if f.Size > MaxUploadSize {
			return fault.Validation("File too large: %s. Max size: 5MB", f.Name)
		}
	}
	return nil
}

// Upload validates the whole batch, then writes each file into the uploads
// directory as <unix-millis>-<sanitized name>. Nothing is written when any
// file is invalid; if a write fails, files already written by this batch
// are removed. It returns the public paths of the new files.
func (l *Library) Upload(files []Upload) ([]string, error) {
	if err := validateUploads(files); err != nil {
		return nil, err
	}
	dir := filepath.Join(l.root, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fault.IO("Failed to upload images", err)
	}

	var written []string
	paths := make([]string, 0, len(files))
	for _, f := range files {
		name, err := l.writeUpload(dir, f)
		if err != nil {
			for _, w := range written {
				os.Remove(w)
			}
			return nil, err
		}
		written = append(written, filepath.Join(dir, name))
		paths = append(paths, path.Join(Prefix, uploadsSubdir, name))
	}
	return paths, nil
}

func (l *Library) writeUpload(dir string, u Upload) (string, error) {
	sanitized := SanitizeFilename(u.Name)
	if sanitized == "" || strings.Trim(sanitized, ".") == "" {
		sanitized = "image"
	}
	base := fmt.Sprintf("%d-%s", l.now().UnixMilli(), sanitized)

	out, name, err := createUnique(dir, base)
	if err != nil {
		return "", fault.IO("Failed to upload images", err)
	}
	src, err := u.Open()
	if err != nil {
		out.Close()
		os.Remove(filepath.Join(dir, name))
		return "", fault.IO("Failed to upload images", err)
	}
	defer src.Close()

	n, err := io.Copy(out, io.LimitReader(src, MaxUploadSize+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxUploadSize {
		os.Remove(filepath.Join(dir, name))
		return "", fault.Validation("File too large: %s. Max size: 5MB", u.Name)
	}
	if err != nil {
		os.Remove(filepath.Join(dir, name))
		return "", fault.IO("Failed to upload images", err)
	}
	return name, nil
}

// createUnique exclusively creates base in dir, appending -2, -3, ... before
// the extension while the name is taken.
func createUnique(dir, base string) (*os.File, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	candidate := base
	for counter := 1; ; counter++ {
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) || counter >= 1000 {
			return nil, "", err
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, counter+1, ext)
	}
}

// Resolve checks that publicPath names an image inside the images root and
// returns its location on disk.
func (l *Library) Resolve(publicPath string) (string, error) {
	if !strings.HasPrefix(publicPath, Prefix) {
		return "", fault.Validation("Invalid image path")
	}
	if strings.ContainsAny(publicPath, "\\\x00") {
		return "", fault.Validation("Invalid image path")
	}
	for _, seg := range strings.Split(publicPath, "/") {
		if seg == ".." {
			return "", fault.Validation("Invalid image path")
		}
	}
	clean := path.Clean(publicPath)
	if !strings.HasPrefix(clean, Prefix) || !IsImage(clean) {
		return "", fault.Validation("Invalid image path")
	}
	full := filepath.Join(l.publicDir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	rel, err := filepath.Rel(l.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fault.Validation("Invalid image path")
	}
	return full, nil
}

// Delete removes the image at publicPath.
func (l *Library) Delete(publicPath string) error {
	if strings.TrimSpace(publicPath) == "" {
		return fault.Validation("No image path provided")
	}
	full, err := l.Resolve(publicPath)
	if err != nil {
		return err
	}
	info, err := os.Lstat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fault.NotFound("Image not found")
		}
		return fault.IO("Failed to delete image", err)
	}
	if !info.Mode().IsRegular() {
		return fault.NotFound("Image not found")
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fault.NotFound("Image not found")
		}
		return fault.IO("Failed to delete image", err)
	}
	return nil
}
