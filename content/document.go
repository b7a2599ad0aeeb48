// Package content stores blog posts and project case studies as text files
// with a metadata block, and lists them as sorted summaries.
package content

import (
	"strings"

	"github.com/eringen/folio/fault"
)

// Ext is the file extension of every document.
const Ext = ".mdx"

// Collection names a directory of documents.
type Collection string

const (
	Blog Collection = "blog"
	Work Collection = "work"
)

// Collections lists every known collection in routing order.
var Collections = []Collection{Blog, Work}

// ParseCollection returns the collection named s.
func ParseCollection(s string) (Collection, bool) {
	switch Collection(s) {
	case Blog:
		return Blog, true
	case Work:
		return Work, true
	}
	return "", false
}

// IsProject reports whether the collection carries project-only fields
// (images, tag, featured).
func (c Collection) IsProject() bool { return c == Work }

// Noun is the singular name used in client messages.
func (c Collection) Noun() string {
	if c == Work {
		return "project"
	}
	return "blog post"
}

// Label is Noun with an upper-case first letter.
func (c Collection) Label() string {
	n := c.Noun()
	return strings.ToUpper(n[:1]) + n[1:]
}

// Meta is the metadata block of a document.
type Meta struct {
	Title       string   `json:"title" yaml:"title"`
	PublishedAt string   `json:"publishedAt" yaml:"publishedAt"`
	Summary     string   `json:"summary" yaml:"summary"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty"`
	Images      []string `json:"images,omitempty" yaml:"images,omitempty"`
	Tag         string   `json:"tag,omitempty" yaml:"tag,omitempty"`
	Featured    bool     `json:"featured,omitempty" yaml:"featured,omitempty"`
}

// Document is a metadata block plus body text.
type Document struct {
	Slug string `json:"slug"`
	Meta
	Body string `json:"content"`
}

// Input is the payload accepted by Create and Update. Body travels as
// "content" to match the editor.
type Input struct {
	Meta
	Body string `json:"content"`
}

// normalize trims the input and drops fields the collection does not carry.
func (in Input) normalize(c Collection) Input {
	out := Input{
		Meta: Meta{
			Title:       strings.TrimSpace(in.Title),
			PublishedAt: strings.TrimSpace(in.PublishedAt),
			Summary:     strings.TrimSpace(in.Summary),
			Image:       strings.TrimSpace(in.Image),
		},
		Body: strings.TrimSpace(in.Body),
	}
	if c.IsProject() {
		out.Tag = strings.TrimSpace(in.Tag)
		out.Featured = in.Featured
		for _, img := range in.Images {
			if img = strings.TrimSpace(img); img != "" {
				out.Images = append(out.Images, img)
			}
		}
	}
	return out
}

func (in Input) validate() error {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.PublishedAt == "" {
		missing = append(missing, "publishedAt")
	}
	if in.Summary == "" {
		missing = append(missing, "summary")
	}
	if in.Body == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return fault.Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
