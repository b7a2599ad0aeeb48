package content

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

var (
	errNoFrontmatter = errors.New("missing opening metadata delimiter")
	errUnterminated  = errors.New("missing closing metadata delimiter")
)

// Encode serializes a document's metadata block and body. Strings are
// double-quoted with backslash escapes, so the block stays valid YAML for
// any title or summary.
func Encode(c Collection, m Meta, body string) []byte {
	var b bytes.Buffer
	b.WriteString(delimiter + "\n")
	writeField(&b, "title", m.Title)
	writeField(&b, "publishedAt", m.PublishedAt)
	writeField(&b, "summary", m.Summary)
	if m.Image != "" {
		writeField(&b, "image", m.Image)
	}
	if c.IsProject() {
		if len(m.Images) > 0 {
			b.WriteString("images: [\n")
			for i, img := range m.Images {
				b.WriteString("  " + strconv.Quote(img))
				if i < len(m.Images)-1 {
					b.WriteByte(',')
				}
				b.WriteByte('\n')
			}
			b.WriteString("]\n")
		}
		if m.Tag != "" {
			writeField(&b, "tag", m.Tag)
		}
		if m.Featured {
			b.WriteString("featured: true\n")
		}
	}
	b.WriteString(delimiter + "\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteByte('\n')
	return b.Bytes()
}

func writeField(b *bytes.Buffer, key, value string) {
	fmt.Fprintf(b, "%s: %s\n", key, strconv.Quote(value))
}

// Decode splits raw into its metadata block and trimmed body.
func Decode(raw []byte) (Meta, string, error) {
	block, body, err := split(raw)
	if err != nil {
		return Meta{}, "", err
	}
	var m Meta
	if err := yaml.Unmarshal(block, &m); err != nil {
		return Meta{}, "", fmt.Errorf("parse metadata: %w", err)
	}
	return m, strings.TrimSpace(string(body)), nil
}

// split returns the bytes between the delimiter lines and everything after
// the closing one.
func split(raw []byte) ([]byte, []byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	first, rest, ok := bytes.Cut(raw, []byte("\n"))
	if !ok || string(bytes.TrimSpace(first)) != delimiter {
		return nil, nil, errNoFrontmatter
	}
	var block bytes.Buffer
	for {
		line, next, more := bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimRight(line, " \t")) == delimiter {
			return block.Bytes(), next, nil
		}
		if !more {
			return nil, nil, errUnterminated
		}
		block.Write(line)
		block.WriteByte('\n')
		rest = next
	}
}
