package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/assets"
	"github.com/eringen/folio/content"
)

func TestCatalogEscapesAndMarksFeatured(t *testing.T) {
	var buf bytes.Buffer
	listing := content.Listing{
		Items: []content.Summary{
			{Slug: "x", Title: `<script>alert(1)</script>`, PublishedAt: "2024-01-01", Featured: true, Tag: "Go"},
		},
		Skipped: []string{"broken"},
	}
	require.NoError(t, Page("Site", "Projects", Catalog(content.Work, listing)).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "<title>Projects · Site</title>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Featured")
	assert.Contains(t, out, "x.mdx")
	assert.Contains(t, out, "broken")
}

func TestCatalogEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Catalog(content.Blog, content.Listing{}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No blog posts yet.")
}

func TestImages(t *testing.T) {
	var buf bytes.Buffer
	list := []assets.Asset{
		{Path: "/images/uploads/a.png", Name: "a.png", Size: 2048, Category: "uploads", Width: 4, Height: 3},
		{Path: "/images/logo.svg", Name: "logo.svg", Size: 10, Category: "general"},
	}
	require.NoError(t, Images(list).Render(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, "Total: 2")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "4×3")
	assert.Contains(t, out, "10 B")
}

func TestLoginError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Login(true).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Invalid password.")

	buf.Reset()
	require.NoError(t, Login(false).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "Invalid password.")
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dashboard(Stats{Posts: 3, Projects: 2, Featured: 1, Images: 7}).Render(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, `<a class="stat" href="/admin/blog/"><span class="label">Blog posts</span> <strong>3</strong></a>`)
	assert.Contains(t, out, `<span class="label">Projects</span> <strong>2</strong>`)
	assert.Contains(t, out, `<span class="label">Images</span> <strong>7</strong>`)
	assert.Contains(t, out, "Featured projects: 1")
}

func TestFeaturedCount(t *testing.T) {
	items := []content.Summary{{Featured: true}, {}, {Featured: true}}
	assert.Equal(t, 2, FeaturedCount(items))
	assert.Zero(t, FeaturedCount(nil))
}
