// Package views renders the admin pages as templ components.
package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio/assets"
	"github.com/eringen/folio/content"
)

// Page wraps body in the admin document shell.
func Page(siteName, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := &writer{w: w}
		e.printf(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		e.printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		e.printf(`<title>%s · %s</title></head><body>`, esc(title), esc(siteName))
		if e.err != nil {
			return e.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		e.printf(`</body></html>`)
		return e.err
	})
}

// Login renders the admin login form.
func Login(showError bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := &writer{w: w}
		e.printf(`<main class="login"><h1>Admin</h1>`)
		if showError {
			e.printf(`<p class="error" role="alert">Invalid password.</p>`)
		}
		e.printf(`<form method="post" action="/admin/login/">`)
		e.printf(`<label>Password <input type="password" name="password" autocomplete="current-password" required></label>`)
		e.printf(`<button type="submit">Sign in</button></form></main>`)
		return e.err
	})
}

// Stats are the counts shown on the admin dashboard.
type Stats struct {
	Posts    int
	Projects int
	Featured int
	Images   int
}

// Dashboard renders the admin landing page with per-section counts.
func Dashboard(st Stats) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := &writer{w: w}
		adminNav(e, "")
		e.printf(`<main><h1>Dashboard</h1><div class="stats">`)
		statCard(e, "Blog posts", st.Posts, "/admin/blog/")
		statCard(e, "Projects", st.Projects, "/admin/work/")
		statCard(e, "Images", st.Images, "/admin/images/")
		e.printf(`</div><p class="featured">Featured projects: %d</p></main>`, st.Featured)
		return e.err
	})
}

func statCard(e *writer, title string, n int, href string) {
	e.printf(`<a class="stat" href="%s"><span class="label">%s</span> <strong>%d</strong></a>`, esc(href), esc(title), n)
}

// FeaturedCount returns how many summaries are marked featured.
func FeaturedCount(items []content.Summary) int {
	n := 0
	for _, s := range items {
		if s.Featured {
			n++
		}
	}
	return n
}

// Catalog renders the document list of one collection.
func Catalog(c content.Collection, listing content.Listing) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := &writer{w: w}
		adminNav(e, string(c))
		e.printf(`<main><h1>%ss</h1><p>Total: %d</p>`, esc(c.Label()), len(listing.Items))
		if c.IsProject() {
			e.printf(`<p>Featured: %d</p>`, FeaturedCount(listing.Items))
		}
		if len(listing.Skipped) > 0 {
			e.printf(`<p class="warning">%d document(s) could not be read: %s</p>`,
				len(listing.Skipped), esc(strings.Join(listing.Skipped, ", ")))
		}
		if len(listing.Items) == 0 {
			e.printf(`<p>No %ss yet.</p></main>`, esc(c.Noun()))
			return e.err
		}
		e.printf(`<ul class="documents">`)
		for _, s := range listing.Items {
			e.printf(`<li data-slug="%s"><h2>%s</h2>`, esc(s.Slug), esc(s.Title))
			if s.Featured {
				e.printf(`<span class="badge">Featured</span>`)
			}
			if s.Tag != "" {
				e.printf(`<span class="tag">%s</span>`, esc(s.Tag))
			}
			e.printf(`<time>%s</time>`, esc(s.PublishedAt))
			if s.Summary != "" {
				e.printf(`<p>%s</p>`, esc(s.Summary))
			}
			e.printf(`<small>%s%s</small></li>`, esc(s.Slug), content.Ext)
		}
		e.printf(`</ul></main>`)
		return e.err
	})
}

// Images renders the asset library grouped in path order.
func Images(list []assets.Asset) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := &writer{w: w}
		adminNav(e, "images")
		e.printf(`<main><h1>Images</h1><p>Total: %d</p><ul class="images">`, len(list))
		for _, a := range list {
			e.printf(`<li data-path="%s"><img src="%s" alt="%s" loading="lazy">`, esc(a.Path), esc(a.Path), esc(a.Name))
			e.printf(`<span>%s</span> <span class="category">%s</span> <span>%s</span>`,
				esc(a.Name), esc(a.Category), humanSize(a.Size))
			if a.Width > 0 {
				e.printf(` <span>%d×%d</span>`, a.Width, a.Height)
			}
			e.printf(`</li>`)
		}
		e.printf(`</ul></main>`)
		return e.err
	})
}

func adminNav(e *writer, active string) {
	e.printf(`<nav>`)
	for _, item := range []string{"blog", "work", "images"} {
		cls := ""
		if item == active {
			cls = ` class="active"`
		}
		e.printf(`<a href="/admin/%s/"%s>%s</a> `, item, cls, item)
	}
	e.printf(`<form method="post" action="/admin/logout/"><button type="submit">Log out</button></form></nav>`)
}

func esc(s string) string { return templ.EscapeString(s) }

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// writer remembers the first write error so page code can stay linear.
type writer struct {
	w   io.Writer
	err error
}

func (e *writer) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
