package folio

import (
	"time"

	"github.com/rs/zerolog"
)

// Auth modes accepted by SiteConfig.AuthMode.
const (
	AuthSession = "session"
	AuthCookie  = "cookie"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name string // Site name (default "Portfolio")
	Addr string // Listen address (default ":3000")

	BlogDir   string // Blog post directory (default "content/blog")
	WorkDir   string // Project directory (default "content/work")
	PublicDir string // Static root; images live under <PublicDir>/images (default "public")

	ActivityDatabasePath string        // Activity journal SQLite path (default "data/activity.db", "off" disables)
	ActivityRetention    time.Duration // Journal retention (default 365 days)

	AuthMode      string // "session" (default) or "cookie"
	AdminPassword string // Required in session mode: admin login password
	SessionSecret string // Required in session mode: session signing secret
	CookieSecure  bool   // Set true for HTTPS

	LogLevel  string // debug, info, warn, error (default "info")
	LogFormat string // "json" (default) or "pretty"

	ShutdownTimeout time.Duration // Graceful shutdown budget (default 10s)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.BlogDir == "" {
		c.BlogDir = "content/blog"
	}
	if c.WorkDir == "" {
		c.WorkDir = "content/work"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.ActivityDatabasePath == "" {
		c.ActivityDatabasePath = "data/activity.db"
	}
	if c.ActivityRetention == 0 {
		c.ActivityRetention = 365 * 24 * time.Hour
	}
	if c.AuthMode == "" {
		c.AuthMode = AuthSession
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

func (c *SiteConfig) activityEnabled() bool {
	return c.ActivityDatabasePath != "off"
}

// Option configures additional App behavior.
type Option func(*App)

// WithGate replaces the gate selected by AuthMode.
func WithGate(g Gate) Option {
	return func(a *App) {
		a.gate = g
	}
}

// WithLogger sets the application logger instead of building one from
// LogLevel and LogFormat.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.Log = log
		a.customLogger = true
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are in place.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
