// Package folio is a filesystem-backed portfolio content service built with
// Go, Echo, and templ. It stores blog posts and projects as front-matter
// documents, manages an image library, and serves a small admin surface.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/folio/activity"
	"github.com/eringen/folio/assets"
	"github.com/eringen/folio/content"
)

// Journal records admin mutations. *activity.Store implements it.
type Journal interface {
	Record(ctx context.Context, e activity.Entry) error
	Recent(ctx context.Context, limit int) ([]activity.Entry, error)
}

// App is the central folio application. It wires together the document
// store, asset library, journal, gate, handlers, and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Log     zerolog.Logger
	Store   *content.Store
	Library *assets.Library

	journal      Journal
	activity     *activity.Store
	stopCleanup  func()
	gate         Gate
	sessions     sessions.Store
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	customLogger bool
}

// New creates a new folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the stores and registers middleware and routes. Start calls it;
// tests call it directly and drive a.Echo with httptest.
func (a *App) Init() error {
	if !a.customLogger {
		a.Log = NewLogger(os.Stdout, a.Config.LogLevel, a.Config.LogFormat)
	}

	switch a.Config.AuthMode {
	case AuthSession:
		if a.Config.AdminPassword == "" {
			return fmt.Errorf("folio: AdminPassword is required")
		}
		if a.Config.SessionSecret == "" {
			return fmt.Errorf("folio: SessionSecret is required")
		}
		a.sessions = a.newSessionStore()
		if a.gate == nil {
			a.gate = SessionGate{Store: a.sessions}
		}
	case AuthCookie:
		if a.gate == nil {
			a.gate = NewCookieGate()
		}
		a.Log.Warn().Msg("legacy cookie auth enabled; any client can set the authToken cookie")
	default:
		return fmt.Errorf("folio: unknown AuthMode %q", a.Config.AuthMode)
	}

	a.Store = content.NewStore(a.Config.BlogDir, a.Config.WorkDir, a.Log.With().Str("component", "content").Logger())
	a.Library = assets.NewLibrary(a.Config.PublicDir, a.Log.With().Str("component", "assets").Logger())

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.activityEnabled() {
		store, err := activity.NewStore(a.Config.ActivityDatabasePath, a.Log.With().Str("component", "activity").Logger())
		if err != nil {
			return fmt.Errorf("folio: init activity: %w", err)
		}
		a.activity = store
		a.journal = store
		a.stopCleanup = store.StartCleanupScheduler(a.Config.ActivityRetention, 24*time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until Shutdown is called.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Log.Info().
		Str("addr", a.Config.Addr).
		Str("blog_dir", a.Config.BlogDir).
		Str("work_dir", a.Config.WorkDir).
		Str("public_dir", a.Config.PublicDir).
		Str("auth", a.Config.AuthMode).
		Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static(strings.TrimSuffix(assets.Prefix, "/"), a.Library.Root())

	api := e.Group("/api/admin", requireAdmin(a.gate))
	pages := e.Group("/admin", requireAdminPage(a.gate))

	for _, col := range content.Collections {
		e.GET("/api/"+string(col), a.handleCatalog(col))

		api.POST("/"+string(col), a.handleCreate(col))
		api.GET("/"+string(col)+"/:slug", a.handleGet(col))
		api.PUT("/"+string(col)+"/:slug", a.handleUpdate(col))
		api.DELETE("/"+string(col)+"/:slug", a.handleDelete(col))

		pages.GET("/"+string(col)+"/", a.handleCatalogPage(col))
	}

	api.GET("/images", a.handleImageList)
	api.POST("/images/upload", a.handleImageUpload)
	api.DELETE("/images/delete", a.handleImageDelete)
	api.GET("/activity", a.handleActivity)

	pages.GET("/images/", a.handleImagesPage)

	e.GET("/admin/", a.handleAdmin)
	e.GET("/admin/login/", a.handleLoginPage)
	e.POST("/admin/login/", a.handleLogin)
	e.POST("/admin/logout/", a.handleLogout)
}

// Close stops background work and releases the journal database.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
		a.stopCleanup = nil
	}
	if a.activity != nil {
		err := a.activity.Close()
		a.activity = nil
		return err
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Fprintf(os.Stderr, "folio: required environment variable %s is not set\n", key)
		os.Exit(1)
	}
	return v
}
