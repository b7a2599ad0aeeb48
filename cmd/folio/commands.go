package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/eringen/folio"
	"github.com/eringen/folio/assets"
	"github.com/eringen/folio/content"
)

// loadConfig reads .env (if present) and the process environment.
func loadConfig() (folio.SiteConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return folio.SiteConfig{}, fmt.Errorf("load .env: %w", err)
	}
	secure, _ := strconv.ParseBool(folio.EnvOr("COOKIE_SECURE", "false"))
	return folio.SiteConfig{
		Name:                 folio.EnvOr("SITE_NAME", "Portfolio"),
		Addr:                 folio.EnvOr("ADDR", ":3000"),
		BlogDir:              folio.EnvOr("BLOG_DIR", "content/blog"),
		WorkDir:              folio.EnvOr("WORK_DIR", "content/work"),
		PublicDir:            folio.EnvOr("PUBLIC_DIR", "public"),
		ActivityDatabasePath: folio.EnvOr("ACTIVITY_DB", "data/activity.db"),
		AuthMode:             folio.EnvOr("AUTH_MODE", folio.AuthSession),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		CookieSecure:         secure,
		LogLevel:             folio.EnvOr("LOG_LEVEL", "info"),
		LogFormat:            folio.EnvOr("LOG_FORMAT", "json"),
	}, nil
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.AuthMode == folio.AuthSession {
		cfg.AdminPassword = folio.MustEnv("ADMIN_PASSWORD")
		cfg.SessionSecret = folio.MustEnv("SESSION_SECRET")
	}

	app := folio.New(cfg)
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.Log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}

func runList(w io.Writer, name string) error {
	col, ok := content.ParseCollection(name)
	if !ok {
		return fmt.Errorf("unknown collection %q (want blog or work)", name)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := folio.NewLogger(os.Stderr, cfg.LogLevel, "pretty")
	listing, err := content.NewStore(cfg.BlogDir, cfg.WorkDir, log).List(col)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tPUBLISHED\tFEATURED\tTITLE")
	for _, s := range listing.Items {
		featured := ""
		if s.Featured {
			featured = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Slug, s.PublishedAt, featured, s.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(listing.Skipped) > 0 {
		fmt.Fprintf(w, "\nskipped %d unreadable document(s)\n", len(listing.Skipped))
	}
	return nil
}

func runImages(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := folio.NewLogger(os.Stderr, cfg.LogLevel, "pretty")
	list, err := assets.NewLibrary(cfg.PublicDir, log).List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tCATEGORY\tSIZE\tDIMENSIONS")
	for _, a := range list {
		dims := "-"
		if a.Width > 0 {
			dims = fmt.Sprintf("%dx%d", a.Width, a.Height)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", a.Path, a.Category, a.Size, dims)
	}
	return tw.Flush()
}
