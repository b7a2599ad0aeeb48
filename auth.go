package folio

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

const defaultActivityLimit, maxActivityLimit = 50, 500

func (a *App) handleAdmin(c echo.Context) error {
	if !a.gate.Authorized(c.Request()) {
		return c.Redirect(http.StatusSeeOther, "/admin/login/")
	}
	blog, err := a.Store.List(content.Blog)
	if err != nil {
		return err
	}
	work, err := a.Store.List(content.Work)
	if err != nil {
		return err
	}
	images, err := a.Library.List()
	if err != nil {
		return err
	}
	return a.Render(c, "Dashboard", views.Dashboard(views.Stats{
		Posts:    len(blog.Items),
		Projects: len(work.Items),
		Featured: views.FeaturedCount(work.Items),
		Images:   len(images),
	}))
}

func (a *App) handleLoginPage(c echo.Context) error {
	if a.sessions == nil {
		return echo.ErrNotFound
	}
	return a.Render(c, "Login", views.Login(false))
}

func (a *App) handleLogin(c echo.Context) error {
	if a.sessions == nil {
		return echo.ErrNotFound
	}
	if !a.loginLimiter.Allow(c.RealIP()) {
		a.Log.Warn().Str("ip", c.RealIP()).Msg("login rate limited")
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		a.Log.Info().Str("ip", c.RealIP()).Msg("admin login")
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.Log.Warn().Str("ip", c.RealIP()).Msg("failed admin login")
	return a.RenderStatus(c, http.StatusUnauthorized, "Login", views.Login(true))
}

func (a *App) handleLogout(c echo.Context) error {
	if a.sessions == nil {
		return echo.ErrNotFound
	}
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login/")
}

func (a *App) handleActivity(c echo.Context) error {
	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = min(n, maxActivityLimit)
	}
	if a.journal == nil {
		return c.JSON(http.StatusOK, echo.Map{"entries": []any{}, "count": 0})
	}
	entries, err := a.journal.Recent(c.Request().Context(), limit)
	if err != nil {
		return a.fail(c, err, "Failed to read activity")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"entries": entries,
		"count":   len(entries),
	})
}
