package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/views"
)

// Render writes a templ component inside the admin page shell as an HTTP 200
// HTML response.
func (a *App) Render(c echo.Context, title string, cmp templ.Component) error {
	return a.RenderStatus(c, http.StatusOK, title, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func (a *App) RenderStatus(c echo.Context, code int, title string, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return views.Page(a.Config.Name, title, cmp).Render(c.Request().Context(), c.Response().Writer)
}
