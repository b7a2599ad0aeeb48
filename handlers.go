package folio

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/activity"
	"github.com/eringen/folio/fault"
)

// fail writes err as a JSON error response. Kinds map to status codes;
// unclassified and IO errors are logged with their cause and answered with
// fallback.
func (a *App) fail(c echo.Context, err error, fallback string) error {
	kind := fault.KindOf(err)
	if kind == fault.KindIO {
		a.Log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg(fallback)
	}
	return c.JSON(kind.Status(), echo.Map{"error": fault.Message(err, fallback)})
}

// record appends e to the journal. Failures are logged only.
func (a *App) record(ctx context.Context, e activity.Entry) {
	if a.journal == nil {
		return
	}
	if err := a.journal.Record(context.WithoutCancel(ctx), e); err != nil {
		a.Log.Warn().Err(err).Str("action", e.Action).Str("target", e.Target).Msg("record activity")
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= http.StatusInternalServerError {
		a.Log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("server error")
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		msg := http.StatusText(code)
		if he != nil && code < http.StatusInternalServerError {
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}
		_ = c.JSON(code, echo.Map{"error": msg})
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
