package folio

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "admin_session"

	legacyCookieName  = "authToken"
	legacyCookieValue = "authenticated"
)

// Gate decides whether a request may use the admin API. Every mutating
// document and asset operation consults it before touching input or disk.
type Gate interface {
	Authorized(r *http.Request) bool
}

// GateFunc adapts a function to Gate.
type GateFunc func(r *http.Request) bool

// Authorized calls f(r).
func (f GateFunc) Authorized(r *http.Request) bool { return f(r) }

// SessionGate authorizes requests carrying a signed admin session issued by
// the login handler.
type SessionGate struct {
	Store sessions.Store
}

// Authorized reports whether the session is marked authenticated.
func (g SessionGate) Authorized(r *http.Request) bool {
	sess, err := g.Store.Get(r, sessionName)
	if err != nil {
		return false
	}
	auth, ok := sess.Values["authenticated"].(bool)
	return ok && auth
}

// CookieGate authorizes requests whose cookie Name carries exactly Value.
// It exists for deployments where an external system sets a fixed cookie;
// it is not a credential check.
type CookieGate struct {
	Name  string
	Value string
}

// NewCookieGate returns the gate for the legacy authToken=authenticated cookie.
func NewCookieGate() CookieGate {
	return CookieGate{Name: legacyCookieName, Value: legacyCookieValue}
}

// Authorized reports whether the cookie matches.
func (g CookieGate) Authorized(r *http.Request) bool {
	ck, err := r.Cookie(g.Name)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(ck.Value), []byte(g.Value)) == 1
}

// requireAdmin rejects unauthorized API requests with 401 before the
// handler runs.
func requireAdmin(g Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !g.Authorized(c.Request()) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}

// requireAdminPage redirects unauthorized page requests to the login form.
func requireAdminPage(g Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !g.Authorized(c.Request()) {
				return c.Redirect(http.StatusSeeOther, "/admin/login/")
			}
			return next(c)
		}
	}
}
