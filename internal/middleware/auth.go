package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yaoyun631/team-me-crm-firebase/internal/session"
)

// RequireLogin gates every record-service route. State is binary: a
// session either carries a verified user id or it does not; there are no
// roles beyond "logged in".
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.CurrentIdentity(c).LoggedIn() {
				session.AddFlash(c, "請先登入", "warning")
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}
