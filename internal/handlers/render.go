package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yaoyun631/team-me-crm-firebase/internal/session"
)

// render executes a page template with the session identity and pending
// flash banners merged into the data map.
func render(c echo.Context, name string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["User"] = session.CurrentIdentity(c)
	data["Flashes"] = session.Flashes(c)
	return c.Render(http.StatusOK, name, data)
}

// formValue returns the trimmed form field. Every submitted field is
// stored trimmed, so this is the single entry point for reading forms.
func formValue(c echo.Context, name string) string {
	return strings.TrimSpace(c.FormValue(name))
}
