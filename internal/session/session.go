// Package session wraps the cookie session: the authenticated identity and
// the transient flash banners shown on the next rendered page.
package session

import (
	"encoding/gob"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const sessionName = "teamme_session"

func init() {
	gob.Register(Flash{})
}

// Identity is the logged-in user carried by the session cookie. A zero
// UserID means the request is unauthenticated.
type Identity struct {
	UserID    string
	UserName  string
	UserEmail string
}

// LoggedIn reports whether the identity carries a verified user id.
func (id Identity) LoggedIn() bool {
	return id.UserID != ""
}

// Flash is a one-shot banner rendered on the next page. Category is the
// bootstrap alert class: success, info, warning, danger.
type Flash struct {
	Message  string
	Category string
}

// CurrentIdentity reads the authenticated identity out of the request's
// session, request-scoped rather than ambient.
func CurrentIdentity(c echo.Context) Identity {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return Identity{}
	}
	id := Identity{}
	if v, ok := sess.Values["user_id"].(string); ok {
		id.UserID = v
	}
	if v, ok := sess.Values["user_name"].(string); ok {
		id.UserName = v
	}
	if v, ok := sess.Values["user_email"].(string); ok {
		id.UserEmail = v
	}
	return id
}

// SetIdentity stores the verified user in the session.
func SetIdentity(c echo.Context, id Identity) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["user_id"] = id.UserID
	sess.Values["user_name"] = id.UserName
	sess.Values["user_email"] = id.UserEmail
	return sess.Save(c.Request(), c.Response())
}

// Clear drops the stored identity on logout. The session itself stays
// alive so the logout flash still renders on the login page.
func Clear(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(c.Request(), c.Response())
}

// AddFlash queues a banner for the next rendered page.
func AddFlash(c echo.Context, message, category string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(Flash{Message: message, Category: category})
	_ = sess.Save(c.Request(), c.Response())
}

// Flashes pops the queued banners.
func Flashes(c echo.Context) []Flash {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	var flashes []Flash
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
