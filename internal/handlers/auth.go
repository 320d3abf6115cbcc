package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/yaoyun631/team-me-crm-firebase/internal/repositories"
	"github.com/yaoyun631/team-me-crm-firebase/internal/session"
)

// AuthHandler handles login, logout and the index redirect.
type AuthHandler struct {
	userRepository repositories.UserRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userRepo repositories.UserRepository) *AuthHandler {
	return &AuthHandler{userRepository: userRepo}
}

// RegisterAuthRoutes registers the unprotected auth routes.
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/login", h.ShowLogin)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
}

// Index redirects to the buyer list when logged in, the login form
// otherwise.
func (h *AuthHandler) Index(c echo.Context) error {
	if session.CurrentIdentity(c).LoggedIn() {
		return c.Redirect(http.StatusFound, "/buyers")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return render(c, "login.html", nil)
}

// Login verifies the password hash of the user with the given email and
// stores the identity in the session. Every failure redirects back with
// the same flash so the response never reveals whether the email exists.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(formValue(c, "email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		session.AddFlash(c, "請輸入帳號與密碼", "danger")
		return c.Redirect(http.StatusFound, "/login")
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			c.Logger().Errorf("login lookup failed: %v", err)
		}
		session.AddFlash(c, "帳號或密碼錯誤", "danger")
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		session.AddFlash(c, "帳號或密碼錯誤", "danger")
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := session.SetIdentity(c, session.Identity{
		UserID:    user.ID,
		UserName:  user.DisplayName(),
		UserEmail: user.Email,
	}); err != nil {
		return err
	}

	session.AddFlash(c, fmt.Sprintf("歡迎回來，%s！", user.DisplayName()), "success")
	return c.Redirect(http.StatusFound, "/buyers")
}

// Logout clears the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := session.Clear(c); err != nil {
		return err
	}
	session.AddFlash(c, "已登出", "info")
	return c.Redirect(http.StatusFound, "/login")
}
