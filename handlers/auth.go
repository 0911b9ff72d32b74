package handlers

import (
	"net/http"
	"strings"
	"time"

	"code_enforce_app_go/db"
	"code_enforce_app_go/middleware"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
)

// Package level variable to hold the dummy hash used for timing mitigation
var globalDummyHash string

func init() {
	hash, _ := services.HashPassword("dummy_password_for_timing_mitigation")
	globalDummyHash = hash
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler authenticates an officer and issues a session cookie.
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "username and password are required"})
	}

	user, err := services.AuthenticateOfficer(db.DB, username, req.Password)
	if err != nil {
		// Keep timing consistent when the user does not exist
		services.VerifyPassword(globalDummyHash, req.Password)
		services.LogSecurityEvent("login_failed", "", username)
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create session"})
	}

	middleware.SetSessionCookie(c, session.Token, int(services.DefaultSessionDuration/time.Second))

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "login", "session", session.ID, user.Username, "Officer logged in")

	return c.JSON(http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":       user.ID,
			"name":     user.Name,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// LogoutHandler deletes the session and clears the cookie.
func LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if session, err := services.ValidateSession(db.DB, cookie.Value); err == nil {
			services.DeleteSession(db.DB, session.Token)
		}
	}

	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// MeHandler returns the authenticated officer.
func MeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"role":     user.Role,
	})
}
