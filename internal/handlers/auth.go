package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"property-manager/internal/auth"
	"property-manager/internal/config"
	"property-manager/internal/ratelimit"
)

// AuthHandler issues and clears the admin session cookie.
type AuthHandler struct {
	auth auth.Authenticator
	cfg  config.AuthConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(a auth.Authenticator, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{auth: a, cfg: cfg}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(req.Password)
	if errors.Is(err, auth.ErrInvalidPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "비밀번호가 일치하지 않습니다."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	maxAge := int(h.cfg.SessionTTL().Seconds())
	c.SetCookie(h.cfg.CookieName, token, maxAge, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me handles GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	token, _ := c.Cookie(h.cfg.CookieName)
	c.JSON(http.StatusOK, gin.H{"isLoggedIn": h.auth.Verify(token)})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.CookieName); err == nil {
		h.auth.Logout(token)
	}
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ThrottleLogin caps login attempts so the admin password cannot be brute
// forced through the API.
func ThrottleLogin(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
			return
		}
		c.Next()
	}
}

// RequireSession gates mutating routes: requests without a live session are
// rejected with 401 before the handler runs.
func RequireSession(a auth.Authenticator, cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || !a.Verify(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
