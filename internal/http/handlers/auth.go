package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/editais-backend/internal/http/response"
	"github.com/yungbote/editais-backend/internal/platform/logger"
	"github.com/yungbote/editais-backend/internal/services"
)

// SessionCookie carries the signed admin session.
const SessionCookie = "admin_session"

type AuthHandler struct {
	log          *logger.Logger
	authService  services.AuthService
	secureCookie bool
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService, secureCookie: secureCookie}
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, expiresAt, err := ah.authService.Login(req.Password)
	if err != nil {
		ah.log.Warn("admin login rejected", "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"success": false})
		return
	}
	ah.setCookie(c, token, expiresAt)
	response.RespondOK(c, gin.H{"success": true})
}

// POST /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	ah.setCookie(c, "", time.Unix(0, 0))
	response.RespondOK(c, gin.H{"success": true})
}

func (ah *AuthHandler) setCookie(c *gin.Context, value string, expiresAt time.Time) {
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   ah.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(time.Until(expiresAt).Seconds())
	}
	http.SetCookie(c.Writer, cookie)
}
