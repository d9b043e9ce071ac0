package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/editais-backend/internal/platform/ctxutil"
	"github.com/yungbote/editais-backend/internal/platform/logger"
	"github.com/yungbote/editais-backend/internal/services"
)

type AdminMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
	cookieName  string
}

func NewAdminMiddleware(log *logger.Logger, authService services.AuthService, cookieName string) *AdminMiddleware {
	middlewareLogger := log.With("middleware", "AdminMiddleware")
	return &AdminMiddleware{log: middlewareLogger, authService: authService, cookieName: cookieName}
}

// RequireAdmin lets a request through only with a valid admin session cookie.
func (am *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(am.cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing admin session", "code": "unauthorized"},
			})
			return
		}
		session, err := am.authService.Verify(token)
		if err != nil {
			am.log.Debug("admin session rejected", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": err.Error(), "code": "unauthorized"},
			})
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithAdminSession(c.Request.Context(), session))
		c.Next()
	}
}
