package middleware

import (
	"errors"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/marketplace-service/internal/auth"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/httpx"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
)

// CurrentUser resolves the session cookie, if any, into the request principal.
// Requests without a valid session continue anonymously.
func CurrentUser(sessions auth.SessionStore, cookieName string, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		p, err := sessions.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			auth.SetPrincipal(c, p)
		case errors.Is(err, apperror.ErrUnauthenticated):
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
		default:
			log.Warn("session lookup failed", zap.Error(err))
		}
		c.Next()
	}
}

// RequireLogin sends anonymous callers to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.CurrentPrincipal(c) == nil {
			httpx.SeeOther(c, httpx.LoginPath+"?"+url.Values{"next": {c.Request.URL.Path}}.Encode())
			c.Abort()
			return
		}
		c.Next()
	}
}
