package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookbridge/bookbridge/pkg/helpers"
	"github.com/bookbridge/bookbridge/pkg/response"
)

// Context keys set by the guards for downstream handlers.
const (
	CtxUserIDKey   = "userID"
	CtxUserNameKey = "userName"
)

// RequireLogin guards the server-rendered pages. A missing or invalid
// session redirects to /login and stops the request; it never errors.
// On success the resolved identity is injected into the Gin context.
func RequireLogin(sessions *helpers.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		data, ok := sessions.Resolve(c.Request.Context(), token)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, data.UserID)
		c.Set(CtxUserNameKey, data.Name)
		c.Next()
	}
}

// APIAuth guards the JSON API group; same session resolution as
// RequireLogin but answers 401 instead of redirecting.
func APIAuth(sessions *helpers.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing session token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		data, ok := sessions.Resolve(c.Request.Context(), token)
		if !ok {
			resp := response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, data.UserID)
		c.Set(CtxUserNameKey, data.Name)
		c.Next()
	}
}
