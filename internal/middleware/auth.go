package middleware

import (
	"hellostore_backend/internal/session"
	"hellostore_backend/pkg/apperrors"
	"hellostore_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the identity attached by the access gate, or nil for
// requests on public paths.
func CurrentUser(c *gin.Context) *session.Data {
	value, exists := c.Get(string(contextkeys.IdentityKey))
	if !exists {
		return nil
	}
	data, ok := value.(*session.Data)
	if !ok {
		return nil
	}
	return data
}

// SessionID returns the session id attached by the access gate.
func SessionID(c *gin.Context) string {
	value, exists := c.Get(string(contextkeys.SessionIDKey))
	if !exists {
		return ""
	}
	id, _ := value.(string)
	return id
}

// RequireLogin rejects requests that reached a protected handler without an
// identity. The access gate normally guarantees one; this is the backstop
// for routes mounted outside the gate by mistake.
func RequireLogin(errs *apperrors.GinErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			errs.Handle(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin distinguishes the two refusals: no identity at all is 401,
// an identity without the admin role is 403.
func RequireAdmin(errs *apperrors.GinErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			errs.Handle(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			errs.Handle(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
