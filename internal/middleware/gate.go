package middleware

import (
	"net/http"
	"path"
	"strings"

	"hellostore_backend/internal/logger"
	"hellostore_backend/internal/session"
	"hellostore_backend/pkg/apperrors"
	"hellostore_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Paths reachable without a session. Everything else behind the gate
// requires a live, non-expired session.
var publicPaths = map[string]struct{}{
	"/":                      {},
	"/healthz":               {},
	"/products":              {},
	"/users/login":           {},
	"/users/register":        {},
	"/users/logout":          {},
	"/users/password/forgot": {},
}

var publicPrefixes = []string{
	"/users/verify/",
	"/users/password/reset/",
}

var staticExtensions = map[string]struct{}{
	".css": {}, ".js": {}, ".png": {}, ".jpg": {}, ".jpeg": {},
	".gif": {}, ".svg": {}, ".ico": {}, ".woff": {}, ".woff2": {},
	".ttf": {}, ".map": {}, ".webp": {},
}

const loginRedirect = "/users/login?expired=1"

func isPublicPath(p string) bool {
	if _, ok := publicPaths[p]; ok {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	if _, ok := staticExtensions[strings.ToLower(path.Ext(p))]; ok {
		return true
	}
	return false
}

// AccessGate enforces the session lifecycle on every request. Public paths
// pass through untouched. For everything else it resolves the session,
// destroys it when the idle window has lapsed, and otherwise slides the
// window forward and attaches the identity to the request context.
type AccessGate struct {
	sessions *session.Manager
	errs     *apperrors.GinErrorHandler
}

func NewAccessGate(sessions *session.Manager, errs *apperrors.GinErrorHandler) *AccessGate {
	return &AccessGate{sessions: sessions, errs: errs}
}

func (g *AccessGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		id, data, err := g.sessions.Current(c)
		if err != nil {
			if apperrors.Is(err, session.ErrNotFound) || id == "" {
				redirectToLogin(c)
				return
			}
			g.errs.Handle(c, apperrors.InternalError(err))
			c.Abort()
			return
		}

		if g.sessions.Expired(data) {
			// Destroy failing is not a reason to let the request through;
			// the store TTL will reap the record eventually.
			if derr := g.sessions.Destroy(c, id); derr != nil {
				logger.CtxError(c.Request.Context(), "failed to destroy expired session",
					"error", derr, "session_id", id)
			}
			redirectToLogin(c)
			return
		}

		if err := g.sessions.Touch(c.Request.Context(), id, data); err != nil {
			g.errs.Handle(c, apperrors.InternalError(err))
			c.Abort()
			return
		}

		c.Set(string(contextkeys.SessionIDKey), id)
		c.Set(string(contextkeys.IdentityKey), data)

		ctx := logger.WithUserID(c.Request.Context(), data.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": apperrors.CodeUnauthorized, "message": "Session expired. Please log in again."},
		})
		return
	}
	c.Redirect(http.StatusSeeOther, loginRedirect)
	c.Abort()
}
