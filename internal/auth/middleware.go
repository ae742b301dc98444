package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campusportal/internal/session"
	"campusportal/internal/view"
)

// ContextKey is the gin context key holding the resolved *session.Session.
const ContextKey = "portalSession"

// RequireSession is the authentication gate: it admits requests carrying a
// valid bearer token for a live session, and answers everything else with a
// redirect to the sign-in screen plus an echo of the originally requested
// path so the client can return there after login.
func RequireSession(signingKey, issuer string, mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		deny := func() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "SIGN_IN",
				"from":     c.Request.URL.Path,
			})
		}

		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			deny()
			return
		}
		claims, err := Parse(strings.TrimSpace(authz[len("bearer "):]), signingKey, issuer)
		if err != nil {
			deny()
			return
		}
		sess, err := mgr.Get(claims.SessionID)
		if err != nil {
			deny()
			return
		}
		c.Set(ContextKey, sess)
		c.Next()
	}
}

// RequireRole is the role gate, independent of authentication: the session
// exists, the question is whether its role may see this view. Denied
// requests are pointed at the unauthorized screen. This is a UI convenience,
// not a security boundary.
func RequireRole(allowed ...view.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := FromContext(c)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "SIGN_IN",
				"from":     c.Request.URL.Path,
			})
			return
		}
		role := sess.Role()
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "role not permitted",
			"redirect": "UNAUTHORIZED",
		})
	}
}

// FromContext returns the session placed by RequireSession, or nil.
func FromContext(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
