package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oggyb/sparkswipe/internal/session"
)

// userIDKey is the gin context key the auth middleware stores the
// resolved user id under.
const userIDKey = "auth.user_id"

// Auth resolves the session cookie and enforces the two login
// conventions of the app: page routes bounce unauthenticated callers to
// the login page, API routes answer a JSON error envelope.
type Auth struct {
	sessions   *session.Store
	cookieName string
	ttlSeconds int
	logger     *slog.Logger
}

func NewAuth(sessions *session.Store, cookieName string, ttlSeconds int, logger *slog.Logger) *Auth {
	return &Auth{
		sessions:   sessions,
		cookieName: cookieName,
		ttlSeconds: ttlSeconds,
		logger:     logger,
	}
}

// Establish binds a fresh session to userID and sets the cookie.
func (a *Auth) Establish(c *gin.Context, userID uint64) error {
	token, err := a.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	c.SetCookie(a.cookieName, token, a.ttlSeconds, "/", "", false, true)
	return nil
}

// Clear destroys the caller's session and expires the cookie.
func (a *Auth) Clear(c *gin.Context) {
	if token, err := c.Cookie(a.cookieName); err == nil {
		_ = a.sessions.Destroy(c.Request.Context(), token)
	}
	c.SetCookie(a.cookieName, "", -1, "/", "", false, true)
}

// resolve returns the user id behind the request's session cookie.
func (a *Auth) resolve(c *gin.Context) (uint64, bool) {
	token, err := c.Cookie(a.cookieName)
	if err != nil {
		return 0, false
	}
	userID, ok, err := a.sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		a.logger.Error("session resolve failed", "err", err)
		return 0, false
	}
	return userID, ok
}

// RequirePage guards browser-facing routes: no valid session means a
// redirect to the login page.
func (a *Auth) RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := a.resolve(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireAPI guards JSON routes: no valid session means
// {"status":"error"} and nothing else, matching what the swipe and chat
// clients expect.
func (a *Auth) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := a.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user id set by the middleware.
func CurrentUser(c *gin.Context) uint64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}
