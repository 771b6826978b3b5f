package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	sessionName   = "reweara_session"
	sessionUserID = "user_id"
	ctxUserID     = "current_user_id"
)

// Sessions wraps the cookie store for end-user auth. Admin auth is a
// separate JWT path; the two never share credentials.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret string, secure bool) *Sessions {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: cs}
}

func (s *Sessions) SetUser(c echo.Context, userID uint) error {
	sess, _ := s.store.Get(c.Request(), sessionName)
	sess.Values[sessionUserID] = userID
	return sess.Save(c.Request(), c.Response())
}

func (s *Sessions) ClearUser(c echo.Context) error {
	sess, _ := s.store.Get(c.Request(), sessionName)
	delete(sess.Values, sessionUserID)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

func (s *Sessions) userID(c echo.Context) (uint, bool) {
	sess, err := s.store.Get(c.Request(), sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[sessionUserID].(uint)
	return id, ok && id != 0
}

// RequireUser rejects unauthenticated requests and stashes the user id for
// handlers.
func (s *Sessions) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := s.userID(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		c.Set(ctxUserID, id)
		return next(c)
	}
}

// UserID returns the authenticated user's id; zero when anonymous.
func UserID(c echo.Context) uint {
	if id, ok := c.Get(ctxUserID).(uint); ok {
		return id
	}
	return 0
}
