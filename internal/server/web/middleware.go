package web

import (
	"context"
	"errors"
	"net/http"

	"motoreg/internal/common"
	"motoreg/internal/server/auth"
)

type ctxKey string

const userKey ctxKey = "user"

const sessionCookieName = "session_id"

// CurrentUser returns the username requireAuth stored in the request
// context, or "" for unauthenticated requests.
func CurrentUser(ctx context.Context) string {
	u, _ := ctx.Value(userKey).(string)
	return u
}

// resolveCredential picks the token to verify. The explicit request
// header wins; only when it is absent is the session cookie consulted.
// sid is non-empty only when the token came out of the session cache, so
// the deny path knows whether there is a cache entry to clear.
func (s *Server) resolveCredential(r *http.Request) (token, sid string) {
	if t := r.Header.Get(common.AccessTokenHeaderName); t != "" {
		return t, ""
	}
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", ""
	}
	t, err := s.sessions.Get(r.Context(), c.Value)
	if err != nil {
		return "", ""
	}
	return t, c.Value
}

// deny rejects an unauthenticated request. Machine callers get a 401
// with a parseable message and no redirect; browsers get their stale
// session cleared and a redirect to the login page.
func (s *Server) deny(w http.ResponseWriter, r *http.Request, sid, msg string) {
	f := RequestFormat(r)
	if f.Machine() {
		writeMessage(w, f, http.StatusUnauthorized, msg)
		return
	}
	if sid != "" {
		if err := s.sessions.Delete(r.Context(), sid); err != nil {
			s.logger.Error(r.Context(), "session cleanup failed", "error", err.Error())
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// requireAuth is the single authorization gate in front of every record
// operation. Whatever the transport, exactly one token verification runs
// per request.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, sid := s.resolveCredential(r)
		if token == "" {
			s.deny(w, r, sid, "Token is missing!")
			return
		}

		username, err := auth.GetUsernameFromToken(token, s.jwtSecret)
		if err != nil {
			msg := "Token is invalid!"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Token expired!"
			}
			s.logger.Warn(r.Context(), "rejected credential", "path", r.URL.Path, "reason", err.Error())
			s.deny(w, r, sid, msg)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, username)
		next(w, r.WithContext(ctx))
	}
}

func setSessionCookie(w http.ResponseWriter, sid string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
