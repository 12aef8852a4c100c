package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/diewo77/go-shop/internal/session"
)

type ctxKey string

const (
	sessionCookieName = "session"
	sessionCtxKey     = ctxKey("session")
	cookieLifetime    = 14 * 24 * time.Hour
)

// Loader resolves a session id read from the cookie.
type Loader func(ctx context.Context, id string) (*session.Session, error)

var (
	secret       []byte
	secureCookie bool
)

// Configure sets the HMAC secret and the Secure flag of the session cookie.
func Configure(sessionSecret string, secure bool) {
	secret = []byte(sessionSecret)
	secureCookie = secure
}

// Secret returns the configured secret, SESSION_SECRET, or a dev default.
func Secret() []byte {
	if len(secret) > 0 {
		return secret
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("devsessionsecret")
}

func sign(value string) string {
	mac := hmac.New(sha256.New, Secret())
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie carrying the session id.
func CreateSession(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID + "." + sign(sessionID),
		Path:     "/",
		HttpOnly: true,
		Secure:   secureCookie,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieLifetime),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, Secure: secureCookie, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature and returns the session id.
func ParseSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	// Session ids are base64url, so the last dot separates the signature.
	i := strings.LastIndexByte(c.Value, '.')
	if i <= 0 || i == len(c.Value)-1 {
		return "", false
	}
	id, sig := c.Value[:i], c.Value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(sign(id))) {
		return "", false
	}
	return id, true
}

// WithSession stores the session in context.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// SessionFromContext returns the session attached by Middleware.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(*session.Session)
	return s, ok && s != nil && s.AccessToken != ""
}

// Middleware attaches the session to the request context if the cookie
// resolves. A cookie pointing to a dead session is cleared.
func Middleware(load Loader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := ParseSession(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := load(r.Context(), id)
			switch {
			case err == nil:
				r = r.WithContext(WithSession(r.Context(), sess))
			case errors.Is(err, session.ErrNotFound):
				ClearSession(w)
			default:
				slog.ErrorContext(r.Context(), "load session", "error", err)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects to /login when no session is attached. onDenied, when
// set, runs first (e.g. to leave a flash message).
func RequireAuth(onDenied func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionFromContext(r.Context()); !ok {
				if onDenied != nil {
					onDenied(w, r)
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
