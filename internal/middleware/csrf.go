package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
)

const (
	csrfCookieName = "csrf_token"
	csrfFieldName  = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"

	// base64url (no padding) of 32 bytes
	csrfTokenLength = 43
)

type csrfCtxKey struct{}

// CSRF implements the double-submit cookie pattern for HTML forms. Every
// request gets a token cookie; unsafe methods must echo it in the csrf_token
// form field or the X-CSRF-Token header. onFailure renders the rejection
// (defaults to a bare 403).
func CSRF(secure bool, onFailure http.HandlerFunc) func(http.Handler) http.Handler {
	if onFailure == nil {
		onFailure = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "invalid csrf token", http.StatusForbidden)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(csrfCookieName); err == nil && len(c.Value) == csrfTokenLength {
				token = c.Value
			}
			if token == "" {
				token = newCSRFToken()
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfCtxKey{}, token))

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			sent := r.Header.Get(csrfHeaderName)
			if sent == "" {
				sent = r.PostFormValue(csrfFieldName)
			}
			if len(sent) != csrfTokenLength || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
				slog.DebugContext(r.Context(), "csrf rejected", "path", r.URL.Path)
				onFailure(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CSRFToken returns the token bound to the request by CSRF.
func CSRFToken(r *http.Request) string {
	t, _ := r.Context().Value(csrfCtxKey{}).(string)
	return t
}

func newCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
