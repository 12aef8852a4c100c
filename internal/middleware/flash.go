package middleware

import (
	"context"
	"net/http"
	"net/url"
)

const flashCookie = "flash"

type flashCtxKey struct{}

// SetFlash leaves a one-shot message code for the next rendered page.
func SetFlash(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(code), Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// Flash consumes the flash cookie: its code moves into the request context
// and the cookie is expired on the response.
func Flash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(flashCookie)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		code, err := url.QueryUnescape(c.Value)
		if err != nil {
			code = ""
		}
		http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), flashCtxKey{}, code)))
	})
}

// FlashFrom returns the message code consumed by Flash, if any.
func FlashFrom(r *http.Request) string {
	code, _ := r.Context().Value(flashCtxKey{}).(string)
	return code
}
