package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diewo77/go-shop/auth"
	"github.com/diewo77/go-shop/internal/api"
	"github.com/diewo77/go-shop/internal/middleware"
	"github.com/diewo77/go-shop/internal/session"
	"github.com/diewo77/go-shop/validation"
)

type AuthHandler struct {
	api      AuthService
	sessions SessionManager
	log      *slog.Logger
}

func NewAuthHandler(a AuthService, sessions SessionManager, log *slog.Logger) *AuthHandler {
	return &AuthHandler{api: a, sessions: sessions, log: log}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Nom       string `form:"nom" validate:"required,max=150"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

var registerMessages = map[string]map[string]string{
	"nom":       {"required": "register.name_required"},
	"email":     {"required": "register.email_invalid", "email": "register.email_invalid"},
	"password":  {"too_short": "register.password_too_short"},
	"password2": {"must_match": "register.password_mismatch"},
}

// Mismatch is reported before length.
var registerFieldOrder = []string{"nom", "email", "password2", "password"}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "login.html", map[string]any{"Title": "login.page_title", "Form": loginForm{}})
		return
	}

	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	data := map[string]any{"Title": "login.page_title", "Form": loginForm{Email: form.Email}}

	v := make(validation.Violations)
	validation.Struct(form, v)
	if !v.Empty() {
		data["Errors"] = messages(v, nil)
		data["Status"] = http.StatusUnprocessableEntity
		render(w, r, "login.html", data)
		return
	}

	tokens, err := h.api.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			data["Error"] = "login.invalid_credentials"
		} else {
			h.log.ErrorContext(r.Context(), "login", "kind", api.KindOf(err).String(), "error", err)
			data["Error"] = "login.failed"
		}
		render(w, r, "login.html", data)
		return
	}

	user, err := h.api.CurrentUser(r.Context(), tokens.Access)
	if err != nil {
		h.log.ErrorContext(r.Context(), "fetch current user", "kind", api.KindOf(err).String(), "error", err)
		data["Error"] = "login.failed"
		render(w, r, "login.html", data)
		return
	}

	if err := h.startSession(w, r, session.Values{
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
		UserName:     user.Nom,
	}); err != nil {
		data["Error"] = "login.failed"
		render(w, r, "login.html", data)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "register.html", map[string]any{"Title": "register.page_title", "Form": registerForm{}})
		return
	}

	form := registerForm{
		Nom:       strings.TrimSpace(r.PostFormValue("nom")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
	}
	data := map[string]any{
		"Title": "register.page_title",
		"Form":  registerForm{Nom: form.Nom, Email: form.Email},
	}

	v := make(validation.Violations)
	validation.Struct(form, v)
	if !v.Empty() {
		msgs := messages(v, registerMessages)
		data["Errors"] = msgs
		data["Error"] = firstMessage(msgs, registerFieldOrder...)
		data["Status"] = http.StatusUnprocessableEntity
		render(w, r, "register.html", data)
		return
	}

	if err := h.api.Register(r.Context(), form.Nom, form.Email, form.Password); err != nil {
		switch {
		case errors.Is(err, api.ErrConflict):
			data["Error"] = "register.email_taken"
			data["Errors"] = map[string]string{"email": "register.email_taken"}
		case errors.Is(err, api.ErrUnavailable):
			data["Error"] = "register.unreachable"
		default:
			data["Error"] = "register.failed"
		}
		h.log.WarnContext(r.Context(), "register", "kind", api.KindOf(err).String(), "error", err)
		render(w, r, "register.html", data)
		return
	}

	// The account exists from here on; a failed auto-login falls back to the login page.
	tokens, err := h.api.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		h.log.ErrorContext(r.Context(), "login after register", "error", err)
		middleware.SetFlash(w, "auth.registered_login")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := h.startSession(w, r, session.Values{
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
		UserName:     form.Nom,
	}); err != nil {
		middleware.SetFlash(w, "auth.registered_login")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the server-side session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := auth.SessionFromContext(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), sess.ID); err != nil {
			h.log.ErrorContext(r.Context(), "destroy session", "error", err)
		}
	}
	auth.ClearSession(w)
	middleware.SetFlash(w, "auth.logged_out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Throttled re-renders the submitted form with a 429.
func (h *AuthHandler) Throttled(w http.ResponseWriter, r *http.Request) {
	name, title := "login.html", "login.page_title"
	data := map[string]any{"Form": loginForm{Email: r.PostFormValue("email")}}
	if r.URL.Path == "/register" {
		name, title = "register.html", "register.page_title"
		data["Form"] = registerForm{Nom: r.PostFormValue("nom"), Email: r.PostFormValue("email")}
	}
	data["Title"] = title
	data["Error"] = "auth.too_many_attempts"
	data["Status"] = http.StatusTooManyRequests
	render(w, r, name, data)
}

// startSession replaces any session already attached to the request.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, v session.Values) error {
	if prev, ok := auth.SessionFromContext(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), prev.ID); err != nil {
			h.log.WarnContext(r.Context(), "destroy previous session", "error", err)
		}
	}
	sess, err := h.sessions.Start(r.Context(), v)
	if err != nil {
		h.log.ErrorContext(r.Context(), "start session", "error", err)
		return err
	}
	auth.CreateSession(w, sess.ID)
	return nil
}

// CSRFFailed sends the user back to the form with a flash message.
func CSRFFailed(w http.ResponseWriter, r *http.Request) {
	middleware.SetFlash(w, "csrf.invalid")
	target := r.URL.Path
	if target == "/logout" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// LoginRequired leaves the "please log in" flash before RequireAuth redirects.
func LoginRequired(w http.ResponseWriter, _ *http.Request) {
	middleware.SetFlash(w, "auth.login_required")
}
