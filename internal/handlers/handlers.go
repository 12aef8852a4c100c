// Package handlers renders the storefront pages and drives the backend API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-shop/internal/models"
	"github.com/diewo77/go-shop/internal/session"
	"github.com/diewo77/go-shop/validation"
	"github.com/diewo77/go-shop/view"
)

// AuthService is the backend authentication API.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Tokens, error)
	Register(ctx context.Context, nom, email, password string) error
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)
}

// ProductService is the backend catalog API.
type ProductService interface {
	List(ctx context.Context, accessToken string) ([]models.Product, error)
	Create(ctx context.Context, accessToken string, in models.ProductInput) (*models.Product, error)
}

// SessionManager creates and destroys server-side sessions.
type SessionManager interface {
	Start(ctx context.Context, v session.Values) (*session.Session, error)
	Destroy(ctx context.Context, id string) error
}

// render writes the page or a 500 when the template fails.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		slog.ErrorContext(r.Context(), "render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// messages translates validation codes into page message codes. Codes
// without an entry are kept as-is so the generic catalog entry applies.
func messages(v validation.Violations, table map[string]map[string]string) map[string]string {
	out := make(map[string]string, len(v))
	for field, code := range v {
		if msg, ok := table[field][code]; ok {
			out[field] = msg
			continue
		}
		out[field] = code
	}
	return out
}

// firstMessage picks the banner message following the form's field order.
func firstMessage(msgs map[string]string, order ...string) string {
	for _, f := range order {
		if m, ok := msgs[f]; ok {
			return m
		}
	}
	return ""
}
