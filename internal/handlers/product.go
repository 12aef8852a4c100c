package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diewo77/go-shop/auth"
	"github.com/diewo77/go-shop/internal/api"
	"github.com/diewo77/go-shop/internal/models"
	"github.com/diewo77/go-shop/validation"
)

type ProductHandler struct {
	products ProductService
	sessions SessionManager
	log      *slog.Logger
}

func NewProductHandler(products ProductService, sessions SessionManager, log *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, sessions: sessions, log: log}
}

// productForm echoes the submitted values back into the page.
type productForm struct {
	Nom         string
	Description string
	Prix        string
	Quantite    string
}

// productInput is validated before any backend call.
type productInput struct {
	Nom      string          `form:"nom" validate:"required,max=200"`
	Prix     decimal.Decimal `form:"prix" validate:"gt=0"`
	Quantite int             `form:"quantite" validate:"gte=0"`
}

var productMessages = map[string]map[string]string{
	"nom": {
		"required": "product.name_required",
		"too_long": "product.name_too_long",
	},
	"prix": {
		"must_be_positive": "product.price_positive",
		"invalid_number":   "product.price_positive",
		"out_of_range":     "product.price_range",
	},
	"quantite": {
		"must_be_non_negative": "product.quantity_positive",
		"invalid_number":       "product.quantity_positive",
	},
}

var productFieldOrder = []string{"nom", "prix", "quantite"}

// Backend price column: DecimalField(max_digits=10, decimal_places=2).
const (
	prixMaxDigits = 10
	prixPlaces    = 2
	prixMaxLen    = 32
)

// List renders the home page with the catalog.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	token := ""
	if sess, ok := auth.SessionFromContext(r.Context()); ok {
		token = sess.AccessToken
	}
	data := map[string]any{"Title": "home.page_title"}
	products, err := h.products.List(r.Context(), token)
	if err != nil {
		h.log.ErrorContext(r.Context(), "list products", "kind", api.KindOf(err).String(), "error", err)
		data["LoadError"] = true
	} else {
		data["Products"] = products
	}
	render(w, r, "index.html", data)
}

// New renders the empty creation form.
func (h *ProductHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "add-product.html", map[string]any{
		"Title": "add.page_title",
		"Form":  productForm{},
	})
}

// parseProduct reads the form, returning the echo values, the typed input
// and any violations. Unparseable numbers are violations, not errors.
func parseProduct(r *http.Request) (productForm, models.ProductInput, validation.Violations) {
	form := productForm{
		Nom:         strings.TrimSpace(r.PostFormValue("nom")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Prix:        strings.TrimSpace(r.PostFormValue("prix")),
		Quantite:    strings.TrimSpace(r.PostFormValue("quantite")),
	}
	v := make(validation.Violations)

	var prix decimal.Decimal
	if len(form.Prix) > prixMaxLen {
		v.Add("prix", "out_of_range")
	} else if d, err := decimal.NewFromString(form.Prix); err != nil {
		v.Add("prix", "invalid_number")
	} else {
		prix = d
		validation.DecimalFits("prix", prix, prixMaxDigits, prixPlaces, v)
	}
	qty, err := strconv.Atoi(form.Quantite)
	if err != nil {
		v.Add("quantite", "invalid_number")
	}
	validation.Struct(productInput{Nom: form.Nom, Prix: prix, Quantite: qty}, v)

	return form, models.ProductInput{
		Nom:         form.Nom,
		Description: form.Description,
		Prix:        prix,
		Quantite:    qty,
	}, v
}

// Create validates locally then posts the product to the backend.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	form, in, v := parseProduct(r)
	data := map[string]any{
		"Title": "add.page_title",
		"Form":  form,
	}
	if !v.Empty() {
		msgs := messages(v, productMessages)
		data["Errors"] = msgs
		data["Error"] = firstMessage(msgs, productFieldOrder...)
		data["Status"] = http.StatusUnprocessableEntity
		render(w, r, "add-product.html", data)
		return
	}

	created, err := h.products.Create(r.Context(), sess.AccessToken, in)
	switch {
	case err == nil:
		h.log.InfoContext(r.Context(), "product created", "id", created.ID, "nom", created.Nom)
		data["Form"] = productForm{}
		data["Success"] = "product.created"
		data["RedirectTo"] = "/"
	case errors.Is(err, api.ErrForbidden):
		data["Error"] = "product.forbidden"
	case errors.Is(err, api.ErrUnauthorized):
		if derr := h.sessions.Destroy(r.Context(), sess.ID); derr != nil {
			h.log.ErrorContext(r.Context(), "destroy expired session", "error", derr)
		}
		auth.ClearSession(w)
		data["Error"] = "session.expired"
		data["RedirectTo"] = "/login"
	default:
		h.log.ErrorContext(r.Context(), "create product", "kind", api.KindOf(err).String(), "error", err)
		data["Error"] = "product.create_failed"
		var apiErr *api.Error
		if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
			data["Errors"] = backendFieldErrors(apiErr)
		}
	}
	render(w, r, "add-product.html", data)
}

// backendFieldErrors surfaces the first backend message per field.
func backendFieldErrors(e *api.Error) map[string]string {
	out := make(map[string]string, len(e.Fields))
	for field, msgs := range e.Fields {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}
