package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-shop/internal/models"
)

func newBackend(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/v1/")
}

func TestLogin_Success(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jean@exemple.fr", body["email"])
		assert.Equal(t, "secret123", body["password"])
		json.NewEncoder(w).Encode(map[string]string{"access": "acc", "refresh": "ref"})
	})

	tokens, err := c.Auth().Login(context.Background(), "jean@exemple.fr", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "acc", tokens.Access)
	assert.Equal(t, "ref", tokens.Refresh)
}

func TestLogin_BadCredentials(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found with the given credentials"})
	})

	_, err := c.Auth().Login(context.Background(), "x@y.z", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrForbidden)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "No active account")
}

func TestLogin_BackendUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.Auth().Login(context.Background(), "a@b.c", "password")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_ContextTimeout(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"access": "a", "refresh": "r"})
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Auth().Login(ctx, "a@b.c", "password")
	require.Error(t, err)
	assert.Equal(t, KindUnavailable, KindOf(err))
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/register/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Jean Dupont", body["nom"])
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string][]string{"email": {"utilisateur avec ce champ email existe déjà."}})
	})

	err := c.Auth().Register(context.Background(), "Jean Dupont", "jean@exemple.fr", "motdepasse")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_OtherValidationStaysInvalid(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string][]string{"password": {"Ce mot de passe est trop court."}})
	})

	err := c.Auth().Register(context.Background(), "Jean", "jean@exemple.fr", "court")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.HasField("password"))
}

func TestRegister_Success(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 7, "nom": "Jean", "email": "jean@exemple.fr"})
	})
	require.NoError(t, c.Auth().Register(context.Background(), "Jean", "jean@exemple.fr", "motdepasse"))
}

func TestCurrentUser_SendsBearerToken(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/me/", r.URL.Path)
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "nom": "Admin", "email": "admin@exemple.fr", "is_active": true})
	})

	u, err := c.Auth().CurrentUser(context.Background(), "acc")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Nom)
	assert.True(t, u.IsActive)
}

func TestProductsList_ReadsResults(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"count":2,"next":null,"previous":null,"results":[
			{"id":1,"nom":"A","prix":"10.00","quantite":3,"est_disponible":true,"date_creation":"2025-01-02T10:00:00Z"},
			{"id":2,"nom":"B","prix":"5.50","quantite":0,"est_disponible":false,"date_creation":"2025-01-01T10:00:00Z"}]}`))
	})

	items, err := c.Products().List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Nom)
	assert.True(t, items[1].Prix.Equal(decimal.RequireFromString("5.5")))
	assert.False(t, items[1].Available())
}

func TestProductsList_MissingResultsIsEmpty(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0}`))
	})

	items, err := c.Products().List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestProductsList_BareArray(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":9,"nom":"C","prix":"1.00","quantite":1,"est_disponible":true}]`))
	})

	items, err := c.Products().List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(9), items[0].ID)
}

func TestProductsList_ServerError(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Products().List(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestProductsCreate_Forbidden(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/products/create/", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Vous n'avez pas la permission d'effectuer cette action."})
	})

	in := models.ProductInput{Nom: "X", Prix: decimal.RequireFromString("1"), Quantite: 1}
	_, err := c.Products().Create(context.Background(), "user-token", in)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProductsCreate_Success(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "99.99", body["prix"])
		assert.EqualValues(t, 10, body["quantite"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 12, "nom": body["nom"], "description": "", "prix": "99.99", "quantite": 10})
	})

	in := models.ProductInput{Nom: "MacBook Pro", Prix: decimal.RequireFromString("99.99"), Quantite: 10}
	p, err := c.Products().Create(context.Background(), "admin-token", in)
	require.NoError(t, err)
	assert.Equal(t, uint(12), p.ID)
	assert.Equal(t, "MacBook Pro", p.Nom)
}

func TestError_MessageListsFields(t *testing.T) {
	e := &Error{Kind: KindInvalid, Status: 400, Fields: map[string][]string{"prix": {"x"}, "nom": {"y"}}}
	assert.Equal(t, "backend invalid (status 400) fields=nom,prix", e.Error())
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}
