package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/diewo77/go-shop/internal/models"
)

// AuthAPI wraps the /auth endpoints.
type AuthAPI struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Nom      string `json:"nom"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access/refresh token pair.
// Bad credentials yield ErrUnauthorized.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*models.Tokens, error) {
	var tokens models.Tokens
	if err := a.c.do(ctx, http.MethodPost, loginPath, "", loginRequest{Email: email, Password: password}, &tokens); err != nil {
		return nil, err
	}
	if tokens.Access == "" {
		return nil, &Error{Kind: KindUnknown, Detail: "login response carries no access token"}
	}
	return &tokens, nil
}

// Register creates an account. A duplicate email yields ErrConflict.
func (a *AuthAPI) Register(ctx context.Context, nom, email, password string) error {
	err := a.c.do(ctx, http.MethodPost, registerPath, "", registerRequest{Nom: nom, Email: email, Password: password}, nil)
	if err == nil {
		return nil
	}
	// The backend reports a duplicate email as a 400 keyed on "email".
	var e *Error
	if errors.As(err, &e) && e.Kind == KindInvalid && e.HasField("email") {
		e.Kind = KindConflict
	}
	return err
}

// CurrentUser returns the account owning accessToken.
func (a *AuthAPI) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	var u models.User
	if err := a.c.do(ctx, http.MethodGet, mePath, accessToken, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
