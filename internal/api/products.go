package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/diewo77/go-shop/internal/models"
)

// ProductAPI wraps the /products endpoints.
type ProductAPI struct {
	c *Client
}

// page is the paginated list envelope. Only Results is used.
type page struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []models.Product `json:"results"`
}

// List fetches the first page of products. accessToken may be empty.
// A body without "results" yields an empty list; a bare array is accepted too.
func (p *ProductAPI) List(ctx context.Context, accessToken string) ([]models.Product, error) {
	var raw json.RawMessage
	if err := p.c.do(ctx, http.MethodGet, productsPath, accessToken, nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var items []models.Product
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &Error{Kind: KindUnknown, Status: http.StatusOK, Err: fmt.Errorf("invalid product list: %w", err)}
		}
		return items, nil
	}
	var pg page
	if err := json.Unmarshal(raw, &pg); err != nil {
		return nil, &Error{Kind: KindUnknown, Status: http.StatusOK, Err: fmt.Errorf("invalid product page: %w", err)}
	}
	if pg.Results == nil {
		return []models.Product{}, nil
	}
	return pg.Results, nil
}

// Create submits a new product. Non-admin accounts get ErrForbidden.
func (p *ProductAPI) Create(ctx context.Context, accessToken string, in models.ProductInput) (*models.Product, error) {
	var created models.Product
	if err := p.c.do(ctx, http.MethodPost, productCreatePath, accessToken, in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
