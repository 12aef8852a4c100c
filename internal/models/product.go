package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/go-shop/i18n"
)

// Product is a catalog item as returned by the backend.
// The storefront never mutates it.
type Product struct {
	ID               uint            `json:"id"`
	Nom              string          `json:"nom"`
	Description      string          `json:"description"`
	Prix             decimal.Decimal `json:"prix"`
	Quantite         int             `json:"quantite"`
	EstDisponible    bool            `json:"est_disponible"`
	DateCreation     time.Time       `json:"date_creation"`
	DateModification time.Time       `json:"date_modification"`
}

// Available reports whether the product can be bought.
func (p Product) Available() bool {
	return p.EstDisponible
}

// PrixLabel formats the price with two decimals and the euro sign.
func (p Product) PrixLabel() string {
	return p.Prix.StringFixed(2) + " €"
}

// StockLabel returns "N disponible(s)" in lang.
func (p Product) StockLabel(lang string) string {
	code := "product.stock_one"
	if p.Quantite > 1 {
		code = "product.stock_many"
	}
	return strconv.Itoa(p.Quantite) + " " + i18n.T(lang, code)
}

// ProductInput is the payload sent to the backend on creation.
// Prix travels as a string so the backend keeps its decimal precision.
type ProductInput struct {
	Nom         string          `json:"nom"`
	Description string          `json:"description"`
	Prix        decimal.Decimal `json:"prix"`
	Quantite    int             `json:"quantite"`
}
