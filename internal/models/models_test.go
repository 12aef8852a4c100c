package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProduct_PrixLabel(t *testing.T) {
	tests := []struct {
		name string
		prix string
		want string
	}{
		{"integer price", "100", "100.00 €"},
		{"two decimals", "99.99", "99.99 €"},
		{"one decimal", "12.5", "12.50 €"},
		{"rounding", "0.005", "0.01 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Prix: decimal.RequireFromString(tt.prix)}
			if got := p.PrixLabel(); got != tt.want {
				t.Errorf("PrixLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProduct_StockLabel(t *testing.T) {
	tests := []struct {
		lang string
		qty  int
		want string
	}{
		{"fr", 0, "0 disponible"},
		{"fr", 1, "1 disponible"},
		{"fr", 2, "2 disponibles"},
		{"fr", 15, "15 disponibles"},
		{"en", 1, "1 available"},
		{"en", 15, "15 available"},
	}
	for _, tt := range tests {
		p := &Product{Quantite: tt.qty}
		if got := p.StockLabel(tt.lang); got != tt.want {
			t.Errorf("StockLabel(%s, %d) = %q, want %q", tt.lang, tt.qty, got, tt.want)
		}
	}
}

func TestProduct_DecodeBackendPayload(t *testing.T) {
	raw := `{"id":3,"nom":"MacBook Pro","description":"M3","prix":"2499.90","quantite":4,"est_disponible":true,"date_creation":"2025-03-14T09:30:00Z"}`
	var p Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !p.Prix.Equal(decimal.RequireFromString("2499.9")) {
		t.Errorf("Prix = %s, want 2499.9", p.Prix)
	}
	if !p.Available() {
		t.Error("expected product to be available")
	}
	if p.DateCreation.Year() != 2025 {
		t.Errorf("DateCreation = %v", p.DateCreation)
	}
}

func TestProductInput_EncodesPrixAsString(t *testing.T) {
	in := ProductInput{Nom: "Clavier", Prix: decimal.RequireFromString("49.90"), Quantite: 2}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := m["prix"].(string); !ok {
		t.Errorf("prix should be a JSON string, got %T", m["prix"])
	}
}
