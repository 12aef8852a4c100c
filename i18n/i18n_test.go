package i18n

import (
	"context"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "fr" {
		t.Fatalf("expected fr fallback")
	}
	if DetectLanguage("") != "fr" {
		t.Fatalf("expected default fr")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("fr", "required") != "Requis" {
		t.Fatalf("expected Requis")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to fr translation if exists
	if T("es", "required") != "Requis" {
		t.Fatalf("expected fr fallback for es lang")
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for code := range fr {
		if _, ok := en[code]; !ok {
			t.Errorf("missing en translation for %q", code)
		}
	}
	for code := range en {
		if _, ok := fr[code]; !ok {
			t.Errorf("missing fr translation for %q", code)
		}
	}
}

func TestLangFromContext(t *testing.T) {
	if got := LangFromContext(context.Background()); got != "fr" {
		t.Fatalf("expected fr default, got %s", got)
	}
	if got := LangFromContext(WithLang(context.Background(), "en")); got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
	if got := LangFromContext(WithLang(context.Background(), "de")); got != "fr" {
		t.Fatalf("unsupported lang should fall back to fr, got %s", got)
	}
}
