// Package i18n holds the storefront messages in French (default) and English.
package i18n

import (
	"context"
	"strings"
)

const DefaultLang = "fr"

type ctxKey struct{}

// WithLang stores the request language in context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFromContext returns the language set by WithLang, or DefaultLang.
func LangFromContext(ctx context.Context) string {
	if l, ok := ctx.Value(ctxKey{}).(string); ok && Supported(l) {
		return l
	}
	return DefaultLang
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// DetectLanguage picks "en" when the Accept-Language header prefers English,
// and falls back to French otherwise.
func DetectLanguage(header string) string {
	first := strings.TrimSpace(strings.Split(header, ",")[0])
	first = strings.ToLower(strings.Split(first, ";")[0])
	if strings.HasPrefix(first, "en") {
		return "en"
	}
	return DefaultLang
}

// T translates code. Unknown languages fall back to French; unknown codes
// are returned as-is.
func T(lang, code string) string {
	if cat, ok := catalogs[lang]; ok {
		if msg, ok := cat[code]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLang][code]; ok {
		return msg
	}
	return code
}

var catalogs = map[string]map[string]string{
	"fr": fr,
	"en": en,
}
