package view

import (
	"bytes"
	"crypto/sha1"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-shop/auth"
	"github.com/diewo77/go-shop/i18n"
)

//go:embed templates static
var files embed.FS

var (
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
	assetVersions sync.Map

	langResolver  = func(r *http.Request) string { return i18n.LangFromContext(r.Context()) }
	csrfResolver  = func(_ *http.Request) string { return "" }
	flashResolver = func(_ *http.Request) string { return "" }
	devMode       bool
)

// SetLangResolver allows the host app to provide a custom language resolver.
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetCSRFResolver sets the callback used by the csrfField template func.
func SetCSRFResolver(f func(*http.Request) string) {
	if f != nil {
		csrfResolver = f
	}
}

// SetFlashResolver sets the callback that yields the pending flash message code.
func SetFlashResolver(f func(*http.Request) string) {
	if f != nil {
		flashResolver = f
	}
}

// SetDev disables the template cache.
func SetDev(dev bool) { devMode = dev }

// Funcs returns the standard func map including i18n and simple helpers.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"year": func() int { return time.Now().Year() },
		"asset": func(p string) string {
			return resolveAsset(p)
		},
		"csrfField": func() template.HTML {
			tok := csrfResolver(r)
			if tok == "" {
				return ""
			}
			return template.HTML(`<input type="hidden" name="csrf_token" value="` + template.HTMLEscapeString(tok) + `">`)
		},
		// dateFR formats like toLocaleDateString('fr-FR').
		"dateFR": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Static serves the embedded static directory.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// resolveAsset returns /static/<name>?v=<hash> for cache busting.
func resolveAsset(rel string) string {
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") || strings.HasPrefix(rel, "//") {
		return rel
	}
	if v, ok := assetVersions.Load(rel); ok {
		return v.(string)
	}
	b, err := files.ReadFile(path.Join("static", rel))
	if err != nil {
		return "/static/" + rel
	}
	h := sha1.Sum(b)
	url := "/static/" + rel + "?v=" + fmt.Sprintf("%x", h[:8])
	assetVersions.Store(rel, url)
	return url
}

// ResetForTests clears caches.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
}

// parse builds layout + partials + page. Funcs are placeholders here and are
// rebound per request on a clone.
func parse(name string) (*template.Template, error) {
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok {
			return t, nil
		}
	}
	t, err := template.New("layout.html").
		Funcs(Funcs(&http.Request{})).
		ParseFS(files, "templates/layout.html", "templates/partials/*.html", path.Join("templates", name))
	if err != nil {
		return nil, err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t, nil
}

// Render executes page name (e.g. "index.html") inside the layout.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	// Ensure data map exists and inject common defaults to avoid template errors.
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		sess, loggedIn := auth.SessionFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
		if loggedIn {
			data["UserName"] = sess.UserName
		}
	}
	if _, exists := data["Errors"]; !exists {
		data["Errors"] = map[string]string{}
	}
	if _, exists := data["Flash"]; !exists {
		data["Flash"] = flashResolver(r)
	}
	base, err := parse(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(r))

	// Buffer so a failing template never leaves a half-written page.
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status, ok := data["Status"].(int); ok && status != 0 {
		w.WriteHeader(status)
	}
	_, err = buf.WriteTo(w)
	return err
}
