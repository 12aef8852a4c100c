package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/diewo77/go-shop/auth"
	"github.com/diewo77/go-shop/internal/handlers"
	"github.com/diewo77/go-shop/internal/middleware"
	"github.com/diewo77/go-shop/internal/session"
	"github.com/diewo77/go-shop/view"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Auth          handlers.AuthService
	Products      handlers.ProductService
	Sessions      *session.Manager
	Limiter       *middleware.RateLimiter
	Logger        *slog.Logger
	SecureCookies bool
	Dev           bool
}

// App is the main application handler that sets up all routes.
type App struct {
	router chi.Router
	deps   Deps
}

// NewApp creates a new application with all routes configured.
func NewApp(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	// Resolver callbacks keep the view package free of middleware imports.
	view.SetLangResolver(middleware.LangFrom)
	view.SetCSRFResolver(middleware.CSRFToken)
	view.SetFlashResolver(middleware.FlashFrom)
	view.SetDev(deps.Dev)

	app := &App{router: chi.NewRouter(), deps: deps}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	r := a.router
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(a.deps.Logger))
	r.Use(chimw.Recoverer)

	// ─────────────────────────────────────────────────────────────────────────
	// Infrastructure (no session, no csrf)
	// ─────────────────────────────────────────────────────────────────────────
	r.Get("/healthz", handlers.Health(a.deps.Sessions))
	r.Handle("/static/*", http.StripPrefix("/static/", view.Static()))

	ah := handlers.NewAuthHandler(a.deps.Auth, a.deps.Sessions, a.deps.Logger)
	ph := handlers.NewProductHandler(a.deps.Products, a.deps.Sessions, a.deps.Logger)
	throttle := middleware.RateLimit(a.deps.Limiter, ah.Throttled)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Prefs)
		r.Use(middleware.Flash)
		r.Use(auth.Middleware(a.deps.Sessions.Load))
		r.Use(middleware.CSRF(a.deps.SecureCookies, handlers.CSRFFailed))

		// ─────────────────────────────────────────────────────────────────
		// Public pages
		// ─────────────────────────────────────────────────────────────────
		r.Get("/", ph.List)
		r.With(throttle).Get("/login", ah.Login)
		r.With(throttle).Post("/login", ah.Login)
		r.With(throttle).Get("/register", ah.Register)
		r.With(throttle).Post("/register", ah.Register)
		r.Post("/logout", ah.Logout)

		// ─────────────────────────────────────────────────────────────────
		// Protected pages
		// ─────────────────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(handlers.LoginRequired))
			r.Get("/add-product", ph.New)
			r.Post("/add-product", ph.Create)
		})
	})
}
