package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/customer"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/report"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/web"
)

type RouterDeps struct {
	Reports       report.Service
	Customers     customer.Service
	Auth          auth.Service
	Sessions      auth.SessionStore
	Renderer      *web.Renderer
	SecureCookies bool
}

// NewRouter wires the back-office surface: public login routes and the
// role-gated admin subtree.
func NewRouter(deps RouterDeps) *chi.Mux {
	flash := web.NewFlashCodec(deps.SecureCookies)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(auth.Authenticate(deps.Sessions))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, reportsPath, http.StatusFound)
	})

	NewAuthHandler(deps.Auth, deps.Renderer, flash, deps.SecureCookies).RegisterRoutes(router)

	router.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleManager, auth.RoleStaff))
		NewReportHandler(deps.Reports, deps.Renderer, flash).RegisterRoutes(r)
		NewUserHandler(deps.Customers, deps.Renderer, flash).RegisterRoutes(r)
	})

	return router
}
