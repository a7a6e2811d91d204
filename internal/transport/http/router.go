// Package httptransport assembles the chi router: public wallet endpoints,
// key-gated provider intake, and JWT-gated operator endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kyc-gateway/internal/platform/middleware"
	"kyc-gateway/pkg/platform/httputil"
)

// Registrar mounts a feature's endpoints on a router group.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router mounts. Nil registrars are skipped so
// deployments can run without the optional provider integrations.
type Deps struct {
	Logger *slog.Logger

	CredentialRequests Registrar
	Prove              Registrar
	HyperVerge         Registrar
	Auth               Registrar
	Admin              Registrar

	JWTValidator middleware.JWTValidator
	AdminKeyHash string

	RequestTimeout time.Duration
}

// NewRouter builds the full route tree with the shared middleware chain.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Wallet-facing surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		mount(r, deps.CredentialRequests)
		mount(r, deps.Auth)
	})

	// Provider intake, gated by the shared operator key.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAdminKey(deps.AdminKeyHash, deps.Logger))
		mount(r, deps.Prove)
		mount(r, deps.HyperVerge)
	})

	// Operator inspection, gated by JWT.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))
		mount(r, deps.Admin)
	})

	return r
}

func mount(r chi.Router, registrar Registrar) {
	if registrar != nil {
		registrar.Register(r)
	}
}
