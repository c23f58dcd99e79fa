package api

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kademe/manage-user/internal/api/handler"
	"github.com/kademe/manage-user/internal/api/middleware"
)

// OpenAPISpec is the YAML description served at /openapi.json.
//
//go:embed openapi.yaml
var OpenAPISpec []byte

// Manage-user mount points: the edge-function path and the serverless path.
const (
	EdgeFunctionPath = "/functions/v1/manage-user"
	ServerlessPath   = "/api/manage-user"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	ManageUser    http.Handler
	DBPinger      handler.DBPinger
	Version       string
	Configured    bool
	AllowedOrigin string
	Metrics       http.Handler
	OpenAPISpec   []byte
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version, deps.Configured)
	r.Get("/health", healthHandler.ServeHTTP)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	if len(deps.OpenAPISpec) > 0 {
		r.Method(http.MethodGet, "/openapi.json", handler.NewOpenAPIHandler(deps.OpenAPISpec))
	}

	if deps.ManageUser != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(deps.AllowedOrigin))
			r.Handle(EdgeFunctionPath, deps.ManageUser)
			r.Handle(ServerlessPath, deps.ManageUser)
		})
	}

	return r
}
