// Package api is the serverless entry point for /api/manage-user. Each invocation
// reads configuration from the environment and builds its own collaborators.
package api

import (
	"log/slog"
	"net/http"

	"github.com/kademe/manage-user/internal/account"
	"github.com/kademe/manage-user/internal/api/handler"
	"github.com/kademe/manage-user/internal/api/middleware"
	"github.com/kademe/manage-user/internal/app"
	"github.com/kademe/manage-user/internal/config"
	"github.com/kademe/manage-user/internal/database"
)

// Handler serves one manage-user invocation.
func Handler(w http.ResponseWriter, r *http.Request) {
	var allowedOrigin string
	svc := unconfigured()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
	} else {
		allowedOrigin = cfg.AllowedOrigin
		application, err := app.Build(r.Context(), cfg, database.WithMaxConns(1))
		if err != nil {
			slog.Error("failed to initialize", "error", err)
		} else {
			defer application.Close()
			svc = application.Service
		}
	}

	h := middleware.RequestID(middleware.Recovery(
		middleware.CORS(allowedOrigin)(handler.NewManageUserHandler(svc, nil)),
	))
	h.ServeHTTP(w, r)
}

// unconfigured answers pre-flight requests and rejects everything else with a
// configuration error.
func unconfigured() *account.Service {
	return account.NewService(account.Options{}, account.Deps{})
}
