package handler

import (
	"context"
	"net/http"

	"github.com/kademe/manage-user/internal/api/middleware"
	"github.com/kademe/manage-user/internal/api/response"
)

// DBPinger checks database connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	dbPinger   DBPinger
	version    string
	configured bool
}

// NewHealthHandler creates a new HealthHandler. pinger may be nil when the
// relational store is reached over REST. configured reports whether the
// service-role key is present.
func NewHealthHandler(pinger DBPinger, version string, configured bool) *HealthHandler {
	return &HealthHandler{
		dbPinger:   pinger,
		version:    version,
		configured: configured,
	}
}

type databaseStatus struct {
	Mode      string `json:"mode"`
	Connected *bool  `json:"connected,omitempty"`
}

type healthData struct {
	Status     string         `json:"status"`
	Version    string         `json:"version"`
	Configured bool           `json:"configured"`
	Database   databaseStatus `json:"database"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.configured {
		status = "degraded"
	}

	db := databaseStatus{Mode: "rest"}
	if h.dbPinger != nil {
		db.Mode = "postgres"
		connected := true
		if err := h.dbPinger.Ping(r.Context()); err != nil {
			middleware.Logger(r.Context()).Warn("database ping failed", "error", err)
			connected = false
			status = "degraded"
		}
		db.Connected = &connected
	}

	response.JSON(w, http.StatusOK, healthData{
		Status:     status,
		Version:    h.version,
		Configured: h.configured,
		Database:   db,
	})
}
