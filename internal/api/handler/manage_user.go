package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/kademe/manage-user/internal/account"
	"github.com/kademe/manage-user/internal/api/middleware"
	"github.com/kademe/manage-user/internal/api/response"
	"github.com/kademe/manage-user/internal/metrics"
)

const maxBodyBytes = 1 << 20

// ManageUserHandler adapts net/http requests to account.Service.
type ManageUserHandler struct {
	svc     *account.Service
	metrics *metrics.Metrics
}

// NewManageUserHandler creates a new ManageUserHandler. m may be nil.
func NewManageUserHandler(svc *account.Service, m *metrics.Metrics) *ManageUserHandler {
	return &ManageUserHandler{svc: svc, metrics: m}
}

// ServeHTTP handles /functions/v1/manage-user and /api/manage-user for all methods;
// method checks belong to the service.
func (h *ManageUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := account.Request{
		Method:        r.Method,
		Authorization: r.Header.Get("Authorization"),
	}
	// Read errors, including the size cap, surface only after authentication.
	if r.Method == http.MethodPost && r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		req.Body, req.BodyErr = io.ReadAll(r.Body)
		if req.BodyErr != nil {
			middleware.Logger(r.Context()).Warn("failed to read request body", "error", req.BodyErr)
		}
	}

	res := h.svc.Handle(r.Context(), req)

	if res.Body == nil {
		response.PreflightOK(w)
	} else {
		response.JSON(w, res.Status, res.Body)
	}

	h.metrics.Observe(actionLabel(res.Action), res.Status, time.Since(start))
	middleware.Logger(r.Context()).Debug("manage-user handled",
		"method", r.Method, "action", res.Action, "status", res.Status)
}

// actionLabel bounds the metric label set: caller-supplied action names that
// are not supported collapse into "unknown".
func actionLabel(a account.Action) string {
	if a == "" || a.Known() {
		return string(a)
	}
	return "unknown"
}
