package handler

import (
	"net/http"
	"sync"

	"sigs.k8s.io/yaml"

	"github.com/kademe/manage-user/internal/api/middleware"
	"github.com/kademe/manage-user/internal/api/response"
)

// OpenAPIHandler serves the embedded API description. JSON is the default;
// ?format=yaml returns the document as written.
type OpenAPIHandler struct {
	doc []byte

	convert sync.Once
	asJSON  []byte
	convErr error
}

// NewOpenAPIHandler creates a handler for the YAML document doc.
func NewOpenAPIHandler(doc []byte) *OpenAPIHandler {
	return &OpenAPIHandler{doc: doc}
}

func (h *OpenAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context())

	if r.URL.Query().Get("format") == "yaml" {
		h.write(w, r, "application/yaml", h.doc)
		return
	}

	h.convert.Do(func() {
		h.asJSON, h.convErr = yaml.YAMLToJSON(h.doc)
	})
	if h.convErr != nil {
		log.Error("failed to convert OpenAPI document to JSON", "error", h.convErr)
		response.Err(w, http.StatusInternalServerError, "Beklenmeyen hata")
		return
	}
	h.write(w, r, "application/json", h.asJSON)
}

func (h *OpenAPIHandler) write(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		middleware.Logger(r.Context()).Error("failed to write OpenAPI response", "error", err)
	}
}
