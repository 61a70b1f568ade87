package api

import (
	"net/http"

	"github.com/go-openapi/spec"

	"github.com/medtimer/medtimer-server/internal/api/openapi"
	"github.com/medtimer/medtimer-server/internal/api/respond"
)

// SpecHandler serves the API description, rendered once at startup.
type SpecHandler struct {
	json []byte
	yaml []byte
}

func NewSpecHandler(doc *spec.Swagger) (*SpecHandler, error) {
	j, err := openapi.JSON(doc)
	if err != nil {
		return nil, err
	}
	y, err := openapi.YAML(doc)
	if err != nil {
		return nil, err
	}
	return &SpecHandler{json: j, yaml: y}, nil
}

// JSON GET /spec/
func (h *SpecHandler) JSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.json)
}

// YAML GET /spec/yaml/
func (h *SpecHandler) YAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.yaml)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respond.WriteNotFound(w, "no route for "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.WriteMethodNotAllowed(w, r.Method+" not allowed on "+r.URL.Path)
}
