package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/medtimer/medtimer-server/internal/api/middleware"
	"github.com/medtimer/medtimer-server/internal/api/openapi"
	"github.com/medtimer/medtimer-server/internal/api/recovery"
	"github.com/medtimer/medtimer-server/internal/services"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Medications  *services.MedicationService
	Entries      *services.EntryService
	IsHealthy    func() bool
	DefaultCount int
	Version      string
}

// NewRouter registers every route. Paths are matched exactly as written, so
// callers that are not NewHandler must normalize paths themselves.
func NewRouter(d Deps) (*mux.Router, error) {
	specHandler, err := NewSpecHandler(openapi.Document(d.Version))
	if err != nil {
		return nil, err
	}
	medHandler := NewMedicationHandler(d.Medications, d.DefaultCount)
	entryHandler := NewEntryHandler(d.Entries, d.DefaultCount)
	healthHandler := NewHealthHandler(d.IsHealthy)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Health, metrics & API description
	router.HandleFunc("/health/", healthHandler.CheckHealth).Methods(http.MethodGet)
	router.HandleFunc("/spec/", specHandler.JSON).Methods(http.MethodGet)
	router.HandleFunc("/spec/yaml/", specHandler.YAML).Methods(http.MethodGet)
	router.Handle("/metrics/", promhttp.Handler()).Methods(http.MethodGet)

	// Medications
	router.HandleFunc("/med/", medHandler.ListMedications).Methods(http.MethodGet)
	router.HandleFunc("/med/by-uuid/{uuid}/", medHandler.GetMedication).Methods(http.MethodGet)
	router.HandleFunc("/med/by-name/{name}/", medHandler.ListMedicationsByName).Methods(http.MethodGet)

	// Entries
	router.HandleFunc("/entry/", entryHandler.ListEntries).Methods(http.MethodGet)
	router.HandleFunc("/entry/by-entry-uuid/{uuid}/", entryHandler.GetEntry).Methods(http.MethodGet)
	router.HandleFunc("/entry/by-med-uuid/{uuid}/", entryHandler.ListEntriesByMedicationUUID).Methods(http.MethodGet)
	router.HandleFunc("/entry/by-med-name/{name}/", entryHandler.ListEntriesByMedicationName).Methods(http.MethodGet)

	return router, nil
}

// NewHandler wraps the router with the front-door middleware. Path
// normalization runs before routing, and recovery sits inside the access log
// so that recovered panics are logged with their 500 status.
func NewHandler(d Deps, log zerolog.Logger) (http.Handler, error) {
	router, err := NewRouter(d)
	if err != nil {
		return nil, err
	}
	return middleware.Chain(
		middleware.RequestID(log),
		middleware.AccessLog,
		recovery.Middleware,
		middleware.Compress,
		middleware.NormalizePath,
	)(router), nil
}
