package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/medtimer/medtimer-server/internal/api/respond"
	"github.com/medtimer/medtimer-server/internal/services"
)

// MedicationHandler is a thin HTTP transport over MedicationService. It
// always answers 200; failures below it surface as [] or null.
type MedicationHandler struct {
	svc          *services.MedicationService
	defaultCount int
}

func NewMedicationHandler(svc *services.MedicationService, defaultCount int) *MedicationHandler {
	return &MedicationHandler{svc: svc, defaultCount: defaultCount}
}

// ListMedications GET /med/
func (h *MedicationHandler) ListMedications(w http.ResponseWriter, r *http.Request) {
	limit := ParseQuery(r).CountOr(h.defaultCount)
	respond.WriteJSON(w, http.StatusOK, h.svc.ListMedications(r.Context(), limit))
}

// GetMedication GET /med/by-uuid/{uuid}/
func (h *MedicationHandler) GetMedication(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.svc.GetMedication(r.Context(), mux.Vars(r)["uuid"]))
}

// ListMedicationsByName GET /med/by-name/{name}/
func (h *MedicationHandler) ListMedicationsByName(w http.ResponseWriter, r *http.Request) {
	limit := ParseQuery(r).CountOr(h.defaultCount)
	respond.WriteJSON(w, http.StatusOK, h.svc.ListMedicationsByName(r.Context(), mux.Vars(r)["name"], limit))
}
