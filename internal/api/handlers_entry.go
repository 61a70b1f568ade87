package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/medtimer/medtimer-server/internal/api/respond"
	"github.com/medtimer/medtimer-server/internal/services"
)

type EntryHandler struct {
	svc          *services.EntryService
	defaultCount int
}

func NewEntryHandler(svc *services.EntryService, defaultCount int) *EntryHandler {
	return &EntryHandler{svc: svc, defaultCount: defaultCount}
}

// ListEntries GET /entry/
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit := ParseQuery(r).CountOr(h.defaultCount)
	respond.WriteJSON(w, http.StatusOK, h.svc.ListEntries(r.Context(), limit))
}

// GetEntry GET /entry/by-entry-uuid/{uuid}/
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.svc.GetEntry(r.Context(), mux.Vars(r)["uuid"]))
}

// ListEntriesByMedicationUUID GET /entry/by-med-uuid/{uuid}/
func (h *EntryHandler) ListEntriesByMedicationUUID(w http.ResponseWriter, r *http.Request) {
	limit := ParseQuery(r).CountOr(h.defaultCount)
	respond.WriteJSON(w, http.StatusOK, h.svc.ListEntriesByMedicationUUID(r.Context(), mux.Vars(r)["uuid"], limit))
}

// ListEntriesByMedicationName GET /entry/by-med-name/{name}/
func (h *EntryHandler) ListEntriesByMedicationName(w http.ResponseWriter, r *http.Request) {
	limit := ParseQuery(r).CountOr(h.defaultCount)
	respond.WriteJSON(w, http.StatusOK, h.svc.ListEntriesByMedicationName(r.Context(), mux.Vars(r)["name"], limit))
}
