package httpapi

import (
	"net/http"
	"strings"

	"harborops.org/internal/audit"
	"harborops.org/internal/port"
)

func (a *API) handleVesselsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		vessels, err := a.store.ListVessels(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, vessels)
	case http.MethodPost:
		a.createVessel(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleVesselResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/vessels/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		v, err := a.store.GetVessel(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	case http.MethodPatch:
		a.updateVessel(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch)
	}
}

func (a *API) createVessel(w http.ResponseWriter, r *http.Request) {
	var in port.InsertVessel
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := in.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	v, err := a.store.CreateVessel(r.Context(), in)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "vessel.create", map[string]any{
		"vessel_id": v.ID,
		"name":      v.Name,
	})
	w.Header().Set("Location", "/api/vessels/"+v.ID)
	writeJSON(w, http.StatusCreated, v)
}

func (a *API) updateVessel(w http.ResponseWriter, r *http.Request, id string) {
	var upd port.VesselUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := upd.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	v, err := a.store.UpdateVessel(r.Context(), id, upd)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "vessel.update", map[string]any{
		"vessel_id": v.ID,
		"status":    v.Status,
	})
	writeJSON(w, http.StatusOK, v)
}

func (a *API) handleBerthsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		berths, err := a.store.ListBerths(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, berths)
	default:
		methodNotAllowed(w, r, http.MethodGet)
	}
}

func (a *API) handleBerthResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/berths/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, r, http.MethodPatch)
		return
	}
	var upd port.BerthUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := upd.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	b, err := a.store.UpdateBerth(r.Context(), id, upd)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "berth.update", map[string]any{
		"berth_id": b.ID,
		"status":   b.Status,
	})
	writeJSON(w, http.StatusOK, b)
}
