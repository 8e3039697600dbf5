package httpapi

import (
	"net/http"
	"strings"

	"harborops.org/internal/audit"
	"harborops.org/internal/port"
)

func (a *API) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	stats, err := a.store.DashboardStats(r.Context(), a.opts.YardSlots)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) handleIntegrationsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := a.store.ListIntegrations(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	default:
		methodNotAllowed(w, r, http.MethodGet)
	}
}

func (a *API) handleIntegrationResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/integrations/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, r, http.MethodPatch)
		return
	}
	var upd port.IntegrationUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := upd.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	in, err := a.store.UpdateIntegration(r.Context(), id, upd)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "integration.update", map[string]any{
		"integration_id": in.ID,
		"status":         in.Status,
	})
	writeJSON(w, http.StatusOK, in)
}
