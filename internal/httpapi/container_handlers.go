package httpapi

import (
	"net/http"
	"strings"

	"harborops.org/internal/audit"
	"harborops.org/internal/auth"
	"harborops.org/internal/port"
)

func (a *API) handleContainersCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		containers, err := a.store.ListContainers(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, containers)
	case http.MethodPost:
		a.createContainer(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleContainerResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/containers/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		c, err := a.store.GetContainer(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	case http.MethodPatch:
		a.updateContainer(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch)
	}
}

func (a *API) createContainer(w http.ResponseWriter, r *http.Request) {
	var in port.InsertContainer
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := in.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	c, err := a.store.CreateContainer(r.Context(), in)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "container.create", map[string]any{
		"container_id":     c.ID,
		"container_number": c.ContainerNumber,
	})
	w.Header().Set("Location", "/api/containers/"+c.ID)
	writeJSON(w, http.StatusCreated, c)
}

func (a *API) updateContainer(w http.ResponseWriter, r *http.Request, id string) {
	var upd port.ContainerUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := upd.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	c, err := a.store.UpdateContainer(r.Context(), id, upd)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "container.update", map[string]any{
		"container_id": c.ID,
		"status":       c.Status,
	})
	writeJSON(w, http.StatusOK, c)
}

func (a *API) handleGateTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		txs, err := a.store.ListGateTransactions(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, txs)
	case http.MethodPost:
		a.createGateTransaction(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) createGateTransaction(w http.ResponseWriter, r *http.Request) {
	var in port.InsertGateTransaction
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := in.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	// The gate clerk is whoever holds the token.
	if in.ProcessedBy == "" {
		if userID, ok := auth.UserIDFromContext(r.Context()); ok {
			in.ProcessedBy = userID
		}
	}
	g, err := a.store.CreateGateTransaction(r.Context(), in)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "gate.transaction.create", map[string]any{
		"transaction_id": g.ID,
		"truck_number":   g.TruckNumber,
		"direction":      g.TransactionType,
	})
	writeJSON(w, http.StatusCreated, g)
}
