package httpapi

import (
	"net/http"

	"harborops.org/internal/rbac"
)

type roleView struct {
	rbac.Role
	Label string `json:"label"`
}

// handleRoles returns the static role catalog with display labels.
func (a *API) handleRoles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	out := make([]roleView, 0, len(rbac.Roles))
	for _, role := range rbac.Roles {
		role := role
		out = append(out, roleView{Role: role, Label: rbac.FormatRoleLabel(&role)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleAccessSystems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, rbac.AccessSystems)
}
