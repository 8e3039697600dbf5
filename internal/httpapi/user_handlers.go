package httpapi

import (
	"net/http"
	"strings"

	"harborops.org/internal/audit"
	"harborops.org/internal/rbac"
)

type roleUpdateRequest struct {
	Role      string `json:"role"`
	RoleLevel *int   `json:"roleLevel"`
}

func (a *API) handleUsersCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		users, err := a.store.ListUsers(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	default:
		methodNotAllowed(w, r, http.MethodGet)
	}
}

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if id, ok := strings.CutSuffix(path, "/role"); ok && id != "" {
		if r.Method != http.MethodPatch {
			methodNotAllowed(w, r, http.MethodPatch)
			return
		}
		a.updateUserRole(w, r, id)
		return
	}

	if id, ok := strings.CutSuffix(path, "/access-systems"); ok && id != "" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.getUserAccessSystems(w, r, id)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := a.store.GetUser(r.Context(), path)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	default:
		methodNotAllowed(w, r, http.MethodGet)
	}
}

// updateUserRole assigns a catalog role. The catalog's level is
// authoritative; a mismatched roleLevel in the request is rejected.
func (a *API) updateUserRole(w http.ResponseWriter, r *http.Request, id string) {
	if err := requirePermission(r.Context(), rbac.PermWorkforceMgmt); err != nil {
		writeError(w, r, http.StatusForbidden, err.Error())
		return
	}
	var req roleUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	role, ok := rbac.RoleByID(strings.TrimSpace(req.Role))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown role "+req.Role)
		return
	}
	if req.RoleLevel != nil && *req.RoleLevel != role.Level {
		writeError(w, r, http.StatusBadRequest, "roleLevel does not match the role catalog")
		return
	}

	user, err := a.store.UpdateUserRole(r.Context(), id, role.ID, role.Level)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "user.role.update", map[string]any{
		"user_id": user.ID,
		"role":    role.ID,
		"level":   role.Level,
	})
	writeJSON(w, http.StatusOK, user)
}

func (a *API) getUserAccessSystems(w http.ResponseWriter, r *http.Request, id string) {
	user, err := a.store.GetUser(r.Context(), id)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	systems := rbac.AccessibleSystems(effectiveRoleLevel(user), rbac.AccessSystems)
	writeJSON(w, http.StatusOK, systems)
}
