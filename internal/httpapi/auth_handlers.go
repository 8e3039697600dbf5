package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"harborops.org/internal/audit"
	"harborops.org/internal/auth"
	"harborops.org/internal/obs"
	"harborops.org/internal/port"
	"harborops.org/internal/rbac"
)

type tokenRequest struct {
	UserID          string `json:"userId"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type tokenResponse struct {
	Token string    `json:"token"`
	User  port.User `json:"user"`
}

type authUserResponse struct {
	port.User
	RoleLabel     string              `json:"roleLabel"`
	Permissions   []rbac.Permission   `json:"permissions"`
	AccessSystems []rbac.AccessSystem `json:"accessSystems"`
}

// handleAuthToken upserts the caller's account and mints a bearer token.
// First-time callers are registered with the default role.
func (a *API) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, r, http.StatusBadRequest, "userId is required")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, r, http.StatusBadRequest, "email is required")
		return
	}

	user, err := a.store.UpsertUser(r.Context(), port.UpsertUser{
		ID:              req.UserID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		handleStoreError(w, r, err)
		return
	}

	level := effectiveRoleLevel(user)
	token, err := auth.GenerateToken(user.ID, user.Role, level, a.opts.TokenTTL)
	if err != nil {
		obs.Logger().Error("token generation failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not issue token")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.token.issue", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

// handleAuthUser returns the authenticated user's record enriched with the
// role catalog view the frontend renders from.
func (a *API) handleAuthUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing credentials")
		return
	}
	user, err := a.store.GetUser(r.Context(), userID)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, describeUser(user))
}

func describeUser(user port.User) authUserResponse {
	resp := authUserResponse{
		User:          user,
		RoleLabel:     rbac.FormatRoleLabel(nil),
		Permissions:   []rbac.Permission{},
		AccessSystems: []rbac.AccessSystem{},
	}
	if role, ok := rbac.RoleByID(user.Role); ok {
		resp.RoleLabel = rbac.FormatRoleLabel(&role)
		resp.Permissions = rbac.EffectivePermissions(role)
		resp.AccessSystems = rbac.AccessibleSystems(effectiveRoleLevel(user), rbac.AccessSystems)
	}
	return resp
}

// effectiveRoleLevel resolves the user's level from the role catalog. A
// stored level that drifted from the catalog is logged and overridden.
func effectiveRoleLevel(user port.User) int {
	role, ok := rbac.RoleByID(user.Role)
	if !ok {
		return user.RoleLevel
	}
	if role.Level != user.RoleLevel {
		obs.Logger().Warn("stored role level drifted from catalog",
			zap.String("user_id", user.ID),
			zap.String("role", user.Role),
			zap.Int("stored_level", user.RoleLevel),
			zap.Int("catalog_level", role.Level),
		)
	}
	return role.Level
}
