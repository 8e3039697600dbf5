package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"harborops.org/internal/auth"
	"harborops.org/internal/rbac"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/api/auth/token",
	"/healthz",
	"/readyz",
	"/metrics",
	"/",
}

var errForbidden = errors.New("forbidden")

func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := auth.ParseAndValidate(token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				writeError(w, r, http.StatusUnauthorized, "invalid token")
				return
			}
			writeError(w, r, http.StatusInternalServerError, "authentication error")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
	})
}

// requirePermission checks the caller's role against the static catalog.
func requirePermission(ctx context.Context, permID string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return errForbidden
	}
	role, ok := rbac.RoleByID(claims.Role)
	if !ok {
		return fmt.Errorf("unknown role %q: %w", claims.Role, errForbidden)
	}
	if !role.HasPermission(permID) {
		return fmt.Errorf("role %q lacks %s: %w", role.ID, permID, errForbidden)
	}
	return nil
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
