package rbac

import (
	"fmt"
	"strings"
)

// HasAccess reports whether a user at the given level may use the system.
// Comparison is strictly numeric: zero or negative user levels deny access
// to any system with a positive required level.
func HasAccess(userLevel int, system AccessSystem) bool {
	return userLevel >= system.RequiredLevel
}

// AccessibleSystems filters systems down to those the user level can reach.
// Input ordering is preserved.
func AccessibleSystems(userLevel int, systems []AccessSystem) []AccessSystem {
	out := make([]AccessSystem, 0, len(systems))
	for _, s := range systems {
		if HasAccess(userLevel, s) {
			out = append(out, s)
		}
	}
	return out
}

// EffectivePermissions returns the role's permission list unchanged. The
// role-to-permission mapping is static, not derived from the level, so two
// roles at the same level may carry different sets.
func EffectivePermissions(role Role) []Permission {
	return role.Permissions
}

// defaultRoleLabel is shown for users without a resolvable role.
const defaultRoleLabel = "General Labour (Level 1)"

// FormatRoleLabel renders a human-readable role name with its level, e.g.
// "Marine Pilot (Level 6)". A nil role yields the default label.
func FormatRoleLabel(role *Role) string {
	if role == nil {
		return defaultRoleLabel
	}
	return fmt.Sprintf("%s (Level %d)", titleCaseRoleID(role.ID), role.Level)
}

// FormatRoleID renders just the title-cased role identifier, with
// underscores replaced by spaces.
func FormatRoleID(id string) string {
	return titleCaseRoleID(id)
}

func titleCaseRoleID(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
