package rbac

import "testing"

func TestCatalogLookups(t *testing.T) {
	for _, r := range Roles {
		got, ok := RoleByID(r.ID)
		if !ok || got.Level != r.Level {
			t.Fatalf("RoleByID(%s) lookup failed", r.ID)
		}
	}
	if _, ok := RoleByID("astronaut"); ok {
		t.Fatalf("unknown role should not resolve")
	}
	if DefaultRole().ID != DefaultRoleID || DefaultRole().Level != 1 {
		t.Fatalf("default role must be %s at level 1", DefaultRoleID)
	}
}

func TestRoleLevelsNeverBelowOne(t *testing.T) {
	for _, r := range Roles {
		if r.Level < 1 {
			t.Fatalf("role %s has level %d", r.ID, r.Level)
		}
		if len(r.Permissions) == 0 {
			t.Fatalf("role %s carries no permissions", r.ID)
		}
		for _, sysID := range r.AccessSystems {
			if _, ok := SystemByID(sysID); !ok {
				t.Fatalf("role %s references unknown system %s", r.ID, sysID)
			}
		}
	}
}

func TestExecutivesCarryEveryPermission(t *testing.T) {
	for _, id := range []string{"harbour_master", "port_manager", "ce_tpt", "ce_tnpa"} {
		role, ok := RoleByID(id)
		if !ok {
			t.Fatalf("%s missing from catalog", id)
		}
		if len(role.Permissions) != len(Permissions) {
			t.Fatalf("%s should hold all %d permissions, has %d", id, len(Permissions), len(role.Permissions))
		}
		if len(role.AccessSystems) != len(AccessSystems) {
			t.Fatalf("%s should reach all systems", id)
		}
	}
}

func TestSameLevelRolesMayDiffer(t *testing.T) {
	tm, _ := RoleByID("terminal_manager")
	wm, _ := RoleByID("warehouse_manager")
	if tm.Level != wm.Level {
		t.Fatalf("expected both manager roles at the same level")
	}
	if tm.HasPermission(PermFinancialReports) {
		t.Fatalf("terminal manager should not hold financial_reports")
	}
	if !wm.HasPermission(PermFinancialReports) {
		t.Fatalf("warehouse manager should hold financial_reports")
	}
}
