package rbac

// Well-known permission ids referenced by handlers.
const (
	PermTimeClock        = "time_clock"
	PermTaskAssignment   = "task_assignment"
	PermCargoManifest    = "cargo_manifest"
	PermEquipmentControl = "equipment_control"
	PermWorkforceMgmt    = "workforce_mgmt"
	PermPerformanceDash  = "performance_dash"
	PermSecuritySystems  = "security_systems"
	PermVTSAccess        = "vts_access"
	PermFinancialReports = "financial_reports"
	PermEmergencyMgmt    = "emergency_mgmt"
)

// DefaultRoleID is assigned to users created on first login.
const DefaultRoleID = "general_labour"

// Permissions is the static permission catalog. Never mutated at runtime.
var Permissions = []Permission{
	{ID: PermTimeClock, Name: "Time Clock Access", Description: "Basic time tracking system", Level: LevelRead},
	{ID: PermTaskAssignment, Name: "Task Assignments", Description: "View assigned tasks", Level: LevelRead},
	{ID: PermCargoManifest, Name: "Cargo Manifest System", Description: "Access to cargo documentation", Level: LevelWrite},
	{ID: PermEquipmentControl, Name: "Equipment Control", Description: "Operate port machinery", Level: LevelWrite},
	{ID: PermWorkforceMgmt, Name: "Workforce Management", Description: "Manage team assignments", Level: LevelAdmin},
	{ID: PermPerformanceDash, Name: "Performance Dashboard", Description: "View operational metrics", Level: LevelAdmin},
	{ID: PermSecuritySystems, Name: "Security Systems", Description: "Port security and surveillance", Level: LevelFull},
	{ID: PermVTSAccess, Name: "Vessel Traffic System", Description: "Monitor and control vessel movements", Level: LevelFull},
	{ID: PermFinancialReports, Name: "Financial Reports", Description: "Access to financial data", Level: LevelFull},
	{ID: PermEmergencyMgmt, Name: "Emergency Management", Description: "Emergency response protocols", Level: LevelFull},
}

// AccessSystems lists every access-gated system in the port.
var AccessSystems = []AccessSystem{
	{ID: "time_system", Name: "Time & Attendance", Description: "Employee time tracking", RequiredLevel: 1},
	{ID: "cargo_system", Name: "Cargo Management", Description: "Cargo tracking and documentation", RequiredLevel: 3},
	{ID: "equipment_system", Name: "Equipment Control", Description: "Crane and machinery operation", RequiredLevel: 2},
	{ID: "vessel_system", Name: "Vessel Traffic System", Description: "Ship movement monitoring", RequiredLevel: 7},
	{ID: "security_system", Name: "Security & Surveillance", Description: "Port security management", RequiredLevel: 6},
	{ID: "performance_system", Name: "Performance Analytics", Description: "Operational dashboards", RequiredLevel: 5},
	{ID: "financial_system", Name: "Financial Management", Description: "Budget and revenue tracking", RequiredLevel: 8},
	{ID: "emergency_system", Name: "Emergency Response", Description: "Crisis management protocols", RequiredLevel: 9},
}

var allSystems = []string{
	"time_system", "cargo_system", "equipment_system", "vessel_system",
	"security_system", "performance_system", "financial_system", "emergency_system",
}

// Roles is the static role catalog, ordered by level.
var Roles = []Role{
	{
		ID: "general_labour", Title: "General Labour / Stevedore", Category: CategoryGeneral, Level: 1,
		Description:   "Handles manual tasks like lashing, unlashing, and basic cargo movement",
		Permissions:   perms(PermTimeClock, PermTaskAssignment),
		AccessSystems: []string{"time_system"},
	},
	{
		ID: "docker", Title: "Docker / Longshoreman", Category: CategoryGeneral, Level: 1,
		Description:   "General term for workers who load and unload ship cargo",
		Permissions:   perms(PermTimeClock, PermTaskAssignment),
		AccessSystems: []string{"time_system"},
	},
	{
		ID: "equipment_operator", Title: "Equipment Operator", Category: CategoryEquipment, Level: 2,
		Description:   "Operates machinery like cranes, reach stackers, or forklifts",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermEquipmentControl),
		AccessSystems: []string{"time_system", "equipment_system"},
	},
	{
		ID: "crane_operator", Title: "Crane Operator (TPT)", Category: CategoryTransnet, Level: 2,
		Description:   "Operates Ship-to-Shore or Rubber-Tired Gantry cranes",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermEquipmentControl),
		AccessSystems: []string{"time_system", "equipment_system"},
	},
	{
		ID: "checker", Title: "Checker / Clerk", Category: CategoryGeneral, Level: 3,
		Description:   "Records and verifies cargo being loaded/unloaded from vessels",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermCargoManifest),
		AccessSystems: []string{"time_system", "cargo_system"},
	},
	{
		ID: "foreman", Title: "Foreman / Supervisor", Category: CategorySupervision, Level: 4,
		Description:   "Oversees teams of dockworkers and equipment operators",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermCargoManifest, PermWorkforceMgmt),
		AccessSystems: []string{"time_system", "cargo_system", "equipment_system"},
	},
	{
		ID: "warehouse_supervisor", Title: "Warehouse Supervisor", Category: CategoryWarehouse, Level: 4,
		Description:   "Oversees daily warehouse activities and staff",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermCargoManifest, PermWorkforceMgmt),
		AccessSystems: []string{"time_system", "cargo_system", "equipment_system"},
	},
	{
		ID: "tugboat_captain", Title: "Tugboat Captain / Crew", Category: CategoryMarine, Level: 5,
		Description:   "Operates tugboats to assist large ships in maneuvering",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermPerformanceDash),
		AccessSystems: []string{"time_system", "vessel_system", "performance_system"},
	},
	{
		ID: "marine_pilot", Title: "Marine Pilot", Category: CategoryMarine, Level: 6,
		Description:   "Expert navigator who guides ships safely into and out of harbour",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermPerformanceDash, PermVTSAccess),
		AccessSystems: []string{"time_system", "vessel_system", "performance_system"},
	},
	{
		ID: "terminal_manager", Title: "Terminal Manager", Category: CategoryManagement, Level: 7,
		Description:   "Manages entire operations of a specific terminal",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermCargoManifest, PermWorkforceMgmt, PermPerformanceDash, PermSecuritySystems),
		AccessSystems: []string{"time_system", "cargo_system", "equipment_system", "performance_system", "security_system"},
	},
	{
		ID: "warehouse_manager", Title: "Warehouse / Distribution Centre Manager", Category: CategoryWarehouse, Level: 7,
		Description:   "Responsible for entire warehouse operation, safety, efficiency, and budgeting",
		Permissions:   perms(PermTimeClock, PermTaskAssignment, PermCargoManifest, PermWorkforceMgmt, PermPerformanceDash, PermFinancialReports),
		AccessSystems: []string{"time_system", "cargo_system", "equipment_system", "performance_system", "financial_system"},
	},
	{
		ID: "harbour_master", Title: "Harbour Master / Deputy Harbour Master", Category: CategoryExecutive, Level: 8,
		Description:   "Senior official responsible for port safety, security, and vessel movement",
		Permissions:   allPermissions(),
		AccessSystems: allSystems,
	},
	{
		ID: "port_manager", Title: "Port Manager / Port Director", Category: CategoryExecutive, Level: 9,
		Description:   "Overall responsibility for commercial and operational performance of the entire port",
		Permissions:   allPermissions(),
		AccessSystems: allSystems,
	},
	{
		ID: "ce_tpt", Title: "Chief Executive: Transnet Port Terminals", Category: CategoryTransnet, Level: 10,
		Description:   "Highest executive position for the terminal operating division",
		Permissions:   allPermissions(),
		AccessSystems: allSystems,
	},
	{
		ID: "ce_tnpa", Title: "Chief Executive: Transnet National Ports Authority", Category: CategoryTransnet, Level: 10,
		Description:   "Highest executive position for the port authority division",
		Permissions:   allPermissions(),
		AccessSystems: allSystems,
	},
}

var (
	rolesByID   map[string]Role
	permsByID   map[string]Permission
	systemsByID map[string]AccessSystem
)

func init() {
	rolesByID = make(map[string]Role, len(Roles))
	for _, r := range Roles {
		rolesByID[r.ID] = r
	}
	permsByID = make(map[string]Permission, len(Permissions))
	for _, p := range Permissions {
		permsByID[p.ID] = p
	}
	systemsByID = make(map[string]AccessSystem, len(AccessSystems))
	for _, s := range AccessSystems {
		systemsByID[s.ID] = s
	}
}

// RoleByID looks up a role in the catalog.
func RoleByID(id string) (Role, bool) {
	r, ok := rolesByID[id]
	return r, ok
}

// PermissionByID looks up a permission in the catalog.
func PermissionByID(id string) (Permission, bool) {
	p, ok := permsByID[id]
	return p, ok
}

// SystemByID looks up an access system in the catalog.
func SystemByID(id string) (AccessSystem, bool) {
	s, ok := systemsByID[id]
	return s, ok
}

// DefaultRole returns the role assigned to freshly registered users.
func DefaultRole() Role {
	return rolesByID[DefaultRoleID]
}

func perms(ids ...string) []Permission {
	out := make([]Permission, 0, len(ids))
	for _, id := range ids {
		for _, p := range Permissions {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func allPermissions() []Permission {
	out := make([]Permission, len(Permissions))
	copy(out, Permissions)
	return out
}
