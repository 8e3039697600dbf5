package rbac

// PermissionLevel ranks what a permission allows.
type PermissionLevel string

const (
	LevelRead  PermissionLevel = "read"
	LevelWrite PermissionLevel = "write"
	LevelAdmin PermissionLevel = "admin"
	LevelFull  PermissionLevel = "full"
)

// Category groups roles by operational area.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryEquipment   Category = "equipment"
	CategorySupervision Category = "supervision"
	CategoryMarine      Category = "marine"
	CategoryManagement  Category = "management"
	CategoryExecutive   Category = "executive"
	CategoryTransnet    Category = "transnet"
	CategoryWarehouse   Category = "warehouse"
)

// Permission is a fine-grained capability attached to roles.
type Permission struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Level       PermissionLevel `json:"level"`
}

// AccessSystem is an access-gated port system with a minimum role level.
type AccessSystem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	RequiredLevel int    `json:"requiredLevel"`
}

// Role is immutable reference data describing a job function, its numeric
// access level and its capabilities.
type Role struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Category      Category     `json:"category"`
	Level         int          `json:"level"`
	Description   string       `json:"description"`
	Permissions   []Permission `json:"permissions"`
	AccessSystems []string     `json:"accessSystems"`
}

// HasPermission reports whether the role carries the permission id.
func (r Role) HasPermission(id string) bool {
	for _, p := range r.Permissions {
		if p.ID == id {
			return true
		}
	}
	return false
}
