package port

import (
	"time"

	"harborops.org/internal/tasks"
)

// Vessel lifecycle.
const (
	VesselStatusApproaching = "approaching"
	VesselStatusDocked      = "docked"
	VesselStatusDeparted    = "departed"
	VesselStatusAnchored    = "anchored"
)

// Container lifecycle.
const (
	ContainerStatusEmpty       = "empty"
	ContainerStatusLoaded      = "loaded"
	ContainerStatusInTransit   = "in_transit"
	ContainerStatusCustomsHold = "customs_hold"
)

// Berth states.
const (
	BerthStatusAvailable   = "available"
	BerthStatusOccupied    = "occupied"
	BerthStatusMaintenance = "maintenance"
)

// Integration link states.
const (
	IntegrationStatusConnected    = "connected"
	IntegrationStatusDisconnected = "disconnected"
	IntegrationStatusError        = "error"
)

// Gate transaction directions.
const (
	GateDirectionIn  = "in"
	GateDirectionOut = "out"
)

// Task priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// User is an operator account. Role and RoleLevel mirror the static role
// catalog; the catalog's level is authoritative when they disagree.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"firstName,omitempty"`
	LastName        string     `json:"lastName,omitempty"`
	ProfileImageURL string     `json:"profileImageUrl,omitempty"`
	Role            string     `json:"role"`
	RoleLevel       int        `json:"roleLevel"`
	IsActive        bool       `json:"isActive"`
	IDVerified      bool       `json:"idVerified"`
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Vessel is a ship calling at the port. IMO numbers are unique.
type Vessel struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	IMONumber    string     `json:"imoNumber,omitempty"`
	CallSign     string     `json:"callSign,omitempty"`
	Flag         string     `json:"flag,omitempty"`
	VesselType   string     `json:"vesselType,omitempty"`
	Length       *float64   `json:"length,omitempty"`
	Beam         *float64   `json:"beam,omitempty"`
	Draft        *float64   `json:"draft,omitempty"`
	GrossTonnage *int       `json:"grossTonnage,omitempty"`
	Deadweight   *int       `json:"deadweight,omitempty"`
	Status       string     `json:"status"`
	ETA          *time.Time `json:"eta,omitempty"`
	ETD          *time.Time `json:"etd,omitempty"`
	BerthID      string     `json:"berthId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Container is a box tracked through the yard. Container numbers are unique.
type Container struct {
	ID              string     `json:"id"`
	ContainerNumber string     `json:"containerNumber"`
	ContainerType   string     `json:"containerType,omitempty"`
	Size            string     `json:"size,omitempty"`
	Status          string     `json:"status"`
	Weight          *float64   `json:"weight,omitempty"`
	YardLocation    string     `json:"yardLocation,omitempty"`
	VesselID        string     `json:"vesselId,omitempty"`
	CustomerID      string     `json:"customerId,omitempty"`
	ArrivalDate     *time.Time `json:"arrivalDate,omitempty"`
	DepartureDate   *time.Time `json:"departureDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Task is a unit of work with an attached checklist driving its status.
type Task struct {
	ID                string                `json:"id"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	AssignedTo        string                `json:"assignedTo,omitempty"`
	RoleRequired      string                `json:"roleRequired,omitempty"`
	Priority          string                `json:"priority"`
	Status            string                `json:"status"`
	EstimatedDuration *int                  `json:"estimatedDuration,omitempty"`
	VesselID          string                `json:"vesselId,omitempty"`
	ContainerID       string                `json:"containerId,omitempty"`
	DueDate           *time.Time            `json:"dueDate,omitempty"`
	CompletedAt       *time.Time            `json:"completedAt,omitempty"`
	Checklist         []tasks.ChecklistItem `json:"checklist"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// GateTransaction records a truck movement through a physical gate.
type GateTransaction struct {
	ID              string    `json:"id"`
	TruckNumber     string    `json:"truckNumber"`
	DriverName      string    `json:"driverName,omitempty"`
	ContainerID     string    `json:"containerId,omitempty"`
	TransactionType string    `json:"transactionType"`
	GateNumber      string    `json:"gateNumber,omitempty"`
	ProcessedBy     string    `json:"processedBy,omitempty"`
	ProcessedAt     time.Time `json:"processedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Berth is a fixed mooring position. Berths are seeded reference data; only
// their status and occupancy change at runtime.
type Berth struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Length          *float64  `json:"length,omitempty"`
	Depth           *float64  `json:"depth,omitempty"`
	MaxDraft        *float64  `json:"maxDraft,omitempty"`
	CraneCount      int       `json:"craneCount"`
	Status          string    `json:"status"`
	CurrentVesselID string    `json:"currentVesselId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Integration is an external system connection (WMS, SCADA, dispatch, ...).
type Integration struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Status    string         `json:"status"`
	Config    map[string]any `json:"config,omitempty"`
	LastSync  *time.Time     `json:"lastSync,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DashboardStats are five independent counts plus a derived occupancy
// percentage. No snapshot guarantee holds across them.
type DashboardStats struct {
	TotalVessels          int `json:"totalVessels"`
	VesselsInPort         int `json:"vesselsInPort"`
	ContainersInYard      int `json:"containersInYard"`
	PendingTasks          int `json:"pendingTasks"`
	GateTransactionsToday int `json:"gateTransactionsToday"`
	YardOccupancy         int `json:"yardOccupancy"`
}

// UpsertUser carries identity fields for registration/first-login upsert.
type UpsertUser struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// InsertVessel is the caller-supplied portion of a vessel record.
type InsertVessel struct {
	Name         string     `json:"name"`
	IMONumber    string     `json:"imoNumber"`
	CallSign     string     `json:"callSign"`
	Flag         string     `json:"flag"`
	VesselType   string     `json:"vesselType"`
	Length       *float64   `json:"length"`
	Beam         *float64   `json:"beam"`
	Draft        *float64   `json:"draft"`
	GrossTonnage *int       `json:"grossTonnage"`
	Deadweight   *int       `json:"deadweight"`
	Status       string     `json:"status"`
	ETA          *time.Time `json:"eta"`
	ETD          *time.Time `json:"etd"`
	BerthID      string     `json:"berthId"`
}

// VesselUpdate applies a partial update; nil fields are left untouched.
type VesselUpdate struct {
	Name       *string    `json:"name"`
	CallSign   *string    `json:"callSign"`
	Flag       *string    `json:"flag"`
	VesselType *string    `json:"vesselType"`
	Status     *string    `json:"status"`
	ETA        *time.Time `json:"eta"`
	ETD        *time.Time `json:"etd"`
	BerthID    *string    `json:"berthId"`
}

// InsertContainer is the caller-supplied portion of a container record.
type InsertContainer struct {
	ContainerNumber string     `json:"containerNumber"`
	ContainerType   string     `json:"containerType"`
	Size            string     `json:"size"`
	Status          string     `json:"status"`
	Weight          *float64   `json:"weight"`
	YardLocation    string     `json:"yardLocation"`
	VesselID        string     `json:"vesselId"`
	CustomerID      string     `json:"customerId"`
	ArrivalDate     *time.Time `json:"arrivalDate"`
	DepartureDate   *time.Time `json:"departureDate"`
}

// ContainerUpdate applies a partial update; nil fields are left untouched.
type ContainerUpdate struct {
	Status        *string    `json:"status"`
	YardLocation  *string    `json:"yardLocation"`
	VesselID      *string    `json:"vesselId"`
	DepartureDate *time.Time `json:"departureDate"`
}

// InsertTask is the caller-supplied portion of a task record.
type InsertTask struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	AssignedTo        string                `json:"assignedTo"`
	RoleRequired      string                `json:"roleRequired"`
	Priority          string                `json:"priority"`
	EstimatedDuration *int                  `json:"estimatedDuration"`
	VesselID          string                `json:"vesselId"`
	ContainerID       string                `json:"containerId"`
	DueDate           *time.Time            `json:"dueDate"`
	Checklist         []tasks.ChecklistItem `json:"checklist"`
}

// TaskUpdate applies a partial update. Status and CompletedAt are derived by
// the checklist engine at the handler boundary, never accepted raw alongside
// a checklist.
type TaskUpdate struct {
	Title        *string                `json:"title"`
	Description  *string                `json:"description"`
	AssignedTo   *string                `json:"assignedTo"`
	RoleRequired *string                `json:"roleRequired"`
	Priority     *string                `json:"priority"`
	Status       *string                `json:"status"`
	DueDate      *time.Time             `json:"dueDate"`
	CompletedAt  *time.Time             `json:"-"`
	Checklist    *[]tasks.ChecklistItem `json:"checklist"`
}

// InsertGateTransaction is the caller-supplied portion of a gate record.
type InsertGateTransaction struct {
	TruckNumber     string     `json:"truckNumber"`
	DriverName      string     `json:"driverName"`
	ContainerID     string     `json:"containerId"`
	TransactionType string     `json:"transactionType"`
	GateNumber      string     `json:"gateNumber"`
	ProcessedBy     string     `json:"processedBy"`
	ProcessedAt     *time.Time `json:"processedAt"`
}

// BerthUpdate applies a partial update; nil fields are left untouched.
type BerthUpdate struct {
	Status          *string `json:"status"`
	CurrentVesselID *string `json:"currentVesselId"`
}

// IntegrationUpdate applies a partial update; nil fields are left untouched.
type IntegrationUpdate struct {
	Name     *string         `json:"name"`
	Status   *string         `json:"status"`
	Config   *map[string]any `json:"config"`
	LastSync *time.Time      `json:"lastSync"`
}
