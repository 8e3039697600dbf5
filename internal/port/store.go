package port

import "context"

// Store is the persistence boundary for port operations. Implementations
// must return ErrNotFound, ErrConflict and ErrInvalidInput (possibly
// wrapped) so handlers can map them to HTTP statuses.
type Store interface {
	// Users.
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpsertUser(ctx context.Context, u UpsertUser) (User, error)
	UpdateUserRole(ctx context.Context, id, role string, roleLevel int) (User, error)

	// Vessels.
	ListVessels(ctx context.Context) ([]Vessel, error)
	GetVessel(ctx context.Context, id string) (Vessel, error)
	CreateVessel(ctx context.Context, in InsertVessel) (Vessel, error)
	UpdateVessel(ctx context.Context, id string, upd VesselUpdate) (Vessel, error)

	// Containers.
	ListContainers(ctx context.Context) ([]Container, error)
	GetContainer(ctx context.Context, id string) (Container, error)
	CreateContainer(ctx context.Context, in InsertContainer) (Container, error)
	UpdateContainer(ctx context.Context, id string, upd ContainerUpdate) (Container, error)

	// Tasks.
	ListTasks(ctx context.Context) ([]Task, error)
	ListTasksByAssignee(ctx context.Context, userID string) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	CreateTask(ctx context.Context, in InsertTask) (Task, error)
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (Task, error)

	// Gate transactions.
	ListGateTransactions(ctx context.Context) ([]GateTransaction, error)
	CreateGateTransaction(ctx context.Context, in InsertGateTransaction) (GateTransaction, error)

	// Berths. Berths are seeded reference data; there is no create.
	ListBerths(ctx context.Context) ([]Berth, error)
	UpdateBerth(ctx context.Context, id string, upd BerthUpdate) (Berth, error)

	// Integrations. Seeded reference data; there is no create.
	ListIntegrations(ctx context.Context) ([]Integration, error)
	UpdateIntegration(ctx context.Context, id string, upd IntegrationUpdate) (Integration, error)

	// DashboardStats computes the aggregate counters. yardSlots is the
	// total yard capacity used for the occupancy percentage.
	DashboardStats(ctx context.Context, yardSlots int) (DashboardStats, error)
}
