package port

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"harborops.org/internal/ids"
	"harborops.org/internal/rbac"
	"harborops.org/internal/tasks"
)

// InMemory is a Store kept entirely in process memory. It backs local
// development and tests; production deployments use the Postgres store.
// All reads return copies so callers can never mutate shared state.
type InMemory struct {
	mu  sync.RWMutex
	now func() time.Time

	users      map[string]User
	vessels    map[string]Vessel
	containers map[string]Container
	tasks      map[string]Task
	gates      map[string]GateTransaction
	berths     map[string]Berth
	integs     map[string]Integration

	// Insertion order per collection, oldest first. Listings walk these
	// backwards so the newest records come out first.
	userOrder  []string
	taskOrder  []string
	gateOrder  []string
	berthOrder []string
	integOrder []string
}

// NewInMemory returns an empty store seeded with the fixed berth and
// integration reference data.
func NewInMemory() *InMemory {
	s := &InMemory{
		now:        time.Now,
		users:      make(map[string]User),
		vessels:    make(map[string]Vessel),
		containers: make(map[string]Container),
		tasks:      make(map[string]Task),
		gates:      make(map[string]GateTransaction),
		berths:     make(map[string]Berth),
		integs:     make(map[string]Integration),
	}
	s.seed()
	return s
}

func (s *InMemory) seed() {
	ts := s.now().UTC()
	f := func(v float64) *float64 { return &v }
	// Berth ids are stable strings so yard plans can reference them.
	for _, b := range []Berth{
		{ID: "A1", Name: "Berth A1", Length: f(320), Depth: f(15.5), MaxDraft: f(14), CraneCount: 4},
		{ID: "A2", Name: "Berth A2", Length: f(280), Depth: f(13), MaxDraft: f(12), CraneCount: 3},
		{ID: "B1", Name: "Berth B1", Length: f(240), Depth: f(11), MaxDraft: f(10.2), CraneCount: 2},
		{ID: "B2", Name: "Berth B2", Length: f(200), Depth: f(9.5), MaxDraft: f(8.5), CraneCount: 1},
	} {
		b.Status = BerthStatusAvailable
		b.CreatedAt = ts
		b.UpdatedAt = ts
		s.berths[b.ID] = b
		s.berthOrder = append(s.berthOrder, b.ID)
	}
	for _, in := range []Integration{
		{ID: "emydex", Name: "Emydex WMS", Type: "warehouse"},
		{ID: "scada500", Name: "SCADA 500T Weighbridge", Type: "scada"},
		{ID: "dispatch", Name: "Truck Dispatch", Type: "dispatch"},
		{ID: "workflow", Name: "Workflow Engine", Type: "workflow"},
	} {
		in.Status = IntegrationStatusDisconnected
		in.CreatedAt = ts
		in.UpdatedAt = ts
		s.integs[in.ID] = in
		s.integOrder = append(s.integOrder, in.ID)
	}
}

func (s *InMemory) timestamp() time.Time { return s.now().UTC() }

func copyChecklist(items []tasks.ChecklistItem) []tasks.ChecklistItem {
	if items == nil {
		return []tasks.ChecklistItem{}
	}
	out := make([]tasks.ChecklistItem, len(items))
	copy(out, items)
	return out
}

func copyTask(t Task) Task {
	t.Checklist = copyChecklist(t.Checklist)
	return t
}

func copyConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}
	return out
}

func copyIntegration(in Integration) Integration {
	in.Config = copyConfig(in.Config)
	return in
}

// Users.

func (s *InMemory) GetUser(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, nil
}

func (s *InMemory) ListUsers(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.userOrder))
	for i := len(s.userOrder) - 1; i >= 0; i-- {
		out = append(out, s.users[s.userOrder[i]])
	}
	return out, nil
}

func (s *InMemory) UpsertUser(_ context.Context, in UpsertUser) (User, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return User{}, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.TrimSpace(in.Email)
	for otherID, other := range s.users {
		if otherID != id && email != "" && strings.EqualFold(other.Email, email) {
			return User{}, fmt.Errorf("email %s already registered: %w", email, ErrConflict)
		}
	}

	ts := s.timestamp()
	u, ok := s.users[id]
	if !ok {
		role := rbac.DefaultRole()
		u = User{
			ID:        id,
			Role:      role.ID,
			RoleLevel: role.Level,
			IsActive:  true,
			CreatedAt: ts,
		}
		s.userOrder = append(s.userOrder, id)
	}
	if email != "" {
		u.Email = email
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.ProfileImageURL != "" {
		u.ProfileImageURL = in.ProfileImageURL
	}
	u.LastLogin = &ts
	u.UpdatedAt = ts
	s.users[id] = u
	return u, nil
}

func (s *InMemory) UpdateUserRole(_ context.Context, id, role string, roleLevel int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	u.Role = role
	u.RoleLevel = roleLevel
	u.UpdatedAt = s.timestamp()
	s.users[id] = u
	return u, nil
}

// Vessels.

func (s *InMemory) ListVessels(_ context.Context) ([]Vessel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Vessel, 0, len(s.vessels))
	for _, v := range s.vessels {
		out = append(out, v)
	}
	// Latest expected arrivals first; vessels without an ETA sort last.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ETA, out[j].ETA
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out, nil
}

func (s *InMemory) GetVessel(_ context.Context, id string) (Vessel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vessels[id]
	if !ok {
		return Vessel{}, fmt.Errorf("vessel %s: %w", id, ErrNotFound)
	}
	return v, nil
}

func (s *InMemory) CreateVessel(_ context.Context, in InsertVessel) (Vessel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	imo := strings.TrimSpace(in.IMONumber)
	if imo != "" {
		for _, v := range s.vessels {
			if v.IMONumber == imo {
				return Vessel{}, fmt.Errorf("imo number %s already registered: %w", imo, ErrConflict)
			}
		}
	}
	if in.BerthID != "" {
		if _, ok := s.berths[in.BerthID]; !ok {
			return Vessel{}, fmt.Errorf("berth %s does not exist: %w", in.BerthID, ErrInvalidInput)
		}
	}

	status := in.Status
	if status == "" {
		status = VesselStatusApproaching
	}
	ts := s.timestamp()
	v := Vessel{
		ID:           ids.New(),
		Name:         in.Name,
		IMONumber:    imo,
		CallSign:     in.CallSign,
		Flag:         in.Flag,
		VesselType:   in.VesselType,
		Length:       in.Length,
		Beam:         in.Beam,
		Draft:        in.Draft,
		GrossTonnage: in.GrossTonnage,
		Deadweight:   in.Deadweight,
		Status:       status,
		ETA:          in.ETA,
		ETD:          in.ETD,
		BerthID:      in.BerthID,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	s.vessels[v.ID] = v
	return v, nil
}

func (s *InMemory) UpdateVessel(_ context.Context, id string, upd VesselUpdate) (Vessel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vessels[id]
	if !ok {
		return Vessel{}, fmt.Errorf("vessel %s: %w", id, ErrNotFound)
	}
	if upd.BerthID != nil && *upd.BerthID != "" {
		if _, ok := s.berths[*upd.BerthID]; !ok {
			return Vessel{}, fmt.Errorf("berth %s does not exist: %w", *upd.BerthID, ErrInvalidInput)
		}
	}
	if upd.Name != nil {
		v.Name = *upd.Name
	}
	if upd.CallSign != nil {
		v.CallSign = *upd.CallSign
	}
	if upd.Flag != nil {
		v.Flag = *upd.Flag
	}
	if upd.VesselType != nil {
		v.VesselType = *upd.VesselType
	}
	if upd.Status != nil {
		v.Status = *upd.Status
	}
	if upd.ETA != nil {
		v.ETA = upd.ETA
	}
	if upd.ETD != nil {
		v.ETD = upd.ETD
	}
	if upd.BerthID != nil {
		v.BerthID = *upd.BerthID
	}
	v.UpdatedAt = s.timestamp()
	s.vessels[id] = v
	return v, nil
}

// Containers.

func (s *InMemory) ListContainers(_ context.Context) ([]Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Container, 0, len(s.containers))
	for _, c := range s.containers {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ArrivalDate, out[j].ArrivalDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out, nil
}

func (s *InMemory) GetContainer(_ context.Context, id string) (Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.containers[id]
	if !ok {
		return Container{}, fmt.Errorf("container %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *InMemory) CreateContainer(_ context.Context, in InsertContainer) (Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := strings.TrimSpace(in.ContainerNumber)
	for _, c := range s.containers {
		if c.ContainerNumber == number {
			return Container{}, fmt.Errorf("container number %s already registered: %w", number, ErrConflict)
		}
	}
	if in.VesselID != "" {
		if _, ok := s.vessels[in.VesselID]; !ok {
			return Container{}, fmt.Errorf("vessel %s does not exist: %w", in.VesselID, ErrInvalidInput)
		}
	}

	status := in.Status
	if status == "" {
		status = ContainerStatusEmpty
	}
	ts := s.timestamp()
	c := Container{
		ID:              ids.New(),
		ContainerNumber: number,
		ContainerType:   in.ContainerType,
		Size:            in.Size,
		Status:          status,
		Weight:          in.Weight,
		YardLocation:    in.YardLocation,
		VesselID:        in.VesselID,
		CustomerID:      in.CustomerID,
		ArrivalDate:     in.ArrivalDate,
		DepartureDate:   in.DepartureDate,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	s.containers[c.ID] = c
	return c, nil
}

func (s *InMemory) UpdateContainer(_ context.Context, id string, upd ContainerUpdate) (Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[id]
	if !ok {
		return Container{}, fmt.Errorf("container %s: %w", id, ErrNotFound)
	}
	if upd.VesselID != nil && *upd.VesselID != "" {
		if _, ok := s.vessels[*upd.VesselID]; !ok {
			return Container{}, fmt.Errorf("vessel %s does not exist: %w", *upd.VesselID, ErrInvalidInput)
		}
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	if upd.YardLocation != nil {
		c.YardLocation = *upd.YardLocation
	}
	if upd.VesselID != nil {
		c.VesselID = *upd.VesselID
	}
	if upd.DepartureDate != nil {
		c.DepartureDate = upd.DepartureDate
	}
	c.UpdatedAt = s.timestamp()
	s.containers[id] = c
	return c, nil
}

// Tasks.

func (s *InMemory) ListTasks(_ context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, 0, len(s.taskOrder))
	for i := len(s.taskOrder) - 1; i >= 0; i-- {
		out = append(out, copyTask(s.tasks[s.taskOrder[i]]))
	}
	return out, nil
}

func (s *InMemory) ListTasksByAssignee(_ context.Context, userID string) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Task
	for i := len(s.taskOrder) - 1; i >= 0; i-- {
		t := s.tasks[s.taskOrder[i]]
		if t.AssignedTo == userID {
			out = append(out, copyTask(t))
		}
	}
	return out, nil
}

func (s *InMemory) GetTask(_ context.Context, id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return copyTask(t), nil
}

func (s *InMemory) CreateTask(_ context.Context, in InsertTask) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTaskRefs(in.AssignedTo, in.VesselID, in.ContainerID); err != nil {
		return Task{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	ts := s.timestamp()
	t := Task{
		ID:                ids.New(),
		Title:             in.Title,
		Description:       in.Description,
		AssignedTo:        in.AssignedTo,
		RoleRequired:      in.RoleRequired,
		Priority:          priority,
		Status:            tasks.StatusPending,
		EstimatedDuration: in.EstimatedDuration,
		VesselID:          in.VesselID,
		ContainerID:       in.ContainerID,
		DueDate:           in.DueDate,
		Checklist:         copyChecklist(in.Checklist),
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
	s.tasks[t.ID] = t
	s.taskOrder = append(s.taskOrder, t.ID)
	return copyTask(t), nil
}

func (s *InMemory) UpdateTask(_ context.Context, id string, upd TaskUpdate) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if upd.AssignedTo != nil && *upd.AssignedTo != "" {
		if _, ok := s.users[*upd.AssignedTo]; !ok {
			return Task{}, fmt.Errorf("user %s does not exist: %w", *upd.AssignedTo, ErrInvalidInput)
		}
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.AssignedTo != nil {
		t.AssignedTo = *upd.AssignedTo
	}
	if upd.RoleRequired != nil {
		t.RoleRequired = *upd.RoleRequired
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	if upd.CompletedAt != nil {
		t.CompletedAt = upd.CompletedAt
	} else if upd.Status != nil && *upd.Status != tasks.StatusCompleted {
		t.CompletedAt = nil
	}
	if upd.Checklist != nil {
		t.Checklist = copyChecklist(*upd.Checklist)
	}
	t.UpdatedAt = s.timestamp()
	s.tasks[id] = t
	return copyTask(t), nil
}

func (s *InMemory) checkTaskRefs(assignedTo, vesselID, containerID string) error {
	if assignedTo != "" {
		if _, ok := s.users[assignedTo]; !ok {
			return fmt.Errorf("user %s does not exist: %w", assignedTo, ErrInvalidInput)
		}
	}
	if vesselID != "" {
		if _, ok := s.vessels[vesselID]; !ok {
			return fmt.Errorf("vessel %s does not exist: %w", vesselID, ErrInvalidInput)
		}
	}
	if containerID != "" {
		if _, ok := s.containers[containerID]; !ok {
			return fmt.Errorf("container %s does not exist: %w", containerID, ErrInvalidInput)
		}
	}
	return nil
}

// Gate transactions.

func (s *InMemory) ListGateTransactions(_ context.Context) ([]GateTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]GateTransaction, 0, len(s.gateOrder))
	for i := len(s.gateOrder) - 1; i >= 0; i-- {
		out = append(out, s.gates[s.gateOrder[i]])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProcessedAt.After(out[j].ProcessedAt)
	})
	return out, nil
}

func (s *InMemory) CreateGateTransaction(_ context.Context, in InsertGateTransaction) (GateTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ContainerID != "" {
		if _, ok := s.containers[in.ContainerID]; !ok {
			return GateTransaction{}, fmt.Errorf("container %s does not exist: %w", in.ContainerID, ErrInvalidInput)
		}
	}
	ts := s.timestamp()
	processedAt := ts
	if in.ProcessedAt != nil {
		processedAt = in.ProcessedAt.UTC()
	}
	g := GateTransaction{
		ID:              ids.New(),
		TruckNumber:     strings.TrimSpace(in.TruckNumber),
		DriverName:      in.DriverName,
		ContainerID:     in.ContainerID,
		TransactionType: in.TransactionType,
		GateNumber:      in.GateNumber,
		ProcessedBy:     in.ProcessedBy,
		ProcessedAt:     processedAt,
		CreatedAt:       ts,
	}
	s.gates[g.ID] = g
	s.gateOrder = append(s.gateOrder, g.ID)
	return g, nil
}

// Berths.

func (s *InMemory) ListBerths(_ context.Context) ([]Berth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Berth, 0, len(s.berthOrder))
	for _, id := range s.berthOrder {
		out = append(out, s.berths[id])
	}
	return out, nil
}

func (s *InMemory) UpdateBerth(_ context.Context, id string, upd BerthUpdate) (Berth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.berths[id]
	if !ok {
		return Berth{}, fmt.Errorf("berth %s: %w", id, ErrNotFound)
	}
	if upd.CurrentVesselID != nil && *upd.CurrentVesselID != "" {
		v, ok := s.vessels[*upd.CurrentVesselID]
		if !ok {
			return Berth{}, fmt.Errorf("vessel %s does not exist: %w", *upd.CurrentVesselID, ErrInvalidInput)
		}
		if v.Status != VesselStatusDocked {
			return Berth{}, fmt.Errorf("vessel %s is not docked: %w", v.ID, ErrInvalidInput)
		}
	}
	if upd.Status != nil {
		b.Status = *upd.Status
	}
	if upd.CurrentVesselID != nil {
		b.CurrentVesselID = *upd.CurrentVesselID
	}
	b.UpdatedAt = s.timestamp()
	s.berths[id] = b
	return b, nil
}

// Integrations.

func (s *InMemory) ListIntegrations(_ context.Context) ([]Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Integration, 0, len(s.integOrder))
	for _, id := range s.integOrder {
		out = append(out, copyIntegration(s.integs[id]))
	}
	return out, nil
}

func (s *InMemory) UpdateIntegration(_ context.Context, id string, upd IntegrationUpdate) (Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.integs[id]
	if !ok {
		return Integration{}, fmt.Errorf("integration %s: %w", id, ErrNotFound)
	}
	if upd.Name != nil {
		in.Name = *upd.Name
	}
	if upd.Status != nil {
		in.Status = *upd.Status
	}
	if upd.Config != nil {
		in.Config = copyConfig(*upd.Config)
	}
	if upd.LastSync != nil {
		in.LastSync = upd.LastSync
	}
	in.UpdatedAt = s.timestamp()
	s.integs[id] = in
	return copyIntegration(in), nil
}

// Dashboard.

func (s *InMemory) DashboardStats(_ context.Context, yardSlots int) (DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats DashboardStats
	stats.TotalVessels = len(s.vessels)
	for _, v := range s.vessels {
		if v.Status == VesselStatusDocked {
			stats.VesselsInPort++
		}
	}
	// Every container record counts as "in yard" regardless of lifecycle
	// state.
	stats.ContainersInYard = len(s.containers)
	for _, t := range s.tasks {
		if t.Status == tasks.StatusPending {
			stats.PendingTasks++
		}
	}
	today := s.now()
	y, m, d := today.Date()
	for _, g := range s.gates {
		gy, gm, gd := g.ProcessedAt.In(today.Location()).Date()
		if gy == y && gm == m && gd == d {
			stats.GateTransactionsToday++
		}
	}
	if yardSlots > 0 {
		stats.YardOccupancy = int(math.Round(100 * float64(stats.ContainersInYard) / float64(yardSlots)))
	}
	return stats, nil
}
