package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"harborops.org/internal/ids"
	"harborops.org/internal/port"
	"harborops.org/internal/rbac"
	"harborops.org/internal/tasks"
)

// Store persists port operations data in Postgres.
type Store struct {
	db *sql.DB
}

var _ port.Store = (*Store)(nil)

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// mapErr translates driver errors into the store's sentinel errors.
func mapErr(err error, kind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, port.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s %s violates %s: %w", kind, id, pgErr.ConstraintName, port.ErrConflict)
		case "23503", "23514":
			return fmt.Errorf("%s %s violates %s: %w", kind, id, pgErr.ConstraintName, port.ErrInvalidInput)
		}
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

// setClause accumulates columns for a partial update statement.
type setClause struct {
	frags []string
	args  []any
}

func (c *setClause) add(col string, v any) {
	c.args = append(c.args, v)
	c.frags = append(c.frags, fmt.Sprintf("%s=$%d", col, len(c.args)))
}

func (c *setClause) set() string { return strings.Join(c.frags, ", ") }

// --- users ---

const userCols = `id, email, coalesce(first_name,''), coalesce(last_name,''), coalesce(profile_image_url,''),
	role, role_level, is_active, id_verified, last_login, created_at, updated_at`

func scanUser(sc scanner) (port.User, error) {
	var u port.User
	var lastLogin sql.NullTime
	err := sc.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.Role, &u.RoleLevel, &u.IsActive, &u.IDVerified, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return port.User{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (port.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `select `+userCols+` from users where id=$1`, id))
	if err != nil {
		return port.User{}, mapErr(err, "user", id)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]port.User, error) {
	rows, err := s.db.QueryContext(ctx, `select `+userCols+` from users order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []port.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) UpsertUser(ctx context.Context, in port.UpsertUser) (port.User, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return port.User{}, fmt.Errorf("user id is required: %w", port.ErrInvalidInput)
	}
	role := rbac.DefaultRole()
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		insert into users(id, email, first_name, last_name, profile_image_url, role, role_level, is_active, last_login)
		values ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), $6, $7, true, now())
		on conflict (id) do update set
			email             = coalesce(nullif(excluded.email,''), users.email),
			first_name        = coalesce(excluded.first_name, users.first_name),
			last_name         = coalesce(excluded.last_name, users.last_name),
			profile_image_url = coalesce(excluded.profile_image_url, users.profile_image_url),
			last_login        = now(),
			updated_at        = now()
		returning `+userCols,
		id, strings.TrimSpace(in.Email), in.FirstName, in.LastName, in.ProfileImageURL, role.ID, role.Level))
	if err != nil {
		return port.User{}, mapErr(err, "user", id)
	}
	return u, nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id, role string, roleLevel int) (port.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		update users set role=$2, role_level=$3, updated_at=now()
		where id=$1
		returning `+userCols, id, role, roleLevel))
	if err != nil {
		return port.User{}, mapErr(err, "user", id)
	}
	return u, nil
}

// --- vessels ---

const vesselCols = `id, name, coalesce(imo_number,''), coalesce(call_sign,''), coalesce(flag,''),
	coalesce(vessel_type,''), length, beam, draft, gross_tonnage, deadweight,
	status, eta, etd, coalesce(berth_id,''), created_at, updated_at`

func scanVessel(sc scanner) (port.Vessel, error) {
	var v port.Vessel
	var length, beam, draft sql.NullFloat64
	var gross, dead sql.NullInt64
	var eta, etd sql.NullTime
	err := sc.Scan(&v.ID, &v.Name, &v.IMONumber, &v.CallSign, &v.Flag,
		&v.VesselType, &length, &beam, &draft, &gross, &dead,
		&v.Status, &eta, &etd, &v.BerthID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return port.Vessel{}, err
	}
	v.Length = nullFloat(length)
	v.Beam = nullFloat(beam)
	v.Draft = nullFloat(draft)
	v.GrossTonnage = nullInt(gross)
	v.Deadweight = nullInt(dead)
	v.ETA = nullTime(eta)
	v.ETD = nullTime(etd)
	return v, nil
}

func (s *Store) ListVessels(ctx context.Context) ([]port.Vessel, error) {
	rows, err := s.db.QueryContext(ctx, `select `+vesselCols+` from vessels order by eta desc nulls last`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []port.Vessel
	for rows.Next() {
		v, err := scanVessel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) GetVessel(ctx context.Context, id string) (port.Vessel, error) {
	v, err := scanVessel(s.db.QueryRowContext(ctx, `select `+vesselCols+` from vessels where id=$1`, id))
	if err != nil {
		return port.Vessel{}, mapErr(err, "vessel", id)
	}
	return v, nil
}

func (s *Store) CreateVessel(ctx context.Context, in port.InsertVessel) (port.Vessel, error) {
	id := ids.New()
	status := in.Status
	if status == "" {
		status = port.VesselStatusApproaching
	}
	v, err := scanVessel(s.db.QueryRowContext(ctx, `
		insert into vessels(id, name, imo_number, call_sign, flag, vessel_type,
			length, beam, draft, gross_tonnage, deadweight, status, eta, etd, berth_id)
		values ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), nullif($6,''),
			$7, $8, $9, $10, $11, $12, $13, $14, nullif($15,''))
		returning `+vesselCols,
		id, in.Name, strings.TrimSpace(in.IMONumber), in.CallSign, in.Flag, in.VesselType,
		in.Length, in.Beam, in.Draft, in.GrossTonnage, in.Deadweight, status, in.ETA, in.ETD, in.BerthID))
	if err != nil {
		return port.Vessel{}, mapErr(err, "vessel", id)
	}
	return v, nil
}

func (s *Store) UpdateVessel(ctx context.Context, id string, upd port.VesselUpdate) (port.Vessel, error) {
	var c setClause
	if upd.Name != nil {
		c.add("name", *upd.Name)
	}
	if upd.CallSign != nil {
		c.add("call_sign", nilIfEmpty(*upd.CallSign))
	}
	if upd.Flag != nil {
		c.add("flag", nilIfEmpty(*upd.Flag))
	}
	if upd.VesselType != nil {
		c.add("vessel_type", nilIfEmpty(*upd.VesselType))
	}
	if upd.Status != nil {
		c.add("status", *upd.Status)
	}
	if upd.ETA != nil {
		c.add("eta", *upd.ETA)
	}
	if upd.ETD != nil {
		c.add("etd", *upd.ETD)
	}
	if upd.BerthID != nil {
		c.add("berth_id", nilIfEmpty(*upd.BerthID))
	}
	if len(c.frags) == 0 {
		return s.GetVessel(ctx, id)
	}
	c.args = append(c.args, id)
	v, err := scanVessel(s.db.QueryRowContext(ctx, fmt.Sprintf(`
		update vessels set %s, updated_at=now() where id=$%d returning %s`,
		c.set(), len(c.args), vesselCols), c.args...))
	if err != nil {
		return port.Vessel{}, mapErr(err, "vessel", id)
	}
	return v, nil
}

// --- containers ---

const containerCols = `id, container_number, coalesce(container_type,''), coalesce(size,''), status,
	weight, coalesce(yard_location,''), coalesce(vessel_id,''), coalesce(customer_id,''),
	arrival_date, departure_date, created_at, updated_at`

func scanContainer(sc scanner) (port.Container, error) {
	var c port.Container
	var weight sql.NullFloat64
	var arrival, departure sql.NullTime
	err := sc.Scan(&c.ID, &c.ContainerNumber, &c.ContainerType, &c.Size, &c.Status,
		&weight, &c.YardLocation, &c.VesselID, &c.CustomerID,
		&arrival, &departure, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return port.Container{}, err
	}
	c.Weight = nullFloat(weight)
	c.ArrivalDate = nullTime(arrival)
	c.DepartureDate = nullTime(departure)
	return c, nil
}

func (s *Store) ListContainers(ctx context.Context) ([]port.Container, error) {
	rows, err := s.db.QueryContext(ctx, `select `+containerCols+` from containers order by arrival_date desc nulls last`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []port.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetContainer(ctx context.Context, id string) (port.Container, error) {
	c, err := scanContainer(s.db.QueryRowContext(ctx, `select `+containerCols+` from containers where id=$1`, id))
	if err != nil {
		return port.Container{}, mapErr(err, "container", id)
	}
	return c, nil
}

func (s *Store) CreateContainer(ctx context.Context, in port.InsertContainer) (port.Container, error) {
	id := ids.New()
	status := in.Status
	if status == "" {
		status = port.ContainerStatusEmpty
	}
	c, err := scanContainer(s.db.QueryRowContext(ctx, `
		insert into containers(id, container_number, container_type, size, status,
			weight, yard_location, vessel_id, customer_id, arrival_date, departure_date)
		values ($1, $2, nullif($3,''), nullif($4,''), $5,
			$6, nullif($7,''), nullif($8,''), nullif($9,''), $10, $11)
		returning `+containerCols,
		id, strings.TrimSpace(in.ContainerNumber), in.ContainerType, in.Size, status,
		in.Weight, in.YardLocation, in.VesselID, in.CustomerID, in.ArrivalDate, in.DepartureDate))
	if err != nil {
		return port.Container{}, mapErr(err, "container", id)
	}
	return c, nil
}

func (s *Store) UpdateContainer(ctx context.Context, id string, upd port.ContainerUpdate) (port.Container, error) {
	var c setClause
	if upd.Status != nil {
		c.add("status", *upd.Status)
	}
	if upd.YardLocation != nil {
		c.add("yard_location", nilIfEmpty(*upd.YardLocation))
	}
	if upd.VesselID != nil {
		c.add("vessel_id", nilIfEmpty(*upd.VesselID))
	}
	if upd.DepartureDate != nil {
		c.add("departure_date", *upd.DepartureDate)
	}
	if len(c.frags) == 0 {
		return s.GetContainer(ctx, id)
	}
	c.args = append(c.args, id)
	out, err := scanContainer(s.db.QueryRowContext(ctx, fmt.Sprintf(`
		update containers set %s, updated_at=now() where id=$%d returning %s`,
		c.set(), len(c.args), containerCols), c.args...))
	if err != nil {
		return port.Container{}, mapErr(err, "container", id)
	}
	return out, nil
}

// --- tasks ---

const taskCols = `id, title, coalesce(description,''), coalesce(assigned_to,''), coalesce(role_required,''),
	priority, status, estimated_duration, coalesce(vessel_id,''), coalesce(container_id,''),
	due_date, completed_at, checklist, created_at, updated_at`

func scanTask(sc scanner) (port.Task, error) {
	var t port.Task
	var est sql.NullInt64
	var due, completed sql.NullTime
	var checklist []byte
	err := sc.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.RoleRequired,
		&t.Priority, &t.Status, &est, &t.VesselID, &t.ContainerID,
		&due, &completed, &checklist, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return port.Task{}, err
	}
	t.EstimatedDuration = nullInt(est)
	t.DueDate = nullTime(due)
	t.CompletedAt = nullTime(completed)
	t.Checklist = []tasks.ChecklistItem{}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &t.Checklist); err != nil {
			return port.Task{}, fmt.Errorf("decode checklist for task %s: %w", t.ID, err)
		}
	}
	return t, nil
}

func (s *Store) ListTasks(ctx context.Context) ([]port.Task, error) {
	return s.queryTasks(ctx, `select `+taskCols+` from tasks order by created_at desc`)
}

func (s *Store) ListTasksByAssignee(ctx context.Context, userID string) ([]port.Task, error) {
	return s.queryTasks(ctx, `select `+taskCols+` from tasks where assigned_to=$1 order by created_at desc`, userID)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]port.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []port.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, id string) (port.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `select `+taskCols+` from tasks where id=$1`, id))
	if err != nil {
		return port.Task{}, mapErr(err, "task", id)
	}
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, in port.InsertTask) (port.Task, error) {
	id := ids.New()
	priority := in.Priority
	if priority == "" {
		priority = port.PriorityMedium
	}
	checklist := in.Checklist
	if checklist == nil {
		checklist = []tasks.ChecklistItem{}
	}
	raw, err := json.Marshal(checklist)
	if err != nil {
		return port.Task{}, fmt.Errorf("encode checklist: %w", err)
	}
	t, err := scanTask(s.db.QueryRowContext(ctx, `
		insert into tasks(id, title, description, assigned_to, role_required, priority, status,
			estimated_duration, vessel_id, container_id, due_date, checklist)
		values ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), $6, $7,
			$8, nullif($9,''), nullif($10,''), $11, $12)
		returning `+taskCols,
		id, in.Title, in.Description, in.AssignedTo, in.RoleRequired, priority, tasks.StatusPending,
		in.EstimatedDuration, in.VesselID, in.ContainerID, in.DueDate, raw))
	if err != nil {
		return port.Task{}, mapErr(err, "task", id)
	}
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, upd port.TaskUpdate) (port.Task, error) {
	var c setClause
	if upd.Title != nil {
		c.add("title", *upd.Title)
	}
	if upd.Description != nil {
		c.add("description", nilIfEmpty(*upd.Description))
	}
	if upd.AssignedTo != nil {
		c.add("assigned_to", nilIfEmpty(*upd.AssignedTo))
	}
	if upd.RoleRequired != nil {
		c.add("role_required", nilIfEmpty(*upd.RoleRequired))
	}
	if upd.Priority != nil {
		c.add("priority", *upd.Priority)
	}
	if upd.Status != nil {
		c.add("status", *upd.Status)
		if upd.CompletedAt != nil {
			c.add("completed_at", *upd.CompletedAt)
		} else if *upd.Status != tasks.StatusCompleted {
			c.add("completed_at", nil)
		}
	}
	if upd.DueDate != nil {
		c.add("due_date", *upd.DueDate)
	}
	if upd.Checklist != nil {
		raw, err := json.Marshal(*upd.Checklist)
		if err != nil {
			return port.Task{}, fmt.Errorf("encode checklist: %w", err)
		}
		c.add("checklist", raw)
	}
	if len(c.frags) == 0 {
		return s.GetTask(ctx, id)
	}
	c.args = append(c.args, id)
	t, err := scanTask(s.db.QueryRowContext(ctx, fmt.Sprintf(`
		update tasks set %s, updated_at=now() where id=$%d returning %s`,
		c.set(), len(c.args), taskCols), c.args...))
	if err != nil {
		return port.Task{}, mapErr(err, "task", id)
	}
	return t, nil
}

// --- gate transactions ---

const gateCols = `id, truck_number, coalesce(driver_name,''), coalesce(container_id,''),
	transaction_type, coalesce(gate_number,''), coalesce(processed_by,''), processed_at, created_at`

func scanGate(sc scanner) (port.GateTransaction, error) {
	var g port.GateTransaction
	err := sc.Scan(&g.ID, &g.TruckNumber, &g.DriverName, &g.ContainerID,
		&g.TransactionType, &g.GateNumber, &g.ProcessedBy, &g.ProcessedAt, &g.CreatedAt)
	if err != nil {
		return port.GateTransaction{}, err
	}
	return g, nil
}

func (s *Store) ListGateTransactions(ctx context.Context) ([]port.GateTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `select `+gateCols+` from gate_transactions order by processed_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []port.GateTransaction
	for rows.Next() {
		g, err := scanGate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) CreateGateTransaction(ctx context.Context, in port.InsertGateTransaction) (port.GateTransaction, error) {
	id := ids.New()
	g, err := scanGate(s.db.QueryRowContext(ctx, `
		insert into gate_transactions(id, truck_number, driver_name, container_id,
			transaction_type, gate_number, processed_by, processed_at)
		values ($1, $2, nullif($3,''), nullif($4,''), $5, nullif($6,''), nullif($7,''), coalesce($8, now()))
		returning `+gateCols,
		id, strings.TrimSpace(in.TruckNumber), in.DriverName, in.ContainerID,
		in.TransactionType, in.GateNumber, in.ProcessedBy, in.ProcessedAt))
	if err != nil {
		return port.GateTransaction{}, mapErr(err, "gate transaction", id)
	}
	return g, nil
}

// --- berths ---

const berthCols = `id, name, length, depth, max_draft, crane_count, status,
	coalesce(current_vessel_id,''), created_at, updated_at`

func scanBerth(sc scanner) (port.Berth, error) {
	var b port.Berth
	var length, depth, maxDraft sql.NullFloat64
	err := sc.Scan(&b.ID, &b.Name, &length, &depth, &maxDraft, &b.CraneCount, &b.Status,
		&b.CurrentVesselID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return port.Berth{}, err
	}
	b.Length = nullFloat(length)
	b.Depth = nullFloat(depth)
	b.MaxDraft = nullFloat(maxDraft)
	return b, nil
}

func (s *Store) ListBerths(ctx context.Context) ([]port.Berth, error) {
	rows, err := s.db.QueryContext(ctx, `select `+berthCols+` from berths order by name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []port.Berth
	for rows.Next() {
		b, err := scanBerth(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) UpdateBerth(ctx context.Context, id string, upd port.BerthUpdate) (port.Berth, error) {
	if upd.CurrentVesselID != nil && *upd.CurrentVesselID != "" {
		var status string
		err := s.db.QueryRowContext(ctx, `select status from vessels where id=$1`, *upd.CurrentVesselID).Scan(&status)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return port.Berth{}, fmt.Errorf("vessel %s does not exist: %w", *upd.CurrentVesselID, port.ErrInvalidInput)
			}
			return port.Berth{}, err
		}
		if status != port.VesselStatusDocked {
			return port.Berth{}, fmt.Errorf("vessel %s is not docked: %w", *upd.CurrentVesselID, port.ErrInvalidInput)
		}
	}
	var c setClause
	if upd.Status != nil {
		c.add("status", *upd.Status)
	}
	if upd.CurrentVesselID != nil {
		c.add("current_vessel_id", nilIfEmpty(*upd.CurrentVesselID))
	}
	if len(c.frags) == 0 {
		b, err := scanBerth(s.db.QueryRowContext(ctx, `select `+berthCols+` from berths where id=$1`, id))
		if err != nil {
			return port.Berth{}, mapErr(err, "berth", id)
		}
		return b, nil
	}
	c.args = append(c.args, id)
	b, err := scanBerth(s.db.QueryRowContext(ctx, fmt.Sprintf(`
		update berths set %s, updated_at=now() where id=$%d returning %s`,
		c.set(), len(c.args), berthCols), c.args...))
	if err != nil {
		return port.Berth{}, mapErr(err, "berth", id)
	}
	return b, nil
}

// --- integrations ---

const integrationCols = `id, name, type, status, config, last_sync, created_at, updated_at`

func scanIntegration(sc scanner) (port.Integration, error) {
	var in port.Integration
	var config []byte
	var lastSync sql.NullTime
	err := sc.Scan(&in.ID, &in.Name, &in.Type, &in.Status, &config, &lastSync, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return port.Integration{}, err
	}
	if len(config) > 0 {
		if err := json.Unmarshal(config, &in.Config); err != nil {
			return port.Integration{}, fmt.Errorf("decode config for integration %s: %w", in.ID, err)
		}
	}
	in.LastSync = nullTime(lastSync)
	return in, nil
}

func (s *Store) ListIntegrations(ctx context.Context) ([]port.Integration, error) {
	rows, err := s.db.QueryContext(ctx, `select `+integrationCols+` from integrations order by name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []port.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *Store) UpdateIntegration(ctx context.Context, id string, upd port.IntegrationUpdate) (port.Integration, error) {
	var c setClause
	if upd.Name != nil {
		c.add("name", *upd.Name)
	}
	if upd.Status != nil {
		c.add("status", *upd.Status)
	}
	if upd.Config != nil {
		raw, err := json.Marshal(*upd.Config)
		if err != nil {
			return port.Integration{}, fmt.Errorf("encode config: %w", err)
		}
		c.add("config", raw)
	}
	if upd.LastSync != nil {
		c.add("last_sync", *upd.LastSync)
	}
	if len(c.frags) == 0 {
		in, err := scanIntegration(s.db.QueryRowContext(ctx, `select `+integrationCols+` from integrations where id=$1`, id))
		if err != nil {
			return port.Integration{}, mapErr(err, "integration", id)
		}
		return in, nil
	}
	c.args = append(c.args, id)
	in, err := scanIntegration(s.db.QueryRowContext(ctx, fmt.Sprintf(`
		update integrations set %s, updated_at=now() where id=$%d returning %s`,
		c.set(), len(c.args), integrationCols), c.args...))
	if err != nil {
		return port.Integration{}, mapErr(err, "integration", id)
	}
	return in, nil
}

// --- dashboard ---

// DashboardStats runs five independent counts. There is no shared snapshot
// across them; the dashboard tolerates mutual drift under concurrent writes.
func (s *Store) DashboardStats(ctx context.Context, yardSlots int) (port.DashboardStats, error) {
	var stats port.DashboardStats
	counts := []struct {
		query string
		dest  *int
	}{
		{`select count(*) from vessels`, &stats.TotalVessels},
		{`select count(*) from vessels where status='docked'`, &stats.VesselsInPort},
		{`select count(*) from containers`, &stats.ContainersInYard},
		{`select count(*) from tasks where status='pending'`, &stats.PendingTasks},
		{`select count(*) from gate_transactions where date(processed_at) = current_date`, &stats.GateTransactionsToday},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return port.DashboardStats{}, err
		}
	}
	if yardSlots > 0 {
		stats.YardOccupancy = int(float64(stats.ContainersInYard)/float64(yardSlots)*100 + 0.5)
	}
	return stats, nil
}

// --- helpers ---

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
