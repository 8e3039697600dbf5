package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"harborops.org/internal/obs"
	"harborops.org/internal/port"
)

// ReadyProbe pings the backing database when one is configured.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Options tunes the API without reaching into the config package.
type Options struct {
	Version    string
	YardSlots  int
	RateBurst  int
	RatePerSec int
	TokenTTL   time.Duration
	MaxBody    int64
}

// API is the HTTP layer over the port operations store.
type API struct {
	mux        *http.ServeMux
	store      port.Store
	readyProbe ReadyProbe
	opts       Options
}

func New(store port.Store, rp ReadyProbe, opts Options) *API {
	if opts.YardSlots <= 0 {
		opts.YardSlots = 1000
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 20
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 10
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = 1 << 20
	}
	a := &API{
		mux:        http.NewServeMux(),
		store:      store,
		readyProbe: rp,
		opts:       opts,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// auth
	a.mux.HandleFunc("/api/auth/token", a.handleAuthToken)
	a.mux.HandleFunc("/api/auth/user", a.handleAuthUser)

	// role catalog
	a.mux.HandleFunc("/api/roles", a.handleRoles)
	a.mux.HandleFunc("/api/access-systems", a.handleAccessSystems)

	// users
	a.mux.HandleFunc("/api/users", a.handleUsersCollection)
	a.mux.HandleFunc("/api/users/", a.handleUserResource)

	// vessels and berths
	a.mux.HandleFunc("/api/vessels", a.handleVesselsCollection)
	a.mux.HandleFunc("/api/vessels/", a.handleVesselResource)
	a.mux.HandleFunc("/api/berths", a.handleBerthsCollection)
	a.mux.HandleFunc("/api/berths/", a.handleBerthResource)

	// containers and the gate
	a.mux.HandleFunc("/api/containers", a.handleContainersCollection)
	a.mux.HandleFunc("/api/containers/", a.handleContainerResource)
	a.mux.HandleFunc("/api/gate-transactions", a.handleGateTransactions)

	// tasks
	a.mux.HandleFunc("/api/tasks", a.handleTasksCollection)
	a.mux.HandleFunc("/api/tasks/", a.handleTaskResource)

	// integrations and the dashboard
	a.mux.HandleFunc("/api/integrations", a.handleIntegrationsCollection)
	a.mux.HandleFunc("/api/integrations/", a.handleIntegrationResource)
	a.mux.HandleFunc("/api/dashboard/stats", a.handleDashboardStats)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler.
func (a *API) Handler() http.Handler {
	h := a.withAuth(a.mux)
	h = RateLimit(h, a.opts.RateBurst, a.opts.RatePerSec)
	h = MaxBodyBytes(h, a.opts.MaxBody)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = Logging(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "harbor-api",
		"version": a.opts.Version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
