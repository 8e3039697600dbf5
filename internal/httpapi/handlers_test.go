package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"harborops.org/internal/auth"
	"harborops.org/internal/port"
)

type apiClient struct {
	baseURL string
	client  *http.Client
	t       *testing.T
}

func newTestAPI(t *testing.T) (*apiClient, *port.InMemory) {
	t.Helper()

	t.Setenv("HARBOR_AUTH_SECRET", "test-secret")
	auth.ResetSecretForTests()

	store := port.NewInMemory()
	api := New(store, ReadyProbe{}, Options{
		Version:    "test",
		YardSlots:  1000,
		RateBurst:  1000,
		RatePerSec: 1000,
	})

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{
		baseURL: srv.URL,
		client:  srv.Client(),
		t:       t,
	}, store
}

func (c *apiClient) do(method, path string, body any, headers map[string]string) *http.Response {
	c.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}

func (c *apiClient) post(path string, body any, headers map[string]string) *http.Response {
	return c.do(http.MethodPost, path, body, headers)
}

func (c *apiClient) get(path string, headers map[string]string) *http.Response {
	return c.do(http.MethodGet, path, nil, headers)
}

func (c *apiClient) patch(path string, body any, headers map[string]string) *http.Response {
	return c.do(http.MethodPatch, path, body, headers)
}

func (c *apiClient) obtainToken(userID, email string) string {
	c.t.Helper()
	resp := c.post("/api/auth/token", map[string]any{
		"userId": userID,
		"email":  email,
	}, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("unexpected token status: %d", resp.StatusCode)
	}
	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.t.Fatalf("decode token response: %v", err)
	}
	if payload.Token == "" {
		c.t.Fatalf("empty token issued")
	}
	return payload.Token
}

// foremanToken registers a user, promotes them past the default role, and
// returns a token carrying the elevated claims.
func foremanToken(c *apiClient, store *port.InMemory, userID string) string {
	c.t.Helper()
	c.obtainToken(userID, userID+"@port.example")
	if _, err := store.UpdateUserRole(context.Background(), userID, "foreman", 4); err != nil {
		c.t.Fatalf("promote %s: %v", userID, err)
	}
	return c.obtainToken(userID, userID+"@port.example")
}

func bearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode[T any](t *testing.T, r *http.Response) T {
	t.Helper()
	defer r.Body.Close()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestVesselLifecycleMovesDashboard(t *testing.T) {
	api, _ := newTestAPI(t)
	hdr := bearerHeader(api.obtainToken("ops-1", "ops-1@port.example"))

	resp := api.post("/api/vessels", map[string]any{
		"name":      "MV Aurora",
		"imoNumber": "IMO9300001",
		"status":    "approaching",
	}, hdr)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if resp.Header.Get("Location") == "" {
		t.Fatalf("missing Location header")
	}
	vessel := decode[map[string]any](t, resp)
	id := vessel["id"].(string)

	resp = api.get("/api/dashboard/stats", hdr)
	stats := decode[port.DashboardStats](t, resp)
	if stats.TotalVessels != 1 || stats.VesselsInPort != 0 {
		t.Fatalf("approaching vessel must not count as in port: %+v", stats)
	}

	resp = api.patch("/api/vessels/"+id, map[string]any{"status": "docked"}, hdr)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	updated := decode[map[string]any](t, resp)
	if updated["status"] != "docked" {
		t.Fatalf("status = %v", updated["status"])
	}

	resp = api.get("/api/dashboard/stats", hdr)
	stats = decode[port.DashboardStats](t, resp)
	if stats.VesselsInPort != 1 {
		t.Fatalf("vesselsInPort = %d after docking", stats.VesselsInPort)
	}
}

func TestVesselDuplicateIMOConflicts(t *testing.T) {
	api, _ := newTestAPI(t)
	hdr := bearerHeader(api.obtainToken("ops-1", "ops-1@port.example"))

	body := map[string]any{"name": "MV Aurora", "imoNumber": "IMO9300001"}
	resp := api.post("/api/vessels", body, hdr)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.post("/api/vessels", map[string]any{"name": "MV Borealis", "imoNumber": "IMO9300001"}, hdr)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestRoleAssignmentFlow(t *testing.T) {
	api, store := newTestAPI(t)
	adminHdr := bearerHeader(foremanToken(api, store, "admin-1"))
	api.obtainToken("worker-1", "worker-1@port.example")

	// The catalog level wins; a mismatched level is rejected.
	resp := api.patch("/api/users/worker-1/role", map[string]any{"role": "foreman", "roleLevel": 9}, adminHdr)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for level mismatch, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.patch("/api/users/worker-1/role", map[string]any{"role": "foreman", "roleLevel": 4}, adminHdr)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	updated := decode[port.User](t, resp)
	if updated.Role != "foreman" || updated.RoleLevel != 4 {
		t.Fatalf("role not applied: %s/%d", updated.Role, updated.RoleLevel)
	}

	resp = api.get("/api/users", adminHdr)
	users := decode[[]port.User](t, resp)
	found := false
	for _, u := range users {
		if u.ID == "worker-1" && u.Role == "foreman" && u.RoleLevel == 4 {
			found = true
		}
	}
	if !found {
		t.Fatalf("updated user missing from listing: %+v", users)
	}

	// Unknown roles never reach the store.
	resp = api.patch("/api/users/worker-1/role", map[string]any{"role": "pirate"}, adminHdr)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", resp.StatusCode)
	}
}

func TestRoleAssignmentRequiresWorkforcePermission(t *testing.T) {
	api, _ := newTestAPI(t)
	labourHdr := bearerHeader(api.obtainToken("worker-1", "worker-1@port.example"))

	resp := api.patch("/api/users/worker-1/role", map[string]any{"role": "foreman"}, labourHdr)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for default role, got %d", resp.StatusCode)
	}
}

func TestTaskChecklistFlow(t *testing.T) {
	api, store := newTestAPI(t)
	hdr := bearerHeader(foremanToken(api, store, "super-1"))

	resp := api.post("/api/tasks", map[string]any{
		"title":    "Unload bay 3",
		"priority": "high",
		"checklist": []map[string]any{
			{"id": "c1", "description": "chock wheels", "required": true},
			{"id": "c2", "description": "check seals", "required": false},
		},
	}, hdr)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	task := decode[port.Task](t, resp)
	if task.Status != "pending" || task.Priority != "high" {
		t.Fatalf("unexpected new task: %+v", task)
	}
	if task.ID == "" || task.CreatedAt.IsZero() {
		t.Fatalf("server fields not stamped: %+v", task)
	}

	// One of two items checked: in progress, no completion stamp.
	resp = api.patch("/api/tasks/"+task.ID, map[string]any{
		"checklist": []map[string]any{
			{"id": "c1", "description": "chock wheels", "required": true, "completed": true},
			{"id": "c2", "description": "check seals", "required": false},
		},
	}, hdr)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	task = decode[port.Task](t, resp)
	if task.Status != "in_progress" || task.CompletedAt != nil {
		t.Fatalf("partial checklist should be in_progress: %+v", task)
	}

	// Every item checked: completed with a stamp.
	resp = api.patch("/api/tasks/"+task.ID, map[string]any{
		"checklist": []map[string]any{
			{"id": "c1", "description": "chock wheels", "required": true, "completed": true},
			{"id": "c2", "description": "check seals", "required": false, "completed": true},
		},
	}, hdr)
	task = decode[port.Task](t, resp)
	if task.Status != "completed" || task.CompletedAt == nil {
		t.Fatalf("full checklist should complete the task: %+v", task)
	}
}

func TestTaskCompleteEndpoint(t *testing.T) {
	api, store := newTestAPI(t)
	hdr := bearerHeader(foremanToken(api, store, "super-1"))

	resp := api.post("/api/tasks", map[string]any{
		"title": "Inspect reefer plugs",
		"checklist": []map[string]any{
			{"id": "c1", "description": "row A"},
			{"id": "c2", "description": "row B"},
		},
	}, hdr)
	task := decode[port.Task](t, resp)

	resp = api.post("/api/tasks/"+task.ID+"/complete", nil, hdr)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	task = decode[port.Task](t, resp)
	if task.Status != "completed" || task.CompletedAt == nil {
		t.Fatalf("complete endpoint did not close the task: %+v", task)
	}
	for _, item := range task.Checklist {
		if !item.Completed {
			t.Fatalf("item %s left unchecked", item.ID)
		}
	}
}

func TestTasksByAssignee(t *testing.T) {
	api, store := newTestAPI(t)
	hdr := bearerHeader(foremanToken(api, store, "super-1"))
	api.obtainToken("worker-1", "worker-1@port.example")

	resp := api.post("/api/tasks", map[string]any{
		"title":      "Lash deck cargo",
		"assignedTo": "worker-1",
	}, hdr)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.get("/api/tasks/user/worker-1", hdr)
	mine := decode[[]port.Task](t, resp)
	if len(mine) != 1 || mine[0].Title != "Lash deck cargo" {
		t.Fatalf("unexpected assignee tasks: %+v", mine)
	}

	resp = api.get("/api/tasks/user/nobody", hdr)
	empty := decode[[]port.Task](t, resp)
	if len(empty) != 0 {
		t.Fatalf("expected no tasks, got %+v", empty)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	api, store := newTestAPI(t)
	hdr := bearerHeader(foremanToken(api, store, "super-1"))
	api.obtainToken("worker-1", "worker-1@port.example")

	resp := api.post("/api/tasks", map[string]any{
		"title":             "Discharge hold 2",
		"description":       "Reefer cargo first",
		"assignedTo":        "worker-1",
		"roleRequired":      "crane_operator",
		"priority":          "critical",
		"estimatedDuration": 90,
		"checklist": []map[string]any{
			{"id": "c1", "description": "power down reefers", "required": true},
		},
	}, hdr)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	created := decode[port.Task](t, resp)

	resp = api.get("/api/tasks/"+created.ID, hdr)
	got := decode[port.Task](t, resp)
	if got.Title != "Discharge hold 2" || got.Description != "Reefer cargo first" ||
		got.AssignedTo != "worker-1" || got.RoleRequired != "crane_operator" ||
		got.Priority != "critical" {
		t.Fatalf("fields did not survive the round trip: %+v", got)
	}
	if got.EstimatedDuration == nil || *got.EstimatedDuration != 90 {
		t.Fatalf("estimatedDuration = %v", got.EstimatedDuration)
	}
	if len(got.Checklist) != 1 || got.Checklist[0].Description != "power down reefers" {
		t.Fatalf("checklist did not survive: %+v", got.Checklist)
	}
	if got.ID == "" || got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("server fields missing: %+v", got)
	}
}

func TestTaskCreateRequiresPermission(t *testing.T) {
	api, _ := newTestAPI(t)
	labourHdr := bearerHeader(api.obtainToken("worker-1", "worker-1@port.example"))

	resp := api.post("/api/tasks", map[string]any{"title": "Nope"}, labourHdr)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestAuthUserDescribesRole(t *testing.T) {
	api, _ := newTestAPI(t)
	hdr := bearerHeader(api.obtainToken("worker-1", "worker-1@port.example"))

	resp := api.get("/api/auth/user", hdr)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	me := decode[map[string]any](t, resp)
	if me["roleLabel"] != "General Labour (Level 1)" {
		t.Fatalf("roleLabel = %v", me["roleLabel"])
	}
	systems := me["accessSystems"].([]any)
	if len(systems) != 1 {
		t.Fatalf("level 1 should reach exactly one system, got %d", len(systems))
	}
}

func TestGateTransactionStampsProcessor(t *testing.T) {
	api, _ := newTestAPI(t)
	hdr := bearerHeader(api.obtainToken("gate-1", "gate-1@port.example"))

	resp := api.post("/api/gate-transactions", map[string]any{
		"truckNumber":     "TRK-404",
		"transactionType": "in",
		"gateNumber":      "G3",
	}, hdr)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	tx := decode[map[string]any](t, resp)
	if tx["processedBy"] != "gate-1" {
		t.Fatalf("processedBy = %v", tx["processedBy"])
	}
	if tx["processedAt"] == nil {
		t.Fatalf("processedAt not stamped")
	}

	// Unknown direction is a validation failure.
	resp = api.post("/api/gate-transactions", map[string]any{
		"truckNumber":     "TRK-405",
		"transactionType": "sideways",
	}, hdr)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestContainerValidationAndPatch(t *testing.T) {
	api, _ := newTestAPI(t)
	hdr := bearerHeader(api.obtainToken("ops-1", "ops-1@port.example"))

	resp := api.post("/api/containers", map[string]any{"containerType": "dry"}, hdr)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing number, got %d", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	if body["details"] == nil {
		t.Fatalf("expected validation details, got %v", body)
	}

	resp = api.post("/api/containers", map[string]any{"containerNumber": "MSCU1234567"}, hdr)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	c := decode[map[string]any](t, resp)
	if c["status"] != "empty" {
		t.Fatalf("default status = %v", c["status"])
	}

	resp = api.patch("/api/containers/"+c["id"].(string), map[string]any{
		"status":       "loaded",
		"yardLocation": "A-12-3",
	}, hdr)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	c = decode[map[string]any](t, resp)
	if c["status"] != "loaded" || c["yardLocation"] != "A-12-3" {
		t.Fatalf("patch not applied: %v", c)
	}
}

func TestRoleCatalogEndpoints(t *testing.T) {
	api, _ := newTestAPI(t)
	hdr := bearerHeader(api.obtainToken("ops-1", "ops-1@port.example"))

	resp := api.get("/api/roles", hdr)
	roles := decode[[]map[string]any](t, resp)
	if len(roles) != 15 {
		t.Fatalf("expected 15 roles, got %d", len(roles))
	}
	for _, role := range roles {
		if role["label"] == "" {
			t.Fatalf("role %v missing label", role["id"])
		}
	}

	resp = api.get("/api/access-systems", hdr)
	systems := decode[[]map[string]any](t, resp)
	if len(systems) != 8 {
		t.Fatalf("expected 8 access systems, got %d", len(systems))
	}
}

func TestBerthAssignment(t *testing.T) {
	api, _ := newTestAPI(t)
	hdr := bearerHeader(api.obtainToken("ops-1", "ops-1@port.example"))

	resp := api.get("/api/berths", hdr)
	berths := decode[[]port.Berth](t, resp)
	if len(berths) == 0 {
		t.Fatalf("expected seeded berths")
	}

	resp = api.post("/api/vessels", map[string]any{"name": "MV Aurora", "status": "docked"}, hdr)
	vessel := decode[port.Vessel](t, resp)

	resp = api.patch("/api/berths/"+berths[0].ID, map[string]any{
		"status":          "occupied",
		"currentVesselId": vessel.ID,
	}, hdr)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	b := decode[port.Berth](t, resp)
	if b.Status != "occupied" || b.CurrentVesselID != vessel.ID {
		t.Fatalf("berth not updated: %+v", b)
	}
}
