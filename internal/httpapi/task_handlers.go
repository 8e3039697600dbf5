package httpapi

import (
	"net/http"
	"strings"
	"time"

	"harborops.org/internal/audit"
	"harborops.org/internal/port"
	"harborops.org/internal/rbac"
	"harborops.org/internal/tasks"
)

func (a *API) handleTasksCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := a.store.ListTasks(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		a.createTask(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleTaskResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if userID, ok := strings.CutPrefix(path, "user/"); ok {
		if userID == "" || strings.Contains(userID, "/") {
			writeError(w, r, http.StatusNotFound, "resource not found")
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		list, err := a.store.ListTasksByAssignee(r.Context(), userID)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if id, ok := strings.CutSuffix(path, "/complete"); ok && id != "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.completeTask(w, r, id)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := a.store.GetTask(r.Context(), path)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	case http.MethodPatch:
		a.updateTask(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch)
	}
}

func (a *API) createTask(w http.ResponseWriter, r *http.Request) {
	if err := requirePermission(r.Context(), rbac.PermWorkforceMgmt); err != nil {
		writeError(w, r, http.StatusForbidden, err.Error())
		return
	}
	var in port.InsertTask
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := in.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	t, err := a.store.CreateTask(r.Context(), in)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "task.create", map[string]any{
		"task_id": t.ID,
		"title":   t.Title,
	})
	w.Header().Set("Location", "/api/tasks/"+t.ID)
	writeJSON(w, http.StatusCreated, t)
}

// updateTask applies a partial update. When a checklist is supplied the task
// status and completion stamp are derived from it; any raw status in the
// same request is overridden.
func (a *API) updateTask(w http.ResponseWriter, r *http.Request, id string) {
	var upd port.TaskUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if problems := upd.Validate(); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	if upd.Checklist != nil {
		eval := tasks.SaveProgress(*upd.Checklist, time.Now().UTC())
		upd.Status = &eval.Status
		upd.CompletedAt = eval.CompletedAt
	}
	t, err := a.store.UpdateTask(r.Context(), id, upd)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "task.update", map[string]any{
		"task_id": t.ID,
		"status":  t.Status,
	})
	writeJSON(w, http.StatusOK, t)
}

// completeTask force-checks every checklist item and closes the task.
func (a *API) completeTask(w http.ResponseWriter, r *http.Request, id string) {
	t, err := a.store.GetTask(r.Context(), id)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	checklist, eval := tasks.CompleteAll(t.Checklist, time.Now().UTC())
	upd := port.TaskUpdate{
		Status:      &eval.Status,
		CompletedAt: eval.CompletedAt,
		Checklist:   &checklist,
	}
	t, err = a.store.UpdateTask(r.Context(), id, upd)
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "task.complete", map[string]any{
		"task_id": t.ID,
	})
	writeJSON(w, http.StatusOK, t)
}
