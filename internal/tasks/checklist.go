package tasks

import (
	"errors"
	"math"
	"time"
)

// Task status lifecycle. A task starts pending and only moves when checklist
// state is explicitly evaluated; completed is terminal for the normal flow.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

var ErrItemNotFound = errors.New("tasks: checklist item not found")

// ChecklistItem is an atomic, independently completable unit of a task.
type ChecklistItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Completed   bool   `json:"completed"`
}

// Progress summarizes checklist completion for display.
type Progress struct {
	CompletedCount int `json:"completedCount"`
	TotalCount     int `json:"totalCount"`
	Percentage     int `json:"percentage"`
}

// Evaluation is the result of applying the status transition rule.
type Evaluation struct {
	Status      string
	CompletedAt *time.Time
}

// ComputeProgress counts completed items. An empty checklist yields zero
// percent rather than dividing by zero.
func ComputeProgress(checklist []ChecklistItem) Progress {
	total := len(checklist)
	done := 0
	for _, item := range checklist {
		if item.Completed {
			done++
		}
	}
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(done) / float64(total)))
	}
	return Progress{CompletedCount: done, TotalCount: total, Percentage: pct}
}

// ToggleItem flips the completed flag of exactly one item and returns the
// updated checklist. The input slice is not modified; status is unaffected
// until an explicit save.
func ToggleItem(checklist []ChecklistItem, itemID string) ([]ChecklistItem, error) {
	out := make([]ChecklistItem, len(checklist))
	copy(out, checklist)
	for i := range out {
		if out[i].ID == itemID {
			out[i].Completed = !out[i].Completed
			return out, nil
		}
	}
	return nil, ErrItemNotFound
}

// SaveProgress applies the transition rule: every item checked (required or
// optional alike) completes the task and stamps the completion time; anything
// less moves it to in_progress, even at zero checked items. An explicit save
// never returns a task to pending.
func SaveProgress(checklist []ChecklistItem, now time.Time) Evaluation {
	p := ComputeProgress(checklist)
	// An empty checklist counts as fully checked; 0 == 0.
	if p.CompletedCount == p.TotalCount {
		at := now
		return Evaluation{Status: StatusCompleted, CompletedAt: &at}
	}
	return Evaluation{Status: StatusInProgress}
}

// CompleteAll force-checks every item and applies the transition rule,
// yielding completed unconditionally.
func CompleteAll(checklist []ChecklistItem, now time.Time) ([]ChecklistItem, Evaluation) {
	out := make([]ChecklistItem, len(checklist))
	copy(out, checklist)
	for i := range out {
		out[i].Completed = true
	}
	at := now
	return out, Evaluation{Status: StatusCompleted, CompletedAt: &at}
}
