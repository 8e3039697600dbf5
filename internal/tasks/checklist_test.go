package tasks

import (
	"errors"
	"testing"
	"time"
)

func fiveItems() []ChecklistItem {
	return []ChecklistItem{
		{ID: "c1", Description: "Check PPE equipment", Required: true},
		{ID: "c2", Description: "Verify safety harness", Required: true},
		{ID: "c3", Description: "Inspect work area for hazards", Required: true},
		{ID: "c4", Description: "Report any safety concerns", Required: false},
		{ID: "c5", Description: "Sign off on checklist", Required: false},
	}
}

func TestComputeProgressEmpty(t *testing.T) {
	p := ComputeProgress(nil)
	if p.CompletedCount != 0 || p.TotalCount != 0 || p.Percentage != 0 {
		t.Fatalf("empty checklist progress = %+v, want zeros", p)
	}
}

func TestComputeProgressAfterToggles(t *testing.T) {
	list := fiveItems()
	var err error
	for _, id := range []string{"c1", "c3", "c5"} {
		list, err = ToggleItem(list, id)
		if err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}
	p := ComputeProgress(list)
	if p.CompletedCount != 3 || p.TotalCount != 5 || p.Percentage != 60 {
		t.Fatalf("progress = %+v, want {3 5 60}", p)
	}
}

func TestToggleItemFlipsExactlyOne(t *testing.T) {
	list := fiveItems()
	updated, err := ToggleItem(list, "c2")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !updated[1].Completed {
		t.Fatalf("c2 should be completed after toggle")
	}
	for i, item := range updated {
		if i != 1 && item.Completed {
			t.Fatalf("item %s flipped unexpectedly", item.ID)
		}
	}
	if list[1].Completed {
		t.Fatalf("input slice was mutated")
	}

	// Toggling again flips it back.
	back, err := ToggleItem(updated, "c2")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if back[1].Completed {
		t.Fatalf("c2 should be unchecked after double toggle")
	}
}

func TestToggleItemUnknownID(t *testing.T) {
	if _, err := ToggleItem(fiveItems(), "c99"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSaveProgressPartial(t *testing.T) {
	list := fiveItems()[:4]
	list[0].Completed = true
	list[1].Completed = true

	ev := SaveProgress(list, time.Now())
	if ev.Status != StatusInProgress {
		t.Fatalf("2/4 complete should be in_progress, got %s", ev.Status)
	}
	if ev.CompletedAt != nil {
		t.Fatalf("completedAt must stay nil for partial progress")
	}
}

func TestSaveProgressZeroChecked(t *testing.T) {
	// An explicit save with nothing checked moves to in_progress, never back
	// to pending.
	ev := SaveProgress(fiveItems(), time.Now())
	if ev.Status != StatusInProgress {
		t.Fatalf("zero-progress save should yield in_progress, got %s", ev.Status)
	}
}

func TestSaveProgressAllChecked(t *testing.T) {
	list := fiveItems()
	for i := range list {
		list[i].Completed = true
	}
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	ev := SaveProgress(list, now)
	if ev.Status != StatusCompleted {
		t.Fatalf("all checked should complete, got %s", ev.Status)
	}
	if ev.CompletedAt == nil || !ev.CompletedAt.Equal(now) {
		t.Fatalf("completedAt = %v, want %v", ev.CompletedAt, now)
	}
}

func TestCompleteAll(t *testing.T) {
	list := fiveItems()
	list[2].Completed = true // prior state must not matter

	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	updated, ev := CompleteAll(list, now)
	if ev.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", ev.Status)
	}
	if ev.CompletedAt == nil || !ev.CompletedAt.Equal(now) {
		t.Fatalf("completedAt = %v, want %v", ev.CompletedAt, now)
	}
	for _, item := range updated {
		if !item.Completed {
			t.Fatalf("item %s left unchecked", item.ID)
		}
	}
	p := ComputeProgress(updated)
	if p.Percentage != 100 {
		t.Fatalf("percentage = %d, want 100", p.Percentage)
	}
}

func TestRequiredItemsDoNotGateCompletion(t *testing.T) {
	// Completion is defined over all items uniformly; a checked optional item
	// cannot complete a task with unchecked required ones and vice versa.
	list := []ChecklistItem{
		{ID: "r1", Required: true, Completed: true},
		{ID: "o1", Required: false, Completed: false},
	}
	if ev := SaveProgress(list, time.Now()); ev.Status != StatusInProgress {
		t.Fatalf("unchecked optional item must block completion, got %s", ev.Status)
	}
	list[1].Completed = true
	if ev := SaveProgress(list, time.Now()); ev.Status != StatusCompleted {
		t.Fatalf("all items checked should complete")
	}
}
