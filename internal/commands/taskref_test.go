package commands

import (
	"errors"
	"testing"

	"tasktrack/internal/service"
)

func TestParseTaskRef_NumericOnly(t *testing.T) {
	ref, err := ParseTaskRef([]string{"12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 12 || ref.ID != "" {
		t.Errorf("expected Num=12, got %+v", ref)
	}
}

func TestParseTaskRef_IDPrefix(t *testing.T) {
	ref, err := ParseTaskRef([]string{"3f2a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "3f2a" || ref.Num != 0 {
		t.Errorf("expected ID=3f2a, got %+v", ref)
	}
}

func TestParseTaskRef_Zero_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"0"})
	if err == nil || err.Error() != "task number out of range: 0" {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}

	_, err = ParseTaskRef([]string{"  "})
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired for blank ref, got %v", err)
	}
}

func TestParseTaskRef_InvalidRef_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"a/b"})
	if err == nil || err.Error() != "invalid task reference: a/b" {
		t.Errorf("expected invalid reference error, got %v", err)
	}
}

func TestParseTaskRef_NonASCIIDigits(t *testing.T) {
	// Arabic-Indic digits are not positions
	ref, err := ParseTaskRef([]string{"٣"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "٣" {
		t.Errorf("expected id reference, got %+v", ref)
	}
}

func testTasks() []service.Task {
	return []service.Task{
		{ID: "aa11", Title: "Write report", Status: service.StatusInProgress},
		{ID: "ab22", Title: "Buy milk", Status: service.StatusPending},
		{ID: "bb33", Title: "File taxes", Status: service.StatusCompleted},
		{ID: "cc44", Title: "Buy eggs", Status: service.StatusPending},
	}
}

func TestDashboardOrder_GroupsByStatus(t *testing.T) {
	ordered := dashboardOrder(testTasks())

	want := []string{"ab22", "cc44", "aa11", "bb33"}
	if len(ordered) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(ordered))
	}
	for i, id := range want {
		if ordered[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i+1, id, ordered[i].ID)
		}
	}
}

func TestDashboardOrder_UnknownStatusLast(t *testing.T) {
	tasks := append(testTasks(), service.Task{ID: "zz", Status: "BLOCKED"})
	tasks[0], tasks[4] = tasks[4], tasks[0]

	ordered := dashboardOrder(tasks)

	if ordered[len(ordered)-1].ID != "zz" {
		t.Errorf("expected unknown status last, got %s", ordered[len(ordered)-1].ID)
	}
}

func TestFindTask_ByNumber(t *testing.T) {
	task, err := findTask(testTasks(), TaskRef{Num: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "cc44" {
		t.Errorf("expected cc44, got %s", task.ID)
	}

	_, err = findTask(testTasks(), TaskRef{Num: 5})
	if err == nil || err.Error() != "task number out of range: 5" {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestFindTask_ByIDPrefix(t *testing.T) {
	task, err := findTask(testTasks(), TaskRef{ID: "bb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "bb33" {
		t.Errorf("expected bb33, got %s", task.ID)
	}

	task, err = findTask(testTasks(), TaskRef{ID: "aa11"})
	if err != nil || task.ID != "aa11" {
		t.Errorf("expected exact match aa11, got %s (%v)", task.ID, err)
	}
}

func TestFindTask_AmbiguousPrefix(t *testing.T) {
	_, err := findTask(testTasks(), TaskRef{ID: "a"})
	if !errors.Is(err, errAmbiguousTask) {
		t.Errorf("expected ambiguous error, got %v", err)
	}
}

func TestFindTask_NotFound(t *testing.T) {
	_, err := findTask(testTasks(), TaskRef{ID: "zz"})
	if !errors.Is(err, errTaskNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}
