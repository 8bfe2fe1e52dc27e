package domain

import (
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func TestNewSkeletonDerivesNameFromLocalPart(t *testing.T) {
	data := NewSkeleton("alice@example.com")

	if data.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", data.Email)
	}
	if data.Name != "alice" {
		t.Fatalf("expected name 'alice', got %q", data.Name)
	}
	if data.Tasks == nil || data.Notes == nil || data.Habits == nil || data.Goals == nil || data.Areas == nil || data.DailyReviews == nil {
		t.Fatal("expected all collections to be non-nil")
	}
	if len(data.Tasks) != 0 {
		t.Fatalf("expected empty tasks, got %d", len(data.Tasks))
	}
}

func TestSkeletonMarshalsEmptyArrays(t *testing.T) {
	payload, err := sonic.Marshal(NewSkeleton("bob@example.com"))
	if err != nil {
		t.Fatalf("marshal skeleton: %v", err)
	}
	if !strings.Contains(string(payload), "\"tasks\":[]") {
		t.Fatalf("expected tasks to marshal as empty array, got %s", payload)
	}
}

func TestComputeOverview(t *testing.T) {
	data := NewSkeleton("a@x.com")
	data.Tasks = []Task{{ID: "1"}, {ID: "2"}}
	data.Notes = []Note{{ID: "n1"}}
	data.DailyReviews = []DailyReview{{Date: "2026-08-01"}}

	data.ComputeOverview()

	if data.Overview == nil {
		t.Fatal("expected overview to be set")
	}
	if data.Overview.Tasks != 2 || data.Overview.Notes != 1 || data.Overview.Reviews != 1 {
		t.Fatalf("unexpected overview: %+v", data.Overview)
	}
	if data.Overview.Habits != 0 || data.Overview.Goals != 0 || data.Overview.Areas != 0 {
		t.Fatalf("expected zero counts for empty collections: %+v", data.Overview)
	}
}

func TestApplyPatchShallowMerge(t *testing.T) {
	data := NewSkeleton("a@x.com")
	data.Tasks = []Task{{ID: "keep"}}
	data.Notes = []Note{{ID: "old"}}

	newNotes := []Note{{ID: "new-1"}, {ID: "new-2"}}
	name := "Alice"
	data.ApplyPatch(AggregatePatch{Name: &name, Notes: &newNotes})

	if data.Name != "Alice" {
		t.Fatalf("expected patched name, got %q", data.Name)
	}
	if len(data.Notes) != 2 || data.Notes[0].ID != "new-1" {
		t.Fatalf("expected notes replaced wholesale, got %+v", data.Notes)
	}
	if len(data.Tasks) != 1 || data.Tasks[0].ID != "keep" {
		t.Fatalf("expected tasks untouched, got %+v", data.Tasks)
	}
}

func TestTaskPatchAppliesOnlyProvidedFields(t *testing.T) {
	task := Task{ID: "t1", Title: "Buy milk", DueDate: "2026-09-01"}

	done := true
	TaskPatch{Completed: &done}.Apply(&task)

	if !task.Completed {
		t.Fatal("expected task to be completed")
	}
	if task.Title != "Buy milk" || task.DueDate != "2026-09-01" {
		t.Fatalf("expected other fields unchanged, got %+v", task)
	}
}

func TestNewTaskMaterializesDraft(t *testing.T) {
	task := NewTask(TaskDraft{Title: "X", Notes: "n"})

	if task.ID == "" {
		t.Fatal("expected generated id")
	}
	if task.CreatedAt == "" {
		t.Fatal("expected createdAt to be set")
	}
	if task.Completed {
		t.Fatal("expected new task to start incomplete")
	}
}

func TestUpsertReviewReplacesSameDate(t *testing.T) {
	data := NewSkeleton("a@x.com")
	data.UpsertReview(DailyReview{Date: "2026-08-28", Rating: 3})
	data.UpsertReview(DailyReview{Date: "2026-08-29", Rating: 4})
	data.UpsertReview(DailyReview{Date: "2026-08-28", Rating: 5, Mood: "great"})

	if len(data.DailyReviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(data.DailyReviews))
	}
	if data.DailyReviews[0].Rating != 5 || data.DailyReviews[0].Mood != "great" {
		t.Fatalf("expected same-date review replaced, got %+v", data.DailyReviews[0])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	data := NewSkeleton("a@x.com")
	data.Tasks = []Task{{ID: "t1", Title: "orig"}}
	data.Habits = []Habit{{ID: "h1", CompletedDates: []string{"2026-08-28"}}}

	cpy := data.Clone()
	cpy.Tasks[0].Title = "changed"
	cpy.Habits[0].CompletedDates[0] = "1999-01-01"

	if data.Tasks[0].Title != "orig" {
		t.Fatalf("clone shares tasks with original: %+v", data.Tasks)
	}
	if data.Habits[0].CompletedDates[0] != "2026-08-28" {
		t.Fatalf("clone shares habit dates with original: %+v", data.Habits)
	}
}

func TestGenerateDemoData(t *testing.T) {
	data := GenerateDemoData("demo@example.com", "Demo")

	if len(data.Tasks) != 100 || len(data.Notes) != 100 || len(data.Habits) != 100 || len(data.Goals) != 100 || len(data.Areas) != 100 {
		t.Fatalf("unexpected collection sizes: tasks=%d notes=%d habits=%d goals=%d areas=%d",
			len(data.Tasks), len(data.Notes), len(data.Habits), len(data.Goals), len(data.Areas))
	}
	if data.Overview == nil || data.Overview.Tasks != len(data.Tasks) {
		t.Fatalf("expected overview.tasks == len(tasks), got %+v", data.Overview)
	}
	if data.Name != "Demo" {
		t.Fatalf("expected provided name to win, got %q", data.Name)
	}
	seen := map[string]struct{}{}
	for _, task := range data.Tasks {
		if task.ID == "" {
			t.Fatal("expected generated task ids")
		}
		if _, dup := seen[task.ID]; dup {
			t.Fatalf("duplicate task id %s", task.ID)
		}
		seen[task.ID] = struct{}{}
	}
}
