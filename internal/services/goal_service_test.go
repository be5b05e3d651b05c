package services

import (
	"context"
	"testing"

	"github.com/charmin006/fintrack/internal/core"
)

func TestGoalService_CreateAndContribute(t *testing.T) {
	ctx := context.Background()
	svc := NewGoalService(newTestStore())

	goal, err := svc.Create(ctx, core.SavingsGoal{
		Name:         "Trip",
		TargetAmount: 10000,
		Deadline:     core.NewDate(2026, 12, 31),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if goal.ID == "" {
		t.Error("Create should assign an id")
	}

	updated, err := svc.Contribute(ctx, goal.ID, 2500)
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if updated.CurrentAmount != 2500 {
		t.Errorf("expected balance 2500, got %f", updated.CurrentAmount)
	}

	// Contributions cap at the target.
	updated, err = svc.Contribute(ctx, goal.ID, 20000)
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if updated.CurrentAmount != 10000 {
		t.Errorf("balance must cap at target, got %f", updated.CurrentAmount)
	}

	if _, err := svc.Contribute(ctx, goal.ID, 0); err == nil {
		t.Error("Contribute should reject non-positive amounts")
	}
	if _, err := svc.Contribute(ctx, "missing", 100); err == nil {
		t.Error("Contribute should fail for unknown goal")
	}
}

func TestGoalService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewGoalService(newTestStore())

	_, err := svc.Create(ctx, core.SavingsGoal{Name: "", TargetAmount: 100, Deadline: core.NewDate(2026, 12, 31)})
	if err == nil {
		t.Error("Create should reject empty name")
	}
	_, err = svc.Create(ctx, core.SavingsGoal{Name: "X", TargetAmount: 0, Deadline: core.NewDate(2026, 12, 31)})
	if err == nil {
		t.Error("Create should reject zero target")
	}

	goals, _ := svc.List(ctx)
	if len(goals) != 0 {
		t.Errorf("invalid goals must not be stored, found %d", len(goals))
	}
}

func TestGoalService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := NewGoalService(newTestStore())

	goal, _ := svc.Create(ctx, core.SavingsGoal{
		Name: "Laptop", TargetAmount: 60000, Deadline: core.NewDate(2027, 3, 1),
	})
	if err := svc.Delete(ctx, goal.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	goals, _ := svc.List(ctx)
	if len(goals) != 0 {
		t.Error("goal should be gone after delete")
	}
}
