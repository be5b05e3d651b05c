package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/records"
)

// GoalService manages savings goals and contributions toward them.
type GoalService struct {
	store *records.Store
}

func NewGoalService(store *records.Store) *GoalService {
	return &GoalService{store: store}
}

func (s *GoalService) List(ctx context.Context) ([]core.SavingsGoal, error) {
	return s.store.Goals.List(ctx)
}

func (s *GoalService) Create(ctx context.Context, goal core.SavingsGoal) (core.SavingsGoal, error) {
	goal.ID = uuid.NewString()
	goal.CreatedAt = time.Now()
	if err := goal.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	if err := s.store.Goals.Append(ctx, goal); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("save goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	return s.store.Goals.Update(ctx, func(items []core.SavingsGoal) ([]core.SavingsGoal, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

// Contribute adds an amount to a goal's current balance. The balance is
// capped at the target; anything beyond is ignored.
func (s *GoalService) Contribute(ctx context.Context, id string, amount float64) (core.SavingsGoal, error) {
	if amount <= 0 {
		return core.SavingsGoal{}, core.ErrInvalidAmount
	}

	var updated core.SavingsGoal
	err := s.store.Goals.Update(ctx, func(items []core.SavingsGoal) ([]core.SavingsGoal, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].CurrentAmount += amount
				if items[i].CurrentAmount > items[i].TargetAmount {
					items[i].CurrentAmount = items[i].TargetAmount
				}
				updated = items[i]
				return items, nil
			}
		}
		return nil, fmt.Errorf("goal %s not found", id)
	})
	if err != nil {
		return core.SavingsGoal{}, err
	}
	return updated, nil
}
