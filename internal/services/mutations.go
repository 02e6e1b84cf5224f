package services

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Mutations validate locally, pass through to the backend with no
// optimistic update, and invalidate the matching list cache so the
// caller's refetch sees confirmed state. A failed mutation changes
// nothing the user can see except the returned error.

func (s *Finance) AddTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.backend.CreateTransaction(ctx, t); err != nil {
		return err
	}
	s.transactions.Delete(cacheKeyTransactions)
	s.logger.Info("transaction created", log.FieldOperation, log.OpCreate, log.FieldResource, cacheKeyTransactions)
	return nil
}

func (s *Finance) EditTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.backend.UpdateTransaction(ctx, t); err != nil {
		return err
	}
	s.transactions.Delete(cacheKeyTransactions)
	s.logger.Info("transaction updated", log.FieldOperation, log.OpUpdate, log.FieldResource, cacheKeyTransactions)
	return nil
}

func (s *Finance) RemoveTransaction(ctx context.Context, id string) error {
	if err := s.backend.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.transactions.Delete(cacheKeyTransactions)
	s.logger.Info("transaction deleted", log.FieldOperation, log.OpDelete, log.FieldResource, cacheKeyTransactions)
	return nil
}

func (s *Finance) AddBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.backend.CreateBudget(ctx, b); err != nil {
		return err
	}
	s.budgets.Delete(cacheKeyBudgets)
	s.logger.Info("budget created", log.FieldOperation, log.OpCreate, log.FieldResource, cacheKeyBudgets)
	return nil
}

func (s *Finance) RemoveBudget(ctx context.Context, id string) error {
	if err := s.backend.DeleteBudget(ctx, id); err != nil {
		return err
	}
	s.budgets.Delete(cacheKeyBudgets)
	s.logger.Info("budget deleted", log.FieldOperation, log.OpDelete, log.FieldResource, cacheKeyBudgets)
	return nil
}

func (s *Finance) AddGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := s.backend.CreateGoal(ctx, g); err != nil {
		return err
	}
	s.goals.Delete(cacheKeyGoals)
	s.logger.Info("goal created", log.FieldOperation, log.OpCreate, log.FieldResource, cacheKeyGoals)
	return nil
}

// ContributeToGoal adds an amount to a goal's saved total.
func (s *Finance) ContributeToGoal(ctx context.Context, g core.Goal, amount float64) error {
	if amount <= 0 {
		return core.ErrInvalidAmount
	}
	g.CurrentAmount += amount
	if err := g.Validate(); err != nil {
		return err
	}
	if err := s.backend.UpdateGoal(ctx, g); err != nil {
		return err
	}
	s.goals.Delete(cacheKeyGoals)
	s.logger.Info("goal contribution", log.FieldOperation, log.OpUpdate, log.FieldResource, cacheKeyGoals)
	return nil
}

func (s *Finance) RemoveGoal(ctx context.Context, id string) error {
	if err := s.backend.DeleteGoal(ctx, id); err != nil {
		return err
	}
	s.goals.Delete(cacheKeyGoals)
	s.logger.Info("goal deleted", log.FieldOperation, log.OpDelete, log.FieldResource, cacheKeyGoals)
	return nil
}
