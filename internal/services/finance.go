// Package services sits between the API client and the UI. It decides
// when demo data substitutes for live data, keeps short-lived caches so
// revisiting a page does not refetch, and fans out the dashboard load.
package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/api"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/demo"
	"fintrack/internal/insights"
	"fintrack/internal/log"
)

// Source says where a view's data came from.
type Source int

const (
	SourceBackend Source = iota
	SourceDemo
)

// NoticeOffline is the persistent banner text shown with demo data.
const NoticeOffline = "Cannot connect to server. Showing sample data."

// Backend is the slice of the API client the services consume. The
// concrete *api.Client satisfies it; tests use a fake.
type Backend interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, t core.Transaction) error
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	ListBudgets(ctx context.Context) ([]core.Budget, error)
	CreateBudget(ctx context.Context, b core.Budget) error
	DeleteBudget(ctx context.Context, id string) error

	ListGoals(ctx context.Context) ([]core.Goal, error)
	CreateGoal(ctx context.Context, g core.Goal) error
	UpdateGoal(ctx context.Context, g core.Goal) error
	DeleteGoal(ctx context.Context, id string) error

	Insights(ctx context.Context) (string, error)
}

// listTTL is how long a fetched list stays fresh. It covers a page-load
// window, not a session; mutations invalidate eagerly.
const listTTL = 30 * time.Second

const (
	cacheKeyTransactions = "transactions"
	cacheKeyBudgets      = "budgets"
	cacheKeyGoals        = "goals"
	cacheKeyInsights     = "insights"
)

type Finance struct {
	backend Backend
	logger  *log.Logger

	transactions *cache.TTL[[]core.Transaction]
	budgets      *cache.TTL[[]core.Budget]
	goals        *cache.TTL[[]core.Goal]
	advice       *cache.TTL[string]
}

func NewFinance(backend Backend, logger *log.Logger) *Finance {
	return &Finance{
		backend:      backend,
		logger:       logger.WithComponent(log.ComponentServices),
		transactions: cache.NewTTL[[]core.Transaction](listTTL),
		budgets:      cache.NewTTL[[]core.Budget](listTTL),
		goals:        cache.NewTTL[[]core.Goal](listTTL),
		advice:       cache.NewTTL[string](5 * time.Minute),
	}
}

// TransactionsView is the transactions page's data: the full list for
// aggregates, with the source marked so the UI can show the offline banner.
type TransactionsView struct {
	All     []core.Transaction
	Summary core.Summary
	Source  Source
}

// BudgetsView carries the budgets list and its source.
type BudgetsView struct {
	Budgets []core.Budget
	Source  Source
}

// GoalsView carries the goals list and its source.
type GoalsView struct {
	Goals  []core.Goal
	Source Source
}

// DashboardView is the combined load for the dashboard page.
type DashboardView struct {
	Transactions TransactionsView
	Budgets      BudgetsView
	Goals        GoalsView
}

// Transactions loads the transaction list. When the backend is
// unreachable the embedded demo data substitutes; a server-side error
// propagates unchanged so the page can surface it next to the data it
// already has.
func (s *Finance) Transactions(ctx context.Context) (TransactionsView, error) {
	if list, ok := s.transactions.Get(cacheKeyTransactions); ok {
		return TransactionsView{All: list, Summary: core.Summarize(list), Source: SourceBackend}, nil
	}

	list, err := s.backend.ListTransactions(ctx)
	if err != nil {
		if api.IsNetworkError(err) {
			s.logger.Warn("backend unreachable, using demo transactions",
				log.FieldResource, cacheKeyTransactions, log.FieldError, err)
			d := demo.Transactions()
			return TransactionsView{All: d, Summary: core.Summarize(d), Source: SourceDemo}, nil
		}
		return TransactionsView{}, err
	}

	s.transactions.Set(cacheKeyTransactions, list)
	return TransactionsView{All: list, Summary: core.Summarize(list), Source: SourceBackend}, nil
}

// Budgets loads the budget list with the same fallback policy.
func (s *Finance) Budgets(ctx context.Context) (BudgetsView, error) {
	if list, ok := s.budgets.Get(cacheKeyBudgets); ok {
		return BudgetsView{Budgets: list, Source: SourceBackend}, nil
	}

	list, err := s.backend.ListBudgets(ctx)
	if err != nil {
		if api.IsNetworkError(err) {
			s.logger.Warn("backend unreachable, using demo budgets",
				log.FieldResource, cacheKeyBudgets, log.FieldError, err)
			return BudgetsView{Budgets: demo.Budgets(), Source: SourceDemo}, nil
		}
		return BudgetsView{}, err
	}

	s.budgets.Set(cacheKeyBudgets, list)
	return BudgetsView{Budgets: list, Source: SourceBackend}, nil
}

// Goals loads the goal list with the same fallback policy.
func (s *Finance) Goals(ctx context.Context) (GoalsView, error) {
	if list, ok := s.goals.Get(cacheKeyGoals); ok {
		return GoalsView{Goals: list, Source: SourceBackend}, nil
	}

	list, err := s.backend.ListGoals(ctx)
	if err != nil {
		if api.IsNetworkError(err) {
			s.logger.Warn("backend unreachable, using demo goals",
				log.FieldResource, cacheKeyGoals, log.FieldError, err)
			return GoalsView{Goals: demo.Goals(), Source: SourceDemo}, nil
		}
		return GoalsView{}, err
	}

	s.goals.Set(cacheKeyGoals, list)
	return GoalsView{Goals: list, Source: SourceBackend}, nil
}

// Dashboard loads all three resources concurrently.
func (s *Finance) Dashboard(ctx context.Context) (DashboardView, error) {
	var view DashboardView

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.Transactions(ctx)
		view.Transactions = v
		return err
	})
	g.Go(func() error {
		v, err := s.Budgets(ctx)
		view.Budgets = v
		return err
	})
	g.Go(func() error {
		v, err := s.Goals(ctx)
		view.Goals = v
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardView{}, err
	}
	return view, nil
}

// Advice returns AI insight sections. Any failure falls back to the
// static advice text so the panel always renders.
func (s *Finance) Advice(ctx context.Context) ([]insights.Section, Source) {
	if text, ok := s.advice.Get(cacheKeyInsights); ok {
		return insights.Parse(text), SourceBackend
	}

	text, err := s.backend.Insights(ctx)
	if err != nil || text == "" {
		if err != nil {
			s.logger.Warn("insights unavailable, using fallback",
				log.FieldResource, cacheKeyInsights, log.FieldError, err)
		}
		return insights.Parse(insights.Fallback), SourceDemo
	}

	s.advice.Set(cacheKeyInsights, text)
	return insights.Parse(text), SourceBackend
}
