package api

import (
	"context"
	"net/http"

	"fintrack/internal/core"
)

// AuthResponse is the payload of login and register.
type AuthResponse struct {
	Success bool             `json:"success"`
	Token   string           `json:"token"`
	User    core.UserProfile `json:"data"`
	Message string           `json:"message,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp)
	return resp, err
}

func (c *Client) Register(ctx context.Context, reg Registration) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", reg, &resp)
	return resp, err
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (core.UserProfile, error) {
	var resp struct {
		Data core.UserProfile `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp)
	return resp.Data, err
}

// UpdateDetails updates the authenticated user's name and email.
func (c *Client) UpdateDetails(ctx context.Context, profile core.UserProfile) error {
	return c.do(ctx, http.MethodPut, "/auth/updatedetails", profile, nil)
}

func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var list []core.Transaction
	err := c.getList(ctx, "/transactions", &list)
	return list, err
}

func (c *Client) CreateTransaction(ctx context.Context, t core.Transaction) error {
	return c.do(ctx, http.MethodPost, "/transactions", t, nil)
}

func (c *Client) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	return c.do(ctx, http.MethodPut, "/transactions/"+t.ID, t, nil)
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+id, nil, nil)
}

func (c *Client) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	var list []core.Budget
	err := c.getList(ctx, "/budgets", &list)
	return list, err
}

func (c *Client) CreateBudget(ctx context.Context, b core.Budget) error {
	return c.do(ctx, http.MethodPost, "/budgets", b, nil)
}

func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+id, nil, nil)
}

func (c *Client) ListGoals(ctx context.Context) ([]core.Goal, error) {
	var list []core.Goal
	err := c.getList(ctx, "/goals", &list)
	return list, err
}

func (c *Client) CreateGoal(ctx context.Context, g core.Goal) error {
	return c.do(ctx, http.MethodPost, "/goals", g, nil)
}

func (c *Client) UpdateGoal(ctx context.Context, g core.Goal) error {
	return c.do(ctx, http.MethodPut, "/goals/"+g.ID, g, nil)
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/goals/"+id, nil, nil)
}

// Insights returns the backend's free-text financial insights.
func (c *Client) Insights(ctx context.Context) (string, error) {
	var resp struct {
		Insights string `json:"insights"`
	}
	err := c.do(ctx, http.MethodGet, "/ai/insights", nil, &resp)
	return resp.Insights, err
}
