package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fintrack/internal/api"
	"fintrack/internal/core"
)

type formKind int

const (
	formNone formKind = iota
	formLogin
	formRegister
	formAddTransaction
	formAddBudget
	formAddGoal
	formProfile
	formContribute
)

type formState struct {
	kind   formKind
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string

	// mutation targets
	goal core.Goal
	txID string
}

func newForm(kind formKind, fields []formField) formState {
	labels := make([]string, len(fields))
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.SetValue(f.value)
		ti.CharLimit = 120
		if f.secret {
			ti.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			ti.Focus()
		}
		labels[i] = f.label
		inputs[i] = ti
	}
	return formState{kind: kind, labels: labels, inputs: inputs}
}

type formField struct {
	label       string
	placeholder string
	value       string
	secret      bool
}

func loginForm() formState {
	return newForm(formLogin, []formField{
		{label: "Email", placeholder: "you@example.com"},
		{label: "Password", secret: true},
	})
}

func registerForm() formState {
	return newForm(formRegister, []formField{
		{label: "Name", placeholder: "Full name"},
		{label: "Email", placeholder: "you@example.com"},
		{label: "Password", secret: true},
	})
}

func addTransactionForm() formState {
	return newForm(formAddTransaction, []formField{
		{label: "Type", placeholder: "expense or income", value: "expense"},
		{label: "Category", placeholder: "Food, Housing, ..."},
		{label: "Amount", placeholder: "12.50"},
		{label: "Date", placeholder: "YYYY-MM-DD"},
		{label: "Notes", placeholder: "optional"},
	})
}

func editTransactionForm(t core.Transaction) formState {
	f := newForm(formAddTransaction, []formField{
		{label: "Type", value: string(t.Type)},
		{label: "Category", value: t.Category},
		{label: "Amount", value: strconv.FormatFloat(t.Amount, 'f', 2, 64)},
		{label: "Date", value: t.Date.Format("2006-01-02")},
		{label: "Notes", value: t.Label()},
	})
	f.txID = t.ID
	return f
}

func addBudgetForm() formState {
	return newForm(formAddBudget, []formField{
		{label: "Category", placeholder: "Groceries"},
		{label: "Limit", placeholder: "600"},
		{label: "Month", placeholder: "YYYY-MM"},
	})
}

func addGoalForm() formState {
	return newForm(formAddGoal, []formField{
		{label: "Title", placeholder: "Emergency Fund"},
		{label: "Target amount", placeholder: "10000"},
		{label: "Saved so far", placeholder: "0"},
		{label: "Deadline", placeholder: "YYYY-MM-DD"},
		{label: "Description", placeholder: "optional"},
	})
}

func profileForm(profile core.UserProfile) formState {
	return newForm(formProfile, []formField{
		{label: "Name", value: profile.Name},
		{label: "Email", value: profile.Email},
	})
}

func contributeForm(goal core.Goal) formState {
	f := newForm(formContribute, []formField{
		{label: "Contribution", placeholder: "100"},
	})
	f.goal = goal
	return f
}

func (f *formState) active() bool {
	return f.kind != formNone
}

func (f *formState) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *formState) cycleFocus(back bool) {
	f.inputs[f.focus].Blur()
	if back {
		f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	} else {
		f.focus = (f.focus + 1) % len(f.inputs)
	}
	f.inputs[f.focus].Focus()
}

func (f *formState) update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// submit parses and dispatches the active form. It returns nil and sets
// errMsg when local validation fails; the request command otherwise.
func (m *Model) submitForm() tea.Cmd {
	f := &m.form
	switch f.kind {
	case formLogin:
		email, password := f.value(0), f.value(1)
		if email == "" || password == "" {
			f.errMsg = "email and password are required"
			return nil
		}
		return m.doLogin(email, password)

	case formRegister:
		name, email, password := f.value(0), f.value(1), f.value(2)
		if name == "" || email == "" || password == "" {
			f.errMsg = "all fields are required"
			return nil
		}
		if len(password) < 6 {
			f.errMsg = "password must be at least 6 characters"
			return nil
		}
		return m.doRegister(name, email, password)

	case formAddTransaction:
		t := core.Transaction{
			Type:     core.TransactionType(strings.ToLower(f.value(0))),
			Category: f.value(1),
			Currency: m.currency,
			Notes:    f.value(4),
		}
		amount, err := core.ParseAmount(f.value(2))
		if err != nil {
			f.errMsg = "invalid amount"
			return nil
		}
		t.Amount = amount
		date, err := core.ParseDate(f.value(3))
		if err != nil {
			f.errMsg = "invalid date, use YYYY-MM-DD"
			return nil
		}
		t.Date = date
		if err := t.Validate(); err != nil {
			f.errMsg = err.Error()
			return nil
		}
		if f.txID != "" {
			t.ID = f.txID
			return m.doMutation(PageTransactions, func(ctx context.Context) error {
				return m.finance.EditTransaction(ctx, t)
			})
		}
		return m.doMutation(PageTransactions, func(ctx context.Context) error {
			return m.finance.AddTransaction(ctx, t)
		})

	case formAddBudget:
		limit, err := core.ParseAmount(f.value(1))
		if err != nil {
			f.errMsg = "invalid limit"
			return nil
		}
		b := core.Budget{
			Category: f.value(0),
			Limit:    limit,
			Month:    f.value(2),
			Currency: m.currency,
		}
		if err := b.Validate(); err != nil {
			f.errMsg = err.Error()
			return nil
		}
		return m.doMutation(PageBudgets, func(ctx context.Context) error {
			return m.finance.AddBudget(ctx, b)
		})

	case formAddGoal:
		target, err := core.ParseAmount(f.value(1))
		if err != nil {
			f.errMsg = "invalid target amount"
			return nil
		}
		current := 0.0
		if v := f.value(2); v != "" {
			if current, err = core.ParseAmount(v); err != nil {
				f.errMsg = "invalid saved amount"
				return nil
			}
		}
		g := core.Goal{
			Title:         f.value(0),
			TargetAmount:  target,
			CurrentAmount: current,
			Description:   f.value(4),
			Currency:      m.currency,
		}
		if v := f.value(3); v != "" {
			deadline, err := core.ParseDate(v)
			if err != nil {
				f.errMsg = "invalid deadline, use YYYY-MM-DD"
				return nil
			}
			g.Deadline = deadline
		}
		if err := g.Validate(); err != nil {
			f.errMsg = err.Error()
			return nil
		}
		return m.doMutation(PageGoals, func(ctx context.Context) error {
			return m.finance.AddGoal(ctx, g)
		})

	case formProfile:
		profile := core.UserProfile{Name: f.value(0), Email: f.value(1)}
		if err := profile.Validate(); err != nil {
			f.errMsg = err.Error()
			return nil
		}
		return m.doSaveProfile(profile)

	case formContribute:
		amount, err := core.ParseAmount(f.value(0))
		if err != nil || amount <= 0 {
			f.errMsg = "invalid contribution"
			return nil
		}
		goal := f.goal
		return m.doMutation(PageGoals, func(ctx context.Context) error {
			return m.finance.ContributeToGoal(ctx, goal, amount)
		})
	}
	return nil
}

// doLogin and friends mark the request in flight so the submitting
// control stays disabled until the response lands.

func (m *Model) doLogin(email, password string) tea.Cmd {
	m.inFlight = true
	client := m.auth
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), api.Credentials{Email: email, Password: password})
		return authResultMsg{resp: resp, err: err}
	}
}

func (m *Model) doRegister(name, email, password string) tea.Cmd {
	m.inFlight = true
	client := m.auth
	return func() tea.Msg {
		resp, err := client.Register(context.Background(), api.Registration{Name: name, Email: email, Password: password})
		return authResultMsg{resp: resp, err: err}
	}
}

func (m *Model) doSaveProfile(profile core.UserProfile) tea.Cmd {
	m.inFlight = true
	client := m.auth
	return func() tea.Msg {
		err := client.UpdateDetails(context.Background(), profile)
		return profileSavedMsg{profile: profile, err: err}
	}
}

func (m *Model) doMutation(page Page, op func(context.Context) error) tea.Cmd {
	m.inFlight = true
	gen := m.gen
	return func() tea.Msg {
		err := op(context.Background())
		return mutationDoneMsg{gen: gen, page: page, err: err}
	}
}
