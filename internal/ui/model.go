// Package ui renders the client as a bubbletea terminal app: a route and
// session controller, two color themes, and one view per page.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/insights"
	"fintrack/internal/log"
	"fintrack/internal/prefs"
	"fintrack/internal/services"
)

type txState struct {
	view     services.TransactionsView
	criteria core.FilterCriteria
	visible  []core.Transaction
	cursor   int
	// category cycle: index 0 is "all", the rest from the loaded list
	categories []string
	catIdx     int
}

type dashState struct {
	view         services.DashboardView
	advice       []insights.Section
	adviceSrc    services.Source
	adviceLoaded bool
}

type budgetsState struct {
	view   services.BudgetsView
	cursor int
}

type goalsState struct {
	view   services.GoalsView
	cursor int
}

type Model struct {
	finance *services.Finance
	auth    *api.Client
	prefs   *prefs.Prefs
	logger  *log.Logger

	// Route/session controller. gen is bumped on every navigation so a
	// response that lands after the page was left is dropped instead of
	// being applied to a mismatched state.
	phase phase
	page  Page
	gen   int

	theme    Theme
	styles   styles
	currency string

	width  int
	height int

	spinner  spinner.Model
	loading  bool
	inFlight bool

	banner string // persistent offline notice
	errMsg string // page-level fetch error
	alert  string // blocking mutation alert

	tx      txState
	dash    dashState
	budgets budgetsState
	goals   goalsState
	form    formState
	user    *core.UserProfile
}

func NewModel(finance *services.Finance, auth *api.Client, p *prefs.Prefs, logger *log.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// The theme is resolved from persisted state before the first paint,
	// so there is never a flash of the wrong palette.
	theme := ThemeByName(p.Theme())

	return Model{
		finance:  finance,
		auth:     auth,
		prefs:    p,
		logger:   logger.WithComponent(log.ComponentUI),
		phase:    phaseUnmounted,
		page:     PageDashboard,
		theme:    theme,
		styles:   newStyles(theme),
		currency: p.PreferredCurrency(),
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	// Nothing observable renders until the first route check resolves.
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return routeCheckMsg{} })
}

// Messages

type routeCheckMsg struct{}

type transactionsLoadedMsg struct {
	gen  int
	view services.TransactionsView
	err  error
}

type dashboardLoadedMsg struct {
	gen  int
	view services.DashboardView
	err  error
}

type adviceLoadedMsg struct {
	gen      int
	sections []insights.Section
	source   services.Source
}

type budgetsLoadedMsg struct {
	gen  int
	view services.BudgetsView
	err  error
}

type goalsLoadedMsg struct {
	gen  int
	view services.GoalsView
	err  error
}

type profileLoadedMsg struct {
	gen     int
	profile core.UserProfile
	err     error
}

type authResultMsg struct {
	resp api.AuthResponse
	err  error
}

type profileSavedMsg struct {
	profile core.UserProfile
	err     error
}

type mutationDoneMsg struct {
	gen  int
	page Page
	err  error
}

// Commands

func (m Model) loadTransactions() tea.Cmd {
	gen := m.gen
	finance := m.finance
	return func() tea.Msg {
		view, err := finance.Transactions(context.Background())
		return transactionsLoadedMsg{gen: gen, view: view, err: err}
	}
}

func (m Model) loadDashboard() tea.Cmd {
	gen := m.gen
	finance := m.finance
	return func() tea.Msg {
		view, err := finance.Dashboard(context.Background())
		return dashboardLoadedMsg{gen: gen, view: view, err: err}
	}
}

func (m Model) loadAdvice() tea.Cmd {
	gen := m.gen
	finance := m.finance
	return func() tea.Msg {
		sections, source := finance.Advice(context.Background())
		return adviceLoadedMsg{gen: gen, sections: sections, source: source}
	}
}

func (m Model) loadBudgets() tea.Cmd {
	gen := m.gen
	finance := m.finance
	return func() tea.Msg {
		view, err := finance.Budgets(context.Background())
		return budgetsLoadedMsg{gen: gen, view: view, err: err}
	}
}

func (m Model) loadGoals() tea.Cmd {
	gen := m.gen
	finance := m.finance
	return func() tea.Msg {
		view, err := finance.Goals(context.Background())
		return goalsLoadedMsg{gen: gen, view: view, err: err}
	}
}

func (m Model) loadProfile() tea.Cmd {
	gen := m.gen
	client := m.auth
	return func() tea.Msg {
		profile, err := client.Me(context.Background())
		return profileLoadedMsg{gen: gen, profile: profile, err: err}
	}
}

func lipglossJoinVertical(parts ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
