package ui

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/prefs"
	"fintrack/internal/services"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case routeCheckMsg:
		return m.checkRoute()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case transactionsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.failPage(msg.err)
		}
		m.tx.view = msg.view
		m.tx.categories = append([]string{core.FilterAll}, core.Categories(msg.view.All)...)
		m.tx.catIdx = 0
		m.applyFilter()
		m.banner = sourceBanner(msg.view.Source)
		return m, nil

	case dashboardLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.failPage(msg.err)
		}
		m.dash.view = msg.view
		m.banner = sourceBanner(msg.view.Transactions.Source)
		return m, nil

	case adviceLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.dash.advice = msg.sections
		m.dash.adviceSrc = msg.source
		m.dash.adviceLoaded = true
		return m, nil

	case budgetsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.failPage(msg.err)
		}
		m.budgets.view = msg.view
		m.budgets.cursor = clamp(m.budgets.cursor, len(msg.view.Budgets))
		m.banner = sourceBanner(msg.view.Source)
		return m, nil

	case goalsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.failPage(msg.err)
		}
		m.goals.view = msg.view
		m.goals.cursor = clamp(m.goals.cursor, len(msg.view.Goals))
		m.banner = sourceBanner(msg.view.Source)
		return m, nil

	case profileLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.failPage(msg.err)
		}
		m.user = &msg.profile
		m.prefs.SaveUser(&msg.profile)
		return m, nil

	case authResultMsg:
		m.inFlight = false
		if msg.err != nil {
			m.form.errMsg = errorText(msg.err)
			return m, nil
		}
		m.prefs.SaveToken(msg.resp.Token)
		m.prefs.SaveUser(&msg.resp.User)
		m.user = &msg.resp.User
		m.form = formState{}
		return m.navigate(PageDashboard)

	case profileSavedMsg:
		m.inFlight = false
		if msg.err != nil {
			m.form.errMsg = errorText(msg.err)
			return m, nil
		}
		// Keep the id from the session copy; the form carries only the
		// editable fields.
		if m.user != nil {
			msg.profile.ID = m.user.ID
			msg.profile.Currency = m.user.Currency
		}
		m.user = &msg.profile
		m.prefs.SaveUser(&msg.profile)
		m.form = formState{}
		m.alert = "Profile updated."
		return m, nil

	case mutationDoneMsg:
		m.inFlight = false
		if msg.err != nil {
			var apiErr *api.Error
			if errors.As(msg.err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
				m.prefs.Logout()
				m.user = nil
				return m.navigate(PageLogin)
			}
			if m.form.active() {
				m.form.errMsg = errorText(msg.err)
				return m, nil
			}
			m.alert = errorText(msg.err)
			return m, nil
		}
		m.form = formState{}
		if msg.gen != m.gen {
			return m, nil
		}
		return m.reloadPage(msg.page)
	}

	if m.form.active() {
		return m, m.form.update(msg)
	}
	return m, nil
}

// failPage surfaces a load error on the current page. A 401 means the
// session is gone server-side: clear it and run the route guard instead
// of rendering an error page.
func (m Model) failPage(err error) (tea.Model, tea.Cmd) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		m.prefs.Logout()
		m.user = nil
		return m.navigate(PageLogin)
	}
	m.errMsg = errorText(err)
	return m, nil
}

// checkRoute runs the guard for the current page and either redirects or
// settles into the ready phase with the page's initial load.
func (m Model) checkRoute() (tea.Model, tea.Cmd) {
	m.phase = phaseChecking
	resolved, redirected := ResolveRoute(m.page, m.prefs.IsAuthenticated())
	if redirected {
		m.phase = phaseRedirecting
		m.logger.Info("route redirected",
			log.FieldPage, resolved.String())
		return m.navigate(resolved)
	}
	m.phase = phaseReady
	return m.activatePage()
}

// navigate moves to a page, re-running the guard for the destination.
// The generation bump invalidates every response still in flight.
func (m Model) navigate(page Page) (tea.Model, tea.Cmd) {
	m.gen++
	m.page = page
	m.errMsg = ""
	m.form = formState{}
	return m.checkRoute()
}

// activatePage kicks off the loads the settled page needs.
func (m Model) activatePage() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch m.page {
	case PageLogin:
		m.form = loginForm()
		return m, nil
	case PageRegister:
		m.form = registerForm()
		return m, nil
	case PageDashboard:
		m.loading = true
		m.dash.adviceLoaded = false
		return m, tea.Batch(m.loadDashboard(), m.loadAdvice())
	case PageTransactions:
		m.loading = true
		m.tx.criteria = core.DefaultFilter()
		m.tx.cursor = 0
		return m, m.loadTransactions()
	case PageBudgets:
		m.loading = true
		return m, m.loadBudgets()
	case PageGoals:
		m.loading = true
		return m, m.loadGoals()
	case PageProfile:
		m.loading = true
		// Show the cached session copy immediately; the fetch refreshes it.
		m.user = m.prefs.User()
		return m, m.loadProfile()
	case PageSettings:
		return m, nil
	}
	return m, nil
}

func (m Model) reloadPage(page Page) (tea.Model, tea.Cmd) {
	if page != m.page {
		return m, nil
	}
	switch page {
	case PageDashboard:
		m.loading = true
		return m, m.loadDashboard()
	case PageTransactions:
		m.loading = true
		return m, m.loadTransactions()
	case PageBudgets:
		m.loading = true
		return m, m.loadBudgets()
	case PageGoals:
		m.loading = true
		return m, m.loadGoals()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A blocking alert swallows every key until acknowledged.
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}

	if m.form.active() {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "1":
		return m.navigate(PageDashboard)
	case "2":
		return m.navigate(PageTransactions)
	case "3":
		return m.navigate(PageBudgets)
	case "4":
		return m.navigate(PageGoals)
	case "5":
		return m.navigate(PageSettings)
	case "6":
		return m.navigate(PageProfile)

	case "r":
		return m.reloadPage(m.page)

	case "L":
		if m.prefs.IsAuthenticated() {
			m.prefs.Logout()
			m.user = nil
			m.logger.Info("logged out")
			return m.navigate(PageLogin)
		}
		return m, nil
	}

	switch m.page {
	case PageTransactions:
		return m.handleTransactionsKey(msg)
	case PageBudgets:
		return m.handleBudgetsKey(msg)
	case PageGoals:
		return m.handleGoalsKey(msg)
	case PageSettings:
		return m.handleSettingsKey(msg)
	case PageProfile:
		if msg.String() == "e" && m.user != nil {
			m.form = profileForm(*m.user)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.page.Public() {
			// Auth pages toggle between each other instead of closing.
			if m.page == PageLogin {
				return m.navigate(PageRegister)
			}
			return m.navigate(PageLogin)
		}
		m.form = formState{}
		return m, nil
	case "tab", "down":
		m.form.cycleFocus(false)
		return m, nil
	case "shift+tab", "up":
		m.form.cycleFocus(true)
		return m, nil
	case "enter":
		if m.inFlight {
			return m, nil
		}
		m.form.errMsg = ""
		cmd := m.submitForm()
		return m, cmd
	}
	return m, m.form.update(msg)
}

func (m Model) handleTransactionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.tx.cursor > 0 {
			m.tx.cursor--
		}
	case "down", "j":
		if m.tx.cursor < len(m.tx.visible)-1 {
			m.tx.cursor++
		}
	case "f":
		switch m.tx.criteria.Type {
		case core.FilterAll:
			m.tx.criteria.Type = string(core.Income)
		case string(core.Income):
			m.tx.criteria.Type = string(core.Expense)
		default:
			m.tx.criteria.Type = core.FilterAll
		}
		m.applyFilter()
	case "c":
		if len(m.tx.categories) > 0 {
			m.tx.catIdx = (m.tx.catIdx + 1) % len(m.tx.categories)
			m.tx.criteria.Category = m.tx.categories[m.tx.catIdx]
			m.applyFilter()
		}
	case "s":
		if m.tx.criteria.SortBy == core.SortByDate {
			m.tx.criteria.SortBy = core.SortByAmount
		} else {
			m.tx.criteria.SortBy = core.SortByDate
		}
		m.applyFilter()
	case "o":
		if m.tx.criteria.SortOrder == core.SortDesc {
			m.tx.criteria.SortOrder = core.SortAsc
		} else {
			m.tx.criteria.SortOrder = core.SortDesc
		}
		m.applyFilter()
	case "a":
		m.form = addTransactionForm()
	case "e":
		if m.tx.cursor < len(m.tx.visible) {
			m.form = editTransactionForm(m.tx.visible[m.tx.cursor])
		}
	case "d", "delete":
		if m.tx.cursor < len(m.tx.visible) && !m.inFlight {
			id := m.tx.visible[m.tx.cursor].ID
			return m, m.doMutation(PageTransactions, func(ctx context.Context) error {
				return m.finance.RemoveTransaction(ctx, id)
			})
		}
	}
	return m, nil
}

func (m Model) handleBudgetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.budgets.cursor > 0 {
			m.budgets.cursor--
		}
	case "down", "j":
		if m.budgets.cursor < len(m.budgets.view.Budgets)-1 {
			m.budgets.cursor++
		}
	case "a":
		m.form = addBudgetForm()
	case "d", "delete":
		if m.budgets.cursor < len(m.budgets.view.Budgets) && !m.inFlight {
			id := m.budgets.view.Budgets[m.budgets.cursor].ID
			return m, m.doMutation(PageBudgets, func(ctx context.Context) error {
				return m.finance.RemoveBudget(ctx, id)
			})
		}
	}
	return m, nil
}

func (m Model) handleGoalsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.goals.cursor > 0 {
			m.goals.cursor--
		}
	case "down", "j":
		if m.goals.cursor < len(m.goals.view.Goals)-1 {
			m.goals.cursor++
		}
	case "a":
		m.form = addGoalForm()
	case "enter":
		if m.goals.cursor < len(m.goals.view.Goals) {
			m.form = contributeForm(m.goals.view.Goals[m.goals.cursor])
		}
	case "d", "delete":
		if m.goals.cursor < len(m.goals.view.Goals) && !m.inFlight {
			id := m.goals.view.Goals[m.goals.cursor].ID
			return m, m.doMutation(PageGoals, func(ctx context.Context) error {
				return m.finance.RemoveGoal(ctx, id)
			})
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "t":
		// The palette swaps in the same update that persists the choice,
		// so the next frame already renders in the new theme.
		next := prefs.ThemeDark
		if m.theme.Name == prefs.ThemeDark {
			next = prefs.ThemeLight
		}
		if err := m.prefs.SaveTheme(next); err == nil {
			m.theme = ThemeByName(next)
			m.styles = newStyles(m.theme)
		}
	case "m":
		m.currency = nextCurrency(m.currency)
		if err := m.prefs.SavePreferredCurrency(m.currency); err != nil {
			m.logger.Warn("currency not saved",
				log.FieldError, err.Error())
		}
	}
	return m, nil
}

// applyFilter recomputes the visible slice from the full set and the
// current criteria. Summary stays derived from the full set only.
func (m *Model) applyFilter() {
	m.tx.visible = core.Filter(m.tx.view.All, m.tx.criteria)
	m.tx.cursor = clamp(m.tx.cursor, len(m.tx.visible))
}

func nextCurrency(code string) string {
	for i, c := range core.SupportedCurrencies {
		if c == code {
			return core.SupportedCurrencies[(i+1)%len(core.SupportedCurrencies)]
		}
	}
	return core.DefaultCurrency
}

func sourceBanner(src services.Source) string {
	if src == services.SourceDemo {
		return services.NoticeOffline
	}
	return ""
}

func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func clamp(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
