package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/core"
	"fintrack/internal/prefs"
	"fintrack/internal/services"
)

const progressWidth = 24

func (m Model) View() string {
	if m.phase != phaseReady {
		// Nothing renders until the route check settles.
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("fintrack"))
	b.WriteString("  ")
	b.WriteString(m.navLine())
	b.WriteString("\n")

	if m.banner != "" {
		b.WriteString(m.styles.Banner.Render(m.banner))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString(m.styles.Card.Render(m.alert + "\n\n" + m.styles.Help.Render("press any key")))
		return b.String()
	}

	if m.form.active() {
		b.WriteString(m.viewForm())
		return b.String()
	}

	switch m.page {
	case PageDashboard:
		b.WriteString(m.viewDashboard())
	case PageTransactions:
		b.WriteString(m.viewTransactions())
	case PageBudgets:
		b.WriteString(m.viewBudgets())
	case PageGoals:
		b.WriteString(m.viewGoals())
	case PageSettings:
		b.WriteString(m.viewSettings())
	case PageProfile:
		b.WriteString(m.viewProfile())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.helpLine()))
	return b.String()
}

func (m Model) navLine() string {
	pages := []Page{PageDashboard, PageTransactions, PageBudgets, PageGoals, PageSettings, PageProfile}
	parts := make([]string, 0, len(pages))
	for i, p := range pages {
		label := fmt.Sprintf("%d:%s", i+1, p)
		if p == m.page {
			parts = append(parts, m.styles.Active.Render(label))
		} else {
			parts = append(parts, m.styles.Muted.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewDashboard() string {
	if m.loading {
		return m.spinner.View() + " loading dashboard..."
	}
	v := m.dash.view

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.summaryCard("Income", v.Transactions.Summary.TotalIncome, m.styles.Success),
		m.summaryCard("Expenses", v.Transactions.Summary.TotalExpense, m.styles.Error),
		m.summaryCard("Balance", v.Transactions.Summary.Balance, m.styles.Value),
	)

	recent := m.styles.Header.Render("Recent transactions") + "\n"
	list := core.Filter(v.Transactions.All, core.DefaultFilter())
	if len(list) == 0 {
		recent += m.styles.Muted.Render("No transactions found.")
	} else {
		if len(list) > 5 {
			list = list[:5]
		}
		for _, t := range list {
			recent += m.transactionLine(t, false) + "\n"
		}
	}

	advice := m.styles.Header.Render("AI Financial Advice") + "\n"
	switch {
	case !m.dash.adviceLoaded:
		advice += m.spinner.View() + " fetching advice..."
	default:
		if m.dash.adviceSrc == services.SourceDemo {
			advice += m.styles.Muted.Render("(sample advice)") + "\n"
		}
		for _, s := range m.dash.advice {
			advice += wrap(s.Text, m.contentWidth()) + "\n\n"
		}
	}

	return lipglossJoinVertical(cards, "", recent, advice)
}

func (m Model) summaryCard(label string, amount float64, valueStyle lipgloss.Style) string {
	return m.styles.Card.Render(
		m.styles.Label.Render(label) + "\n" +
			valueStyle.Render(core.FormatAmount(amount, m.currency)))
}

func (m Model) viewTransactions() string {
	if m.loading {
		return m.spinner.View() + " loading transactions..."
	}

	c := m.tx.criteria
	filters := fmt.Sprintf("type:%s  category:%s  sort:%s/%s",
		c.Type, c.Category, c.SortBy, c.SortOrder)
	out := m.styles.Muted.Render(filters) + "\n\n"

	if len(m.tx.visible) == 0 {
		return out + m.styles.Muted.Render("No transactions found.")
	}

	for i, t := range m.tx.visible {
		out += m.transactionLine(t, i == m.tx.cursor) + "\n"
	}

	s := m.tx.view.Summary
	out += "\n" + m.styles.Label.Render("Totals over all transactions: ") +
		m.styles.Success.Render(core.FormatAmount(s.TotalIncome, m.currency)) + " in, " +
		m.styles.Error.Render(core.FormatAmount(s.TotalExpense, m.currency)) + " out, " +
		m.styles.Value.Render(core.FormatAmount(s.Balance, m.currency)) + " balance"
	return out
}

func (m Model) transactionLine(t core.Transaction, selected bool) string {
	marker := "  "
	if selected {
		marker = m.styles.Active.Render("> ")
	}
	amount := core.FormatAmount(t.Amount, m.currency)
	if t.Type == core.Expense {
		amount = m.styles.Error.Render("-" + amount)
	} else {
		amount = m.styles.Success.Render("+" + amount)
	}
	return fmt.Sprintf("%s%s  %-14s %s  %s",
		marker,
		t.Date.Format("2006-01-02"),
		t.Category,
		amount,
		m.styles.Muted.Render(t.Label()))
}

func (m Model) viewBudgets() string {
	if m.loading {
		return m.spinner.View() + " loading budgets..."
	}
	if len(m.budgets.view.Budgets) == 0 {
		return m.styles.Muted.Render("No budgets yet. Press a to add one.")
	}
	var out string
	for i, b := range m.budgets.view.Budgets {
		marker := "  "
		if i == m.budgets.cursor {
			marker = m.styles.Active.Render("> ")
		}
		bar := m.progressBar(b.Progress())
		out += fmt.Sprintf("%s%-14s %s %s %s / %s\n",
			marker, b.Category, m.styles.Muted.Render(b.Month), bar,
			core.FormatAmount(b.Spent, m.currency),
			core.FormatAmount(b.Limit, m.currency))
	}
	return out
}

func (m Model) viewGoals() string {
	if m.loading {
		return m.spinner.View() + " loading goals..."
	}
	if len(m.goals.view.Goals) == 0 {
		return m.styles.Muted.Render("No goals yet. Press a to add one.")
	}
	var out string
	for i, g := range m.goals.view.Goals {
		marker := "  "
		if i == m.goals.cursor {
			marker = m.styles.Active.Render("> ")
		}
		line := fmt.Sprintf("%s%s %s %s / %s",
			marker, m.styles.Header.Render(g.Title), m.progressBar(g.Progress()),
			core.FormatAmount(g.CurrentAmount, m.currency),
			core.FormatAmount(g.TargetAmount, m.currency))
		if !g.Deadline.IsZero() {
			line += m.styles.Muted.Render("  by " + g.Deadline.Format("2006-01-02"))
		}
		out += line + "\n"
		if g.Description != "" {
			out += "    " + m.styles.Muted.Render(g.Description) + "\n"
		}
	}
	return out
}

func (m Model) viewSettings() string {
	theme := m.theme.Name
	other := prefs.ThemeDark
	if theme == prefs.ThemeDark {
		other = prefs.ThemeLight
	}
	return lipglossJoinVertical(
		m.styles.Header.Render("Settings"),
		"",
		m.styles.Label.Render("Theme     ")+m.styles.Value.Render(theme)+
			m.styles.Muted.Render("  (t switches to "+other+")"),
		m.styles.Label.Render("Currency  ")+
			m.styles.Value.Render(core.CurrencyFlag(m.currency)+" "+m.currency+" "+core.CurrencySymbol(m.currency))+
			m.styles.Muted.Render("  (m cycles)"),
	)
}

func (m Model) viewProfile() string {
	if m.loading && m.user == nil {
		return m.spinner.View() + " loading profile..."
	}
	if m.user == nil {
		return m.styles.Muted.Render("No profile loaded.")
	}
	return lipglossJoinVertical(
		m.styles.Header.Render("Profile"),
		"",
		m.styles.Label.Render("Name   ")+m.styles.Value.Render(m.user.Name),
		m.styles.Label.Render("Email  ")+m.styles.Value.Render(m.user.Email),
		"",
		m.styles.Help.Render("e edit"),
	)
}

func (m Model) viewForm() string {
	title := map[formKind]string{
		formLogin:          "Sign in",
		formRegister:       "Create account",
		formAddTransaction: "New transaction",
		formAddBudget:      "New budget",
		formAddGoal:        "New goal",
		formProfile:        "Edit profile",
		formContribute:     "Contribute to " + m.form.goal.Title,
	}[m.form.kind]
	if m.form.kind == formAddTransaction && m.form.txID != "" {
		title = "Edit transaction"
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(title))
	b.WriteString("\n\n")
	for i, in := range m.form.inputs {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-14s", m.form.labels[i])))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.form.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.form.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.inFlight {
		b.WriteString(m.spinner.View() + " submitting...")
	} else {
		hint := "enter submit · tab next field · esc cancel"
		if m.page == PageLogin {
			hint = "enter sign in · esc to register"
		} else if m.page == PageRegister {
			hint = "enter create account · esc to sign in"
		}
		b.WriteString(m.styles.Help.Render(hint))
	}
	return b.String()
}

func (m Model) progressBar(ratio float64) string {
	filled := int(ratio * progressWidth)
	if filled > progressWidth {
		filled = progressWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)
	style := m.styles.Success
	if ratio >= 1 {
		style = m.styles.Error
	} else if ratio >= 0.8 {
		style = m.styles.Warning
	}
	return style.Render(bar) + fmt.Sprintf(" %3.0f%%", ratio*100)
}

func (m Model) helpLine() string {
	switch m.page {
	case PageTransactions:
		return "j/k move · f type · c category · s sort · o order · a add · e edit · d delete · r refresh · L logout · q quit"
	case PageBudgets, PageGoals:
		base := "j/k move · a add · d delete · r refresh · L logout · q quit"
		if m.page == PageGoals {
			return "enter contribute · " + base
		}
		return base
	case PageSettings:
		return "t theme · m currency · L logout · q quit"
	case PageProfile:
		return "e edit · L logout · q quit"
	}
	return "1-6 pages · r refresh · L logout · q quit"
}

func (m Model) contentWidth() int {
	if m.width == 0 {
		return 80
	}
	if m.width > 100 {
		return 100
	}
	return m.width
}

// wrap is a simple greedy word wrapper for advice paragraphs.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
