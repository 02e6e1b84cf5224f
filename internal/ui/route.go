package ui

// Page identifies one screen of the app.
type Page int

const (
	PageLogin Page = iota
	PageRegister
	PageDashboard
	PageTransactions
	PageBudgets
	PageGoals
	PageSettings
	PageProfile
)

func (p Page) String() string {
	switch p {
	case PageLogin:
		return "login"
	case PageRegister:
		return "register"
	case PageDashboard:
		return "dashboard"
	case PageTransactions:
		return "transactions"
	case PageBudgets:
		return "budgets"
	case PageGoals:
		return "goals"
	case PageSettings:
		return "settings"
	case PageProfile:
		return "profile"
	}
	return "unknown"
}

// Public reports whether a page is on the unauthenticated allow-list.
// Everything else requires a session.
func (p Page) Public() bool {
	return p == PageLogin || p == PageRegister
}

// phase is the per-activation lifecycle of the route controller.
type phase int

const (
	phaseUnmounted phase = iota
	phaseChecking
	phaseRedirecting
	phaseReady
)

// ResolveRoute applies the route guard: a protected page with no session
// redirects to login, and a public page with a live session redirects to
// the dashboard (the inverse redirect for auth pages). The returned flag
// reports whether a redirect happened.
func ResolveRoute(requested Page, authenticated bool) (Page, bool) {
	if !requested.Public() && !authenticated {
		return PageLogin, true
	}
	if requested.Public() && authenticated {
		return PageDashboard, true
	}
	return requested, false
}
