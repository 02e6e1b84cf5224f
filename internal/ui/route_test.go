package ui

import "testing"

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		name          string
		requested     Page
		authenticated bool
		want          Page
		wantRedirect  bool
	}{
		{"protected page without session", PageDashboard, false, PageLogin, true},
		{"transactions without session", PageTransactions, false, PageLogin, true},
		{"settings without session", PageSettings, false, PageLogin, true},
		{"protected page with session", PageDashboard, true, PageDashboard, false},
		{"login without session", PageLogin, false, PageLogin, false},
		{"register without session", PageRegister, false, PageRegister, false},
		{"login with session redirects inward", PageLogin, true, PageDashboard, true},
		{"register with session redirects inward", PageRegister, true, PageDashboard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, redirected := ResolveRoute(tt.requested, tt.authenticated)
			if got != tt.want || redirected != tt.wantRedirect {
				t.Fatalf("ResolveRoute(%s, auth=%v) = (%s, %v), want (%s, %v)",
					tt.requested, tt.authenticated, got, redirected, tt.want, tt.wantRedirect)
			}
		})
	}
}

func TestPage_Public(t *testing.T) {
	public := map[Page]bool{PageLogin: true, PageRegister: true}
	all := []Page{PageLogin, PageRegister, PageDashboard, PageTransactions, PageBudgets, PageGoals, PageSettings, PageProfile}
	for _, p := range all {
		if p.Public() != public[p] {
			t.Errorf("%s.Public() = %v", p, p.Public())
		}
	}
}
