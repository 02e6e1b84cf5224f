package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		Type:     Expense,
		Category: "Food",
		Amount:   12.50,
		Currency: "USD",
		Date:     NewDate(2023, 6, 15),
		Notes:    "Lunch",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"unknown type", func(tr *Transaction) { tr.Type = "transfer" }, ErrInvalidType},
		{"negative amount", func(tr *Transaction) { tr.Amount = -1 }, ErrInvalidAmount},
		{"empty category", func(tr *Transaction) { tr.Category = "  " }, ErrEmptyCategory},
		{"zero date", func(tr *Transaction) { tr.Date = Date{} }, ErrInvalidDate},
		{"unsupported currency", func(tr *Transaction) { tr.Currency = "CHF" }, ErrInvalidCurrency},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := valid
			tc.mutate(&tr)
			if err := tr.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	// Zero amounts are allowed; direction lives in the type, not the sign.
	zero := valid
	zero.Amount = 0
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount rejected: %v", err)
	}
}

func TestBudget_Validate(t *testing.T) {
	valid := Budget{Category: "Groceries", Limit: 600, Spent: 450, Month: "2023-06", Currency: "USD"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}

	bad := valid
	bad.Month = "June 2023"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("got %v, want ErrInvalidMonth", err)
	}

	bad = valid
	bad.Limit = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
}

func TestBudget_Progress(t *testing.T) {
	cases := []struct {
		limit, spent, want float64
	}{
		{2000, 1500, 0.75},
		{1000, 1000, 1},
		{500, 600, 1}, // overspend clamps
		{0, 100, 0},
	}
	for _, tc := range cases {
		b := Budget{Limit: tc.limit, Spent: tc.spent}
		if got := b.Progress(); !almostEqual(got, tc.want) {
			t.Errorf("Progress(limit=%v spent=%v) = %v, want %v", tc.limit, tc.spent, got, tc.want)
		}
	}
}

func TestGoal_Validate(t *testing.T) {
	valid := Goal{Title: "Emergency Fund", TargetAmount: 10000, CurrentAmount: 6500, Currency: "USD"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}

	bad := valid
	bad.Title = ""
	if err := bad.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("got %v, want ErrEmptyTitle", err)
	}
}

func TestUserProfile_Validate(t *testing.T) {
	if err := (UserProfile{Name: "Ada", Email: "ada@example.com"}).Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
	if err := (UserProfile{Name: "Ada", Email: "not-an-email"}).Validate(); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("got %v, want ErrInvalidEmail", err)
	}
	if err := (UserProfile{Name: "", Email: "a@b.c"}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("got %v, want ErrEmptyName", err)
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in      string
		wantDay int
		ok      bool
	}{
		{`"2023-06-15"`, 15, true},
		{`"2023-06-15T08:30:00Z"`, 15, true},
		{`""`, 0, true}, // absent date decodes to zero value
		{`"15/06/2023"`, 0, false},
	}
	for _, tc := range cases {
		var d Date
		err := json.Unmarshal([]byte(tc.in), &d)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.in, err)
			}
			if tc.wantDay != 0 && d.Day() != tc.wantDay {
				t.Fatalf("%s: day = %d, want %d", tc.in, d.Day(), tc.wantDay)
			}
		} else if err == nil {
			t.Fatalf("%s: expected error", tc.in)
		}
	}
}

func TestTransaction_Label(t *testing.T) {
	if got := (Transaction{Notes: "Groceries"}).Label(); got != "Groceries" {
		t.Errorf("Label = %q", got)
	}
	if got := (Transaction{Description: "Movie Tickets"}).Label(); got != "Movie Tickets" {
		t.Errorf("Label = %q, want description fallback", got)
	}
	if got := (Transaction{Notes: " ", Description: "Fallback"}).Label(); got != "Fallback" {
		t.Errorf("Label = %q, blank notes should fall back", got)
	}
}
