package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Date is a calendar date. The backend exchanges both plain dates
	// ("2023-06-15") and RFC 3339 timestamps; both decode here.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID          string          `json:"_id"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Amount      float64         `json:"amount"`
		Currency    string          `json:"currency"`
		Date        Date            `json:"date"`
		Notes       string          `json:"notes,omitempty"`
		Description string          `json:"description,omitempty"`
	}

	Budget struct {
		ID       string  `json:"_id"`
		Category string  `json:"category"`
		Limit    float64 `json:"limit"`
		Spent    float64 `json:"spent"`
		Month    string  `json:"month"` // YYYY-MM
		Currency string  `json:"currency"`
	}

	Goal struct {
		ID            string  `json:"_id"`
		Title         string  `json:"title"`
		Description   string  `json:"description,omitempty"`
		TargetAmount  float64 `json:"targetAmount"`
		CurrentAmount float64 `json:"currentAmount"`
		Deadline      Date    `json:"deadline"`
		Currency      string  `json:"currency"`
	}

	UserProfile struct {
		ID       string `json:"_id,omitempty"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Currency string `json:"currency,omitempty"`
	}
)

var (
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Label returns the display text for a transaction. The backend stores it
// under "notes" but older records carry "description".
func (t Transaction) Label() string {
	if strings.TrimSpace(t.Notes) != "" {
		return t.Notes
	}
	return t.Description
}

// Validate checks a transaction before it is sent to the backend. Amounts
// are always non-negative; direction is carried by Type, never by sign.
func (t Transaction) Validate() error {
	if t.Type != Income && t.Type != Expense {
		return ErrInvalidType
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !IsSupportedCurrency(t.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Limit <= 0 {
		return ErrInvalidAmount
	}
	if _, err := time.Parse("2006-01", b.Month); err != nil {
		return ErrInvalidMonth
	}
	if !IsSupportedCurrency(b.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}

// Progress returns spent/limit clamped to [0, 1].
func (b Budget) Progress() float64 {
	if b.Limit <= 0 {
		return 0
	}
	p := b.Spent / b.Limit
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.TargetAmount <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount < 0 {
		return ErrInvalidAmount
	}
	if !IsSupportedCurrency(g.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}

// Progress returns current/target clamped to [0, 1].
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (u UserProfile) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	email := strings.TrimSpace(u.Email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	return nil
}
