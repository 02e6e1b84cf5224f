package core

// Summary holds the derived totals shown alongside a transaction list.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

// Summarize computes totals over the full, unfiltered transaction set.
// The view filter must never change these numbers, so callers pass the raw
// list here and the filtered one to the table. An empty list yields zeros.
func Summarize(list []Transaction) Summary {
	var s Summary
	for _, t := range list {
		switch t.Type {
		case Income:
			s.TotalIncome += t.Amount
		case Expense:
			s.TotalExpense += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}
