// Package demo embeds the sample datasets shown when the backend is
// unreachable, so the app stays usable for evaluation offline.
package demo

import (
	"embed"
	"encoding/json"
	"fmt"

	"fintrack/internal/core"
)

//go:embed data/*.json
var dataFS embed.FS

// Transactions returns a fresh copy of the sample transaction list.
func Transactions() []core.Transaction {
	var list []core.Transaction
	mustLoad("data/transactions.json", &list)
	return list
}

// Budgets returns a fresh copy of the sample budget list.
func Budgets() []core.Budget {
	var list []core.Budget
	mustLoad("data/budgets.json", &list)
	return list
}

// Goals returns a fresh copy of the sample goal list.
func Goals() []core.Goal {
	var list []core.Goal
	mustLoad("data/goals.json", &list)
	return list
}

func mustLoad(path string, out any) {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("demo: missing embedded dataset %s: %v", path, err))
	}
	if err := json.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("demo: corrupt embedded dataset %s: %v", path, err))
	}
}
