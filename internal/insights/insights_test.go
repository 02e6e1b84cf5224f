package insights

import "testing"

func TestParse(t *testing.T) {
	text := "Financial Health Score: 80/100 - solid.\n\n" +
		"Spending Pattern Analysis: you spend a lot on coffee.\n\n" +
		"Budget Recommendation: 50/30/20.\n\n" +
		"Savings Opportunity: brew at home.\n\n" +
		"Action Items: 1) buy a kettle.\n\n" +
		"Remember to review quarterly."

	sections := Parse(text)
	if len(sections) != 6 {
		t.Fatalf("len = %d, want 6", len(sections))
	}

	wantKinds := []Kind{KindHealthScore, KindSpending, KindBudget, KindSavings, KindActionItems, KindGeneral}
	for i, want := range wantKinds {
		if sections[i].Kind != want {
			t.Errorf("section %d kind = %s, want %s", i, sections[i].Kind, want)
		}
	}
}

func TestParse_EmptyAndWhitespace(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Fatalf("empty text produced %d sections", len(got))
	}
	if got := Parse("\n\n  \n\n"); len(got) != 0 {
		t.Fatalf("whitespace text produced %d sections", len(got))
	}
}

func TestParse_CRLF(t *testing.T) {
	sections := Parse("Spending Pattern: a.\r\n\r\nAction Items: b.")
	if len(sections) != 2 {
		t.Fatalf("len = %d, want 2", len(sections))
	}
	if sections[0].Kind != KindSpending || sections[1].Kind != KindActionItems {
		t.Fatalf("kinds = %s, %s", sections[0].Kind, sections[1].Kind)
	}
}

func TestFallback_ParsesIntoAllSections(t *testing.T) {
	sections := Parse(Fallback)
	if len(sections) != 5 {
		t.Fatalf("fallback produced %d sections, want 5", len(sections))
	}
	seen := map[Kind]bool{}
	for _, s := range sections {
		seen[s.Kind] = true
	}
	for _, k := range []Kind{KindHealthScore, KindSpending, KindBudget, KindSavings, KindActionItems} {
		if !seen[k] {
			t.Errorf("fallback missing section %s", k)
		}
	}
}
