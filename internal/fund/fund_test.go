package fund

import (
	"reflect"
	"testing"

	"roomfund/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "t1", Date: "2024-01-10", Amount: 100000, Type: "income", Status: "completed", PersonID: "p1", PersonName: "An", Description: "monthly contribution"},
		{ID: "t2", Date: "2024-01-12", Amount: 30000, Type: "expense", Status: "completed", PersonID: "p2", PersonName: "Binh", Description: "cleaning supplies"},
		{ID: "t3", Date: "2024-01-15", Amount: 50000, Type: "income", Status: "pending", PersonID: "p1", PersonName: "An", Description: "late contribution"},
	}
}

func TestFilterNoCriteriaReturnsAllSortedByDateDesc(t *testing.T) {
	ts := sampleTransactions()
	got := Filter(ts, Criteria{PersonID: All, Status: All, Type: All})
	if len(got) != len(ts) {
		t.Fatalf("expected %d rows, got %d", len(ts), len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Date < got[i].Date {
			t.Fatalf("rows not sorted date-desc: %s before %s", got[i-1].Date, got[i].Date)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	ts := sampleTransactions()
	original := make([]models.Transaction, len(ts))
	copy(original, ts)
	Filter(ts, Criteria{})
	if !reflect.DeepEqual(ts, original) {
		t.Fatalf("input slice was mutated")
	}
}

func TestFilterIsSubsetSatisfyingPredicates(t *testing.T) {
	ts := sampleTransactions()
	c := Criteria{PersonID: "p1", Status: "pending", Search: "contribution"}
	got := Filter(ts, c)
	byID := map[string]models.Transaction{}
	for _, tr := range ts {
		byID[tr.ID] = tr
	}
	for _, tr := range got {
		if _, ok := byID[tr.ID]; !ok {
			t.Fatalf("fabricated row %q", tr.ID)
		}
		if tr.PersonID != "p1" || tr.Status != "pending" {
			t.Fatalf("row %q violates active predicates: %#v", tr.ID, tr)
		}
	}
	if len(got) != 1 || got[0].ID != "t3" {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestFilterDateRangeInclusiveOfBothEndpoints(t *testing.T) {
	ts := sampleTransactions()
	got := Filter(ts, Criteria{StartDate: "2024-01-10", EndDate: "2024-01-15"})
	if len(got) != 3 {
		t.Fatalf("expected all 3 rows in inclusive range, got %d", len(got))
	}
	got = Filter(ts, Criteria{StartDate: "2024-01-10", EndDate: "2024-01-12"})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	for _, tr := range got {
		if tr.Date < "2024-01-10" || tr.Date > "2024-01-12" {
			t.Fatalf("row outside range: %#v", tr)
		}
	}
}

func TestFilterSingleDateBoundaryIgnored(t *testing.T) {
	// Only one endpoint set means no date filtering at all.
	ts := sampleTransactions()
	if got := Filter(ts, Criteria{StartDate: "2024-01-15"}); len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got := Filter(ts, Criteria{EndDate: "2024-01-10"}); len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
}

func TestFilterByType(t *testing.T) {
	got := Filter(sampleTransactions(), Criteria{Type: "expense"})
	if len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestFilterSearchMatchesDescriptionPersonAndAmount(t *testing.T) {
	ts := sampleTransactions()
	if got := Filter(ts, Criteria{Search: "CLEANING"}); len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("description search failed: %#v", got)
	}
	if got := Filter(ts, Criteria{Search: "binh"}); len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("person name search failed: %#v", got)
	}
	if got := Filter(ts, Criteria{Search: "50000"}); len(got) != 1 || got[0].ID != "t3" {
		t.Fatalf("amount search failed: %#v", got)
	}
	if got := Filter(ts, Criteria{Search: "no such thing"}); len(got) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, Criteria{PersonID: "p1", Search: "x"})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
}

func TestSummarizeWorkedScenario(t *testing.T) {
	s := Summarize(sampleTransactions())
	if s.CurrentFund != 70000 {
		t.Fatalf("expected current fund 70000, got %d", s.CurrentFund)
	}
	if s.PendingFund != 50000 {
		t.Fatalf("expected pending fund 50000, got %d", s.PendingFund)
	}
	if s.TotalIncome != 100000 || s.TotalExpense != 30000 {
		t.Fatalf("unexpected totals: %#v", s)
	}
}

func TestSummarizeEmptyListIsZero(t *testing.T) {
	s := Summarize(nil)
	if s != (Stats{}) {
		t.Fatalf("expected zero stats, got %#v", s)
	}
}

func TestSummarizeIgnoresPendingExpense(t *testing.T) {
	s := Summarize([]models.Transaction{
		{Amount: 1000, Type: "expense", Status: "pending"},
	})
	if s != (Stats{}) {
		t.Fatalf("pending expense must not affect any aggregate: %#v", s)
	}
}
