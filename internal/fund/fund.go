// Package fund holds the dashboard's pure filter and statistics logic.
// Everything here works on transaction lists already loaded from the store;
// nothing touches the database.
package fund

import (
	"sort"
	"strconv"
	"strings"

	"roomfund/internal/models"
)

// All is the sentinel that disables a filter axis.
const All = "all"

// Criteria describes one dashboard filter tuple. Zero values (or All) mean
// no filtering on that axis. StartDate and EndDate only apply when both are
// set, and the range is inclusive of both endpoints.
type Criteria struct {
	StartDate string
	EndDate   string
	PersonID  string
	Status    string
	Type      string
	Search    string
}

type Stats struct {
	CurrentFund  int64 `json:"current_fund"`
	PendingFund  int64 `json:"pending_fund"`
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
}

// Filter returns the subset of transactions matching every active criterion,
// sorted by date descending. The input slice is never mutated.
func Filter(transactions []models.Transaction, c Criteria) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !matches(t, c) {
			continue
		}
		filtered = append(filtered, t)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date > filtered[j].Date
	})
	return filtered
}

func matches(t models.Transaction, c Criteria) bool {
	if c.StartDate != "" && c.EndDate != "" {
		// Dates are "YYYY-MM-DD" day strings, so the lexical comparison is
		// chronological and t.Date <= end already covers the whole end day.
		day := calendarDay(t.Date)
		if day < calendarDay(c.StartDate) || day > calendarDay(c.EndDate) {
			return false
		}
	}
	if c.PersonID != "" && c.PersonID != All && t.PersonID != c.PersonID {
		return false
	}
	if c.Status != "" && c.Status != All && t.Status != c.Status {
		return false
	}
	if c.Type != "" && c.Type != All && t.Type != c.Type {
		return false
	}
	if query := strings.TrimSpace(c.Search); query != "" {
		q := strings.ToLower(query)
		if !strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.PersonName), q) &&
			!strings.Contains(strconv.FormatInt(t.Amount, 10), q) {
			return false
		}
	}
	return true
}

func calendarDay(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// Summarize computes the fund aggregates over the full, unfiltered list.
// CurrentFund is completed income minus completed expense; PendingFund is
// income recorded but not yet collected.
func Summarize(transactions []models.Transaction) Stats {
	var s Stats
	for _, t := range transactions {
		switch {
		case t.Type == models.TypeIncome && t.Status == models.StatusCompleted:
			s.TotalIncome += t.Amount
		case t.Type == models.TypeExpense && t.Status == models.StatusCompleted:
			s.TotalExpense += t.Amount
		case t.Type == models.TypeIncome && t.Status == models.StatusPending:
			s.PendingFund += t.Amount
		}
	}
	s.CurrentFund = s.TotalIncome - s.TotalExpense
	return s
}
