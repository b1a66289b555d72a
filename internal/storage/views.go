package storage

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estlin/paperbill/internal/model"
)

// Stats summarizes the store at a single point in time. "This month" and
// "this year" are evaluated against the clock passed to Summarize, not
// re-evaluated later.
type Stats struct {
	Count        int
	Revenue      decimal.Decimal
	MonthRevenue decimal.Decimal
	YearRevenue  decimal.Decimal
}

// Search returns the records whose number, client name, or business name
// contains the query, case-insensitively. A blank or whitespace-only query
// returns the full sequence in storage order.
func (s *Store) Search(query string) []model.Document {
	if strings.TrimSpace(query) == "" {
		return s.Documents()
	}

	q := strings.ToLower(query)
	var out []model.Document
	for _, d := range s.docs {
		if strings.Contains(strings.ToLower(d.Number), q) ||
			strings.Contains(strings.ToLower(d.Client.Name), q) ||
			strings.Contains(strings.ToLower(d.Business.Name), q) {
			out = append(out, d)
		}
	}
	return out
}

// Summarize computes record count and revenue totals over the full sequence.
// Month and year membership use now's local calendar date.
func (s *Store) Summarize(now time.Time) Stats {
	stats := Stats{
		Count:        len(s.docs),
		Revenue:      decimal.Zero,
		MonthRevenue: decimal.Zero,
		YearRevenue:  decimal.Zero,
	}

	for _, d := range s.docs {
		stats.Revenue = stats.Revenue.Add(d.Total)
		if d.IssueDate.Year() == now.Year() {
			stats.YearRevenue = stats.YearRevenue.Add(d.Total)
			if d.IssueDate.Month() == now.Month() {
				stats.MonthRevenue = stats.MonthRevenue.Add(d.Total)
			}
		}
	}
	return stats
}
