package summary

import "inventory/internal/core"

// ExpenseRow is one normalized expense grid row.
type ExpenseRow struct {
	Serial    int           `json:"serial"`
	ExpenseID string        `json:"expenseId"`
	Category  string        `json:"category"`
	Amount    float64       `json:"amount"`
	Date      string        `json:"date"`
	Timestamp core.DateTime `json:"timestamp"`
}

// CategoryTotal is one category partition of an expense rollup.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthTotal is one month partition of an expense rollup.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// ExpenseSummary is the full aggregation result for the expense domain.
type ExpenseSummary struct {
	Rows       []ExpenseRow    `json:"rows"`
	Total      float64         `json:"total"`
	ByCategory []CategoryTotal `json:"byCategory"`
	ByMonth    []MonthTotal    `json:"byMonth"`
}

// Expenses normalizes the fetched expense set and computes its scalar,
// category-wise and month-wise totals. Partitions keep first-seen order.
func Expenses(records []core.Expense, opts Options) ExpenseSummary {
	s := ExpenseSummary{Rows: make([]ExpenseRow, 0, len(records))}
	byCat := newOrdered[float64]()
	byMonth := newOrdered[float64]()

	for i, e := range records {
		amount := e.Amount.Or(0)
		row := ExpenseRow{
			Serial:    i + 1,
			ExpenseID: stringOr(e.ExpenseID, NotAvailable),
			Category:  stringOr(e.Category, Uncategorized),
			Amount:    amount,
			Date:      displayTime(e.Timestamp),
			Timestamp: e.Timestamp,
		}
		s.Rows = append(s.Rows, row)

		s.Total += amount
		*byCat.at(row.Category) += amount
		*byMonth.at(opts.monthKey(e.Timestamp)) += amount
	}

	byCat.each(func(key string, total *float64) {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: key, Total: *total})
	})
	byMonth.each(func(key string, total *float64) {
		s.ByMonth = append(s.ByMonth, MonthTotal{Month: key, Total: *total})
	})
	return s
}
