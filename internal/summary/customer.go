package summary

import (
	"sort"

	"inventory/internal/core"
)

// CustomerRow is one normalized customer ledger grid row.
type CustomerRow struct {
	Serial          int           `json:"serial"`
	UserID          string        `json:"userId"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	PhoneNumber     string        `json:"phoneNumber"`
	UnitCost        string        `json:"unitCost"`
	Quantity        string        `json:"quantity"`
	PaidAmount      string        `json:"paidAmount"`
	RemainingAmount string        `json:"remainingAmount"`
	TotalAmount     string        `json:"totalAmount"`
	Date            string        `json:"date"`
	Timestamp       core.DateTime `json:"timestamp"`
}

// CustomerNameTotal accumulates one customer's payments across their
// ledger entries.
type CustomerNameTotal struct {
	Name         string  `json:"name"`
	Paid         float64 `json:"paid"`
	Remaining    float64 `json:"remaining"`
	Total        float64 `json:"total"`
	Transactions int     `json:"transactions"`
}

// CustomerMonth is one month partition, nested by customer name.
type CustomerMonth struct {
	Month string              `json:"month"`
	Names []CustomerNameTotal `json:"names"`
}

// CustomerSummary is the full aggregation result for the customer domain.
// ByName is the one rollup with a display-order contract: it is sorted
// descending by grand total per name, ties keeping first-seen order.
type CustomerSummary struct {
	Rows           []CustomerRow       `json:"rows"`
	TotalQuantity  float64             `json:"totalQuantity"`
	TotalPaid      float64             `json:"totalPaid"`
	TotalRemaining float64             `json:"totalRemaining"`
	GrandTotal     float64             `json:"grandTotal"`
	CustomerCount  int                 `json:"customerCount"`
	ByName         []CustomerNameTotal `json:"byName"`
	ByMonth        []CustomerMonth     `json:"byMonth"`
}

// Customers normalizes the fetched customer ledger and computes grand
// totals, the sorted name-wise rollup and a month-wise rollup nested by
// name. The stored remaining and total amounts are authoritative; no
// per-row recomputation happens here.
func Customers(records []core.Customer, opts Options) CustomerSummary {
	s := CustomerSummary{Rows: make([]CustomerRow, 0, len(records))}
	byName := newOrdered[CustomerNameTotal]()
	byMonth := newOrdered[ordered[CustomerNameTotal]]()

	for i, c := range records {
		paid := c.PaidAmount.Or(0)
		remaining := c.RemainingAmount.Or(0)
		total := c.TotalAmount.Or(0)
		name := stringOr(c.Name, Unknown)

		s.Rows = append(s.Rows, CustomerRow{
			Serial:          i + 1,
			UserID:          stringOr(c.UserID, NotAvailable),
			Name:            stringOr(c.Name, NotAvailable),
			Email:           stringOr(c.Email, NotAvailable),
			PhoneNumber:     stringOr(c.PhoneNumber, NotAvailable),
			UnitCost:        displayNumber(c.UnitCost),
			Quantity:        displayNumber(c.Quantity),
			PaidAmount:      displayNumber(c.PaidAmount),
			RemainingAmount: displayNumber(c.RemainingAmount),
			TotalAmount:     displayNumber(c.TotalAmount),
			Date:            displayTime(c.Timestamp),
			Timestamp:       c.Timestamp,
		})

		s.TotalQuantity += c.Quantity.Or(0)
		s.TotalPaid += paid
		s.TotalRemaining += remaining
		s.GrandTotal += total
		s.CustomerCount++

		acc := byName.at(name)
		acc.Paid += paid
		acc.Remaining += remaining
		acc.Total += total
		acc.Transactions++

		month := byMonth.at(opts.monthKey(c.Timestamp))
		if month.vals == nil {
			month.vals = make(map[string]*CustomerNameTotal)
		}
		macc := month.at(name)
		macc.Paid += paid
		macc.Remaining += remaining
		macc.Total += total
		macc.Transactions++
	}

	byName.each(func(key string, v *CustomerNameTotal) {
		v.Name = key
		s.ByName = append(s.ByName, *v)
	})
	// Display contract: descending by grand total, stable on ties.
	sort.SliceStable(s.ByName, func(i, j int) bool {
		return s.ByName[i].Total > s.ByName[j].Total
	})

	byMonth.each(func(key string, names *ordered[CustomerNameTotal]) {
		m := CustomerMonth{Month: key}
		names.each(func(name string, v *CustomerNameTotal) {
			v.Name = name
			m.Names = append(m.Names, *v)
		})
		s.ByMonth = append(s.ByMonth, m)
	})
	return s
}
