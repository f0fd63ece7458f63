package sheets

import (
	"context"

	"inventory/internal/core"
)

// Record domains accepted by the export pipeline.
const (
	DomainProducts  = "products"
	DomainExpenses  = "expenses"
	DomainSalaries  = "salaries"
	DomainCustomers = "customers"
)

// Row is one flattened record ready for spreadsheet export. Cells hold the
// domain-specific column values in a fixed per-domain order.
type Row struct {
	Domain string
	ID     string
	Cells  []any
}

// RecordWriter is the outbound port the export worker writes through.
type RecordWriter interface {
	Append(ctx context.Context, row Row) (rowRef string, err error)
}

// RowForProduct flattens a product for export.
func RowForProduct(p core.Product) Row {
	return Row{
		Domain: DomainProducts,
		ID:     p.ProductID,
		Cells: []any{
			p.Name,
			p.Category,
			p.Price.Or(0),
			p.StockQuantity.Or(0),
			cellTime(p.CreatedAt),
		},
	}
}

// RowForExpense flattens an expense for export.
func RowForExpense(e core.Expense) Row {
	return Row{
		Domain: DomainExpenses,
		ID:     e.ExpenseID,
		Cells: []any{
			e.Category,
			e.Amount.Or(0),
			cellTime(e.Timestamp),
		},
	}
}

// RowForSalary flattens a salary entry for export.
func RowForSalary(s core.Salary) Row {
	return Row{
		Domain: DomainSalaries,
		ID:     s.UserID,
		Cells: []any{
			s.Name,
			s.Email,
			s.SalaryAmount.Or(0),
			s.PaidAmount.Or(0),
			s.PetrolExpense.Or(0),
			s.OtherExpense.Or(0),
			s.RemainingAmount.Or(0),
			cellTime(s.StartDate),
			cellTime(s.EndDate),
		},
	}
}

// RowForCustomer flattens a customer ledger entry for export.
func RowForCustomer(c core.Customer) Row {
	return Row{
		Domain: DomainCustomers,
		ID:     c.UserID,
		Cells: []any{
			c.Name,
			c.Email,
			c.UnitCost.Or(0),
			c.Quantity.Or(0),
			c.PaidAmount.Or(0),
			c.TotalAmount.Or(0),
			c.RemainingAmount.Or(0),
			cellTime(c.Timestamp),
		},
	}
}

func cellTime(d core.DateTime) any {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02 15:04:05")
}
