package summary

import (
	"testing"

	"inventory/internal/core"
)

func TestSalariesGrandTotals(t *testing.T) {
	records := []core.Salary{
		{
			UserID: "u1", Name: "Ada",
			SalaryAmount:  core.Num(1000),
			PaidAmount:    core.Num(400),
			PetrolExpense: core.Num(50),
			OtherExpense:  core.Num(25),
			StartDate:     date("2024-03-01"),
		},
		{
			UserID: "u2", Name: "Grace",
			SalaryAmount: core.Num(800),
			PaidAmount:   core.Num(800),
			StartDate:    date("2024-03-05"),
		},
	}

	s := Salaries(records, Options{})

	if s.TotalSalary != 1800 || s.TotalPaid != 1200 {
		t.Fatalf("totals = %+v", s)
	}
	if s.TotalPetrolExpense != 50 || s.TotalOtherExpense != 25 {
		t.Fatalf("expense totals = %+v", s)
	}
	// 525 from Ada, 0 from Grace; missing deductions count as zero per row.
	if s.TotalRemaining != 525 {
		t.Fatalf("TotalRemaining = %v, want 525", s.TotalRemaining)
	}
	if s.EmployeeCount != 2 {
		t.Fatalf("EmployeeCount = %d", s.EmployeeCount)
	}
}

func TestSalariesRemainingIsPerRow(t *testing.T) {
	// One row overdrawn, one underpaid. A per-row running sum keeps both
	// contributions; deriving from the grand totals would be identical here,
	// but per-row is the contract when deduction fields go missing.
	records := []core.Salary{
		{UserID: "u1", Name: "Ada", SalaryAmount: core.Num(100), PaidAmount: core.Num(150), StartDate: date("2024-01-01")},
		{UserID: "u2", Name: "Ada", SalaryAmount: core.Num(100), StartDate: date("2024-01-02")},
	}

	s := Salaries(records, Options{})
	if s.TotalRemaining != 50 {
		t.Fatalf("TotalRemaining = %v, want 50", s.TotalRemaining)
	}
	if s.ByEmployee[0].Remaining != 50 {
		t.Fatalf("ByEmployee[0] = %+v", s.ByEmployee[0])
	}
}

func TestSalariesByEmployeeInsertionOrder(t *testing.T) {
	records := []core.Salary{
		{UserID: "u1", Name: "Zed", SalaryAmount: core.Num(10), StartDate: date("2024-01-01")},
		{UserID: "u2", Name: "Ada", SalaryAmount: core.Num(99), StartDate: date("2024-01-01")},
		{UserID: "u3", Name: "Zed", SalaryAmount: core.Num(5), StartDate: date("2024-01-01")},
	}

	s := Salaries(records, Options{})
	if len(s.ByEmployee) != 2 {
		t.Fatalf("ByEmployee = %+v", s.ByEmployee)
	}
	// First-seen order, not sorted by total.
	if s.ByEmployee[0].Name != "Zed" || s.ByEmployee[0].Salary != 15 {
		t.Fatalf("ByEmployee[0] = %+v", s.ByEmployee[0])
	}
	if s.ByEmployee[1].Name != "Ada" {
		t.Fatalf("ByEmployee[1] = %+v", s.ByEmployee[1])
	}
}

func TestSalariesMonthWiseNestsByEmployee(t *testing.T) {
	records := []core.Salary{
		{UserID: "u1", Name: "Ada", SalaryAmount: core.Num(100), PaidAmount: core.Num(40), StartDate: date("2024-03-01")},
		{UserID: "u2", Name: "Grace", SalaryAmount: core.Num(200), StartDate: date("2024-03-10")},
		{UserID: "u3", Name: "Ada", SalaryAmount: core.Num(100), StartDate: date("2024-04-01")},
	}

	s := Salaries(records, Options{})

	if len(s.ByMonth) != 2 {
		t.Fatalf("ByMonth = %+v", s.ByMonth)
	}
	march := s.ByMonth[0]
	if march.Month != "March 2024" || march.Salary != 300 || march.Paid != 40 {
		t.Fatalf("march = %+v", march)
	}
	if len(march.Employees) != 2 || march.Employees[0].Name != "Ada" || march.Employees[0].Remaining != 60 {
		t.Fatalf("march.Employees = %+v", march.Employees)
	}
	if s.ByMonth[1].Month != "April 2024" || len(s.ByMonth[1].Employees) != 1 {
		t.Fatalf("april = %+v", s.ByMonth[1])
	}
}

func TestSalariesUnknownEmployeeFallback(t *testing.T) {
	records := []core.Salary{
		{UserID: "u1", SalaryAmount: core.Num(100), StartDate: date("2024-01-01")},
	}

	s := Salaries(records, Options{})
	if s.ByEmployee[0].Name != Unknown {
		t.Fatalf("ByEmployee[0].Name = %q", s.ByEmployee[0].Name)
	}
	if s.Rows[0].SalaryAmount != "100" || s.Rows[0].PaidAmount != NotAvailable {
		t.Fatalf("row = %+v", s.Rows[0])
	}
}
