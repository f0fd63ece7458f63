package summary

import "inventory/internal/core"

// SalaryRow is one normalized salary grid row.
type SalaryRow struct {
	Serial          int           `json:"serial"`
	UserID          string        `json:"userId"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	SalaryAmount    string        `json:"salaryAmount"`
	PaidAmount      string        `json:"paidAmount"`
	RemainingAmount string        `json:"remainingAmount"`
	PetrolExpense   string        `json:"petrolExpense"`
	OtherExpense    string        `json:"otherExpense"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	Date            string        `json:"date"`
	Timestamp       core.DateTime `json:"timestamp"`
}

// EmployeeTotal accumulates one employee's salary, payments and remainder.
type EmployeeTotal struct {
	Name      string  `json:"name"`
	Salary    float64 `json:"salary"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
}

// SalaryMonth is one month partition, with a nested per-employee breakdown.
type SalaryMonth struct {
	Month     string          `json:"month"`
	Salary    float64         `json:"salary"`
	Paid      float64         `json:"paid"`
	Remaining float64         `json:"remaining"`
	Employees []EmployeeTotal `json:"employees"`
}

// SalarySummary is the full aggregation result for the salary domain.
// TotalRemaining is a running sum of per-row remainders, each computed as
// salary minus that row's deductions with missing deductions counting as
// zero; it is never derived from the other grand totals.
type SalarySummary struct {
	Rows               []SalaryRow     `json:"rows"`
	TotalSalary        float64         `json:"totalSalary"`
	TotalPaid          float64         `json:"totalPaid"`
	TotalPetrolExpense float64         `json:"totalPetrolExpense"`
	TotalOtherExpense  float64         `json:"totalOtherExpense"`
	TotalRemaining     float64         `json:"totalRemaining"`
	EmployeeCount      int             `json:"employeeCount"`
	ByEmployee         []EmployeeTotal `json:"byEmployee"`
	ByMonth            []SalaryMonth   `json:"byMonth"`
}

type salaryMonthAcc struct {
	salary    float64
	paid      float64
	remaining float64
	employees *ordered[EmployeeTotal]
}

// Salaries normalizes the fetched salary set and computes grand totals, a
// per-employee rollup and a month-wise rollup nested by employee. Months
// bucket on the period start date.
func Salaries(records []core.Salary, opts Options) SalarySummary {
	s := SalarySummary{Rows: make([]SalaryRow, 0, len(records))}
	byEmployee := newOrdered[EmployeeTotal]()
	byMonth := newOrdered[salaryMonthAcc]()

	for i, r := range records {
		salary := r.SalaryAmount.Or(0)
		paid := r.PaidAmount.Or(0)
		petrol := r.PetrolExpense.Or(0)
		other := r.OtherExpense.Or(0)
		remaining := salary - (paid + petrol + other)
		name := stringOr(r.Name, Unknown)

		s.Rows = append(s.Rows, SalaryRow{
			Serial:          i + 1,
			UserID:          stringOr(r.UserID, NotAvailable),
			Name:            stringOr(r.Name, NotAvailable),
			Email:           stringOr(r.Email, NotAvailable),
			SalaryAmount:    displayNumber(r.SalaryAmount),
			PaidAmount:      displayNumber(r.PaidAmount),
			RemainingAmount: displayNumber(r.RemainingAmount),
			PetrolExpense:   displayNumber(r.PetrolExpense),
			OtherExpense:    displayNumber(r.OtherExpense),
			StartDate:       displayDate(r.StartDate),
			EndDate:         displayDate(r.EndDate),
			Date:            displayTime(r.Timestamp),
			Timestamp:       r.Timestamp,
		})

		s.TotalSalary += salary
		s.TotalPaid += paid
		s.TotalPetrolExpense += petrol
		s.TotalOtherExpense += other
		s.TotalRemaining += remaining
		s.EmployeeCount++

		emp := byEmployee.at(name)
		emp.Salary += salary
		emp.Paid += paid
		emp.Remaining += remaining

		month := byMonth.at(opts.monthKey(r.StartDate))
		if month.employees == nil {
			month.employees = newOrdered[EmployeeTotal]()
		}
		month.salary += salary
		month.paid += paid
		month.remaining += remaining
		monthEmp := month.employees.at(name)
		monthEmp.Salary += salary
		monthEmp.Paid += paid
		monthEmp.Remaining += remaining
	}

	byEmployee.each(func(key string, v *EmployeeTotal) {
		v.Name = key
		s.ByEmployee = append(s.ByEmployee, *v)
	})
	byMonth.each(func(key string, acc *salaryMonthAcc) {
		m := SalaryMonth{
			Month:     key,
			Salary:    acc.salary,
			Paid:      acc.paid,
			Remaining: acc.remaining,
		}
		acc.employees.each(func(name string, v *EmployeeTotal) {
			v.Name = name
			m.Employees = append(m.Employees, *v)
		})
		s.ByMonth = append(s.ByMonth, m)
	})
	return s
}
