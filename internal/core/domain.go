package core

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyEmail      = errors.New("empty email")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

type (
	// Product is one inventory row. Category is optional; most upstream
	// sources never set it.
	Product struct {
		ProductID     string   `json:"productId"`
		Name          string   `json:"name"`
		Price         Number   `json:"price"`
		Rating        Number   `json:"rating"`
		StockQuantity Number   `json:"stockQuantity"`
		Category      string   `json:"category,omitempty"`
		CreatedAt     DateTime `json:"createdAt"`
	}

	// Expense is one business expense entry.
	Expense struct {
		ExpenseID string   `json:"expenseId"`
		Category  string   `json:"category"`
		Amount    Number   `json:"amount"`
		Timestamp DateTime `json:"timestamp"`
	}

	// Salary is one employee salary period with its deductions.
	Salary struct {
		UserID          string   `json:"userId"`
		Name            string   `json:"name"`
		Email           string   `json:"email"`
		PhoneNumber     string   `json:"phoneNumber"`
		SalaryAmount    Number   `json:"salaryAmount"`
		PaidAmount      Number   `json:"paidAmount"`
		PetrolExpense   Number   `json:"petrolExpense"`
		OtherExpense    Number   `json:"otherExpense"`
		RemainingAmount Number   `json:"remainingAmount"`
		StartDate       DateTime `json:"startDate"`
		EndDate         DateTime `json:"endDate"`
		Timestamp       DateTime `json:"timestamp"`
	}

	// Customer is one customer ledger entry: a purchase of quantity units at
	// unitCost, partially paid. The upstream API calls these "users".
	Customer struct {
		UserID          string   `json:"userId"`
		Name            string   `json:"name"`
		Email           string   `json:"email"`
		PhoneNumber     string   `json:"phoneNumber"`
		UnitCost        Number   `json:"unitCost"`
		Quantity        Number   `json:"quantity"`
		PaidAmount      Number   `json:"paidAmount"`
		TotalAmount     Number   `json:"totalAmount"`
		RemainingAmount Number   `json:"remainingAmount"`
		Timestamp       DateTime `json:"timestamp"`
	}
)

// idCandidates resolves a record identity from its JSON document. Records
// fetched from older deployments carry the identity under a generic "id" or
// Mongo-style "_id" instead of the domain key, so decoding falls back through
// those before giving up.
type idCandidates struct {
	Generic string `json:"id"`
	Mongo   string `json:"_id"`
}

func (c idCandidates) or(primary string) string {
	if primary != "" {
		return primary
	}
	if c.Generic != "" {
		return c.Generic
	}
	return c.Mongo
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var aux struct {
		plain
		idCandidates
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	p.ProductID = aux.or(p.ProductID)
	return nil
}

func (e *Expense) UnmarshalJSON(data []byte) error {
	type plain Expense
	var aux struct {
		plain
		idCandidates
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Expense(aux.plain)
	e.ExpenseID = aux.or(e.ExpenseID)
	return nil
}

func (s *Salary) UnmarshalJSON(data []byte) error {
	type plain Salary
	var aux struct {
		plain
		idCandidates
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Salary(aux.plain)
	s.UserID = aux.or(s.UserID)
	return nil
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	type plain Customer
	var aux struct {
		plain
		idCandidates
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Customer(aux.plain)
	c.UserID = aux.or(c.UserID)
	return nil
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.Price.Valid || p.Price.Float64 < 0 {
		return ErrInvalidPrice
	}
	if p.StockQuantity.Valid && p.StockQuantity.Float64 < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if !e.Amount.Valid || e.Amount.Float64 <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (s Salary) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(s.Email) == "" {
		return ErrEmptyEmail
	}
	if !s.SalaryAmount.Valid || s.SalaryAmount.Float64 <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.UnitCost.Valid && c.UnitCost.Float64 < 0 {
		return ErrInvalidPrice
	}
	if c.Quantity.Valid && c.Quantity.Float64 < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Deductions is the sum of everything withheld from the salary amount.
// Missing deduction fields count as zero.
func (s Salary) Deductions() float64 {
	return s.PaidAmount.Or(0) + s.PetrolExpense.Or(0) + s.OtherExpense.Or(0)
}

// DeriveRemaining fills RemainingAmount from the salary amount and its
// deductions when the caller did not supply one. The stored value is treated
// as authoritative afterwards; summaries never recompute it.
func (s *Salary) DeriveRemaining() {
	if s.RemainingAmount.Valid {
		return
	}
	s.RemainingAmount = Num(s.SalaryAmount.Or(0) - s.Deductions())
}

// DeriveTotals fills TotalAmount (quantity x unit cost) and RemainingAmount
// (total minus paid) when the caller did not supply them.
func (c *Customer) DeriveTotals() {
	if !c.TotalAmount.Valid {
		c.TotalAmount = Num(c.Quantity.Or(0) * c.UnitCost.Or(0))
	}
	if !c.RemainingAmount.Valid {
		c.RemainingAmount = Num(c.TotalAmount.Or(0) - c.PaidAmount.Or(0))
	}
}
