package http

import (
	"net/http"

	"inventory/internal/core"
	"inventory/internal/sheets"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.backend.ListProducts(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, sheets.DomainProducts)
		return
	}
	if products == nil {
		products = []core.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p core.Product
	if err := decodeBody(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.backend.CreateProduct(r.Context(), p)
	if err != nil {
		s.respondServiceError(w, r, err, sheets.DomainProducts)
		return
	}

	s.recordCreated(r.Context(), sheets.DomainProducts, created.ProductID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productId")
	if err := s.backend.DeleteProduct(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err, sheets.DomainProducts)
		return
	}

	s.recordDeleted(r.Context(), sheets.DomainProducts, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.backend.ListExpenses(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, sheets.DomainExpenses)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := decodeBody(r, &e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.backend.CreateExpense(r.Context(), e)
	if err != nil {
		s.respondServiceError(w, r, err, sheets.DomainExpenses)
		return
	}

	s.recordCreated(r.Context(), sheets.DomainExpenses, created.ExpenseID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("expenseId")
	if err := s.backend.DeleteExpense(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err, sheets.DomainExpenses)
		return
	}

	s.recordDeleted(r.Context(), sheets.DomainExpenses, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSalaries(w http.ResponseWriter, r *http.Request) {
	salaries, err := s.backend.ListSalaries(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, sheets.DomainSalaries)
		return
	}
	if salaries == nil {
		salaries = []core.Salary{}
	}
	respondJSON(w, http.StatusOK, salaries)
}

func (s *Server) handleCreateSalary(w http.ResponseWriter, r *http.Request) {
	var sal core.Salary
	if err := decodeBody(r, &sal); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.backend.CreateSalary(r.Context(), sal)
	if err != nil {
		s.respondServiceError(w, r, err, sheets.DomainSalaries)
		return
	}

	s.recordCreated(r.Context(), sheets.DomainSalaries, created.UserID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteSalary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("userId")
	if err := s.backend.DeleteSalary(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err, sheets.DomainSalaries)
		return
	}

	s.recordDeleted(r.Context(), sheets.DomainSalaries, id)
	w.WriteHeader(http.StatusNoContent)
}

// The customer ledger keeps the original public route name, /users.
func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.backend.ListCustomers(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, sheets.DomainCustomers)
		return
	}
	if customers == nil {
		customers = []core.Customer{}
	}
	respondJSON(w, http.StatusOK, customers)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c core.Customer
	if err := decodeBody(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.backend.CreateCustomer(r.Context(), c)
	if err != nil {
		s.respondServiceError(w, r, err, sheets.DomainCustomers)
		return
	}

	s.recordCreated(r.Context(), sheets.DomainCustomers, created.UserID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("userId")
	if err := s.backend.DeleteCustomer(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err, sheets.DomainCustomers)
		return
	}

	s.recordDeleted(r.Context(), sheets.DomainCustomers, id)
	w.WriteHeader(http.StatusNoContent)
}
