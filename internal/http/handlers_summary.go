package http

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"inventory/internal/sheets"
	"inventory/internal/summary"
)

// cachedSummary serves a summary endpoint through the response cache.
// Summaries are recomputed from the full record set on every miss; a
// mutation on the domain invalidates its entry, so a client re-fetching
// after a write never sees stale rollups.
func (s *Server) cachedSummary(w http.ResponseWriter, r *http.Request, key string, compute func() (any, error)) {
	if body, ok := s.summaryCache.Get(key); ok {
		atomic.AddInt64(&s.metrics.summaryHits, 1)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}
	atomic.AddInt64(&s.metrics.summaryMisses, 1)

	result, err := compute()
	if err != nil {
		s.respondServiceError(w, r, err, key)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.summaryCache.Set(key, body)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleProductSummary(w http.ResponseWriter, r *http.Request) {
	s.cachedSummary(w, r, sheets.DomainProducts, func() (any, error) {
		products, err := s.backend.ListProducts(r.Context())
		if err != nil {
			return nil, err
		}
		return summary.Products(products, s.summaryOpts), nil
	})
}

func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	s.cachedSummary(w, r, sheets.DomainExpenses, func() (any, error) {
		expenses, err := s.backend.ListExpenses(r.Context())
		if err != nil {
			return nil, err
		}
		return summary.Expenses(expenses, s.summaryOpts), nil
	})
}

func (s *Server) handleSalarySummary(w http.ResponseWriter, r *http.Request) {
	s.cachedSummary(w, r, sheets.DomainSalaries, func() (any, error) {
		salaries, err := s.backend.ListSalaries(r.Context())
		if err != nil {
			return nil, err
		}
		return summary.Salaries(salaries, s.summaryOpts), nil
	})
}

func (s *Server) handleCustomerSummary(w http.ResponseWriter, r *http.Request) {
	s.cachedSummary(w, r, sheets.DomainCustomers, func() (any, error) {
		customers, err := s.backend.ListCustomers(r.Context())
		if err != nil {
			return nil, err
		}
		return summary.Customers(customers, s.summaryOpts), nil
	})
}

// Dashboard is the cross-domain overview the front page renders: one
// headline block per domain, all derived from the same aggregations the
// per-domain summary endpoints expose.
type Dashboard struct {
	Products  DashboardProducts  `json:"products"`
	Expenses  DashboardExpenses  `json:"expenses"`
	Salaries  DashboardSalaries  `json:"salaries"`
	Customers DashboardCustomers `json:"customers"`
}

type DashboardProducts struct {
	Count      int     `json:"count"`
	StockValue float64 `json:"stockValue"`
}

type DashboardExpenses struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type DashboardSalaries struct {
	Count          int     `json:"count"`
	TotalSalary    float64 `json:"totalSalary"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalRemaining float64 `json:"totalRemaining"`
}

type DashboardCustomers struct {
	Count          int     `json:"count"`
	GrandTotal     float64 `json:"grandTotal"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalRemaining float64 `json:"totalRemaining"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.cachedSummary(w, r, "dashboard", func() (any, error) {
		ctx := r.Context()

		products, err := s.backend.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		expenses, err := s.backend.ListExpenses(ctx)
		if err != nil {
			return nil, err
		}
		salaries, err := s.backend.ListSalaries(ctx)
		if err != nil {
			return nil, err
		}
		customers, err := s.backend.ListCustomers(ctx)
		if err != nil {
			return nil, err
		}

		ps := summary.Products(products, s.summaryOpts)
		es := summary.Expenses(expenses, s.summaryOpts)
		ss := summary.Salaries(salaries, s.summaryOpts)
		cs := summary.Customers(customers, s.summaryOpts)

		return Dashboard{
			Products: DashboardProducts{
				Count:      len(ps.Rows),
				StockValue: ps.Total,
			},
			Expenses: DashboardExpenses{
				Count: len(es.Rows),
				Total: es.Total,
			},
			Salaries: DashboardSalaries{
				Count:          ss.EmployeeCount,
				TotalSalary:    ss.TotalSalary,
				TotalPaid:      ss.TotalPaid,
				TotalRemaining: ss.TotalRemaining,
			},
			Customers: DashboardCustomers{
				Count:          cs.CustomerCount,
				GrandTotal:     cs.GrandTotal,
				TotalPaid:      cs.TotalPaid,
				TotalRemaining: cs.TotalRemaining,
			},
		}, nil
	})
}
