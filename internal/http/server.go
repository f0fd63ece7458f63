// Package http exposes the record CRUD, summary, and dashboard endpoints
// as a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"inventory/internal/cache"
	"inventory/internal/core"
	"inventory/internal/log"
	"inventory/internal/middleware/ratelimit"
	"inventory/internal/middleware/security"
	"inventory/internal/summary"
)

// RecordBackend is the surface the handlers need from the record service.
type RecordBackend interface {
	CreateProduct(ctx context.Context, p core.Product) (core.Product, error)
	ListProducts(ctx context.Context) ([]core.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	CreateSalary(ctx context.Context, s core.Salary) (core.Salary, error)
	ListSalaries(ctx context.Context) ([]core.Salary, error)
	DeleteSalary(ctx context.Context, id string) error

	CreateCustomer(ctx context.Context, c core.Customer) (core.Customer, error)
	ListCustomers(ctx context.Context) ([]core.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

// Pinger reports whether a dependency is reachable. Used by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// appMetrics tracks application-level counters exposed by /metrics.
type appMetrics struct {
	uptime        time.Time
	totalCreates  int64
	totalDeletes  int64
	summaryHits   int64
	summaryMisses int64
}

type Server struct {
	http.Server

	backend     RecordBackend
	db          Pinger
	summaryOpts summary.Options

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	slog        *log.StructuredLogger

	// Summary and dashboard responses are cached briefly and invalidated
	// on every mutation, so clients re-fetching after a write always see
	// fresh rollups.
	summaryCache *cache.LRUCache[[]byte]
	cacheManager *cache.Manager

	metrics      *appMetrics
	shutdownOnce sync.Once
}

// Options configures optional server behavior.
type Options struct {
	SummaryOptions    summary.Options
	RequestsPerMinute int
	SummaryCacheTTL   time.Duration
	DB                Pinger
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, backend RecordBackend, opts Options) *Server {
	if opts.SummaryCacheTTL <= 0 {
		opts.SummaryCacheTTL = 30 * time.Second
	}

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)

	s := &Server{
		backend:     backend,
		db:          opts.DB,
		summaryOpts: opts.SummaryOptions,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RequestsPerMinute,
		}),
		detector:     security.NewDetector(),
		slog:         log.NewStructuredLogger(logger),
		summaryCache: cache.NewLRUCache[[]byte](16, opts.SummaryCacheTTL),
		cacheManager: cache.NewManager(),
		metrics:      &appMetrics{uptime: time.Now()},
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /products", s.handleListProducts)
	mux.HandleFunc("POST /products", s.handleCreateProduct)
	mux.HandleFunc("DELETE /products/{productId}", s.handleDeleteProduct)
	mux.HandleFunc("GET /products/summary", s.handleProductSummary)

	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /expenses/{expenseId}", s.handleDeleteExpense)
	mux.HandleFunc("GET /expenses/summary", s.handleExpenseSummary)

	mux.HandleFunc("GET /salaries", s.handleListSalaries)
	mux.HandleFunc("POST /salaries", s.handleCreateSalary)
	mux.HandleFunc("DELETE /salaries/{userId}", s.handleDeleteSalary)
	mux.HandleFunc("GET /salaries/summary", s.handleSalarySummary)

	mux.HandleFunc("GET /users", s.handleListCustomers)
	mux.HandleFunc("POST /users", s.handleCreateCustomer)
	mux.HandleFunc("DELETE /users/{userId}", s.handleDeleteCustomer)
	mux.HandleFunc("GET /users/summary", s.handleCustomerSummary)

	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(s.detector.ExtractClientIP)(handler)
	handler = s.logRequests(handler)
	handler = log.RequestIDMiddleware(requestID)(handler)
	handler = log.Middleware(logger)(handler)
	handler = headers.Middleware(handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s
}

// logRequests logs start/end of every request and counts suspicious ones.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := s.detector.ExtractClientIP(r)

		if s.detector.DetectSuspiciousRequest(r) {
			s.slog.LogError(r.Context(), "Suspicious request detected", nil,
				log.ComponentSecurity, "", log.NewFields().
					WithClientIP(clientIP).
					WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent"), ""))
		}

		s.slog.LogHTTPStart(r.Context(), r, clientIP)

		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.slog.LogHTTPEnd(r.Context(), r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	})
}

// statusWriter captures the response status code for logging.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// requestID generates a unique request ID for tracing.
func requestID(_ *http.Request) string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// invalidateSummaries drops cached rollups after a mutation. The dashboard
// spans every domain, so it always goes too.
func (s *Server) invalidateSummaries(domain string) {
	s.summaryCache.Delete(domain)
	s.summaryCache.Delete("dashboard")
}

func (s *Server) recordCreated(ctx context.Context, domain, id string) {
	atomic.AddInt64(&s.metrics.totalCreates, 1)
	s.invalidateSummaries(domain)
	s.slog.LogRecordCreated(ctx, domain, id)
}

func (s *Server) recordDeleted(ctx context.Context, domain, id string) {
	atomic.AddInt64(&s.metrics.totalDeletes, 1)
	s.invalidateSummaries(domain)
	s.slog.LogRecordDeleted(ctx, domain, id)
}

// Shutdown stops background goroutines, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
