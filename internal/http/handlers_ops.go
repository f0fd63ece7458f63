package http

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.metrics.uptime).String(),
	})
}

// handleReady performs a readiness check with dependency verification.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = fmt.Sprintf("failed: %v", err)
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}
	checks["summary_cache"] = map[string]any{
		"entries": s.summaryCache.Size(),
		"status":  "ok",
	}

	respondJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics exposes application and security counters in plain text.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	securityMetrics := s.detector.GetMetrics()

	fmt.Fprintf(w, "# Application metrics\n")
	fmt.Fprintf(w, "uptime_seconds %d\n", int64(time.Since(s.metrics.uptime).Seconds()))
	fmt.Fprintf(w, "records_created_total %d\n", atomic.LoadInt64(&s.metrics.totalCreates))
	fmt.Fprintf(w, "records_deleted_total %d\n", atomic.LoadInt64(&s.metrics.totalDeletes))
	fmt.Fprintf(w, "summary_cache_hits_total %d\n", atomic.LoadInt64(&s.metrics.summaryHits))
	fmt.Fprintf(w, "summary_cache_misses_total %d\n", atomic.LoadInt64(&s.metrics.summaryMisses))
	fmt.Fprintf(w, "summary_cache_entries %d\n", s.summaryCache.Size())

	fmt.Fprintf(w, "# Security metrics\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n", securityMetrics.SuspiciousRequests)
	fmt.Fprintf(w, "rate_limit_hits_total %d\n", s.rateLimiter.LimitHits())
	fmt.Fprintf(w, "rate_limit_active_clients %d\n", s.rateLimiter.ActiveClients())
}
