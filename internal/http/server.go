// Package http is the JSON API over the ledger and the statement engine.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"drefacil/internal/cache"
	"drefacil/internal/dre"
	"drefacil/internal/metrics"
	"drefacil/internal/middleware/trace"
	"drefacil/internal/services"
)

func init() {
	// Amounts serialize as JSON numbers, matching what the UI charts expect.
	decimal.MarshalJSONWithoutQuotes = true
}

type Server struct {
	http.Server

	ledger     *services.LedgerService
	dashboards *services.DashboardService
	metrics    *metrics.Metrics

	// Derived responses are cached per query string and purged on any
	// ledger write.
	statementCache *cache.LRU[dre.Statement]
	seriesCache    *cache.LRU[[]dre.Statement]
	dashboardCache *cache.LRU[services.Dashboard]

	stopCacheCleanup chan struct{}
}

type Options struct {
	Addr         string
	CacheTTL     time.Duration
	CacheMaxSize int
}

func NewServer(opts Options, ledger *services.LedgerService, dashboards *services.DashboardService, m *metrics.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:           ledger,
		dashboards:       dashboards,
		metrics:          m,
		statementCache:   cache.NewLRU[dre.Statement](opts.CacheMaxSize, opts.CacheTTL),
		seriesCache:      cache.NewLRU[[]dre.Statement](opts.CacheMaxSize, opts.CacheTTL),
		dashboardCache:   cache.NewLRU[services.Dashboard](opts.CacheMaxSize, opts.CacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/metrics", m.Handler())

	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/accounts/deactivate", s.handleDeactivateAccount)
	mux.HandleFunc("/api/entries", s.handleEntries)
	mux.HandleFunc("/api/entries/delete", s.handleDeleteEntry)

	mux.HandleFunc("/api/dre", s.handleStatement)
	mux.HandleFunc("/api/dre/compare", s.handleCompare)
	mux.HandleFunc("/api/dre/series", s.handleSeries)
	mux.HandleFunc("/api/dre/costs", s.handleCosts)
	mux.HandleFunc("/api/dre/breakdown", s.handleBreakdown)
	mux.HandleFunc("/api/dre/export", s.handleExport)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)

	var handler http.Handler = mux
	handler = m.Middleware(handler)
	handler = trace.Middleware(handler)

	s.Server = http.Server{
		Addr:         opts.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.startCacheCleanup()

	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCacheCleanup:
			return
		case <-ticker.C:
			dropped := s.statementCache.CleanExpired() +
				s.seriesCache.CleanExpired() +
				s.dashboardCache.CleanExpired()
			if dropped > 0 {
				slog.Debug("Cleaned expired cache entries", "dropped", dropped)
			}
		}
	}
}

// invalidateDerived drops every cached computation. Called after any
// account or entry write.
func (s *Server) invalidateDerived() {
	s.statementCache.Purge()
	s.seriesCache.Purge()
	s.dashboardCache.Purge()
}

func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stopCacheCleanup)
	return s.Server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
