package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"drefacil/internal/core"
	"drefacil/internal/dre"
	"drefacil/internal/report"
)

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q, err := parseStatementQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	withDiagnostics := r.URL.Query().Get("diagnostics") != ""

	if !withDiagnostics {
		if cached, ok := s.statementCache.Get(q.Key()); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	accounts, entries, err := s.ledger.LoadWindow(r.Context(), q.CompanyID, q.Start, q.End)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	statement, diag := dre.CalculateWithDiagnostics(entries, accounts, q.CompanyID, q.Start, q.End)
	s.metrics.StatementComputed()

	if withDiagnostics {
		writeJSON(w, http.StatusOK, map[string]any{
			"statement":         statement,
			"skippedEntryIds":   diag.SkippedEntryIDs,
			"skippedEntryCount": diag.Skipped(),
		})
		return
	}

	s.statementCache.Set(q.Key(), statement)
	writeJSON(w, http.StatusOK, statement)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q, err := parseStatementQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	prevStart, err := core.ParseDate(r.URL.Query().Get("prev_start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prev_start date, expected YYYY-MM-DD")
		return
	}
	prevEnd, err := core.ParseDate(r.URL.Query().Get("prev_end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prev_end date, expected YYYY-MM-DD")
		return
	}

	// One load spanning both windows; the engine filters per window.
	loadStart, loadEnd := prevStart, q.End
	if q.Start.Before(loadStart.Time) {
		loadStart = q.Start
	}
	if prevEnd.After(loadEnd.Time) {
		loadEnd = prevEnd
	}
	accounts, entries, err := s.ledger.LoadWindow(r.Context(), q.CompanyID, loadStart, loadEnd)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	current := dre.Calculate(entries, accounts, q.CompanyID, q.Start, q.End)
	previous := dre.Calculate(entries, accounts, q.CompanyID, prevStart, prevEnd)
	s.metrics.StatementComputed()
	s.metrics.StatementComputed()

	writeJSON(w, http.StatusOK, map[string]any{
		"current":    current,
		"previous":   previous,
		"comparison": dre.Compare(previous, current),
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q, err := parseStatementQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	granularity := dre.Granularity(r.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = dre.Monthly
	}
	if !granularity.Valid() {
		writeError(w, http.StatusBadRequest, "invalid granularity, expected month, quarter or year")
		return
	}
	activeOnly := r.URL.Query().Get("active_only") != ""

	key := fmt.Sprintf("%s|%s|%t", q.Key(), granularity, activeOnly)
	if cached, ok := s.seriesCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	accounts, entries, err := s.ledger.LoadWindow(r.Context(), q.CompanyID, q.Start, q.End)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	series := dre.BuildSeries(entries, accounts, q.CompanyID, q.Start, q.End, dre.SeriesOptions{
		Granularity: granularity,
		ActiveOnly:  activeOnly,
	})
	if series == nil {
		writeError(w, http.StatusBadRequest, "start must not be after end")
		return
	}
	for range series {
		s.metrics.StatementComputed()
	}

	s.seriesCache.Set(key, series)
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q, err := parseStatementQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	accounts, entries, err := s.ledger.LoadWindow(r.Context(), q.CompanyID, q.Start, q.End)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"costs":   dre.CostDistribution(entries, accounts, q.CompanyID, q.Start, q.End),
		"revenue": dre.RevenueSources(entries, accounts, q.CompanyID, q.Start, q.End),
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q, err := parseStatementQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	accounts, entries, err := s.ledger.LoadWindow(r.Context(), q.CompanyID, q.Start, q.End)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dre.AggregateByAccount(entries, accounts, q.CompanyID, q.Start, q.End))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q, err := parseStatementQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}

	accounts, entries, err := s.ledger.LoadWindow(r.Context(), q.CompanyID, q.Start, q.End)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	statement := dre.Calculate(entries, accounts, q.CompanyID, q.Start, q.End)
	s.metrics.StatementComputed()

	filename := fmt.Sprintf("dre_%s_%s_%s", q.CompanyID, q.Start.ISO(), q.End.ISO())
	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		if err := report.WriteExcel(w, statement); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to render workbook")
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
		if err := report.WritePDF(w, statement); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to render pdf")
		}
	default:
		writeError(w, http.StatusBadRequest, "invalid format, expected xlsx or pdf")
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	companyID := strings.TrimSpace(r.URL.Query().Get("company_id"))
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "missing company_id")
		return
	}

	now := time.Now()
	ref := core.NewDate(now.Year(), int(now.Month()), now.Day())
	if v := r.URL.Query().Get("ref"); v != "" {
		parsed, err := core.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid ref date, expected YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	key := companyID + "|" + ref.ISO()
	if cached, ok := s.dashboardCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	dashboard, err := s.dashboards.Build(r.Context(), companyID, ref)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	s.dashboardCache.Set(key, dashboard)
	writeJSON(w, http.StatusOK, dashboard)
}
