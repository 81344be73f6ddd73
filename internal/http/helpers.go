package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"drefacil/internal/core"
	applog "drefacil/internal/log"
	"drefacil/internal/storage"
)

// statementQuery is the common parameter triple of every computation
// endpoint: which company, over which inclusive window.
type statementQuery struct {
	CompanyID string
	Start     core.Date
	End       core.Date
}

// Key identifies the query in the response caches.
func (q statementQuery) Key() string {
	return q.CompanyID + "|" + q.Start.ISO() + "|" + q.End.ISO()
}

func parseStatementQuery(r *http.Request) (statementQuery, error) {
	companyID := strings.TrimSpace(r.URL.Query().Get("company_id"))
	if companyID == "" {
		return statementQuery{}, errors.New("missing company_id")
	}

	start, err := core.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		return statementQuery{}, errors.New("invalid start date, expected YYYY-MM-DD")
	}
	end, err := core.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		return statementQuery{}, errors.New("invalid end date, expected YYYY-MM-DD")
	}

	return statementQuery{CompanyID: companyID, Start: start, End: end}, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStorageError maps repository errors onto HTTP statuses.
func writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
