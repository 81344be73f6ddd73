package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"drefacil/internal/core"
)

type createAccountRequest struct {
	CompanyID string `json:"companyId"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Type      string `json:"type"`
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listAccounts(w, r)
	case http.MethodPost:
		s.createAccount(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	companyID := strings.TrimSpace(r.URL.Query().Get("company_id"))
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "missing company_id")
		return
	}

	accounts, err := s.ledger.ListAccounts(r.Context(), companyID)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if accounts == nil {
		accounts = []core.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	accountType := core.AccountType(req.Type)
	if req.Type == "" {
		accountType = core.AccountAnalytic
	}

	account, err := s.ledger.CreateAccount(r.Context(), core.Account{
		CompanyID: req.CompanyID,
		Code:      req.Code,
		Name:      req.Name,
		Category:  core.Category(req.Category),
		Type:      accountType,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleDeactivateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}

	if err := s.ledger.DeactivateAccount(r.Context(), id); err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
