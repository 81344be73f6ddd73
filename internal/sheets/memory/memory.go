// Package memory is an in-process stand-in for the Google Sheets backup,
// used in tests and when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"drefacil/internal/core"
)

type row struct {
	entry   core.LedgerEntry
	account core.Account
}

type Store struct {
	mu   sync.Mutex
	rows []row
	byID map[string]int
}

func New() *Store {
	return &Store{byID: map[string]int{}}
}

// Append stores the entry and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, e core.LedgerEntry, a core.Account) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row{entry: e, account: a})
	s.byID[e.ID] = len(s.rows) - 1
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Delete clears the stored row for the given entry id.
func (s *Store) Delete(_ context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[entryID]
	if !ok {
		return fmt.Errorf("entry %s not found", entryID)
	}
	s.rows[idx] = row{}
	delete(s.byID, entryID)
	return nil
}

// Len reports how many live rows the store holds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Has reports whether an entry id currently has a row.
func (s *Store) Has(entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[entryID]
	return ok
}
