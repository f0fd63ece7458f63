// Package memory provides an in-memory RecordWriter for tests and for
// running the worker without Google credentials.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"inventory/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []sheets.Row
}

var _ sheets.RecordWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row sheets.Row) (string, error) {
	if row.Domain == "" {
		return "", errors.New("row has no domain")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []sheets.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.Row(nil), s.rows...)
}
