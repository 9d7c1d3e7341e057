package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequence numbers the events of one log. Each log has its own row in the
// sequences table, so numbering survives restarts and logs do not share a
// counter.
type sequence struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

func newSequence(db *sql.DB, name string) *sequence {
	return &sequence{db: db, name: name}
}

// next returns the next number, starting at 1.
func (s *sequence) next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO sequences (name, next_val) VALUES (?, 2)
		 ON CONFLICT(name) DO UPDATE SET next_val = next_val + 1
		 RETURNING next_val - 1`,
		s.name,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", s.name, err)
	}
	return n, nil
}
