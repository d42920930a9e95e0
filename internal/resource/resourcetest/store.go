// Package resourcetest provides an in-memory resource.Service for handler
// and client tests.
package resourcetest

import (
	"context"
	"sync"
)

// Store keeps rows in memory in insertion order. Like the SQL table it
// assigns ids on insert and ignores deletes of missing rows.
type Store[T any] struct {
	mu     sync.Mutex
	rows   map[int64]T
	order  []int64
	nextID int64

	onInsert func(rec *T, id int64)
	apply    func(rec *T, fields map[string]any)

	// Err, when set, fails every operation.
	Err error
	// WriteErr, when set, fails Insert, DeleteByID and UpdateByID only.
	WriteErr error
	// Gets counts GetByID calls.
	Gets int
}

// NewStore needs onInsert to stamp the id (and any database defaults) on a
// new row, and apply to copy PATCH columns onto a row.
func NewStore[T any](onInsert func(*T, int64), apply func(*T, map[string]any)) *Store[T] {
	return &Store[T]{
		rows:     map[int64]T{},
		onInsert: onInsert,
		apply:    apply,
	}
}

func (s *Store[T]) ListAll(_ context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	rows := make([]T, 0, len(s.order))
	for _, id := range s.order {
		rows = append(rows, s.rows[id])
	}

	return rows, nil
}

func (s *Store[T]) GetByID(_ context.Context, id int64) (*T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Gets++

	if s.Err != nil {
		return nil, false, s.Err
	}

	rec, ok := s.rows[id]
	if !ok {
		return nil, false, nil
	}

	return &rec, true, nil
}

func (s *Store[T]) Insert(_ context.Context, rec *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeErr(); err != nil {
		return nil, err
	}

	s.nextID++
	row := *rec
	s.onInsert(&row, s.nextID)
	s.rows[s.nextID] = row
	s.order = append(s.order, s.nextID)

	return &row, nil
}

func (s *Store[T]) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeErr(); err != nil {
		return err
	}

	if _, ok := s.rows[id]; !ok {
		return nil
	}

	delete(s.rows, id)

	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}

	return nil
}

func (s *Store[T]) UpdateByID(_ context.Context, id int64, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeErr(); err != nil {
		return err
	}

	row, ok := s.rows[id]
	if !ok {
		return nil
	}

	s.apply(&row, fields)
	s.rows[id] = row

	return nil
}

func (s *Store[T]) writeErr() error {
	if s.Err != nil {
		return s.Err
	}

	return s.WriteErr
}

// Seed inserts rows directly and returns the stored copies.
func (s *Store[T]) Seed(recs ...T) []T {
	out := make([]T, 0, len(recs))

	for i := range recs {
		row, err := s.Insert(context.Background(), &recs[i])
		if err != nil {
			panic(err)
		}

		out = append(out, *row)
	}

	return out
}

// Len reports the number of stored rows.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.rows)
}
