package ledger

import (
	"sync"

	"github.com/drew2323/v3trading/internal/models"
)

// Store is the process-wide trade collection. Writers are serialized; readers
// only ever see whole records because every read returns copies.
type Store struct {
	mu   sync.RWMutex
	rows []*models.Trade // newest insert first
	byID map[string]*models.Trade
	rev  uint64
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*models.Trade)}
}

// Insert puts t at the front of the collection. Id uniqueness is the
// caller's responsibility.
func (s *Store) Insert(t models.Trade) {
	row := t
	s.mu.Lock()
	s.rows = append(s.rows, nil)
	copy(s.rows[1:], s.rows)
	s.rows[0] = &row
	s.byID[row.ID] = &row
	s.rev++
	s.mu.Unlock()
}

func (s *Store) FindByID(id string) (models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.byID[id]
	if !ok {
		return models.Trade{}, ErrNotFound
	}
	return *row, nil
}

// All returns a copy of every trade in storage order.
func (s *Store) All() []models.Trade {
	out, _ := s.Snapshot()
	return out
}

// Snapshot returns a copy of every trade together with the revision it was
// taken at.
func (s *Store) Snapshot() ([]models.Trade, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Trade, len(s.rows))
	for i, row := range s.rows {
		out[i] = *row
	}
	return out, s.rev
}

// Revision increases on every mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Update applies fn to a copy of the trade under the write lock and stores
// the result only if fn succeeds. Id and timestamp are immutable.
func (s *Store) Update(id string, fn func(t *models.Trade) error) (models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.byID[id]
	if !ok {
		return models.Trade{}, ErrNotFound
	}
	next := *row
	if err := fn(&next); err != nil {
		return *row, err
	}
	next.ID, next.Timestamp = row.ID, row.Timestamp
	*row = next
	s.rev++
	return next, nil
}
