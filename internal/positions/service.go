package positions

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/drew2323/v3trading/internal/events"
	"github.com/drew2323/v3trading/internal/models"
)

type Position = models.Position

var ErrNotFound = errors.New("position not found")

// Store keeps positions in insertion order. One position per symbol is
// maintained by whoever adds them; the store does not check it.
type Store struct {
	mu   sync.RWMutex
	rows []Position
}

func NewStore(initial ...Position) *Store {
	return &Store{rows: append([]Position(nil), initial...)}
}

func (s *Store) Add(p Position) {
	s.mu.Lock()
	s.rows = append(s.rows, p)
	s.mu.Unlock()
}

func (s *Store) All() []Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]Position, 0, len(s.rows)), s.rows...)
}

func (s *Store) FindBySymbol(symbol string) (Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.rows {
		if p.Symbol == symbol {
			return p, nil
		}
	}
	return Position{}, ErrNotFound
}

// Remove deletes the first position on symbol and returns it.
func (s *Store) Remove(symbol string) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.rows {
		if p.Symbol == symbol {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return p, nil
		}
	}
	return Position{}, ErrNotFound
}

type Service struct {
	Store  *Store
	pub    events.Publisher
	logger *zap.Logger
	now    func() time.Time
}

func New(store *Store, pub events.Publisher, logger *zap.Logger) *Service {
	if pub == nil {
		pub = events.Nop
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Store: store, pub: pub, logger: logger, now: time.Now}
}

func (s *Service) GetAll() []Position { return s.Store.All() }

func (s *Service) GetBySymbol(symbol string) (Position, error) {
	return s.Store.FindBySymbol(symbol)
}

// Close removes the position for good. There is no partial close and a
// closed symbol cannot be reopened.
func (s *Service) Close(ctx context.Context, symbol string) (Position, error) {
	p, err := s.Store.Remove(symbol)
	if err != nil {
		return Position{}, err
	}
	s.logger.Info("position_closed", zap.String("symbol", p.Symbol), zap.Float64("unrealized_pnl", p.UnrealizedPnL))
	s.pub.Publish(ctx, events.New(events.PositionClosed, p, s.now()))
	return p, nil
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
