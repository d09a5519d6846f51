// Package ledger holds the in-memory trade ledger: the trade store, the
// pagination query engine and the lifecycle controller that owns trade
// creation and status transitions.
package ledger

import (
	"context"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drew2323/v3trading/internal/domain"
	"github.com/drew2323/v3trading/internal/events"
	"github.com/drew2323/v3trading/internal/models"
)

const (
	MinSymbolLen = 1
	MaxSymbolLen = 10
)

type Ledger struct {
	store  *Store
	pub    events.Publisher
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Ledger)

func WithPublisher(p events.Publisher) Option {
	return func(l *Ledger) {
		if p != nil {
			l.pub = p
		}
	}
}

func WithLogger(lg *zap.Logger) Option { return func(l *Ledger) { l.logger = lg } }
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }
func WithIDs(newID func() string) Option { return func(l *Ledger) { l.newID = newID } }

func New(store *Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		pub:    events.Nop,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Ledger) Store() *Store { return l.store }

// ValidateRequest checks the caller-supplied fields of a new trade.
func ValidateRequest(req models.TradeRequest) (domain.Side, error) {
	if n := utf8.RuneCountInString(req.Symbol); n < MinSymbolLen || n > MaxSymbolLen {
		return 0, invalid("symbol", "length must be between 1 and 10")
	}
	side, ok := domain.ParseSide(req.Side)
	if !ok {
		return 0, invalid("side", "must be 'buy' or 'sell'")
	}
	if !positiveFinite(req.Price) {
		return 0, invalid("price", "must be greater than 0")
	}
	if !positiveFinite(req.Quantity) {
		return 0, invalid("quantity", "must be greater than 0")
	}
	return side, nil
}

func positiveFinite(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

// Create validates req and inserts a new pending trade with a fresh id and
// the current time. Every call creates a distinct trade.
func (l *Ledger) Create(ctx context.Context, req models.TradeRequest) (models.Trade, error) {
	side, err := ValidateRequest(req)
	if err != nil {
		return models.Trade{}, err
	}
	t := models.Trade{
		ID:        l.newID(),
		Symbol:    req.Symbol,
		Side:      side,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Status:    domain.StatusPending,
		Timestamp: l.now().UTC(),
	}
	l.store.Insert(t)
	l.logger.Info("trade_created",
		zap.String("trade_id", t.ID),
		zap.String("symbol", t.Symbol),
		zap.Stringer("side", t.Side),
	)
	l.pub.Publish(ctx, events.New(events.TradeCreated, t, t.Timestamp))
	return t, nil
}

// cancel is the only transition out of pending.
func cancel(t *models.Trade) error {
	switch t.Status {
	case domain.StatusPending:
		t.Status = domain.StatusCancelled
		return nil
	case domain.StatusExecuted:
		return ErrCannotCancelExecuted
	case domain.StatusCancelled:
		return ErrAlreadyCancelled
	default:
		return ErrIllegalTransition
	}
}

func (l *Ledger) Cancel(ctx context.Context, id string) (models.Trade, error) {
	t, err := l.store.Update(id, cancel)
	if err != nil {
		return models.Trade{}, err
	}
	l.logger.Info("trade_cancelled", zap.String("trade_id", t.ID))
	l.pub.Publish(ctx, events.New(events.TradeCancelled, t, l.now()))
	return t, nil
}

func (l *Ledger) Get(id string) (models.Trade, error) {
	return l.store.FindByID(id)
}

func (l *Ledger) Revision() uint64 { return l.store.Revision() }

func (l *Ledger) List(q Query) (models.TradePage, error) {
	page, _, err := l.ListWithRevision(q)
	return page, err
}

// ListWithRevision also reports the store revision the page was computed
// from.
func (l *Ledger) ListWithRevision(q Query) (models.TradePage, uint64, error) {
	if err := q.Validate(); err != nil {
		return models.TradePage{}, 0, err
	}
	trades, rev := l.store.Snapshot()
	return Paginate(trades, q), rev, nil
}
