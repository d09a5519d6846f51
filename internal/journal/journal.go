// Package journal appends ledger events to Postgres for audit. It is write
// only: the in-memory ledger never reads it back.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/drew2323/v3trading/internal/events"
	"github.com/drew2323/v3trading/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_events (
  id          BIGSERIAL PRIMARY KEY,
  kind        TEXT        NOT NULL,
  ref_id      TEXT        NOT NULL,
  symbol      TEXT        NOT NULL,
  payload     JSONB       NOT NULL,
  occurred_at TIMESTAMPTZ NOT NULL
)`

const insertEvent = `INSERT INTO ledger_events (kind, ref_id, symbol, payload, occurred_at) VALUES ($1, $2, $3, $4, $5)`

// Execer is the slice of pgxpool.Pool the journal needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Journal struct {
	DB      Execer
	Logger  *zap.Logger
	Timeout time.Duration
}

func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func New(db Execer, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{DB: db, Logger: logger, Timeout: 2 * time.Second}
}

func (j *Journal) EnsureSchema(ctx context.Context) error {
	_, err := j.DB.Exec(ctx, schema)
	return err
}

// Row is one ledger_events record.
type Row struct {
	Kind       string
	RefID      string
	Symbol     string
	Payload    []byte
	OccurredAt time.Time
}

func RowFor(e events.Event) (Row, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return Row{}, err
	}
	r := Row{Kind: string(e.Type), Payload: payload, OccurredAt: e.Timestamp}
	switch d := e.Data.(type) {
	case models.Trade:
		r.RefID, r.Symbol = d.ID, d.Symbol
	case models.Position:
		r.RefID, r.Symbol = d.ID, d.Symbol
	default:
		return Row{}, fmt.Errorf("journal: unsupported event data %T", e.Data)
	}
	return r, nil
}

func (j *Journal) Append(ctx context.Context, e events.Event) error {
	r, err := RowFor(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), j.Timeout)
	defer cancel()
	_, err = j.DB.Exec(ctx, insertEvent, r.Kind, r.RefID, r.Symbol, r.Payload, r.OccurredAt)
	return err
}

// Publish logs append failures instead of returning them.
func (j *Journal) Publish(ctx context.Context, e events.Event) {
	if err := j.Append(ctx, e); err != nil {
		j.Logger.Error("journal_append", zap.String("kind", string(e.Type)), zap.Error(err))
	}
}
