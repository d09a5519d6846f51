package journal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/drew2323/v3trading/internal/domain"
	"github.com/drew2323/v3trading/internal/events"
	"github.com/drew2323/v3trading/internal/models"
)

type recordingDB struct {
	sql  []string
	args [][]any
	err  error
}

func (r *recordingDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql = append(r.sql, sql)
	r.args = append(r.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), r.err
}

func TestAppend_Trade(t *testing.T) {
	db := &recordingDB{}
	j := New(db, zap.NewNop())
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	tr := models.Trade{ID: "t1", Symbol: "AAPL", Side: domain.SideBuy, Price: 100, Quantity: 5, Status: domain.StatusPending, Timestamp: at}

	if err := j.Append(context.Background(), events.New(events.TradeCreated, tr, at)); err != nil {
		t.Fatal(err)
	}
	if len(db.sql) != 1 || !strings.HasPrefix(db.sql[0], "INSERT INTO ledger_events") {
		t.Fatalf("sql = %v", db.sql)
	}
	args := db.args[0]
	if args[0] != "trade.created" || args[1] != "t1" || args[2] != "AAPL" {
		t.Errorf("args = %v", args[:3])
	}
	if payload := string(args[3].([]byte)); !strings.Contains(payload, `"status":"pending"`) {
		t.Errorf("payload = %s", payload)
	}
	if !args[4].(time.Time).Equal(at) {
		t.Errorf("occurred_at = %v", args[4])
	}
}

func TestRowFor_Position(t *testing.T) {
	r, err := RowFor(events.New(events.PositionClosed, models.Position{ID: "p1", Symbol: "ETH"}, time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if r.RefID != "p1" || r.Symbol != "ETH" || r.Kind != "position.closed" {
		t.Fatalf("row = %+v", r)
	}
	if _, err := RowFor(events.New(events.TradeCreated, "nope", time.Now())); err == nil {
		t.Fatal("expected error for unsupported data")
	}
}

func TestPublish_SwallowsErrors(t *testing.T) {
	db := &recordingDB{err: errors.New("connection refused")}
	j := New(db, zap.NewNop())
	j.Publish(context.Background(), events.New(events.TradeCancelled, models.Trade{ID: "t2", Symbol: "MSFT"}, time.Now()))
	if len(db.sql) != 1 {
		t.Fatalf("exec calls = %d, want 1", len(db.sql))
	}
}

func TestEnsureSchema(t *testing.T) {
	db := &recordingDB{}
	if err := New(db, nil).EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(db.sql[0], "CREATE TABLE IF NOT EXISTS ledger_events") {
		t.Fatalf("sql = %s", db.sql[0])
	}
}
