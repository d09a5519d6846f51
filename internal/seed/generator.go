// Package seed fills the stores with sample trades and positions at start-up.
package seed

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/drew2323/v3trading/internal/domain"
	"github.com/drew2323/v3trading/internal/ledger"
	"github.com/drew2323/v3trading/internal/models"
	"github.com/drew2323/v3trading/internal/positions"
)

var Symbols = []string{"AAPL", "GOOGL", "MSFT", "TSLA", "AMZN", "NVDA", "META", "BTC", "ETH", "SPY"}

var (
	sides    = []domain.Side{domain.SideBuy, domain.SideSell}
	statuses = []domain.Status{domain.StatusPending, domain.StatusExecuted, domain.StatusCancelled}
)

type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New returns a generator; seed 0 means time-based.
func New(seed int64, now func() time.Time) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

func pick[T any](rng *rand.Rand, xs []T) T { return xs[rng.Intn(len(xs))] }

func (g *Generator) uniform(lo, hi float64) float64 { return lo + g.rng.Float64()*(hi-lo) }

// Trade returns a trade with any status and a timestamp up to 72h back.
func (g *Generator) Trade() models.Trade {
	return models.Trade{
		ID:        uuid.NewString(),
		Symbol:    pick(g.rng, Symbols),
		Side:      pick(g.rng, sides),
		Price:     positions.RoundMoney(g.uniform(50, 500)),
		Quantity:  positions.RoundMoney(g.uniform(1, 100)),
		Status:    pick(g.rng, statuses),
		Timestamp: g.now().UTC().Add(-time.Duration(g.rng.Intn(73)) * time.Hour),
	}
}

func (g *Generator) Position(symbol string) models.Position {
	avg := positions.RoundMoney(g.uniform(50, 500))
	cur := avg * g.uniform(0.85, 1.15)
	qty := positions.RoundMoney(g.uniform(10, 500))
	realized := positions.RoundMoney(g.uniform(-1000, 2000))
	return positions.Value(uuid.NewString(), symbol, qty, avg, cur, realized)
}

// Positions returns up to n positions on distinct symbols.
func (g *Generator) Positions(n int) []models.Position {
	n = min(n, len(Symbols))
	order := g.rng.Perm(len(Symbols))
	out := make([]models.Position, 0, n)
	for _, i := range order[:n] {
		out = append(out, g.Position(Symbols[i]))
	}
	return out
}

// Populate inserts trades trades into ts and positions positions into ps.
func (g *Generator) Populate(ts *ledger.Store, ps *positions.Store, trades, positionCount int) {
	for i := 0; i < trades; i++ {
		ts.Insert(g.Trade())
	}
	for _, p := range g.Positions(positionCount) {
		ps.Add(p)
	}
}
