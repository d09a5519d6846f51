package main

import (
	"math/rand"
	"time"

	"github.com/drew2323/v3trading/internal/models"
	"github.com/drew2323/v3trading/internal/positions"
	"github.com/drew2323/v3trading/internal/seed"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// Reference prices the generated quotes wander around.
var basePrice = map[string]float64{
	"AAPL": 190, "GOOGL": 145, "MSFT": 420, "TSLA": 220, "AMZN": 180,
	"NVDA": 800, "META": 480, "BTC": 60000, "ETH": 3200, "SPY": 520,
}

func pick[T any](r *rand.Rand, xs []T) T { return xs[r.Intn(len(xs))] }

func genRequest(r *rand.Rand) models.TradeRequest {
	sym := pick(r, seed.Symbols)
	side := "buy"
	if r.Intn(2) == 0 {
		side = "sell"
	}
	px := positions.RoundMoney(basePrice[sym] * (1 + (r.Float64()-0.5)*0.03)) // ±1.5%

	qty := float64(r.Intn(50) + 1)
	if sym == "BTC" || sym == "ETH" {
		qty = positions.RoundMoney(0.01 + r.Float64()*0.49)
	}
	return models.TradeRequest{Symbol: sym, Side: side, Price: px, Quantity: qty}
}
