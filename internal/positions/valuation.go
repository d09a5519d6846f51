package positions

import "github.com/shopspring/decimal"

// RoundMoney rounds half away from zero to 2 decimal places.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// UnrealizedPnL is (current - average) * quantity, rounded to cents.
func UnrealizedPnL(averagePrice, currentPrice, quantity float64) float64 {
	avg := decimal.NewFromFloat(averagePrice)
	cur := decimal.NewFromFloat(currentPrice)
	qty := decimal.NewFromFloat(quantity)
	return cur.Sub(avg).Mul(qty).Round(2).InexactFloat64()
}

// Value fills in the derived money fields of a position. currentPrice is the
// unrounded mark; the stored current price is rounded after the P&L has been
// derived from the raw value.
func Value(id, symbol string, quantity, averagePrice, currentPrice, realizedPnL float64) Position {
	return Position{
		ID:            id,
		Symbol:        symbol,
		Quantity:      quantity,
		AveragePrice:  averagePrice,
		CurrentPrice:  RoundMoney(currentPrice),
		UnrealizedPnL: UnrealizedPnL(averagePrice, currentPrice, quantity),
		RealizedPnL:   realizedPnL,
	}
}
