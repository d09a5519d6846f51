package models

import (
	"time"

	"github.com/drew2323/v3trading/internal/domain"
)

type Trade struct {
	ID        string        `json:"id"`
	Symbol    string        `json:"symbol"`
	Side      domain.Side   `json:"side"`
	Price     float64       `json:"price"`
	Quantity  float64       `json:"quantity"`
	Status    domain.Status `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

// TradeRequest is the caller-supplied part of a trade. Side stays a raw
// string so that validation can report it instead of the JSON decoder.
type TradeRequest struct {
	Symbol   string  `json:"symbol"`
	Side     string  `json:"side"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// TradePage is the pagination envelope.
type TradePage struct {
	Items      []Trade `json:"items"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
}

type Position struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"averagePrice"`
	CurrentPrice  float64 `json:"currentPrice"`
	UnrealizedPnL float64 `json:"unrealizedPnL"`
	RealizedPnL   float64 `json:"realizedPnL"`
}

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Picture    string    `json:"picture,omitempty"`
	ProviderID string    `json:"google_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastLogin  time.Time `json:"last_login"`
}
