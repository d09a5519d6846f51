package ledger

import (
	"slices"

	"github.com/drew2323/v3trading/internal/domain"
	"github.com/drew2323/v3trading/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// SortByTimestamp is the only effective sort key. Other sortBy values are
	// accepted and ignored.
	SortByTimestamp = "timestamp"
)

type Query struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder domain.SortOrder
}

func DefaultQuery() Query {
	return Query{Page: DefaultPage, Limit: DefaultLimit, SortBy: SortByTimestamp, SortOrder: domain.SortDesc}
}

// Validate enforces page >= 1 and 1 <= limit <= MaxLimit.
func (q Query) Validate() error {
	if q.Page < 1 {
		return invalid("page", "must be greater than or equal to 1")
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		return invalid("limit", "must be between 1 and 100")
	}
	return nil
}

// Paginate sorts trades by timestamp and cuts out the requested page. q must
// already be valid. The input slice is sorted in place.
func Paginate(trades []models.Trade, q Query) models.TradePage {
	desc := q.SortOrder == domain.SortDesc
	slices.SortStableFunc(trades, func(a, b models.Trade) int {
		if desc {
			return b.Timestamp.Compare(a.Timestamp)
		}
		return a.Timestamp.Compare(b.Timestamp)
	})

	total := len(trades)
	page := models.TradePage{
		Items:      []models.Trade{},
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}

	if q.Page > page.TotalPages {
		return page
	}
	start := (q.Page - 1) * q.Limit
	end := min(start+q.Limit, total)
	page.Items = trades[start:end]
	return page
}
