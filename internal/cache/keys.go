package cache

import (
	"fmt"

	"github.com/drew2323/v3trading/internal/domain"
)

// TradesKey identifies one trades query against one store revision. SortBy is
// left out because it does not change the result.
type TradesKey struct {
	Revision uint64
	Page     int
	Limit    int
	Order    domain.SortOrder
}

func Trades(rev uint64, page, limit int, order domain.SortOrder) TradesKey {
	return TradesKey{Revision: rev, Page: page, Limit: limit, Order: order}
}

func (k TradesKey) String() string {
	return fmt.Sprintf("trades:%d:%d:%d:%s", k.Revision, k.Page, k.Limit, k.Order)
}
