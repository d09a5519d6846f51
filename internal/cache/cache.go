package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/drew2323/v3trading/internal/models"
)

// Pages caches computed trade pages. Entries are keyed by store revision, so
// a stale entry is simply never asked for again and ages out by TTL.
type Pages struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func New(maxCost int64, ttl time.Duration) (*Pages, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxCost * 10,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Pages{c: c, ttl: ttl}, nil
}

func (p *Pages) Get(k TradesKey) (models.TradePage, bool) {
	v, ok := p.c.Get(k.String())
	if !ok {
		return models.TradePage{}, false
	}
	page, ok := v.(models.TradePage)
	return page, ok
}

func (p *Pages) Set(k TradesKey, page models.TradePage) {
	p.c.SetWithTTL(k.String(), page, 1, p.ttl)
}

// Wait blocks until buffered sets are applied.
func (p *Pages) Wait() { p.c.Wait() }

func (p *Pages) Close() { p.c.Close() }
