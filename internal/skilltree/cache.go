package skilltree

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/harukigames/gamecore/internal/domain"
)

// summaryCache caches per-line investment summaries. Summaries aggregate every
// investor of a line, so they are the most expensive read in this package; a
// short TTL keeps the admin panel responsive without serving stale rankings
// for long.
type summaryCache struct {
	lru *expirable.LRU[int, *domain.InvestmentSummary]
}

func newSummaryCache(size int, ttl time.Duration) *summaryCache {
	return &summaryCache{
		lru: expirable.NewLRU[int, *domain.InvestmentSummary](size, nil, ttl),
	}
}

func (c *summaryCache) Get(skillLineID int) (*domain.InvestmentSummary, bool) {
	return c.lru.Get(skillLineID)
}

func (c *summaryCache) Set(skillLineID int, summary *domain.InvestmentSummary) {
	c.lru.Add(skillLineID, summary)
}

// Invalidate removes a line's summary, called after any unlock in that line.
func (c *summaryCache) Invalidate(skillLineID int) {
	c.lru.Remove(skillLineID)
}
