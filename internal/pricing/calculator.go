package pricing

import "sync"

const defaultCacheSize = 1024

type quoteKey struct {
	dailyRate   float64
	pickupDate  string
	dropoffDate string
}

// Calculator memoizes Compute by its inputs. It is safe for concurrent use.
type Calculator struct {
	mu      sync.Mutex
	limit   int
	entries map[quoteKey]Quote
}

func NewCalculator(limit int) *Calculator {
	if limit <= 0 {
		limit = defaultCacheSize
	}

	return &Calculator{
		limit:   limit,
		entries: make(map[quoteKey]Quote, limit),
	}
}

func (c *Calculator) Quote(dailyRate float64, pickupDate, dropoffDate string) Quote {
	key := quoteKey{dailyRate: dailyRate, pickupDate: pickupDate, dropoffDate: dropoffDate}

	c.mu.Lock()
	defer c.mu.Unlock()

	if q, ok := c.entries[key]; ok {
		return q
	}

	q := Compute(dailyRate, pickupDate, dropoffDate)

	// Entries are pure values, so dropping the whole map is always safe.
	if len(c.entries) >= c.limit {
		clear(c.entries)
	}

	c.entries[key] = q

	return q
}

func (c *Calculator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
