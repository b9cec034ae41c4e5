package services

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// OrderNumberGenerator produces human-readable order numbers of the form
// ORD-<base36 unix seconds>. Wall-clock seconds alone collide when two orders
// arrive in the same second, so a per-process sequence suffix is appended for
// every order after the first within a second.
type OrderNumberGenerator struct {
	mu     sync.Mutex
	lastTS int64
	seq    int64

	now func() time.Time
}

// NewOrderNumberGenerator returns a generator using the system clock.
func NewOrderNumberGenerator() *OrderNumberGenerator {
	return &OrderNumberGenerator{now: time.Now}
}

// Next returns the next unique order number.
func (g *OrderNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UTC().Unix()
	if ts == g.lastTS {
		g.seq++
	} else {
		g.lastTS = ts
		g.seq = 0
	}

	orderNo := "ORD-" + base36(ts)
	if g.seq > 0 {
		orderNo += "-" + base36(g.seq)
	}
	return orderNo
}

func base36(v int64) string {
	return strings.ToUpper(strconv.FormatInt(v, 36))
}
