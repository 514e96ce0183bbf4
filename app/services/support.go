package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Option configures a service.
type Option func(*options)

type options struct {
	events *event.Bus
	now    func() time.Time
}

// WithEvents routes service events to bus.
func WithEvents(bus *event.Bus) Option {
	return func(o *options) { o.events = bus }
}

// WithClock replaces time.Now, for ids and order timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// keepInMemory logs a failed write and reports it on the bus. The caller's
// in-memory state stays authoritative for the rest of the session.
func (o options) keepInMemory(ctx context.Context, key string, err error) {
	logger.WithCtx(ctx).Warn("store: write failed, keeping in-memory state", "key", key, "error", err)
	o.events.Fire(event.StoreWriteFailed, event.WriteFailure{Key: key, Err: err})
}

// IDGenerator hands out prefix+unix-millis ids that strictly increase, even
// when called twice in the same millisecond.
type IDGenerator struct {
	mu     sync.Mutex
	prefix string
	now    func() time.Time
	last   int64
}

func NewIDGenerator(prefix string, now func() time.Time) *IDGenerator {
	return &IDGenerator{prefix: prefix, now: now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return g.prefix + strconv.FormatInt(ms, 10)
}

// price sums price*quantity over entries whose item is in catalog. Entries
// pointing at a missing item contribute nothing.
func price(entries []models.CartEntry, catalog []models.MenuItem) float64 {
	byID := collection.KeyBy(catalog, func(i models.MenuItem) string { return i.ID })
	total := collection.Sum(entries, func(e models.CartEntry) float64 {
		item, ok := byID[e.ItemID]
		if !ok {
			return 0
		}
		return item.Price * float64(e.Quantity)
	})
	return models.RoundCents(total)
}
