// Package event provides a small synchronous event dispatcher.
package event

import (
	"sync"
)

// Event names fired by the storefront services.
const (
	CatalogItemAdded = "catalog.item_added"
	CatalogReset     = "catalog.reset"
	CartUpdated      = "cart.updated"
	OrderPlaced      = "order.placed"
	CheckoutRejected = "checkout.rejected"
	StoreWriteFailed = "store.write_failed"
)

// CartChange is the payload of CartUpdated.
type CartChange struct {
	Op            string // "add" | "set" | "remove" | "clear" | "checkout"
	TotalQuantity int
}

// OrderSummary is the payload of OrderPlaced.
type OrderSummary struct {
	ID    string
	Total float64
	Lines int
}

// Rejection is the payload of CheckoutRejected.
type Rejection struct {
	Reason string
}

// WriteFailure is the payload of StoreWriteFailed.
type WriteFailure struct {
	Key string
	Err error
}

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

// Bus dispatches named events to registered listeners.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners, in
// registration order. A nil Bus drops the event.
func (b *Bus) Fire(event string, payload interface{}) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}
