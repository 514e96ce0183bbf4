package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/event"
)

func TestFireInRegistrationOrder(t *testing.T) {
	bus := event.NewBus()

	var got []string
	bus.Listen(event.OrderPlaced, func(p interface{}) { got = append(got, "first:"+p.(string)) })
	bus.Listen(event.OrderPlaced, func(p interface{}) { got = append(got, "second:"+p.(string)) })
	bus.Listen(event.CartUpdated, func(interface{}) { got = append(got, "other") })

	bus.Fire(event.OrderPlaced, "o1")

	assert.Equal(t, []string{"first:o1", "second:o1"}, got)
}

func TestFlushAndNilBus(t *testing.T) {
	bus := event.NewBus()
	called := false
	bus.Listen(event.CatalogReset, func(interface{}) { called = true })
	bus.Flush()
	bus.Fire(event.CatalogReset, nil)
	assert.False(t, called)

	var nilBus *event.Bus
	assert.NotPanics(t, func() { nilBus.Fire(event.CatalogReset, nil) })
}
