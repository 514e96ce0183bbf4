package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/collection"
)

type dish struct {
	id    string
	cat   string
	price float64
}

var dishes = []dish{
	{"m1", "Mains", 7.5},
	{"m2", "Mains", 8.9},
	{"m3", "Salads", 6.2},
	{"m4", "Sides", 3.0},
	{"m5", "Starters", 4.5},
	{"m6", "Sides", 3.0},
}

func TestFilterNeverNil(t *testing.T) {
	out := collection.Filter(dishes, func(d dish) bool { return d.cat == "Desserts" })
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSortStableByKeepsTies(t *testing.T) {
	s := append([]dish(nil), dishes...)
	collection.SortStableBy(s, func(a, b dish) bool { return a.price < b.price })

	ids := collection.Map(s, func(d dish) string { return d.id })
	assert.Equal(t, []string{"m4", "m6", "m5", "m3", "m1", "m2"}, ids)
}

func TestUniqueByFirstSeenOrder(t *testing.T) {
	cats := collection.Map(collection.UniqueBy(dishes, func(d dish) string { return d.cat }),
		func(d dish) string { return d.cat })
	assert.Equal(t, []string{"Mains", "Salads", "Sides", "Starters"}, cats)
}

func TestSumAndIndexOf(t *testing.T) {
	assert.InDelta(t, 33.1, collection.Sum(dishes, func(d dish) float64 { return d.price }), 1e-9)
	assert.Equal(t, 2, collection.IndexOf(dishes, func(d dish) bool { return d.id == "m3" }))
	assert.Equal(t, -1, collection.IndexOf(dishes, func(d dish) bool { return d.id == "zz" }))
}

func TestFirst(t *testing.T) {
	d, ok := collection.First(dishes, func(d dish) bool { return d.cat == "Sides" })
	assert.True(t, ok)
	assert.Equal(t, "m4", d.id)

	d, ok = collection.First(dishes, func(d dish) bool { return d.price > 100 })
	assert.False(t, ok)
	assert.Equal(t, dish{}, d)
}

func TestKeyByFirstWins(t *testing.T) {
	byCat := collection.KeyBy(dishes, func(d dish) string { return d.cat })
	assert.Equal(t, "m4", byCat["Sides"].id)
}
