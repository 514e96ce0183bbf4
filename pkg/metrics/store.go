package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/kv"
)

type instrumentedStore struct {
	kv.Store
	m *Metrics
}

// InstrumentStore wraps s so every call is timed into StoreOpDuration.
// A Get of a missing key is recorded as a success.
func (m *Metrics) InstrumentStore(s kv.Store) kv.Store {
	return &instrumentedStore{Store: s, m: m}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (v []byte, err error) {
	start := time.Now()
	v, err = s.Store.Get(ctx, key)

	observed := err
	if errors.Is(err, kv.ErrNotFound) {
		observed = nil
	}
	s.m.ObserveStoreOp("get", start, &observed)
	return v, err
}

func (s *instrumentedStore) Put(ctx context.Context, key string, value []byte) (err error) {
	defer s.m.ObserveStoreOp("put", time.Now(), &err)
	return s.Store.Put(ctx, key, value)
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) (err error) {
	defer s.m.ObserveStoreOp("delete", time.Now(), &err)
	return s.Store.Delete(ctx, key)
}
