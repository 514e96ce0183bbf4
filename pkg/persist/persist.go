// Package persist encodes named records as JSON on a kv.Store.
//
// The adapter never swallows failures: Save and Load return them, and the
// callers decide whether to degrade to in-memory state.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/storefront/pkg/kv"
)

// ErrCorrupt marks a stored value that could not be decoded.
var ErrCorrupt = errors.New("persist: corrupt record")

// Error describes a failed encode, decode, read or write of one record.
type Error struct {
	Op  string // "encode" | "decode" | "read" | "write"
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("persist: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Adapter reads and writes JSON records.
type Adapter struct {
	store kv.Store
}

func New(store kv.Store) *Adapter {
	return &Adapter{store: store}
}

// Save encodes v and writes it under key.
func (a *Adapter) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &Error{Op: "encode", Key: key, Err: err}
	}
	if err := a.store.Put(ctx, key, data); err != nil {
		return &Error{Op: "write", Key: key, Err: err}
	}
	return nil
}

// Load decodes the value under key into dest. A missing key reports
// found=false with a nil error; a corrupt value or a storage failure reports
// found=false with the error; dest must be discarded in that case.
func (a *Adapter) Load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := a.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &Error{Op: "read", Key: key, Err: err}
	}

	// JSON null is what an absent value looks like once serialized.
	if string(data) == "null" {
		return false, nil
	}

	if !json.Valid(data) {
		return false, &Error{Op: "decode", Key: key, Err: ErrCorrupt}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, &Error{Op: "decode", Key: key, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	return true, nil
}
