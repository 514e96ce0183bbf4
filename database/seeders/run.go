// Package seeders provides a registry of data seed functions.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    Register("menu", seedMenu)
//	}
//
// Then run it via the CLI: storefront seed [name...]
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/storefront/pkg/app"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, a *app.Application) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists registered seeders in registration order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// Run executes the named seeders, or all of them when names is empty, in
// registration order. It stops on the first error.
func Run(ctx context.Context, a *app.Application, out io.Writer, names ...string) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	for n := range want {
		if !registered(current, n) {
			return fmt.Errorf("unknown seeder %q", n)
		}
	}

	ran := 0
	for _, e := range current {
		if len(want) > 0 && !want[e.name] {
			continue
		}
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, a); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(out, "done")
		ran++
	}
	if ran == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
	}
	return nil
}

func registered(list []seederEntry, name string) bool {
	for _, e := range list {
		if e.name == name {
			return true
		}
	}
	return false
}
