// Package seeders provides a registry of seed functions that populate a
// freshly migrated database. Seeders register via init() and run in
// registration order; each seeder is responsible for being idempotent.
package seeders

import (
	"fmt"
	"sync"

	"github.com/prasetyadi/gerai/pkg/logger"
	"gorm.io/gorm"
)

// Func is the signature of a seed function.
type Func func(db *gorm.DB) error

type entry struct {
	name string
	fn   Func
}

var (
	mu      sync.Mutex
	entries []entry
)

// Register adds a seeder under name. Call from init() in seeder files.
func Register(name string, fn Func) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// RunAll executes every registered seeder in order, stopping at the first
// failure.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	current := make([]entry, len(entries))
	copy(current, entries)
	mu.Unlock()

	for _, e := range current {
		logger.Info("seeder: running", "name", e.name)
		if err := e.fn(db); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
	}
	return nil
}
