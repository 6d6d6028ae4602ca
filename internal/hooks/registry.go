package hooks

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Check)
	mu       sync.RWMutex
)

// Register adds a builtin check. It panics on duplicate ids; builtins are
// registered from init functions, so a duplicate is a programming error.
func Register(c Check) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[c.ID()]; exists {
		panic(fmt.Sprintf("builtin check %s already registered", c.ID()))
	}
	registry[c.ID()] = c
}

// List returns all builtin checks sorted by id.
func List() []Check {
	mu.RLock()
	defer mu.RUnlock()
	var checks []Check
	for _, c := range registry {
		checks = append(checks, c)
	}
	sort.Slice(checks, func(i, j int) bool {
		return checks[i].ID() < checks[j].ID()
	})
	return checks
}

// Lookup returns the builtin check with the given id.
func Lookup(id string) (Check, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := registry[id]
	return c, ok
}
