// Package catalog holds the static option data the engine computes against.
// Catalogs are injected into evaluators and validators explicitly so tests
// can substitute minimal fixtures.
package catalog

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Catalog is an immutable lookup collection of options, preserving the
// order the options were declared in.
type Catalog struct {
	options []*Option
	byKey   map[string]*Option
}

// New creates a catalog from the given options. Later duplicates of a key
// are ignored; the first declaration wins.
func New(options []*Option) *Catalog {
	c := &Catalog{
		options: make([]*Option, 0, len(options)),
		byKey:   make(map[string]*Option, len(options)),
	}
	for _, opt := range options {
		if opt == nil || opt.Key == "" {
			continue
		}
		if _, exists := c.byKey[opt.Key]; exists {
			continue
		}
		c.options = append(c.options, opt)
		c.byKey[opt.Key] = opt
	}
	return c
}

// Get returns the option for key, if present
func (c *Catalog) Get(key string) (*Option, bool) {
	if c == nil {
		return nil, false
	}
	opt, ok := c.byKey[key]
	return opt, ok
}

// Options returns all options in declaration order
func (c *Catalog) Options() []*Option {
	if c == nil {
		return nil
	}
	return c.options
}

// Len returns the number of options in the catalog
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.options)
}

// Cost returns the cost of key. Unknown keys cost 0 — catalogs may differ
// by language or version and partial data must not break computation.
func (c *Catalog) Cost(key string) int {
	if opt, ok := c.Get(key); ok {
		return opt.Cost
	}
	return 0
}

// GradeOf returns the grade of key, or GradeNone for unknown keys
func (c *Catalog) GradeOf(key string) shared.Grade {
	if opt, ok := c.Get(key); ok {
		return opt.Grade
	}
	return shared.GradeNone
}

// BlessingOf returns the blessing tag of key, or "" for unknown keys
func (c *Catalog) BlessingOf(key string) string {
	if opt, ok := c.Get(key); ok {
		return opt.Blessing
	}
	return ""
}
