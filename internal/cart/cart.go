// Package cart holds the working cart of a single shopping session: an
// ordered sequence of product ids, resolved against the catalog at read
// time.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/ayush1817-lab/UCP/internal/catalog"
	"github.com/ayush1817-lab/UCP/internal/domain"
)

type Cart struct {
	mu  sync.RWMutex
	ids []string
}

func New() *Cart {
	return &Cart{}
}

// Add appends the product id unconditionally. Duplicates are allowed
// (buying two of the same item is two entries) and existence is the
// caller's concern.
func (c *Cart) Add(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, productID)
}

// Count returns the number of entries, including ids that may no longer
// resolve against the catalog.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}

// IDs returns a copy of the entries in insertion order.
func (c *Cart) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Clear empties the cart. Called after a completed checkout and on
// explicit clear requests.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = nil
}

// Items resolves the cart against the catalog, preserving insertion
// order and duplicates. Entries that no longer resolve are silently
// skipped; only store failures other than a missing product are errors.
func (c *Cart) Items(ctx context.Context, store catalog.Store) ([]domain.Product, error) {
	ids := c.IDs()

	items := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := store.FindByID(ctx, id)
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, nil
}

// Total sums the prices of all entries that currently resolve in the
// catalog; stale entries contribute zero.
func (c *Cart) Total(ctx context.Context, store catalog.Store) (float64, error) {
	items, err := c.Items(ctx, store)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, p := range items {
		total += p.Price
	}
	return total, nil
}
