// Package order keeps the append-only history of completed purchases.
package order

import (
	"sync"

	"github.com/ayush1817-lab/UCP/internal/domain"
)

// History owns every order created during the session. Orders are never
// mutated or removed after Append.
type History struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Append(o domain.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders = append(h.orders, o)
}

// List returns the orders in creation order. The result is a copy;
// mutating it does not touch the history.
func (h *History) List() []domain.Order {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.Order, len(h.orders))
	copy(out, h.orders)
	return out
}

func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.orders)
}
