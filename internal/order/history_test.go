package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayush1817-lab/UCP/internal/domain"
)

func sampleOrder(id string) domain.Order {
	return domain.Order{
		ID:        id,
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		Total:     25,
		Currency:  "USD",
	}
}

func TestHistory_AppendAndList(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, 0, h.Count())

	h.Append(sampleOrder("order_1"))
	h.Append(sampleOrder("order_2"))

	assert.Equal(t, 2, h.Count())
	listed := h.List()
	assert.Equal(t, "order_1", listed[0].ID)
	assert.Equal(t, "order_2", listed[1].ID)
}

func TestHistory_ListReturnsCopies(t *testing.T) {
	h := NewHistory()
	h.Append(sampleOrder("order_1"))

	listed := h.List()
	listed[0].Total = 9999

	assert.Equal(t, 25.0, h.List()[0].Total)
}
