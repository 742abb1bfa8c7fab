package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush1817-lab/UCP/internal/catalog"
	"github.com/ayush1817-lab/UCP/internal/domain"
)

type mockStore struct {
	products map[string]domain.Product
}

func (m *mockStore) ListProducts(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockStore) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockStore) Close() error { return nil }

func newMockStore() *mockStore {
	return &mockStore{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Headphones", Category: "electronics", Price: 10},
		"p2": {ID: "p2", Name: "Sneakers", Category: "sports", Price: 15},
	}}
}

func TestCart_Add_PreservesOrderAndDuplicates(t *testing.T) {
	c := New()
	c.Add("p1")
	c.Add("p2")
	c.Add("p1")

	assert.Equal(t, 3, c.Count())
	assert.Equal(t, []string{"p1", "p2", "p1"}, c.IDs())

	items, err := c.Items(context.Background(), newMockStore())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "p2", items[1].ID)
	assert.Equal(t, "p1", items[2].ID)
}

func TestCart_Total_SkipsStaleEntries(t *testing.T) {
	c := New()
	c.Add("p1")
	c.Add("gone")
	c.Add("p2")

	total, err := c.Total(context.Background(), newMockStore())
	require.NoError(t, err)
	assert.Equal(t, 25.0, total)

	items, err := c.Items(context.Background(), newMockStore())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// The stale id stays in the sequence; it is only skipped at read time.
	assert.Equal(t, 3, c.Count())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.Add("p1")
	c.Clear()

	assert.Equal(t, 0, c.Count())
	total, err := c.Total(context.Background(), newMockStore())
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestCart_ConcurrentAdds(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add("p1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Count())
}
