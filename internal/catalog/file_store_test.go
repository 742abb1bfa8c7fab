package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testCatalog = `{
	"products": [
		{"id": "1", "name": "Wireless Headphones", "brand": "SoundMax", "category": "electronics", "price": 89.99},
		{"id": "2", "name": "Running Shoes", "brand": "FleetFoot", "category": "sports", "price": 120},
		{"id": "3", "name": "Smart Watch", "brand": "SoundMax", "category": "electronics", "price": 199.5}
	]
}`

func TestFileStore_ListProducts(t *testing.T) {
	store := NewFileStore(writeCatalogFile(t, testCatalog))
	t.Cleanup(func() { store.Close() })

	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 3)
	// Catalog order is preserved.
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "Wireless Headphones", products[0].Name)
	assert.Equal(t, 120.0, products[1].Price)
}

func TestFileStore_FindByID(t *testing.T) {
	store := NewFileStore(writeCatalogFile(t, testCatalog))

	p, err := store.FindByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Smart Watch", p.Name)
	assert.Equal(t, "electronics", p.Category)

	_, err = store.FindByID(context.Background(), "999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	_, err := store.ListProducts(context.Background())
	assert.Error(t, err)
}

func TestFileStore_MalformedFile(t *testing.T) {
	store := NewFileStore(writeCatalogFile(t, "{not json"))

	_, err := store.ListProducts(context.Background())
	assert.Error(t, err)
}
