package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.RunMigrations("migrations"))
	return store
}

func seedProduct(t *testing.T, store *SQLiteStore, id, name, brand, category string, price float64) {
	t.Helper()
	_, err := store.db.Exec(
		`INSERT INTO products (id, name, brand, category, price) VALUES ($1, $2, $3, $4, $5)`,
		id, name, brand, category, price,
	)
	require.NoError(t, err)
}

func TestSQLiteStore_ListProducts(t *testing.T) {
	store := setupSQLiteStore(t)
	seedProduct(t, store, "1", "Wireless Headphones", "SoundMax", "electronics", 89.99)
	seedProduct(t, store, "2", "Running Shoes", "FleetFoot", "sports", 120)

	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Wireless Headphones", products[0].Name)
	assert.Equal(t, "sports", products[1].Category)
}

func TestSQLiteStore_ListProducts_Empty(t *testing.T) {
	store := setupSQLiteStore(t)

	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSQLiteStore_FindByID(t *testing.T) {
	store := setupSQLiteStore(t)
	seedProduct(t, store, "42", "Smart Watch", "SoundMax", "electronics", 199.5)

	p, err := store.FindByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Smart Watch", p.Name)
	assert.Equal(t, 199.5, p.Price)

	_, err = store.FindByID(context.Background(), "43")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSQLiteStore_MigrationsAreIdempotent(t *testing.T) {
	store := setupSQLiteStore(t)

	assert.NoError(t, store.RunMigrations("migrations"))
}
