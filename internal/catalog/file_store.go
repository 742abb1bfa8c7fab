package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ayush1817-lab/UCP/internal/domain"
	"golang.org/x/sync/singleflight"
)

// FileStore reads the catalog from a JSON file of the form
// {"products": [...]}. The file is re-read on every call so edits show
// up without a restart; singleflight collapses concurrent reads.
type FileStore struct {
	path string
	sfg  singleflight.Group
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	return s.load()
}

func (s *FileStore) FindByID(_ context.Context, id string) (*domain.Product, error) {
	products, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() ([]domain.Product, error) {
	v, err, _ := s.sfg.Do(s.path, func() (interface{}, error) {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}

		var doc struct {
			Products []domain.Product `json:"products"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog file: %w", err)
		}
		return doc.Products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}
