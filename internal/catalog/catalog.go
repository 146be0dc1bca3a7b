// Package catalog serves the marketplace product listings. The catalog is
// read-only at runtime; cmd/seed writes it as one JSON array under a fixed
// key.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"agriconnect/internal/domain"
	"agriconnect/internal/kv"
)

// Key is the storage key holding the full product list.
const Key = "products:catalog"

type Service struct {
	kv kv.Store
}

func New(store kv.Store) *Service {
	return &Service{kv: store}
}

// List returns every product. An unseeded catalog reads as empty.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return products, nil
}

// ByID returns the product with the given id.
func (s *Service) ByID(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ByCategory returns the products of the given category, or everything for
// "all".
func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "all" || category == "" {
		return products, nil
	}
	var out []domain.Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Replace overwrites the stored catalog.
func (s *Service) Replace(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	return nil
}
