package memory

import (
	"context"
	"time"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

func cloneProduct(p *models.Product) *models.Product {
	c := *p
	c.Subcategory = cloneString(p.Subcategory)
	c.ImageURL = cloneString(p.ImageURL)
	c.Specifications = cloneString(p.Specifications)
	c.Tags = p.Tags.Clone()
	return &c
}

func (s *Store) ListProducts(_ context.Context) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.products, nil, cloneProduct)
	sortNewest(out, func(p *models.Product) (time.Time, int64) { return p.CreatedAt, p.ID })
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (s *Store) CreateProduct(_ context.Context, params models.CreateProductParams) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := &models.Product{
		ID:             s.products.nextID(),
		Name:           params.Name,
		Description:    params.Description,
		Category:       params.Category,
		Subcategory:    cloneString(params.Subcategory),
		ImageURL:       cloneString(params.ImageURL),
		Tags:           params.Tags.Clone(),
		Specifications: cloneString(params.Specifications),
		IsActive:       models.BoolOr(params.IsActive, true),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.products.rows[p.ID] = p
	return cloneProduct(p), nil
}

func (s *Store) UpdateProduct(_ context.Context, id int64, params models.UpdateProductParams) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	setString(&p.Name, params.Name)
	setString(&p.Description, params.Description)
	setString(&p.Category, params.Category)
	setOptional(&p.Subcategory, params.Subcategory)
	setOptional(&p.ImageURL, params.ImageURL)
	if params.Tags != nil {
		p.Tags = params.Tags.Clone()
	}
	setOptional(&p.Specifications, params.Specifications)
	if params.IsActive != nil {
		p.IsActive = *params.IsActive
	}
	p.UpdatedAt = s.touch(p.UpdatedAt)
	return cloneProduct(p), nil
}

func (s *Store) DeleteProduct(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.remove(id), nil
}
