package memory

import (
	"context"
	"time"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

func cloneCatalogue(c *models.Catalogue) *models.Catalogue {
	out := *c
	out.Description = cloneString(c.Description)
	out.FileSize = cloneString(c.FileSize)
	return &out
}

func (s *Store) ListCatalogues(_ context.Context) ([]*models.Catalogue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.catalogues, nil, cloneCatalogue)
	sortNewest(out, func(c *models.Catalogue) (time.Time, int64) { return c.CreatedAt, c.ID })
	return out, nil
}

func (s *Store) GetCatalogue(_ context.Context, id int64) (*models.Catalogue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.catalogues.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneCatalogue(c), nil
}

func (s *Store) CreateCatalogue(_ context.Context, params models.CreateCatalogueParams) (*models.Catalogue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	c := &models.Catalogue{
		ID:          s.catalogues.nextID(),
		Title:       params.Title,
		Category:    params.Category,
		Description: cloneString(params.Description),
		FileURL:     params.FileURL,
		FileName:    params.FileName,
		FileSize:    cloneString(params.FileSize),
		IsActive:    models.BoolOr(params.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.catalogues.rows[c.ID] = c
	return cloneCatalogue(c), nil
}

func (s *Store) UpdateCatalogue(_ context.Context, id int64, params models.UpdateCatalogueParams) (*models.Catalogue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.catalogues.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	setString(&c.Title, params.Title)
	setString(&c.Category, params.Category)
	setOptional(&c.Description, params.Description)
	setString(&c.FileURL, params.FileURL)
	setString(&c.FileName, params.FileName)
	setOptional(&c.FileSize, params.FileSize)
	if params.IsActive != nil {
		c.IsActive = *params.IsActive
	}
	c.UpdatedAt = s.touch(c.UpdatedAt)
	return cloneCatalogue(c), nil
}

func (s *Store) DeleteCatalogue(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogues.remove(id), nil
}
