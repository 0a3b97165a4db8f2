package memory

import (
	"context"
	"time"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

func cloneContact(c *models.ContactSubmission) *models.ContactSubmission {
	out := *c
	out.Phone = cloneString(c.Phone)
	out.Company = cloneString(c.Company)
	return &out
}

func (s *Store) ListContactSubmissions(_ context.Context) ([]*models.ContactSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.contacts, nil, cloneContact)
	sortNewest(out, func(c *models.ContactSubmission) (time.Time, int64) { return c.CreatedAt, c.ID })
	return out, nil
}

func (s *Store) GetContactSubmission(_ context.Context, id int64) (*models.ContactSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneContact(c), nil
}

func (s *Store) CreateContactSubmission(_ context.Context, params models.CreateContactSubmissionParams) (*models.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	c := &models.ContactSubmission{
		ID:        s.contacts.nextID(),
		Name:      params.Name,
		Email:     params.Email,
		Phone:     cloneString(params.Phone),
		Company:   cloneString(params.Company),
		Message:   params.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.contacts.rows[c.ID] = c
	return cloneContact(c), nil
}

func (s *Store) DeleteContactSubmission(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contacts.remove(id), nil
}
