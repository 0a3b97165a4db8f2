package memory

import (
	"context"
	"time"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

func cloneMedia(m *models.MediaContent) *models.MediaContent {
	c := *m
	c.Author = cloneString(m.Author)
	c.Content = cloneString(m.Content)
	c.Summary = cloneString(m.Summary)
	c.ImageURL = cloneString(m.ImageURL)
	c.FileURL = cloneString(m.FileURL)
	c.Source = cloneString(m.Source)
	c.ExternalLink = cloneString(m.ExternalLink)
	c.Tags = m.Tags.Clone()
	c.PublishedAt = cloneTime(m.PublishedAt)
	return &c
}

func mediaKey(m *models.MediaContent) (time.Time, int64) { return m.CreatedAt, m.ID }

func (s *Store) ListMediaContent(_ context.Context) ([]*models.MediaContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.media, nil, cloneMedia)
	sortNewest(out, mediaKey)
	return out, nil
}

func (s *Store) ListMediaContentByType(_ context.Context, mediaType string) ([]*models.MediaContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.media, func(m *models.MediaContent) bool { return m.Type == mediaType }, cloneMedia)
	sortNewest(out, mediaKey)
	return out, nil
}

func (s *Store) GetMediaContent(_ context.Context, id int64) (*models.MediaContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.media.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneMedia(m), nil
}

func (s *Store) CreateMediaContent(_ context.Context, params models.CreateMediaContentParams) (*models.MediaContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	m := &models.MediaContent{
		ID:           s.media.nextID(),
		Title:        params.Title,
		Type:         params.Type,
		Author:       cloneString(params.Author),
		Content:      cloneString(params.Content),
		Summary:      cloneString(params.Summary),
		ImageURL:     cloneString(params.ImageURL),
		FileURL:      cloneString(params.FileURL),
		Source:       cloneString(params.Source),
		ExternalLink: cloneString(params.ExternalLink),
		Tags:         params.Tags.Clone(),
		IsPublished:  models.BoolOr(params.IsPublished, true),
		PublishedAt:  params.PublishedAtFor(now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.media.rows[m.ID] = m
	return cloneMedia(m), nil
}

func (s *Store) UpdateMediaContent(_ context.Context, id int64, params models.UpdateMediaContentParams) (*models.MediaContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.media.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	now := s.touch(m.UpdatedAt)
	setString(&m.Title, params.Title)
	setString(&m.Type, params.Type)
	setOptional(&m.Author, params.Author)
	setOptional(&m.Content, params.Content)
	setOptional(&m.Summary, params.Summary)
	setOptional(&m.ImageURL, params.ImageURL)
	setOptional(&m.FileURL, params.FileURL)
	setOptional(&m.Source, params.Source)
	setOptional(&m.ExternalLink, params.ExternalLink)
	if params.Tags != nil {
		m.Tags = params.Tags.Clone()
	}
	if params.IsPublished != nil {
		m.IsPublished = *params.IsPublished
	}
	switch {
	case params.PublishedAt != nil:
		t := params.PublishedAt.UTC()
		m.PublishedAt = &t
	case params.IsPublished != nil && *params.IsPublished && m.PublishedAt == nil:
		m.PublishedAt = &now
	}
	m.UpdatedAt = now
	return cloneMedia(m), nil
}

func (s *Store) DeleteMediaContent(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.media.remove(id), nil
}
