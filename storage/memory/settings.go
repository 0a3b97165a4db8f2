package memory

import (
	"context"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

func cloneSetting(st *models.SiteSetting) *models.SiteSetting {
	c := *st
	c.Description = cloneString(st.Description)
	return &c
}

func (s *Store) settingByKey(key string) (*models.SiteSetting, bool) {
	return s.settings.find(func(st *models.SiteSetting) bool { return st.Key == key })
}

func (s *Store) ListSiteSettings(_ context.Context) ([]*models.SiteSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.settings, nil, cloneSetting)
	sortByID(out, func(st *models.SiteSetting) int64 { return st.ID })
	return out, nil
}

func (s *Store) GetSiteSetting(_ context.Context, key string) (*models.SiteSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.settingByKey(key)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneSetting(st), nil
}

func (s *Store) CreateSiteSetting(_ context.Context, params models.CreateSiteSettingParams) (*models.SiteSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settingByKey(params.Key); ok {
		return nil, db.ErrDuplicateKey
	}
	now := s.now()
	st := &models.SiteSetting{
		ID:          s.settings.nextID(),
		Key:         params.Key,
		Value:       params.Value,
		Type:        models.StringOr(&params.Type, models.SettingTypeText),
		Description: cloneString(params.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.settings.rows[st.ID] = st
	return cloneSetting(st), nil
}

func (s *Store) UpdateSiteSetting(_ context.Context, key string, params models.UpdateSiteSettingParams) (*models.SiteSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settingByKey(key)
	if !ok {
		return nil, storage.ErrNotFound
	}
	setString(&st.Value, params.Value)
	setString(&st.Type, params.Type)
	setOptional(&st.Description, params.Description)
	st.UpdatedAt = s.touch(st.UpdatedAt)
	return cloneSetting(st), nil
}

func (s *Store) DeleteSiteSetting(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settingByKey(key)
	if !ok {
		return false, nil
	}
	return s.settings.remove(st.ID), nil
}
