package memory

import (
	"context"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (s *Store) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.users, nil, cloneUser)
	sortByID(out, func(u *models.User) int64 { return u.ID })
	return out, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.find(func(u *models.User) bool { return u.Username == username })
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) CreateUser(_ context.Context, params models.CreateUserParams) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usernameTaken(params.Username, 0) {
		return nil, db.ErrDuplicateKey
	}
	now := s.now()
	u := &models.User{
		ID:        s.users.nextID(),
		Username:  params.Username,
		Password:  params.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users.rows[u.ID] = u
	return cloneUser(u), nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, params models.UpdateUserParams) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if params.Username != nil && s.usernameTaken(*params.Username, id) {
		return nil, db.ErrDuplicateKey
	}
	if params.Username != nil {
		u.Username = *params.Username
	}
	if params.Password != nil {
		u.Password = *params.Password
	}
	u.UpdatedAt = s.touch(u.UpdatedAt)
	return cloneUser(u), nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.remove(id), nil
}

// usernameTaken reports whether a user other than self already uses name.
func (s *Store) usernameTaken(name string, self int64) bool {
	_, ok := s.users.find(func(u *models.User) bool { return u.Username == name && u.ID != self })
	return ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Admin users
// ─────────────────────────────────────────────────────────────────────────────

func cloneAdminUser(a *models.AdminUser) *models.AdminUser {
	c := *a
	return &c
}

func (s *Store) ListAdminUsers(_ context.Context) ([]*models.AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.adminUsers, nil, cloneAdminUser)
	sortByID(out, func(a *models.AdminUser) int64 { return a.ID })
	return out, nil
}

func (s *Store) GetAdminUser(_ context.Context, id int64) (*models.AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.adminUsers.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneAdminUser(a), nil
}

func (s *Store) GetAdminUserByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.adminUsers.find(func(a *models.AdminUser) bool { return a.Email == email })
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneAdminUser(a), nil
}

func (s *Store) CreateAdminUser(_ context.Context, params models.CreateAdminUserParams) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(params.Email, 0) {
		return nil, db.ErrDuplicateKey
	}
	now := s.now()
	a := &models.AdminUser{
		ID:        s.adminUsers.nextID(),
		Email:     params.Email,
		Password:  params.Password,
		Name:      params.Name,
		Role:      models.StringOr(&params.Role, models.AdminRole),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.adminUsers.rows[a.ID] = a
	return cloneAdminUser(a), nil
}

func (s *Store) UpdateAdminUser(_ context.Context, id int64, params models.UpdateAdminUserParams) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.adminUsers.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if params.Email != nil && s.emailTaken(*params.Email, id) {
		return nil, db.ErrDuplicateKey
	}
	if params.Email != nil {
		a.Email = *params.Email
	}
	if params.Password != nil {
		a.Password = *params.Password
	}
	if params.Name != nil {
		a.Name = *params.Name
	}
	if params.Role != nil {
		a.Role = *params.Role
	}
	a.UpdatedAt = s.touch(a.UpdatedAt)
	return cloneAdminUser(a), nil
}

func (s *Store) DeleteAdminUser(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminUsers.remove(id), nil
}

func (s *Store) emailTaken(email string, self int64) bool {
	_, ok := s.adminUsers.find(func(a *models.AdminUser) bool { return a.Email == email && a.ID != self })
	return ok
}
