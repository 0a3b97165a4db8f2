package storage

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/models"
)

// Seed creates admin unless an admin with the same email already exists.
// It reports whether a new account was created. admin.Password must already
// be hashed.
func Seed(ctx context.Context, s AdminUsers, admin models.CreateAdminUserParams) (bool, error) {
	_, err := s.GetAdminUserByEmail(ctx, admin.Email)
	switch {
	case err == nil:
		return false, nil
	case !IsNotFound(err):
		return false, fmt.Errorf("storage: seed lookup: %w", err)
	}
	if _, err := s.CreateAdminUser(ctx, admin); err != nil {
		return false, fmt.Errorf("storage: seed admin: %w", err)
	}
	return true, nil
}
