package repo

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

// ─────────────────────────────────────────────────────────────────────────────
// userRepo
// ─────────────────────────────────────────────────────────────────────────────

// userRepo is the production implementation backed by a db.Querier.
type userRepo struct {
	q db.Querier
}

// NewUserRepo returns a storage.Users backed by q.
func NewUserRepo(q db.Querier) storage.Users {
	return &userRepo{q: q}
}

// ─────────────────────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────────────────────

const (
	userColumns = `id, username, password, created_at, updated_at`

	sqlInsertUser = `
		INSERT INTO users (username, password, created_at, updated_at)
		VALUES (?, ?, ?, ?)`

	sqlGetUserByID = `
		SELECT ` + userColumns + `
		FROM   users
		WHERE  id = ?`

	sqlGetUserByUsername = `
		SELECT ` + userColumns + `
		FROM   users
		WHERE  username = ?`

	sqlListUsers = `
		SELECT ` + userColumns + `
		FROM   users
		ORDER  BY id`

	sqlDeleteUser = `
		DELETE FROM users WHERE id = ?`
)

// ListUsers returns every user ordered by id.
func (r *userRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	return listRows(ctx, r.q, sqlListUsers, scanUser)
}

// GetUser returns a single user by primary key.
// Returns db.ErrNotFound when no record matches.
func (r *userRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.q.QueryRow(ctx, sqlGetUserByID, id))
}

// GetUserByUsername looks up a user by their unique username.
func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.q.QueryRow(ctx, sqlGetUserByUsername, username))
}

// CreateUser inserts a user and returns the persisted record including the
// database-assigned id and timestamps.
func (r *userRepo) CreateUser(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	now := models.Now()
	return insertRow(ctx, r.q, sqlInsertUser, userColumns, sqlGetUserByID, scanUser,
		params.Username, params.Password, now, now)
}

// UpdateUser applies a partial update. Only fields with non-nil pointers in
// params are written.
func (r *userRepo) UpdateUser(ctx context.Context, id int64, params models.UpdateUserParams) (*models.User, error) {
	var b updateBuilder
	setIf(&b, "username", params.Username)
	setIf(&b, "password", params.Password)
	return updateRow(ctx, r.q, "users", userColumns, "id", id, &b, sqlGetUserByID, scanUser)
}

// DeleteUser removes a user by id and reports whether it existed.
func (r *userRepo) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteUser, id)
}

// scanUser scans a single user row. Centralising the scan call means that
// adding/removing columns only requires a change in one place.
func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/user: %w", err)
	}
	utc(&u.CreatedAt, &u.UpdatedAt)
	return u, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// adminUserRepo
// ─────────────────────────────────────────────────────────────────────────────

type adminUserRepo struct {
	q db.Querier
}

// NewAdminUserRepo returns a storage.AdminUsers backed by q.
func NewAdminUserRepo(q db.Querier) storage.AdminUsers {
	return &adminUserRepo{q: q}
}

const (
	adminUserColumns = `id, email, password, name, role, created_at, updated_at`

	sqlInsertAdminUser = `
		INSERT INTO admin_users (email, password, name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	sqlGetAdminUserByID = `
		SELECT ` + adminUserColumns + `
		FROM   admin_users
		WHERE  id = ?`

	sqlGetAdminUserByEmail = `
		SELECT ` + adminUserColumns + `
		FROM   admin_users
		WHERE  email = ?`

	sqlListAdminUsers = `
		SELECT ` + adminUserColumns + `
		FROM   admin_users
		ORDER  BY id`

	sqlDeleteAdminUser = `
		DELETE FROM admin_users WHERE id = ?`
)

func (r *adminUserRepo) ListAdminUsers(ctx context.Context) ([]*models.AdminUser, error) {
	return listRows(ctx, r.q, sqlListAdminUsers, scanAdminUser)
}

func (r *adminUserRepo) GetAdminUser(ctx context.Context, id int64) (*models.AdminUser, error) {
	return scanAdminUser(r.q.QueryRow(ctx, sqlGetAdminUserByID, id))
}

// GetAdminUserByEmail is the login lookup.
func (r *adminUserRepo) GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return scanAdminUser(r.q.QueryRow(ctx, sqlGetAdminUserByEmail, email))
}

// CreateAdminUser stores an admin; Role defaults to models.AdminRole.
func (r *adminUserRepo) CreateAdminUser(ctx context.Context, params models.CreateAdminUserParams) (*models.AdminUser, error) {
	now := models.Now()
	role := models.StringOr(&params.Role, models.AdminRole)
	return insertRow(ctx, r.q, sqlInsertAdminUser, adminUserColumns, sqlGetAdminUserByID, scanAdminUser,
		params.Email, params.Password, params.Name, role, now, now)
}

func (r *adminUserRepo) UpdateAdminUser(ctx context.Context, id int64, params models.UpdateAdminUserParams) (*models.AdminUser, error) {
	var b updateBuilder
	setIf(&b, "email", params.Email)
	setIf(&b, "password", params.Password)
	setIf(&b, "name", params.Name)
	setIf(&b, "role", params.Role)
	return updateRow(ctx, r.q, "admin_users", adminUserColumns, "id", id, &b, sqlGetAdminUserByID, scanAdminUser)
}

func (r *adminUserRepo) DeleteAdminUser(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteAdminUser, id)
}

func scanAdminUser(row rowScanner) (*models.AdminUser, error) {
	a := &models.AdminUser{}
	err := row.Scan(&a.ID, &a.Email, &a.Password, &a.Name, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/admin_user: %w", err)
	}
	utc(&a.CreatedAt, &a.UpdatedAt)
	return a, nil
}
