package models

import "time"

// AdminRole is the role given to admin users created without one.
const AdminRole = "admin"

// User represents a row in the "users" table.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserParams holds the fields required to create a new user.
// Password must already be hashed.
type CreateUserParams struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserParams holds fields that can be updated.
type UpdateUserParams struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// AdminUser represents a row in the "admin_users" table. Email is unique and
// is the login key. Password holds a bcrypt hash and never leaves the server.
type AdminUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateAdminUserParams holds the fields required to create an admin.
// Password must already be hashed. Role defaults to AdminRole.
type CreateAdminUserParams struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

// UpdateAdminUserParams holds fields that can be updated.
type UpdateAdminUserParams struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
}
