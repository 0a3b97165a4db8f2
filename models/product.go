package models

import "time"

// Product represents a row in the "products" table.
type Product struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Subcategory    *string    `json:"subcategory"`
	ImageURL       *string    `json:"imageUrl"`
	Tags           StringList `json:"tags"`
	Specifications *string    `json:"specifications"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateProductParams holds the fields required to list a product.
type CreateProductParams struct {
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	Category       string     `json:"category" binding:"required"`
	Subcategory    *string    `json:"subcategory"`
	ImageURL       *string    `json:"imageUrl"`
	Tags           StringList `json:"tags"`
	Specifications *string    `json:"specifications"`
	IsActive       *bool      `json:"isActive"`
}

// UpdateProductParams holds fields that can be updated. A non-nil Tags
// replaces the whole list.
type UpdateProductParams struct {
	Name           *string     `json:"name" binding:"omitempty,min=1"`
	Description    *string     `json:"description"`
	Category       *string     `json:"category" binding:"omitempty,min=1"`
	Subcategory    *string     `json:"subcategory"`
	ImageURL       *string     `json:"imageUrl"`
	Tags           *StringList `json:"tags"`
	Specifications *string     `json:"specifications"`
	IsActive       *bool       `json:"isActive"`
}
