package models

import "time"

// Catalogue represents a row in the "catalogues" table: a downloadable
// brochure or price list.
type Catalogue struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	FileURL     string    `json:"fileUrl"`
	FileName    string    `json:"fileName"`
	FileSize    *string   `json:"fileSize"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCatalogueParams holds the fields required to publish a catalogue.
type CreateCatalogueParams struct {
	Title       string  `json:"title" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description *string `json:"description"`
	FileURL     string  `json:"fileUrl" binding:"required"`
	FileName    string  `json:"fileName" binding:"required"`
	FileSize    *string `json:"fileSize"`
	IsActive    *bool   `json:"isActive"`
}

// UpdateCatalogueParams holds fields that can be updated.
type UpdateCatalogueParams struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Category    *string `json:"category" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	FileURL     *string `json:"fileUrl" binding:"omitempty,min=1"`
	FileName    *string `json:"fileName" binding:"omitempty,min=1"`
	FileSize    *string `json:"fileSize"`
	IsActive    *bool   `json:"isActive"`
}
