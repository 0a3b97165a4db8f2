package models

import "time"

// Setting value types.
const (
	SettingTypeText    = "text"
	SettingTypeNumber  = "number"
	SettingTypeBoolean = "boolean"
	SettingTypeJSON    = "json"
)

// SiteSetting represents a row in the "site_settings" table. Key is unique
// and is the identity used by every operation after creation.
type SiteSetting struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateSiteSettingParams holds a new setting. Type defaults to text.
type CreateSiteSettingParams struct {
	Key         string  `json:"key" binding:"required"`
	Value       string  `json:"value"`
	Type        string  `json:"type" binding:"omitempty,oneof=text number boolean json"`
	Description *string `json:"description"`
}

// UpdateSiteSettingParams holds fields that can be updated. The key itself
// is immutable.
type UpdateSiteSettingParams struct {
	Value       *string `json:"value"`
	Type        *string `json:"type" binding:"omitempty,oneof=text number boolean json"`
	Description *string `json:"description"`
}
