package repo

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

type settingRepo struct {
	q db.Querier
}

// NewSettingRepo returns a storage.SiteSettings backed by q.
func NewSettingRepo(q db.Querier) storage.SiteSettings {
	return &settingRepo{q: q}
}

// The key column is setting_key because KEY is reserved in MySQL.
const (
	settingColumns = `id, setting_key, value, type, description, created_at, updated_at`

	sqlInsertSetting = `
		INSERT INTO site_settings (setting_key, value, type, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	sqlGetSettingByID = `
		SELECT ` + settingColumns + `
		FROM   site_settings
		WHERE  id = ?`

	sqlGetSettingByKey = `
		SELECT ` + settingColumns + `
		FROM   site_settings
		WHERE  setting_key = ?`

	sqlListSettings = `
		SELECT ` + settingColumns + `
		FROM   site_settings
		ORDER  BY id`

	sqlDeleteSetting = `
		DELETE FROM site_settings WHERE setting_key = ?`
)

func (r *settingRepo) ListSiteSettings(ctx context.Context) ([]*models.SiteSetting, error) {
	return listRows(ctx, r.q, sqlListSettings, scanSetting)
}

func (r *settingRepo) GetSiteSetting(ctx context.Context, key string) (*models.SiteSetting, error) {
	return scanSetting(r.q.QueryRow(ctx, sqlGetSettingByKey, key))
}

// CreateSiteSetting stores a setting; Type defaults to text.
func (r *settingRepo) CreateSiteSetting(ctx context.Context, params models.CreateSiteSettingParams) (*models.SiteSetting, error) {
	now := models.Now()
	typ := models.StringOr(&params.Type, models.SettingTypeText)
	return insertRow(ctx, r.q, sqlInsertSetting, settingColumns, sqlGetSettingByID, scanSetting,
		params.Key, params.Value, typ, NullString(params.Description), now, now)
}

func (r *settingRepo) UpdateSiteSetting(ctx context.Context, key string, params models.UpdateSiteSettingParams) (*models.SiteSetting, error) {
	var b updateBuilder
	setIf(&b, "value", params.Value)
	setIf(&b, "type", params.Type)
	setIf(&b, "description", params.Description)
	return updateRow(ctx, r.q, "site_settings", settingColumns, "setting_key", key, &b, sqlGetSettingByKey, scanSetting)
}

func (r *settingRepo) DeleteSiteSetting(ctx context.Context, key string) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteSetting, key)
}

func scanSetting(row rowScanner) (*models.SiteSetting, error) {
	s := &models.SiteSetting{}
	err := row.Scan(&s.ID, &s.Key, &s.Value, &s.Type, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/site_setting: %w", err)
	}
	utc(&s.CreatedAt, &s.UpdatedAt)
	return s, nil
}
