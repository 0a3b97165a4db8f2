package repo

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

type catalogueRepo struct {
	q db.Querier
}

// NewCatalogueRepo returns a storage.Catalogues backed by q.
func NewCatalogueRepo(q db.Querier) storage.Catalogues {
	return &catalogueRepo{q: q}
}

const (
	catalogueColumns = `id, title, category, description, file_url, file_name, file_size, is_active, created_at, updated_at`

	sqlInsertCatalogue = `
		INSERT INTO catalogues (title, category, description, file_url, file_name, file_size, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sqlGetCatalogueByID = `
		SELECT ` + catalogueColumns + `
		FROM   catalogues
		WHERE  id = ?`

	sqlListCatalogues = `
		SELECT ` + catalogueColumns + `
		FROM   catalogues
		ORDER  BY created_at DESC, id DESC`

	sqlDeleteCatalogue = `
		DELETE FROM catalogues WHERE id = ?`
)

func (r *catalogueRepo) ListCatalogues(ctx context.Context) ([]*models.Catalogue, error) {
	return listRows(ctx, r.q, sqlListCatalogues, scanCatalogue)
}

func (r *catalogueRepo) GetCatalogue(ctx context.Context, id int64) (*models.Catalogue, error) {
	return scanCatalogue(r.q.QueryRow(ctx, sqlGetCatalogueByID, id))
}

func (r *catalogueRepo) CreateCatalogue(ctx context.Context, params models.CreateCatalogueParams) (*models.Catalogue, error) {
	now := models.Now()
	return insertRow(ctx, r.q, sqlInsertCatalogue, catalogueColumns, sqlGetCatalogueByID, scanCatalogue,
		params.Title, params.Category, NullString(params.Description), params.FileURL, params.FileName,
		NullString(params.FileSize), models.BoolOr(params.IsActive, true), now, now)
}

func (r *catalogueRepo) UpdateCatalogue(ctx context.Context, id int64, params models.UpdateCatalogueParams) (*models.Catalogue, error) {
	var b updateBuilder
	setIf(&b, "title", params.Title)
	setIf(&b, "category", params.Category)
	setIf(&b, "description", params.Description)
	setIf(&b, "file_url", params.FileURL)
	setIf(&b, "file_name", params.FileName)
	setIf(&b, "file_size", params.FileSize)
	setIf(&b, "is_active", params.IsActive)
	return updateRow(ctx, r.q, "catalogues", catalogueColumns, "id", id, &b, sqlGetCatalogueByID, scanCatalogue)
}

func (r *catalogueRepo) DeleteCatalogue(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteCatalogue, id)
}

func scanCatalogue(row rowScanner) (*models.Catalogue, error) {
	c := &models.Catalogue{}
	err := row.Scan(&c.ID, &c.Title, &c.Category, &c.Description, &c.FileURL, &c.FileName,
		&c.FileSize, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/catalogue: %w", err)
	}
	utc(&c.CreatedAt, &c.UpdatedAt)
	return c, nil
}
