package repo

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

type productRepo struct {
	q db.Querier
}

// NewProductRepo returns a storage.Products backed by q.
func NewProductRepo(q db.Querier) storage.Products {
	return &productRepo{q: q}
}

const (
	productColumns = `id, name, description, category, subcategory, image_url, tags, specifications, is_active, created_at, updated_at`

	sqlInsertProduct = `
		INSERT INTO products (name, description, category, subcategory, image_url, tags, specifications, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sqlGetProductByID = `
		SELECT ` + productColumns + `
		FROM   products
		WHERE  id = ?`

	sqlListProducts = `
		SELECT ` + productColumns + `
		FROM   products
		ORDER  BY created_at DESC, id DESC`

	sqlDeleteProduct = `
		DELETE FROM products WHERE id = ?`
)

func (r *productRepo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return listRows(ctx, r.q, sqlListProducts, scanProduct)
}

func (r *productRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return scanProduct(r.q.QueryRow(ctx, sqlGetProductByID, id))
}

// CreateProduct stores a product. Tags are persisted as a JSON array.
func (r *productRepo) CreateProduct(ctx context.Context, params models.CreateProductParams) (*models.Product, error) {
	now := models.Now()
	return insertRow(ctx, r.q, sqlInsertProduct, productColumns, sqlGetProductByID, scanProduct,
		params.Name, params.Description, params.Category, NullString(params.Subcategory),
		NullString(params.ImageURL), params.Tags, NullString(params.Specifications),
		models.BoolOr(params.IsActive, true), now, now)
}

func (r *productRepo) UpdateProduct(ctx context.Context, id int64, params models.UpdateProductParams) (*models.Product, error) {
	var b updateBuilder
	setIf(&b, "name", params.Name)
	setIf(&b, "description", params.Description)
	setIf(&b, "category", params.Category)
	setIf(&b, "subcategory", params.Subcategory)
	setIf(&b, "image_url", params.ImageURL)
	setIf(&b, "tags", params.Tags)
	setIf(&b, "specifications", params.Specifications)
	setIf(&b, "is_active", params.IsActive)
	return updateRow(ctx, r.q, "products", productColumns, "id", id, &b, sqlGetProductByID, scanProduct)
}

func (r *productRepo) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteProduct, id)
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Subcategory, &p.ImageURL,
		&p.Tags, &p.Specifications, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/product: %w", err)
	}
	utc(&p.CreatedAt, &p.UpdatedAt)
	return p, nil
}
