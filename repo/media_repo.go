package repo

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

type mediaRepo struct {
	q db.Querier
}

// NewMediaRepo returns a storage.MediaContent backed by q.
func NewMediaRepo(q db.Querier) storage.MediaContent {
	return &mediaRepo{q: q}
}

const (
	mediaColumns = `id, title, type, author, content, summary, image_url, file_url, source, external_link, tags, is_published, published_at, created_at, updated_at`

	sqlInsertMedia = `
		INSERT INTO media_content (title, type, author, content, summary, image_url, file_url, source, external_link, tags, is_published, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sqlGetMediaByID = `
		SELECT ` + mediaColumns + `
		FROM   media_content
		WHERE  id = ?`

	sqlListMedia = `
		SELECT ` + mediaColumns + `
		FROM   media_content
		ORDER  BY created_at DESC, id DESC`

	sqlListMediaByType = `
		SELECT ` + mediaColumns + `
		FROM   media_content
		WHERE  type = ?
		ORDER  BY created_at DESC, id DESC`

	sqlDeleteMedia = `
		DELETE FROM media_content WHERE id = ?`
)

func (r *mediaRepo) ListMediaContent(ctx context.Context) ([]*models.MediaContent, error) {
	return listRows(ctx, r.q, sqlListMedia, scanMedia)
}

func (r *mediaRepo) ListMediaContentByType(ctx context.Context, mediaType string) ([]*models.MediaContent, error) {
	return listRows(ctx, r.q, sqlListMediaByType, scanMedia, mediaType)
}

func (r *mediaRepo) GetMediaContent(ctx context.Context, id int64) (*models.MediaContent, error) {
	return scanMedia(r.q.QueryRow(ctx, sqlGetMediaByID, id))
}

// CreateMediaContent stores an item. Published items without an explicit
// publish time are stamped with the creation time.
func (r *mediaRepo) CreateMediaContent(ctx context.Context, params models.CreateMediaContentParams) (*models.MediaContent, error) {
	now := models.Now()
	return insertRow(ctx, r.q, sqlInsertMedia, mediaColumns, sqlGetMediaByID, scanMedia,
		params.Title, params.Type, NullString(params.Author), NullString(params.Content),
		NullString(params.Summary), NullString(params.ImageURL), NullString(params.FileURL),
		NullString(params.Source), NullString(params.ExternalLink), params.Tags,
		models.BoolOr(params.IsPublished, true), NullTime(params.PublishedAtFor(now)), now, now)
}

// UpdateMediaContent applies a partial update. Publishing an item that has
// never been published stamps published_at; an existing stamp is kept.
func (r *mediaRepo) UpdateMediaContent(ctx context.Context, id int64, params models.UpdateMediaContentParams) (*models.MediaContent, error) {
	var b updateBuilder
	setIf(&b, "title", params.Title)
	setIf(&b, "type", params.Type)
	setIf(&b, "author", params.Author)
	setIf(&b, "content", params.Content)
	setIf(&b, "summary", params.Summary)
	setIf(&b, "image_url", params.ImageURL)
	setIf(&b, "file_url", params.FileURL)
	setIf(&b, "source", params.Source)
	setIf(&b, "external_link", params.ExternalLink)
	setIf(&b, "tags", params.Tags)
	setIf(&b, "is_published", params.IsPublished)
	switch {
	case params.PublishedAt != nil:
		b.set("published_at", params.PublishedAt.UTC())
	case params.IsPublished != nil && *params.IsPublished:
		b.setExpr("published_at", "COALESCE(published_at, ?)", models.Now())
	}
	return updateRow(ctx, r.q, "media_content", mediaColumns, "id", id, &b, sqlGetMediaByID, scanMedia)
}

func (r *mediaRepo) DeleteMediaContent(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteMedia, id)
}

func scanMedia(row rowScanner) (*models.MediaContent, error) {
	m := &models.MediaContent{}
	err := row.Scan(&m.ID, &m.Title, &m.Type, &m.Author, &m.Content, &m.Summary, &m.ImageURL,
		&m.FileURL, &m.Source, &m.ExternalLink, &m.Tags, &m.IsPublished, &m.PublishedAt,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/media: %w", err)
	}
	utc(&m.CreatedAt, &m.UpdatedAt)
	if m.PublishedAt != nil {
		utc(m.PublishedAt)
	}
	return m, nil
}
