package repo

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

type contactRepo struct {
	q db.Querier
}

// NewContactRepo returns a storage.ContactSubmissions backed by q.
func NewContactRepo(q db.Querier) storage.ContactSubmissions {
	return &contactRepo{q: q}
}

const (
	contactColumns = `id, name, email, phone, company, message, created_at, updated_at`

	sqlInsertContact = `
		INSERT INTO contact_submissions (name, email, phone, company, message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	sqlGetContactByID = `
		SELECT ` + contactColumns + `
		FROM   contact_submissions
		WHERE  id = ?`

	sqlListContacts = `
		SELECT ` + contactColumns + `
		FROM   contact_submissions
		ORDER  BY created_at DESC, id DESC`

	sqlDeleteContact = `
		DELETE FROM contact_submissions WHERE id = ?`
)

// ListContactSubmissions returns submissions newest first.
func (r *contactRepo) ListContactSubmissions(ctx context.Context) ([]*models.ContactSubmission, error) {
	return listRows(ctx, r.q, sqlListContacts, scanContact)
}

func (r *contactRepo) GetContactSubmission(ctx context.Context, id int64) (*models.ContactSubmission, error) {
	return scanContact(r.q.QueryRow(ctx, sqlGetContactByID, id))
}

func (r *contactRepo) CreateContactSubmission(ctx context.Context, params models.CreateContactSubmissionParams) (*models.ContactSubmission, error) {
	now := models.Now()
	return insertRow(ctx, r.q, sqlInsertContact, contactColumns, sqlGetContactByID, scanContact,
		params.Name, params.Email, NullString(params.Phone), NullString(params.Company), params.Message, now, now)
}

func (r *contactRepo) DeleteContactSubmission(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteContact, id)
}

func scanContact(row rowScanner) (*models.ContactSubmission, error) {
	c := &models.ContactSubmission{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Message, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/contact: %w", err)
	}
	utc(&c.CreatedAt, &c.UpdatedAt)
	return c, nil
}
