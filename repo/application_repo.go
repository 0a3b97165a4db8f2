package repo

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

type applicationRepo struct {
	q db.Querier
}

// NewApplicationRepo returns a storage.JobApplications backed by q.
func NewApplicationRepo(q db.Querier) storage.JobApplications {
	return &applicationRepo{q: q}
}

const (
	applicationColumns = `id, job_id, name, email, phone, resume_url, cover_letter, status, created_at, updated_at`

	sqlInsertApplication = `
		INSERT INTO job_applications (job_id, name, email, phone, resume_url, cover_letter, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sqlGetApplicationByID = `
		SELECT ` + applicationColumns + `
		FROM   job_applications
		WHERE  id = ?`

	sqlListApplications = `
		SELECT ` + applicationColumns + `
		FROM   job_applications
		ORDER  BY created_at DESC, id DESC`

	sqlListApplicationsByJob = `
		SELECT ` + applicationColumns + `
		FROM   job_applications
		WHERE  job_id = ?
		ORDER  BY created_at DESC, id DESC`

	sqlDeleteApplication = `
		DELETE FROM job_applications WHERE id = ?`
)

func (r *applicationRepo) ListJobApplications(ctx context.Context) ([]*models.JobApplication, error) {
	return listRows(ctx, r.q, sqlListApplications, scanApplication)
}

func (r *applicationRepo) ListJobApplicationsByJob(ctx context.Context, jobID int64) ([]*models.JobApplication, error) {
	return listRows(ctx, r.q, sqlListApplicationsByJob, scanApplication, jobID)
}

func (r *applicationRepo) GetJobApplication(ctx context.Context, id int64) (*models.JobApplication, error) {
	return scanApplication(r.q.QueryRow(ctx, sqlGetApplicationByID, id))
}

// CreateJobApplication stores an application; Status defaults to pending.
func (r *applicationRepo) CreateJobApplication(ctx context.Context, params models.CreateJobApplicationParams) (*models.JobApplication, error) {
	now := models.Now()
	status := models.StringOr(&params.Status, models.ApplicationStatusPending)
	return insertRow(ctx, r.q, sqlInsertApplication, applicationColumns, sqlGetApplicationByID, scanApplication,
		params.JobID, params.Name, params.Email, params.Phone, params.ResumeURL,
		NullString(params.CoverLetter), status, now, now)
}

func (r *applicationRepo) UpdateJobApplication(ctx context.Context, id int64, params models.UpdateJobApplicationParams) (*models.JobApplication, error) {
	var b updateBuilder
	setIf(&b, "name", params.Name)
	setIf(&b, "email", params.Email)
	setIf(&b, "phone", params.Phone)
	setIf(&b, "resume_url", params.ResumeURL)
	setIf(&b, "cover_letter", params.CoverLetter)
	setIf(&b, "status", params.Status)
	return updateRow(ctx, r.q, "job_applications", applicationColumns, "id", id, &b, sqlGetApplicationByID, scanApplication)
}

func (r *applicationRepo) DeleteJobApplication(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteApplication, id)
}

func scanApplication(row rowScanner) (*models.JobApplication, error) {
	a := &models.JobApplication{}
	err := row.Scan(&a.ID, &a.JobID, &a.Name, &a.Email, &a.Phone, &a.ResumeURL,
		&a.CoverLetter, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/job_application: %w", err)
	}
	utc(&a.CreatedAt, &a.UpdatedAt)
	return a, nil
}
