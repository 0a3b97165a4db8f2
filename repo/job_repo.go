package repo

import (
	"context"
	"fmt"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

type jobRepo struct {
	q db.Querier
}

// NewJobRepo returns a storage.Jobs backed by q.
func NewJobRepo(q db.Querier) storage.Jobs {
	return &jobRepo{q: q}
}

const (
	jobColumns = `id, title, department, location, type, description, requirements, is_active, created_at, updated_at`

	sqlInsertJob = `
		INSERT INTO jobs (title, department, location, type, description, requirements, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sqlGetJobByID = `
		SELECT ` + jobColumns + `
		FROM   jobs
		WHERE  id = ?`

	sqlListJobs = `
		SELECT ` + jobColumns + `
		FROM   jobs
		ORDER  BY created_at DESC, id DESC`

	sqlDeleteJob = `
		DELETE FROM jobs WHERE id = ?`
)

// ListJobs returns every job, active or not, newest first.
func (r *jobRepo) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return listRows(ctx, r.q, sqlListJobs, scanJob)
}

func (r *jobRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	return scanJob(r.q.QueryRow(ctx, sqlGetJobByID, id))
}

// CreateJob posts a job; IsActive defaults to true.
func (r *jobRepo) CreateJob(ctx context.Context, params models.CreateJobParams) (*models.Job, error) {
	now := models.Now()
	return insertRow(ctx, r.q, sqlInsertJob, jobColumns, sqlGetJobByID, scanJob,
		params.Title, params.Department, params.Location, params.Type,
		params.Description, params.Requirements, models.BoolOr(params.IsActive, true), now, now)
}

func (r *jobRepo) UpdateJob(ctx context.Context, id int64, params models.UpdateJobParams) (*models.Job, error) {
	var b updateBuilder
	setIf(&b, "title", params.Title)
	setIf(&b, "department", params.Department)
	setIf(&b, "location", params.Location)
	setIf(&b, "type", params.Type)
	setIf(&b, "description", params.Description)
	setIf(&b, "requirements", params.Requirements)
	setIf(&b, "is_active", params.IsActive)
	return updateRow(ctx, r.q, "jobs", jobColumns, "id", id, &b, sqlGetJobByID, scanJob)
}

// DeleteJob removes the job only; its applications are kept.
func (r *jobRepo) DeleteJob(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.q, sqlDeleteJob, id)
}

func scanJob(row rowScanner) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Type,
		&j.Description, &j.Requirements, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repo/job: %w", err)
	}
	utc(&j.CreatedAt, &j.UpdatedAt)
	return j, nil
}
