package memory

import (
	"context"
	"time"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

func cloneJob(j *models.Job) *models.Job {
	c := *j
	return &c
}

func jobKey(j *models.Job) (time.Time, int64) { return j.CreatedAt, j.ID }

func (s *Store) ListJobs(_ context.Context) ([]*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.jobs, nil, cloneJob)
	sortNewest(out, jobKey)
	return out, nil
}

func (s *Store) GetJob(_ context.Context, id int64) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneJob(j), nil
}

func (s *Store) CreateJob(_ context.Context, params models.CreateJobParams) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	j := &models.Job{
		ID:           s.jobs.nextID(),
		Title:        params.Title,
		Department:   params.Department,
		Location:     params.Location,
		Type:         params.Type,
		Description:  params.Description,
		Requirements: params.Requirements,
		IsActive:     models.BoolOr(params.IsActive, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.jobs.rows[j.ID] = j
	return cloneJob(j), nil
}

func (s *Store) UpdateJob(_ context.Context, id int64, params models.UpdateJobParams) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	setString(&j.Title, params.Title)
	setString(&j.Department, params.Department)
	setString(&j.Location, params.Location)
	setString(&j.Type, params.Type)
	setString(&j.Description, params.Description)
	setString(&j.Requirements, params.Requirements)
	if params.IsActive != nil {
		j.IsActive = *params.IsActive
	}
	j.UpdatedAt = s.touch(j.UpdatedAt)
	return cloneJob(j), nil
}

func (s *Store) DeleteJob(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs.remove(id), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Job applications
// ─────────────────────────────────────────────────────────────────────────────

func cloneApplication(a *models.JobApplication) *models.JobApplication {
	c := *a
	c.CoverLetter = cloneString(a.CoverLetter)
	return &c
}

func applicationKey(a *models.JobApplication) (time.Time, int64) { return a.CreatedAt, a.ID }

func (s *Store) ListJobApplications(_ context.Context) ([]*models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.applications, nil, cloneApplication)
	sortNewest(out, applicationKey)
	return out, nil
}

func (s *Store) ListJobApplicationsByJob(_ context.Context, jobID int64) ([]*models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := collect(&s.applications, func(a *models.JobApplication) bool { return a.JobID == jobID }, cloneApplication)
	sortNewest(out, applicationKey)
	return out, nil
}

func (s *Store) GetJobApplication(_ context.Context, id int64) (*models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.applications.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneApplication(a), nil
}

func (s *Store) CreateJobApplication(_ context.Context, params models.CreateJobApplicationParams) (*models.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	a := &models.JobApplication{
		ID:          s.applications.nextID(),
		JobID:       params.JobID,
		Name:        params.Name,
		Email:       params.Email,
		Phone:       params.Phone,
		ResumeURL:   params.ResumeURL,
		CoverLetter: cloneString(params.CoverLetter),
		Status:      models.StringOr(&params.Status, models.ApplicationStatusPending),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.applications.rows[a.ID] = a
	return cloneApplication(a), nil
}

func (s *Store) UpdateJobApplication(_ context.Context, id int64, params models.UpdateJobApplicationParams) (*models.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	setString(&a.Name, params.Name)
	setString(&a.Email, params.Email)
	setString(&a.Phone, params.Phone)
	setString(&a.ResumeURL, params.ResumeURL)
	setOptional(&a.CoverLetter, params.CoverLetter)
	setString(&a.Status, params.Status)
	a.UpdatedAt = s.touch(a.UpdatedAt)
	return cloneApplication(a), nil
}

func (s *Store) DeleteJobApplication(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applications.remove(id), nil
}

// setString overwrites *dst when v is supplied.
func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setOptional overwrites a nullable field with a private copy of v when v is
// supplied.
func setOptional(dst **string, v *string) {
	if v != nil {
		*dst = cloneString(v)
	}
}
