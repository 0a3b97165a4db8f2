package models

import "time"

// Job types offered on the careers page.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeInternship = "Internship"
)

// Job represents a row in the "jobs" table. Only active jobs are listed
// publicly.
type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Department   string    `json:"department"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateJobParams holds the fields required to post a job.
// IsActive defaults to true.
type CreateJobParams struct {
	Title        string `json:"title" binding:"required"`
	Department   string `json:"department" binding:"required"`
	Location     string `json:"location" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Requirements string `json:"requirements" binding:"required"`
	IsActive     *bool  `json:"isActive"`
}

// UpdateJobParams holds fields that can be updated.
type UpdateJobParams struct {
	Title        *string `json:"title" binding:"omitempty,min=1"`
	Department   *string `json:"department" binding:"omitempty,min=1"`
	Location     *string `json:"location" binding:"omitempty,min=1"`
	Type         *string `json:"type" binding:"omitempty,min=1"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	IsActive     *bool   `json:"isActive"`
}

// Application statuses. Any string is accepted on update; these are the ones
// the admin UI offers.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

// JobApplication represents a row in the "job_applications" table. JobID is a
// loose reference: deleting a job leaves its applications in place.
type JobApplication struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"jobId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ResumeURL   string    `json:"resumeUrl"`
	CoverLetter *string   `json:"coverLetter"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateJobApplicationParams holds a submitted application.
// Status defaults to ApplicationStatusPending.
type CreateJobApplicationParams struct {
	JobID       int64   `json:"jobId"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	ResumeURL   string  `json:"resumeUrl"`
	CoverLetter *string `json:"coverLetter"`
	Status      string  `json:"status"`
}

// UpdateJobApplicationParams holds fields an admin can change.
type UpdateJobApplicationParams struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	ResumeURL   *string `json:"resumeUrl"`
	CoverLetter *string `json:"coverLetter"`
	Status      *string `json:"status" binding:"omitempty,min=1"`
}
