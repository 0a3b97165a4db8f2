// Package storage defines the persistence contract shared by the in-memory
// and relational content stores.
//
// Implementations perform no validation: callers hand them params that have
// already passed request binding. Get and Update on a missing identity
// return ErrNotFound; Delete reports a missing identity as (false, nil).
package storage

import (
	"context"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
)

// ErrNotFound is returned by Get and Update when no record matches.
var ErrNotFound = db.ErrNotFound

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool { return db.IsNotFound(err) }

// IsDuplicate reports whether err is a unique-key violation.
func IsDuplicate(err error) bool { return db.IsDuplicateKey(err) }

// Users persists site users.
type Users interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, params models.UpdateUserParams) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// AdminUsers persists back-office accounts.
type AdminUsers interface {
	ListAdminUsers(ctx context.Context) ([]*models.AdminUser, error)
	GetAdminUser(ctx context.Context, id int64) (*models.AdminUser, error)
	GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CreateAdminUser(ctx context.Context, params models.CreateAdminUserParams) (*models.AdminUser, error)
	UpdateAdminUser(ctx context.Context, id int64, params models.UpdateAdminUserParams) (*models.AdminUser, error)
	DeleteAdminUser(ctx context.Context, id int64) (bool, error)
}

// ContactSubmissions persists contact-form submissions. They are never
// updated.
type ContactSubmissions interface {
	ListContactSubmissions(ctx context.Context) ([]*models.ContactSubmission, error)
	GetContactSubmission(ctx context.Context, id int64) (*models.ContactSubmission, error)
	CreateContactSubmission(ctx context.Context, params models.CreateContactSubmissionParams) (*models.ContactSubmission, error)
	DeleteContactSubmission(ctx context.Context, id int64) (bool, error)
}

// Jobs persists job postings.
type Jobs interface {
	ListJobs(ctx context.Context) ([]*models.Job, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	CreateJob(ctx context.Context, params models.CreateJobParams) (*models.Job, error)
	UpdateJob(ctx context.Context, id int64, params models.UpdateJobParams) (*models.Job, error)
	DeleteJob(ctx context.Context, id int64) (bool, error)
}

// JobApplications persists applications submitted against jobs.
type JobApplications interface {
	ListJobApplications(ctx context.Context) ([]*models.JobApplication, error)
	ListJobApplicationsByJob(ctx context.Context, jobID int64) ([]*models.JobApplication, error)
	GetJobApplication(ctx context.Context, id int64) (*models.JobApplication, error)
	CreateJobApplication(ctx context.Context, params models.CreateJobApplicationParams) (*models.JobApplication, error)
	UpdateJobApplication(ctx context.Context, id int64, params models.UpdateJobApplicationParams) (*models.JobApplication, error)
	DeleteJobApplication(ctx context.Context, id int64) (bool, error)
}

// Catalogues persists downloadable catalogues.
type Catalogues interface {
	ListCatalogues(ctx context.Context) ([]*models.Catalogue, error)
	GetCatalogue(ctx context.Context, id int64) (*models.Catalogue, error)
	CreateCatalogue(ctx context.Context, params models.CreateCatalogueParams) (*models.Catalogue, error)
	UpdateCatalogue(ctx context.Context, id int64, params models.UpdateCatalogueParams) (*models.Catalogue, error)
	DeleteCatalogue(ctx context.Context, id int64) (bool, error)
}

// Products persists the product catalogue.
type Products interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, params models.CreateProductParams) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, params models.UpdateProductParams) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
}

// MediaContent persists blog posts, awards, news and case studies.
type MediaContent interface {
	ListMediaContent(ctx context.Context) ([]*models.MediaContent, error)
	ListMediaContentByType(ctx context.Context, mediaType string) ([]*models.MediaContent, error)
	GetMediaContent(ctx context.Context, id int64) (*models.MediaContent, error)
	CreateMediaContent(ctx context.Context, params models.CreateMediaContentParams) (*models.MediaContent, error)
	UpdateMediaContent(ctx context.Context, id int64, params models.UpdateMediaContentParams) (*models.MediaContent, error)
	DeleteMediaContent(ctx context.Context, id int64) (bool, error)
}

// SiteSettings persists key/value site configuration. The key is the
// identity for every operation.
type SiteSettings interface {
	ListSiteSettings(ctx context.Context) ([]*models.SiteSetting, error)
	GetSiteSetting(ctx context.Context, key string) (*models.SiteSetting, error)
	CreateSiteSetting(ctx context.Context, params models.CreateSiteSettingParams) (*models.SiteSetting, error)
	UpdateSiteSetting(ctx context.Context, key string, params models.UpdateSiteSettingParams) (*models.SiteSetting, error)
	DeleteSiteSetting(ctx context.Context, key string) (bool, error)
}

// Storage is the full content store consumed by the HTTP layer.
type Storage interface {
	Users
	AdminUsers
	ContactSubmissions
	Jobs
	JobApplications
	Catalogues
	Products
	MediaContent
	SiteSettings
}
