package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/notify"
	"github.com/HasanApplore/IndoSup-sub000/storage"
	"github.com/HasanApplore/IndoSup-sub000/uploads"
)

func jobResource(h *Handler) resource[models.Job, models.CreateJobParams, models.UpdateJobParams] {
	return resource[models.Job, models.CreateJobParams, models.UpdateJobParams]{
		h:      h,
		entity: "job",
		list:   listAll(h.store.ListJobs),
		get:    h.store.GetJob,
		create: h.store.CreateJob,
		update: h.store.UpdateJob,
		remove: h.store.DeleteJob,
	}
}

// PublicJobs lists active jobs.
func (h *Handler) PublicJobs(c *gin.Context) {
	jobs, err := h.store.ListJobs(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, filter(jobs, func(j *models.Job) bool { return j.IsActive }))
}

// PublicJob returns one active job; inactive jobs are reported as missing.
func (h *Handler) PublicJob(c *gin.Context) {
	job, ok := h.activeJob(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) activeJob(c *gin.Context) (*models.Job, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	job, err := h.store.GetJob(c.Request.Context(), id)
	if err == nil && !job.IsActive {
		err = storage.ErrNotFound
	}
	if err != nil {
		h.fail(c, err, "job")
		return nil, false
	}
	return job, true
}

// applyForm is the multipart body of a job application. The resume file is
// read separately.
type applyForm struct {
	Name        string `form:"name" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	Phone       string `form:"phone" binding:"required"`
	CoverLetter string `form:"coverLetter"`
}

// Apply stores a resume and records an application against an active job.
func (h *Handler) Apply(c *gin.Context) {
	var form applyForm
	if err := c.ShouldBind(&form); err != nil {
		invalid(c, "application")
		return
	}
	resume, err := c.FormFile("resume")
	if err != nil {
		abort(c, http.StatusBadRequest, "Resume file is required")
		return
	}

	job, ok := h.activeJob(c)
	if !ok {
		return
	}

	file, err := h.uploads.Save(resume, uploads.CategoryResumes, uploads.ResumeExtensions)
	switch {
	case errors.Is(err, uploads.ErrExtension):
		abort(c, http.StatusBadRequest, "Resume must be a PDF, DOC, DOCX, TXT or RTF file")
		return
	case errors.Is(err, uploads.ErrTooLarge):
		abort(c, http.StatusBadRequest, "Resume file is too large")
		return
	case err != nil:
		h.serverError(c, err)
		return
	}

	params := models.CreateJobApplicationParams{
		JobID:     job.ID,
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		ResumeURL: file.URL,
	}
	if form.CoverLetter != "" {
		params.CoverLetter = &form.CoverLetter
	}
	app, err := h.store.CreateJobApplication(c.Request.Context(), params)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.publish(c, notify.NewEvent(notify.ApplicationReceived, app.ID, app))
	c.JSON(http.StatusOK, app)
}

// ─────────────────────────────────────────────────────────────────────────────
// Admin: applications
// ─────────────────────────────────────────────────────────────────────────────

func applicationResource(h *Handler) resource[models.JobApplication, models.CreateJobApplicationParams, models.UpdateJobApplicationParams] {
	return resource[models.JobApplication, models.CreateJobApplicationParams, models.UpdateJobApplicationParams]{
		h:      h,
		entity: "application",
		list:   listAll(h.store.ListJobApplications),
		get:    h.store.GetJobApplication,
		update: h.store.UpdateJobApplication,
		remove: h.store.DeleteJobApplication,
	}
}

// JobApplications lists the applications for one job. The job itself may
// have been deleted since.
func (h *Handler) JobApplications(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	apps, err := h.store.ListJobApplicationsByJob(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// publish sends ev and logs a failure; notifications never affect the
// response.
func (h *Handler) publish(c *gin.Context, ev notify.Event) {
	if err := h.notifier.Publish(c.Request.Context(), ev); err != nil {
		h.log.WarnContext(c.Request.Context(), "event publish failed",
			"type", ev.Type, "entity_id", ev.EntityID, "error", err)
	}
}

// filter returns the items keep accepts, never nil.
func filter[T any](items []*T, keep func(*T) bool) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
