// Package api is the HTTP layer: gin routes that validate requests, call
// storage and shape JSON responses.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/auth"
	"github.com/HasanApplore/IndoSup-sub000/notify"
	"github.com/HasanApplore/IndoSup-sub000/storage"
	"github.com/HasanApplore/IndoSup-sub000/uploads"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Store storage.Storage
	// Uploads stores resumes and admin files. When nil, the routes that
	// accept files (job applications and admin upload) are not registered.
	Uploads  *uploads.Store
	Notifier notify.Publisher
	// Tokens signs admin tokens. When nil, login returns no token and admin
	// routes are not authenticated.
	Tokens *auth.Issuer
	Logger *slog.Logger
}

// Handler holds the dependencies shared by every route.
type Handler struct {
	store    storage.Storage
	uploads  *uploads.Store
	notifier notify.Publisher
	tokens   *auth.Issuer
	log      *slog.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	h := &Handler{
		store:    d.Store,
		uploads:  d.Uploads,
		notifier: d.Notifier,
		tokens:   d.Tokens,
		log:      d.Logger,
	}
	if h.notifier == nil {
		h.notifier = notify.Nop{}
	}
	if h.log == nil {
		h.log = slog.Default()
	}

	r := gin.New()
	r.Use(RequestLogger(h.log), Recovery(h.log))
	r.MaxMultipartMemory = 8 << 20

	r.GET("/health", h.Health)

	pub := r.Group("/api")
	{
		pub.GET("/jobs", h.PublicJobs)
		pub.GET("/jobs/:id", h.PublicJob)

		pub.GET("/catalogues", h.PublicCatalogues)
		pub.GET("/products", h.PublicProducts)
		pub.GET("/products/:id", h.PublicProduct)
		pub.GET("/media", h.PublicMedia)
		pub.GET("/media/:id", h.PublicMediaItem)
		pub.GET("/settings", h.PublicSettings)
		pub.GET("/settings/:key", h.PublicSetting)

		pub.POST("/contact", h.SubmitContact)
	}

	r.POST("/api/admin/login", h.Login)

	admin := r.Group("/api/admin")
	if h.tokens != nil {
		admin.Use(RequireAdmin(h.tokens))
	}
	{
		admin.GET("/me", h.Me)

		jobResource(h).register(admin, "/jobs")
		admin.GET("/jobs/:id/applications", h.JobApplications)

		catalogueResource(h).register(admin, "/catalogues")
		productResource(h).register(admin, "/products")

		media := mediaResource(h)
		media.list = h.listMediaByQuery
		media.register(admin, "/media")

		applicationResource(h).register(admin, "/applications")

		admin.GET("/contacts", h.ListContacts)
		admin.GET("/contacts/:id", h.GetContact)
		admin.DELETE("/contacts/:id", h.DeleteContact)

		admin.GET("/settings", h.ListSettings)
		admin.POST("/settings", h.CreateSetting)
		admin.GET("/settings/:key", h.GetSetting)
		admin.PUT("/settings/:key", h.UpdateSetting)
		admin.DELETE("/settings/:key", h.DeleteSetting)
	}

	if h.uploads != nil {
		r.Static(uploads.URLPrefix, h.uploads.Root())
		pub.POST("/jobs/:id/apply", h.Apply)
		admin.POST("/upload", h.Upload)
	}

	return r
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
