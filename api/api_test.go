package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HasanApplore/IndoSup-sub000/auth"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/notify"
	"github.com/HasanApplore/IndoSup-sub000/storage/memory"
	"github.com/HasanApplore/IndoSup-sub000/uploads"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type env struct {
	t      *testing.T
	store  *memory.Store
	files  *uploads.Store
	events *recorder
	router *gin.Engine
	token  string
}

func newEnv(t *testing.T, tokens *auth.Issuer) *env {
	t.Helper()
	files, err := uploads.NewStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	e := &env{t: t, store: memory.New(), files: files, events: &recorder{}}
	e.router = NewRouter(Deps{
		Store:    e.store,
		Uploads:  files,
		Notifier: e.events,
		Tokens:   tokens,
	})
	return e
}

func (e *env) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	return e.serve(req)
}

func (e *env) serve(req *http.Request) *httptest.ResponseRecorder {
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// multipart posts fields plus one file under fileField. An empty fileName
// sends no file.
func (e *env) multipart(path string, fields map[string]string, fileField, fileName string, content []byte) *httptest.ResponseRecorder {
	e.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(e.t, mw.WriteField(k, v))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(e.t, err)
		_, err = part.Write(content)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.serve(req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, w).Message
}

func jobBody(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"department":   "Procurement",
		"location":     "Jakarta",
		"type":         models.JobTypeFullTime,
		"description":  "Source steel and cement.",
		"requirements": "3 years experience",
	}
}

func (e *env) createJob(title string) *models.Job {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/admin/jobs", jobBody(title))
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	return decode[*models.Job](e.t, w)
}

func (e *env) seedAdmin(email, password string) *models.AdminUser {
	e.t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(e.t, err)
	admin, err := e.store.CreateAdminUser(context.Background(), models.CreateAdminUserParams{
		Email: email, Password: hash, Name: "Ops",
	})
	require.NoError(e.t, err)
	return admin
}

// ─────────────────────────────────────────────────────────────────────────────
// Jobs
// ─────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	e := newEnv(t, nil)
	w := e.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestJobs_PublicVisibility(t *testing.T) {
	e := newEnv(t, nil)
	job := e.createJob("Procurement Officer")
	assert.EqualValues(t, 1, job.ID)
	assert.True(t, job.IsActive)

	public := decode[[]models.Job](t, e.do(http.MethodGet, "/api/jobs", nil))
	require.Len(t, public, 1)
	assert.Equal(t, "Procurement Officer", public[0].Title)

	w := e.do(http.MethodPut, "/api/admin/jobs/1", map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[models.Job](t, w).IsActive)

	w = e.do(http.MethodGet, "/api/jobs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = e.do(http.MethodGet, "/api/jobs/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", message(t, w))

	admin := decode[[]models.Job](t, e.do(http.MethodGet, "/api/admin/jobs", nil))
	assert.Len(t, admin, 1)
}

func TestJobs_Validation(t *testing.T) {
	e := newEnv(t, nil)

	body := jobBody("")
	w := e.do(http.MethodPost, "/api/admin/jobs", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid job data", message(t, w))

	w = e.do(http.MethodPost, "/api/admin/jobs", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPut, "/api/admin/jobs/1", map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobs_MissingAndBadID(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(http.MethodPut, "/api/admin/jobs/99", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", message(t, w))

	w = e.do(http.MethodDelete, "/api/admin/jobs/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodGet, "/api/admin/jobs/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", message(t, w))

	e.createJob("Buyer")
	w = e.do(http.MethodDelete, "/api/admin/jobs/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Job deleted successfully", message(t, w))
}

// ─────────────────────────────────────────────────────────────────────────────
// Applications
// ─────────────────────────────────────────────────────────────────────────────

var applicant = map[string]string{
	"name":  "Siti",
	"email": "siti@example.com",
	"phone": "+62 812 0000",
}

func TestApply_WithoutResume(t *testing.T) {
	e := newEnv(t, nil)
	e.createJob("Buyer")

	w := e.multipart("/api/jobs/1/apply", applicant, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	apps, err := e.store.ListJobApplications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestApply_MissingField(t *testing.T) {
	e := newEnv(t, nil)
	e.createJob("Buyer")

	fields := map[string]string{"name": "Siti", "email": "not-an-email", "phone": "1"}
	w := e.multipart("/api/jobs/1/apply", fields, "resume", "cv.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid application data", message(t, w))
}

func TestApply_Success(t *testing.T) {
	e := newEnv(t, nil)
	e.createJob("Buyer")

	fields := map[string]string{"coverLetter": "Hello"}
	for k, v := range applicant {
		fields[k] = v
	}
	w := e.multipart("/api/jobs/1/apply", fields, "resume", "Siti CV.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	app := decode[models.JobApplication](t, w)
	assert.EqualValues(t, 1, app.JobID)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	require.NotNil(t, app.CoverLetter)
	assert.Equal(t, "Hello", *app.CoverLetter)
	assert.True(t, strings.HasPrefix(app.ResumeURL, "/uploads/resumes/"), app.ResumeURL)

	onDisk := filepath.Join(e.files.Root(), strings.TrimPrefix(app.ResumeURL, uploads.URLPrefix+"/"))
	assert.FileExists(t, onDisk)

	assert.Equal(t, []string{notify.ApplicationReceived}, e.events.types())

	byJob := decode[[]models.JobApplication](t, e.do(http.MethodGet, "/api/admin/jobs/1/applications", nil))
	assert.Len(t, byJob, 1)

	w = e.do(http.MethodPut, "/api/admin/applications/1", map[string]any{"status": models.ApplicationStatusShortlisted})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ApplicationStatusShortlisted, decode[models.JobApplication](t, w).Status)

	w = e.do(http.MethodPost, "/api/admin/applications", map[string]any{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApply_RejectsExtensionAndInactiveJob(t *testing.T) {
	e := newEnv(t, nil)
	e.createJob("Buyer")

	w := e.multipart("/api/jobs/1/apply", applicant, "resume", "cv.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, err := os.Stat(filepath.Join(e.files.Root(), uploads.CategoryResumes))
	assert.True(t, os.IsNotExist(err))

	w = e.multipart("/api/jobs/7/apply", applicant, "resume", "cv.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	e.do(http.MethodPut, "/api/admin/jobs/1", map[string]any{"isActive": false})
	w = e.multipart("/api/jobs/1/apply", applicant, "resume", "cv.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, e.events.types())
}

func TestApply_PublishFailureStillSucceeds(t *testing.T) {
	e := newEnv(t, nil)
	e.events.err = errors.New("broker down")
	e.createJob("Buyer")

	w := e.multipart("/api/jobs/1/apply", applicant, "resume", "cv.docx", []byte("PK"))
	assert.Equal(t, http.StatusOK, w.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Catalogues, products, media
// ─────────────────────────────────────────────────────────────────────────────

func TestCatalogues_PublicActiveOnly(t *testing.T) {
	e := newEnv(t, nil)
	for i, active := range []bool{true, false} {
		w := e.do(http.MethodPost, "/api/admin/catalogues", map[string]any{
			"title":    []string{"Steel", "Cement"}[i],
			"category": "Materials",
			"fileUrl":  "/uploads/files/x.pdf",
			"fileName": "x.pdf",
			"isActive": active,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	public := decode[[]models.Catalogue](t, e.do(http.MethodGet, "/api/catalogues", nil))
	require.Len(t, public, 1)
	assert.Equal(t, "Steel", public[0].Title)

	w := e.do(http.MethodPost, "/api/admin/catalogues", map[string]any{"title": "No file"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid catalogue data", message(t, w))
}

func TestProducts_CategoryFilter(t *testing.T) {
	e := newEnv(t, nil)
	create := func(name, category string, active bool) {
		w := e.do(http.MethodPost, "/api/admin/products", map[string]any{
			"name": name, "description": "d", "category": category,
			"tags": []string{"bulk"}, "isActive": active,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	create("Rebar", "steel", true)
	create("Portland", "cement", true)
	create("Wire rod", "steel", false)

	all := decode[[]models.Product](t, e.do(http.MethodGet, "/api/products", nil))
	assert.Len(t, all, 2)

	steel := decode[[]models.Product](t, e.do(http.MethodGet, "/api/products?category=steel", nil))
	require.Len(t, steel, 1)
	assert.Equal(t, "Rebar", steel[0].Name)
	assert.Equal(t, models.StringList{"bulk"}, steel[0].Tags)

	w := e.do(http.MethodGet, "/api/products/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = e.do(http.MethodGet, "/api/admin/products/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMedia_TypeFilterAndPublishing(t *testing.T) {
	e := newEnv(t, nil)
	create := func(title, typ string, published bool) {
		w := e.do(http.MethodPost, "/api/admin/media", map[string]any{
			"title": title, "type": typ, "isPublished": published,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	create("Q3 update", models.MediaTypeBlog, true)
	create("Best supplier", models.MediaTypeAward, true)
	create("Draft", models.MediaTypeNews, false)

	assert.Len(t, decode[[]models.MediaContent](t, e.do(http.MethodGet, "/api/media", nil)), 2)

	blogs := decode[[]models.MediaContent](t, e.do(http.MethodGet, "/api/media?type=blog", nil))
	require.Len(t, blogs, 1)
	assert.NotNil(t, blogs[0].PublishedAt)

	news := decode[[]models.MediaContent](t, e.do(http.MethodGet, "/api/admin/media?type=news", nil))
	require.Len(t, news, 1)
	assert.Nil(t, news[0].PublishedAt)

	w := e.do(http.MethodGet, "/api/media/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPost, "/api/admin/media", map[string]any{"title": "Pod", "type": "podcast"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid media data", message(t, w))
}

// ─────────────────────────────────────────────────────────────────────────────
// Settings and contacts
// ─────────────────────────────────────────────────────────────────────────────

func TestSettings(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(http.MethodDelete, "/api/admin/settings/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Setting not found", message(t, w))

	w = e.do(http.MethodPost, "/api/admin/settings", map[string]any{"key": "phone", "value": "021-555"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.SettingTypeText, decode[models.SiteSetting](t, w).Type)

	w = e.do(http.MethodPost, "/api/admin/settings", map[string]any{"key": "phone", "value": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(http.MethodPost, "/api/admin/settings", map[string]any{"key": "n", "type": "date"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPut, "/api/admin/settings/phone", map[string]any{"value": "021-777"})
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[models.SiteSetting](t, e.do(http.MethodGet, "/api/settings/phone", nil))
	assert.Equal(t, "021-777", got.Value)

	w = e.do(http.MethodPut, "/api/admin/settings/missing", map[string]any{"value": "1"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodDelete, "/api/admin/settings/phone", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, e.do(http.MethodGet, "/api/settings", nil).Body.String())
}

func TestContact(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(http.MethodPost, "/api/contact", map[string]any{
		"name": "Andi", "email": "andi@example.com", "message": "Need 40t of rebar",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sub := decode[map[string]any](t, w)
	assert.NotContains(t, sub, "updatedAt")
	assert.Equal(t, []string{notify.ContactSubmitted}, e.events.types())

	w = e.do(http.MethodPost, "/api/contact", map[string]any{
		"name": "Andi", "email": "nope", "message": "m",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid contact data", message(t, w))

	list := decode[[]models.ContactSubmission](t, e.do(http.MethodGet, "/api/admin/contacts", nil))
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusOK, e.do(http.MethodDelete, "/api/admin/contacts/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/api/admin/contacts/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/admin/contacts/1", nil).Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Login, auth and uploads
// ─────────────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	e := newEnv(t, nil)
	e.seedAdmin("ops@indosup.com", "s3cret")

	w := e.do(http.MethodPost, "/api/admin/login", map[string]string{"email": "ops@indosup.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", message(t, w))

	w = e.do(http.MethodPost, "/api/admin/login", map[string]string{"email": "who@indosup.com", "password": "s3cret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/api/admin/login", `{"email":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/admin/login", map[string]string{"email": "ops@indosup.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "token")
	body := decode[loginResponse](t, w)
	assert.Equal(t, "ops@indosup.com", body.Admin.Email)
	assert.Equal(t, models.AdminRole, body.Admin.Role)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	e := newEnv(t, auth.NewIssuer("test-secret", time.Hour))
	e.seedAdmin("ops@indosup.com", "s3cret")

	w := e.do(http.MethodGet, "/api/admin/jobs", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", message(t, w))

	e.token = "garbage"
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/admin/jobs", nil).Code)
	e.token = ""

	w = e.do(http.MethodPost, "/api/admin/login", map[string]string{"email": "ops@indosup.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[loginResponse](t, w)
	require.NotEmpty(t, body.Token)

	e.token = body.Token
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/admin/jobs", nil).Code)

	me := decode[map[string]models.AdminUser](t, e.do(http.MethodGet, "/api/admin/me", nil))
	assert.Equal(t, "ops@indosup.com", me["admin"].Email)

	// Public routes never need a token.
	e.token = ""
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/jobs", nil).Code)
}

func TestRouter_WithoutUploadStore(t *testing.T) {
	e := newEnv(t, nil)
	e.router = NewRouter(Deps{Store: e.store, Notifier: e.events})
	job := e.createJob("Buyer")
	require.EqualValues(t, 1, job.ID)

	w := e.multipart("/api/admin/upload", nil, "file", "price list.pdf", []byte("x"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.multipart("/api/jobs/1/apply", map[string]string{
		"name": "Rina", "email": "rina@example.com", "phone": "0812",
	}, "resume", "cv.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, e.events.events)

	w = e.do(http.MethodGet, "/api/jobs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpload(t *testing.T) {
	e := newEnv(t, nil)

	w := e.multipart("/api/admin/upload", map[string]string{"category": "catalogues"}, "file", "price list.pdf", bytes.Repeat([]byte("x"), 1500))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	f := decode[map[string]string](t, w)
	assert.True(t, strings.HasPrefix(f["fileUrl"], "/uploads/catalogues/"), f["fileUrl"])
	assert.Equal(t, "price list.pdf", f["fileName"])
	assert.Equal(t, "1.5 kB", f["fileSize"])

	served := e.do(http.MethodGet, f["fileUrl"], nil)
	assert.Equal(t, http.StatusOK, served.Code)

	w = e.multipart("/api/admin/upload", nil, "file", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.multipart("/api/admin/upload", nil, "file", "run.sh", []byte("#!"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.multipart("/api/admin/upload", nil, "file", "big.pdf", bytes.Repeat([]byte("x"), 2<<20))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File is too large", message(t, w))
}
