// Package storagetest is a behavioural test suite every storage.Storage
// implementation must pass. Implementations call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) storage.Storage

// Run exercises every entity against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	tests := []struct {
		name string
		fn   func(*testing.T, storage.Storage)
	}{
		{"Users", testUsers},
		{"AdminUsers", testAdminUsers},
		{"Seed", testSeed},
		{"ContactSubmissions", testContacts},
		{"Jobs", testJobs},
		{"JobApplications", testApplications},
		{"Catalogues", testCatalogues},
		{"Products", testProducts},
		{"MediaContent", testMedia},
		{"SiteSettings", testSettings},
		{"IndependentSequences", testIndependentSequences},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStore(t))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func ctx() context.Context { return context.Background() }

// ─────────────────────────────────────────────────────────────────────────────
// Users / admin users
// ─────────────────────────────────────────────────────────────────────────────

func testUsers(t *testing.T, s storage.Storage) {
	u, err := s.CreateUser(ctx(), models.CreateUserParams{Username: "alice", Password: "hash"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 || u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Fatalf("CreateUser returned incomplete record: %+v", u)
	}

	got, err := s.GetUserByUsername(ctx(), "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetUserByUsername id = %d, want %d", got.ID, u.ID)
	}

	if _, err := s.CreateUser(ctx(), models.CreateUserParams{Username: "alice", Password: "x"}); !storage.IsDuplicate(err) {
		t.Errorf("duplicate username: expected duplicate error, got %v", err)
	}

	upd, err := s.UpdateUser(ctx(), u.ID, models.UpdateUserParams{Username: ptr("alice2")})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if upd.Username != "alice2" || upd.Password != "hash" {
		t.Errorf("UpdateUser merged wrongly: %+v", upd)
	}
	if !upd.UpdatedAt.After(u.UpdatedAt) {
		t.Errorf("UpdateUser did not refresh updatedAt: %v -> %v", u.UpdatedAt, upd.UpdatedAt)
	}

	if _, err := s.GetUser(ctx(), 999); !storage.IsNotFound(err) {
		t.Errorf("GetUser(missing): expected not found, got %v", err)
	}
	if _, err := s.UpdateUser(ctx(), 999, models.UpdateUserParams{Username: ptr("x")}); !storage.IsNotFound(err) {
		t.Errorf("UpdateUser(missing): expected not found, got %v", err)
	}

	assertDeleted(t, "DeleteUser", func(id int64) (bool, error) { return s.DeleteUser(ctx(), id) }, u.ID)
	list, err := s.ListUsers(ctx())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListUsers after delete = %d rows, want 0", len(list))
	}
}

func testAdminUsers(t *testing.T, s storage.Storage) {
	a, err := s.CreateAdminUser(ctx(), models.CreateAdminUserParams{
		Email: "admin@indosup.com", Password: "hash", Name: "Admin",
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}
	if a.Role != models.AdminRole {
		t.Errorf("Role = %q, want default %q", a.Role, models.AdminRole)
	}

	b, err := s.CreateAdminUser(ctx(), models.CreateAdminUserParams{
		Email: "editor@indosup.com", Password: "hash", Name: "Editor", Role: "editor",
	})
	if err != nil {
		t.Fatalf("CreateAdminUser(editor): %v", err)
	}

	if _, err := s.CreateAdminUser(ctx(), models.CreateAdminUserParams{
		Email: "admin@indosup.com", Password: "x", Name: "Dup",
	}); !storage.IsDuplicate(err) {
		t.Errorf("duplicate email: expected duplicate error, got %v", err)
	}
	if _, err := s.UpdateAdminUser(ctx(), b.ID, models.UpdateAdminUserParams{Email: ptr("admin@indosup.com")}); !storage.IsDuplicate(err) {
		t.Errorf("update to taken email: expected duplicate error, got %v", err)
	}

	got, err := s.GetAdminUserByEmail(ctx(), "editor@indosup.com")
	if err != nil {
		t.Fatalf("GetAdminUserByEmail: %v", err)
	}
	if got.ID != b.ID || got.Password != "hash" {
		t.Errorf("GetAdminUserByEmail = %+v", got)
	}
	if _, err := s.GetAdminUserByEmail(ctx(), "nobody@indosup.com"); !storage.IsNotFound(err) {
		t.Errorf("GetAdminUserByEmail(missing): expected not found, got %v", err)
	}

	upd, err := s.UpdateAdminUser(ctx(), a.ID, models.UpdateAdminUserParams{Name: ptr("Root")})
	if err != nil {
		t.Fatalf("UpdateAdminUser: %v", err)
	}
	if upd.Name != "Root" || upd.Email != a.Email {
		t.Errorf("UpdateAdminUser merged wrongly: %+v", upd)
	}

	list, err := s.ListAdminUsers(ctx())
	if err != nil {
		t.Fatalf("ListAdminUsers: %v", err)
	}
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Errorf("ListAdminUsers not ordered by id: %+v", list)
	}
	assertDeleted(t, "DeleteAdminUser", func(id int64) (bool, error) { return s.DeleteAdminUser(ctx(), id) }, b.ID)
}

func testSeed(t *testing.T, s storage.Storage) {
	admin := models.CreateAdminUserParams{Email: "admin@indosup.com", Password: "hash", Name: "Admin"}
	created, err := storage.Seed(ctx(), s, admin)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !created {
		t.Error("first Seed should create the admin")
	}
	created, err = storage.Seed(ctx(), s, admin)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if created {
		t.Error("second Seed should be a no-op")
	}
	list, _ := s.ListAdminUsers(ctx())
	if len(list) != 1 {
		t.Errorf("admins after two seeds = %d, want 1", len(list))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Contacts
// ─────────────────────────────────────────────────────────────────────────────

func testContacts(t *testing.T, s storage.Storage) {
	first, err := s.CreateContactSubmission(ctx(), models.CreateContactSubmissionParams{
		Name: "Budi", Email: "budi@example.com", Message: "Need 500 bags of cement",
	})
	if err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}
	if first.Phone != nil || first.Company != nil {
		t.Errorf("optional fields should stay nil: %+v", first)
	}
	if first.CreatedAt.IsZero() || !first.UpdatedAt.Equal(first.CreatedAt) {
		t.Errorf("submission timestamps = %v / %v, want equal and set", first.CreatedAt, first.UpdatedAt)
	}
	second, err := s.CreateContactSubmission(ctx(), models.CreateContactSubmissionParams{
		Name: "Sari", Email: "sari@example.com", Company: ptr("PT Bangun"), Message: "Quote for rebar",
	})
	if err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}

	list, err := s.ListContactSubmissions(ctx())
	if err != nil {
		t.Fatalf("ListContactSubmissions: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Errorf("ListContactSubmissions not newest first: %+v", list)
	}
	got, err := s.GetContactSubmission(ctx(), second.ID)
	if err != nil {
		t.Fatalf("GetContactSubmission: %v", err)
	}
	if got.Company == nil || *got.Company != "PT Bangun" {
		t.Errorf("Company = %v", got.Company)
	}
	assertDeleted(t, "DeleteContactSubmission", func(id int64) (bool, error) { return s.DeleteContactSubmission(ctx(), id) }, first.ID)
}

// ─────────────────────────────────────────────────────────────────────────────
// Jobs / applications
// ─────────────────────────────────────────────────────────────────────────────

func newJob(title string) models.CreateJobParams {
	return models.CreateJobParams{
		Title:        title,
		Department:   "Operations",
		Location:     "Jakarta",
		Type:         models.JobTypeFullTime,
		Description:  "Coordinate procurement",
		Requirements: "3+ years",
	}
}

func testJobs(t *testing.T, s storage.Storage) {
	j1, err := s.CreateJob(ctx(), newJob("Buyer"))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if !j1.IsActive {
		t.Error("new job should default to active")
	}
	inactive := newJob("Site Engineer")
	inactive.IsActive = ptr(false)
	j2, err := s.CreateJob(ctx(), inactive)
	if err != nil {
		t.Fatalf("CreateJob(inactive): %v", err)
	}
	if j2.IsActive {
		t.Error("explicit isActive=false was ignored")
	}

	list, err := s.ListJobs(ctx())
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(list) != 2 || list[0].ID != j2.ID || list[1].ID != j1.ID {
		t.Errorf("ListJobs not newest first: %+v", list)
	}

	upd, err := s.UpdateJob(ctx(), j1.ID, models.UpdateJobParams{IsActive: ptr(false), Location: ptr("Surabaya")})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if upd.IsActive || upd.Location != "Surabaya" || upd.Title != "Buyer" {
		t.Errorf("UpdateJob merged wrongly: %+v", upd)
	}
	if !upd.CreatedAt.Equal(j1.CreatedAt) {
		t.Errorf("UpdateJob changed createdAt: %v -> %v", j1.CreatedAt, upd.CreatedAt)
	}
	if !upd.UpdatedAt.After(j1.UpdatedAt) {
		t.Error("UpdateJob did not refresh updatedAt")
	}

	// An update with no fields still succeeds and refreshes updatedAt.
	same, err := s.UpdateJob(ctx(), j1.ID, models.UpdateJobParams{})
	if err != nil {
		t.Fatalf("UpdateJob(empty): %v", err)
	}
	if !same.UpdatedAt.After(upd.UpdatedAt) {
		t.Error("empty UpdateJob did not refresh updatedAt")
	}

	// Back-to-back updates land within one clock tick; each must still move
	// updatedAt forward.
	prev := same.UpdatedAt
	for i := 0; i < 200; i++ {
		next, err := s.UpdateJob(ctx(), j1.ID, models.UpdateJobParams{})
		if err != nil {
			t.Fatalf("UpdateJob #%d: %v", i, err)
		}
		if !next.UpdatedAt.After(prev) {
			t.Fatalf("UpdateJob #%d: updatedAt %v is not after %v", i, next.UpdatedAt, prev)
		}
		prev = next.UpdatedAt
	}

	if _, err := s.UpdateJob(ctx(), 999, models.UpdateJobParams{Title: ptr("x")}); !storage.IsNotFound(err) {
		t.Errorf("UpdateJob(missing): expected not found, got %v", err)
	}
	assertDeleted(t, "DeleteJob", func(id int64) (bool, error) { return s.DeleteJob(ctx(), id) }, j1.ID)
	if _, err := s.GetJob(ctx(), j1.ID); !storage.IsNotFound(err) {
		t.Errorf("GetJob after delete: expected not found, got %v", err)
	}
}

func testApplications(t *testing.T, s storage.Storage) {
	job, err := s.CreateJob(ctx(), newJob("Buyer"))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	other, err := s.CreateJob(ctx(), newJob("Estimator"))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	apply := func(jobID int64, name string) *models.JobApplication {
		t.Helper()
		a, err := s.CreateJobApplication(ctx(), models.CreateJobApplicationParams{
			JobID: jobID, Name: name, Email: name + "@example.com", Phone: "0812",
			ResumeURL: "/uploads/resumes/" + name + ".pdf",
		})
		if err != nil {
			t.Fatalf("CreateJobApplication: %v", err)
		}
		return a
	}
	a1 := apply(job.ID, "dewi")
	if a1.Status != models.ApplicationStatusPending {
		t.Errorf("Status = %q, want %q", a1.Status, models.ApplicationStatusPending)
	}
	a2 := apply(job.ID, "eko")
	apply(other.ID, "fajar")

	byJob, err := s.ListJobApplicationsByJob(ctx(), job.ID)
	if err != nil {
		t.Fatalf("ListJobApplicationsByJob: %v", err)
	}
	if len(byJob) != 2 || byJob[0].ID != a2.ID {
		t.Errorf("ListJobApplicationsByJob = %+v", byJob)
	}
	all, err := s.ListJobApplications(ctx())
	if err != nil {
		t.Fatalf("ListJobApplications: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListJobApplications = %d rows, want 3", len(all))
	}

	upd, err := s.UpdateJobApplication(ctx(), a1.ID, models.UpdateJobApplicationParams{Status: ptr(models.ApplicationStatusShortlisted)})
	if err != nil {
		t.Fatalf("UpdateJobApplication: %v", err)
	}
	if upd.Status != models.ApplicationStatusShortlisted || upd.Name != "dewi" {
		t.Errorf("UpdateJobApplication merged wrongly: %+v", upd)
	}

	// Applications are not cascaded when their job goes away.
	if _, err := s.DeleteJob(ctx(), job.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if _, err := s.GetJobApplication(ctx(), a1.ID); err != nil {
		t.Errorf("application should survive job deletion: %v", err)
	}
	assertDeleted(t, "DeleteJobApplication", func(id int64) (bool, error) { return s.DeleteJobApplication(ctx(), id) }, a1.ID)
}

// ─────────────────────────────────────────────────────────────────────────────
// Catalogues / products / media
// ─────────────────────────────────────────────────────────────────────────────

func testCatalogues(t *testing.T, s storage.Storage) {
	c, err := s.CreateCatalogue(ctx(), models.CreateCatalogueParams{
		Title: "Cement 2025", Category: "materials", FileURL: "/uploads/catalogues/cement.pdf",
		FileName: "cement.pdf", FileSize: ptr("2.1 MB"),
	})
	if err != nil {
		t.Fatalf("CreateCatalogue: %v", err)
	}
	if !c.IsActive || c.Description != nil {
		t.Errorf("CreateCatalogue defaults wrong: %+v", c)
	}
	upd, err := s.UpdateCatalogue(ctx(), c.ID, models.UpdateCatalogueParams{Description: ptr("Full range")})
	if err != nil {
		t.Fatalf("UpdateCatalogue: %v", err)
	}
	if upd.Description == nil || *upd.Description != "Full range" || upd.FileSize == nil {
		t.Errorf("UpdateCatalogue merged wrongly: %+v", upd)
	}
	list, err := s.ListCatalogues(ctx())
	if err != nil || len(list) != 1 {
		t.Fatalf("ListCatalogues = %v, %v", list, err)
	}
	assertDeleted(t, "DeleteCatalogue", func(id int64) (bool, error) { return s.DeleteCatalogue(ctx(), id) }, c.ID)
}

func testProducts(t *testing.T, s storage.Storage) {
	p, err := s.CreateProduct(ctx(), models.CreateProductParams{
		Name: "Portland Cement", Description: "Type I", Category: "cement",
		Tags: models.StringList{"bulk", "bagged"},
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if len(p.Tags) != 2 || p.Tags[1] != "bagged" {
		t.Errorf("Tags = %v", p.Tags)
	}

	bare, err := s.CreateProduct(ctx(), models.CreateProductParams{Name: "Rebar", Description: "D13", Category: "steel"})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if bare.Tags == nil || len(bare.Tags) != 0 {
		t.Errorf("missing tags should read back as an empty list, got %#v", bare.Tags)
	}

	// Mutating a returned record must not leak into the store.
	p.Tags[0] = "mutated"
	again, err := s.GetProduct(ctx(), p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if again.Tags[0] != "bulk" {
		t.Errorf("store shares tag slice with caller: %v", again.Tags)
	}

	tags := models.StringList{"bulk"}
	upd, err := s.UpdateProduct(ctx(), p.ID, models.UpdateProductParams{Tags: &tags, Subcategory: ptr("OPC")})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if len(upd.Tags) != 1 || upd.Subcategory == nil || *upd.Subcategory != "OPC" || upd.Name != "Portland Cement" {
		t.Errorf("UpdateProduct merged wrongly: %+v", upd)
	}
	assertDeleted(t, "DeleteProduct", func(id int64) (bool, error) { return s.DeleteProduct(ctx(), id) }, p.ID)
}

func testMedia(t *testing.T, s storage.Storage) {
	blog, err := s.CreateMediaContent(ctx(), models.CreateMediaContentParams{
		Title: "Supply chain notes", Type: models.MediaTypeBlog, Tags: models.StringList{"logistics"},
	})
	if err != nil {
		t.Fatalf("CreateMediaContent: %v", err)
	}
	if !blog.IsPublished || blog.PublishedAt == nil {
		t.Errorf("new media should default to published with a timestamp: %+v", blog)
	}

	draft, err := s.CreateMediaContent(ctx(), models.CreateMediaContentParams{
		Title: "Best Supplier 2024", Type: models.MediaTypeAward, IsPublished: ptr(false),
	})
	if err != nil {
		t.Fatalf("CreateMediaContent(draft): %v", err)
	}
	if draft.IsPublished || draft.PublishedAt != nil {
		t.Errorf("draft should be unpublished without timestamp: %+v", draft)
	}

	awards, err := s.ListMediaContentByType(ctx(), models.MediaTypeAward)
	if err != nil {
		t.Fatalf("ListMediaContentByType: %v", err)
	}
	if len(awards) != 1 || awards[0].ID != draft.ID {
		t.Errorf("ListMediaContentByType(award) = %+v", awards)
	}
	all, err := s.ListMediaContent(ctx())
	if err != nil {
		t.Fatalf("ListMediaContent: %v", err)
	}
	if len(all) != 2 || all[0].ID != draft.ID {
		t.Errorf("ListMediaContent not newest first: %+v", all)
	}

	pub, err := s.UpdateMediaContent(ctx(), draft.ID, models.UpdateMediaContentParams{IsPublished: ptr(true)})
	if err != nil {
		t.Fatalf("UpdateMediaContent: %v", err)
	}
	if !pub.IsPublished || pub.PublishedAt == nil {
		t.Errorf("publishing should stamp publishedAt: %+v", pub)
	}

	stamp := *blog.PublishedAt
	kept, err := s.UpdateMediaContent(ctx(), blog.ID, models.UpdateMediaContentParams{Summary: ptr("Short")})
	if err != nil {
		t.Fatalf("UpdateMediaContent: %v", err)
	}
	if kept.PublishedAt == nil || !kept.PublishedAt.Equal(stamp) {
		t.Errorf("unrelated update moved publishedAt: %v -> %v", stamp, kept.PublishedAt)
	}
	if len(kept.Tags) != 1 || kept.Tags[0] != "logistics" {
		t.Errorf("Tags = %v", kept.Tags)
	}
	assertDeleted(t, "DeleteMediaContent", func(id int64) (bool, error) { return s.DeleteMediaContent(ctx(), id) }, blog.ID)
}

// ─────────────────────────────────────────────────────────────────────────────
// Site settings
// ─────────────────────────────────────────────────────────────────────────────

func testSettings(t *testing.T, s storage.Storage) {
	st, err := s.CreateSiteSetting(ctx(), models.CreateSiteSettingParams{Key: "company_phone", Value: "+62 21 555"})
	if err != nil {
		t.Fatalf("CreateSiteSetting: %v", err)
	}
	if st.Type != models.SettingTypeText {
		t.Errorf("Type = %q, want default %q", st.Type, models.SettingTypeText)
	}
	if _, err := s.CreateSiteSetting(ctx(), models.CreateSiteSettingParams{Key: "company_phone", Value: "dup"}); !storage.IsDuplicate(err) {
		t.Errorf("duplicate key: expected duplicate error, got %v", err)
	}
	if _, err := s.CreateSiteSetting(ctx(), models.CreateSiteSettingParams{
		Key: "show_banner", Value: "true", Type: models.SettingTypeBoolean,
	}); err != nil {
		t.Fatalf("CreateSiteSetting: %v", err)
	}

	upd, err := s.UpdateSiteSetting(ctx(), "company_phone", models.UpdateSiteSettingParams{Value: ptr("+62 21 777")})
	if err != nil {
		t.Fatalf("UpdateSiteSetting: %v", err)
	}
	if upd.Value != "+62 21 777" || upd.Key != "company_phone" || upd.ID != st.ID {
		t.Errorf("UpdateSiteSetting = %+v", upd)
	}
	if _, err := s.UpdateSiteSetting(ctx(), "missing", models.UpdateSiteSettingParams{Value: ptr("x")}); !storage.IsNotFound(err) {
		t.Errorf("UpdateSiteSetting(missing): expected not found, got %v", err)
	}

	list, err := s.ListSiteSettings(ctx())
	if err != nil {
		t.Fatalf("ListSiteSettings: %v", err)
	}
	if len(list) != 2 || list[0].Key != "company_phone" {
		t.Errorf("ListSiteSettings = %+v", list)
	}

	ok, err := s.DeleteSiteSetting(ctx(), "nonexistent")
	if err != nil || ok {
		t.Errorf("DeleteSiteSetting(missing) = %v, %v; want false, nil", ok, err)
	}
	ok, err = s.DeleteSiteSetting(ctx(), "company_phone")
	if err != nil || !ok {
		t.Errorf("DeleteSiteSetting = %v, %v; want true, nil", ok, err)
	}
	if _, err := s.GetSiteSetting(ctx(), "company_phone"); !storage.IsNotFound(err) {
		t.Errorf("GetSiteSetting after delete: expected not found, got %v", err)
	}
}

func testIndependentSequences(t *testing.T, s storage.Storage) {
	j, err := s.CreateJob(ctx(), newJob("Buyer"))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	c, err := s.CreateContactSubmission(ctx(), models.CreateContactSubmissionParams{
		Name: "a", Email: "a@example.com", Message: "hi",
	})
	if err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}
	if j.ID != 1 || c.ID != 1 {
		t.Errorf("each entity should number from 1: job=%d contact=%d", j.ID, c.ID)
	}
}

// assertDeleted deletes id, expects success, and expects a second delete to
// report false without error.
func assertDeleted(t *testing.T, name string, del func(int64) (bool, error), id int64) {
	t.Helper()
	ok, err := del(id)
	if err != nil || !ok {
		t.Errorf("%s(%d) = %v, %v; want true, nil", name, id, ok, err)
	}
	ok, err = del(id)
	if err != nil || ok {
		t.Errorf("%s(%d) twice = %v, %v; want false, nil", name, id, ok, err)
	}
}
