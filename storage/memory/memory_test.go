package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
	"github.com/HasanApplore/IndoSup-sub000/storage/memory"
	"github.com/HasanApplore/IndoSup-sub000/storage/storagetest"
)

// frozen is a clock that never advances, so every write shares one instant.
func frozen() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return memory.New() })
}

func TestStore_ContractFrozenClock(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return memory.New(memory.WithClock(frozen))
	})
}

func TestStore_BackToBackUpdatesAdvanceUpdatedAt(t *testing.T) {
	ctx := context.Background()
	for _, clock := range []struct {
		name  string
		store *memory.Store
	}{
		{"system", memory.New()},
		{"frozen", memory.New(memory.WithClock(frozen))},
	} {
		t.Run(clock.name, func(t *testing.T) {
			j, err := clock.store.CreateJob(ctx, models.CreateJobParams{
				Title: "Buyer", Department: "Ops", Location: "Jakarta", Type: models.JobTypeFullTime,
				Description: "d", Requirements: "r",
			})
			if err != nil {
				t.Fatalf("CreateJob: %v", err)
			}
			prev := j.UpdatedAt
			for i := 0; i < 2000; i++ {
				upd, err := clock.store.UpdateJob(ctx, j.ID, models.UpdateJobParams{})
				if err != nil {
					t.Fatalf("UpdateJob #%d: %v", i, err)
				}
				if !upd.UpdatedAt.After(prev) {
					t.Fatalf("UpdateJob #%d: updatedAt %v is not after %v", i, upd.UpdatedAt, prev)
				}
				prev = upd.UpdatedAt
			}
		})
	}
}

func TestStore_FrozenClockUpdateKeepsCreatedAt(t *testing.T) {
	s := memory.New(memory.WithClock(frozen))
	ctx := context.Background()

	st, err := s.CreateSiteSetting(ctx, models.CreateSiteSettingParams{Key: "phone", Value: "021"})
	if err != nil {
		t.Fatalf("CreateSiteSetting: %v", err)
	}
	upd, err := s.UpdateSiteSetting(ctx, "phone", models.UpdateSiteSettingParams{Value: ptr("022")})
	if err != nil {
		t.Fatalf("UpdateSiteSetting: %v", err)
	}
	if !upd.CreatedAt.Equal(frozen()) {
		t.Errorf("CreatedAt = %v, want %v", upd.CreatedAt, frozen())
	}
	if want := st.UpdatedAt.Add(time.Microsecond); !upd.UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", upd.UpdatedAt, want)
	}
}

func ptr[T any](v T) *T { return &v }

func TestStore_ConcurrentCreates(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateContactSubmission(ctx, models.CreateContactSubmissionParams{
				Name: "n", Email: "n@example.com", Message: "m",
			})
			if err != nil {
				t.Errorf("CreateContactSubmission: %v", err)
			}
		}()
	}
	wg.Wait()

	list, err := s.ListContactSubmissions(ctx)
	if err != nil {
		t.Fatalf("ListContactSubmissions: %v", err)
	}
	if len(list) != n {
		t.Fatalf("got %d submissions, want %d", len(list), n)
	}
	seen := make(map[int64]bool, n)
	for _, c := range list {
		if seen[c.ID] {
			t.Fatalf("duplicate id %d", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	j, err := s.CreateJob(ctx, models.CreateJobParams{
		Title: "Buyer", Department: "Ops", Location: "Jakarta", Type: models.JobTypeFullTime,
		Description: "d", Requirements: "r",
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	j.Title = "changed"

	got, err := s.GetJob(ctx, j.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.Title != "Buyer" {
		t.Errorf("Title = %q; caller mutation leaked into the store", got.Title)
	}
}
