package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/hubsync/hubsync/internal/models"
	"github.com/hubsync/hubsync/internal/storage"
)

type fakeSource struct {
	activities []models.Activity
	projects   []models.Project
	calls      []string
}

func (f *fakeSource) DailyActivities(_ context.Context, _ models.Organization, _, _ string) []models.Activity {
	f.calls = append(f.calls, "activities")
	return f.activities
}

func (f *fakeSource) Projects(_ context.Context, _ models.Organization) []models.Project {
	f.calls = append(f.calls, "projects")
	return f.projects
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testActivity(id int64) models.Activity {
	date, _ := time.Parse(models.DateFormat, "2024-01-02")
	return models.Activity{
		ID: id, Date: date, UserID: 1, ProjectID: 10, Tracked: 3600,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRunStoresFetchedRecords(t *testing.T) {
	store := newTestStore(t)
	source := &fakeSource{
		activities: []models.Activity{testActivity(1), testActivity(2)},
		projects: []models.Project{{
			ID: 10, Name: "Alpha",
			CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}},
	}

	s := New(source, store.Activities(), store.Projects(), nil)
	result, err := s.Run(context.Background(), models.Organization{ID: 7}, "2024-01-02", "2024-01-02")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Activities != 2 || result.Projects != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.CycleID == "" {
		t.Fatal("expected a cycle id")
	}

	stored, err := store.Activities().Get(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored activities, got %d", len(stored))
	}

	project, err := store.Projects().GetOne(storage.Filters{"id": int64(10)})
	if err != nil {
		t.Fatal(err)
	}
	if project == nil || project.Name != "Alpha" {
		t.Fatalf("expected stored project, got %+v", project)
	}
}

func TestRunFetchesActivitiesBeforeProjects(t *testing.T) {
	store := newTestStore(t)
	source := &fakeSource{}

	s := New(source, store.Activities(), store.Projects(), nil)
	if _, err := s.Run(context.Background(), models.Organization{ID: 7}, "", ""); err != nil {
		t.Fatal(err)
	}

	if len(source.calls) != 2 || source.calls[0] != "activities" || source.calls[1] != "projects" {
		t.Fatalf("unexpected call order: %v", source.calls)
	}
}

func TestRunEmptyFetchIsValidCycle(t *testing.T) {
	store := newTestStore(t)
	// A source whose remote calls all failed yields nil slices.
	s := New(&fakeSource{}, store.Activities(), store.Projects(), nil)

	result, err := s.Run(context.Background(), models.Organization{ID: 7}, "", "")
	if err != nil {
		t.Fatalf("empty cycle must complete: %v", err)
	}
	if result.Activities != 0 || result.Projects != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestRunReplacesRecomputedActivities(t *testing.T) {
	store := newTestStore(t)

	first := testActivity(1)
	source := &fakeSource{activities: []models.Activity{first}}
	s := New(source, store.Activities(), store.Projects(), nil)
	if _, err := s.Run(context.Background(), models.Organization{ID: 7}, "", ""); err != nil {
		t.Fatal(err)
	}

	recomputed := testActivity(1)
	recomputed.Tracked = 7200
	source.activities = []models.Activity{recomputed}
	if _, err := s.Run(context.Background(), models.Organization{ID: 7}, "", ""); err != nil {
		t.Fatal(err)
	}

	stored, err := store.Activities().GetOne(storage.Filters{"id": int64(1)})
	if err != nil {
		t.Fatal(err)
	}
	if stored.Tracked != 7200 {
		t.Fatalf("re-synced cycle must overwrite, got tracked=%d", stored.Tracked)
	}
}
