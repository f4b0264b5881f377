package storage

import (
	"testing"
	"time"

	"github.com/hubsync/hubsync/internal/models"
)

func testActivity(id int64, day string, tracked int64) models.Activity {
	date, _ := time.Parse(models.DateFormat, day)
	return models.Activity{
		ID:           id,
		Date:         date,
		UserID:       1,
		ProjectID:    10,
		TaskID:       100,
		Keyboard:     50,
		Mouse:        60,
		Overall:      110,
		Tracked:      tracked,
		InputTracked: 110,
		Manual:       true,
		Idle:         5,
		Resumed:      2,
		Billable:     true,
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 2, 6, 7, 8, 0, time.UTC),
	}
}

func TestActivityRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := testActivity(1, "2024-01-02", 3600)

	if err := s.Activities().Insert([]models.Activity{want}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.Activities().GetOne(Filters{"id": int64(1)})
	if err != nil {
		t.Fatalf("get one: %v", err)
	}
	if got == nil {
		t.Fatal("expected a stored activity")
	}

	if got.ID != want.ID || got.UserID != want.UserID || got.ProjectID != want.ProjectID ||
		got.TaskID != want.TaskID || got.Tracked != want.Tracked || got.Keyboard != want.Keyboard ||
		got.Mouse != want.Mouse || got.Overall != want.Overall || got.InputTracked != want.InputTracked ||
		got.Idle != want.Idle || got.Resumed != want.Resumed {
		t.Fatalf("counters differ: got %+v want %+v", got, want)
	}
	if got.Manual != want.Manual || got.Billable != want.Billable {
		t.Fatalf("flags differ: got %+v", got)
	}
	if !got.Date.Equal(want.Date) {
		t.Fatalf("date differs: got %v want %v", got.Date, want.Date)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Fatalf("timestamps differ: got %v/%v want %v/%v",
			got.CreatedAt, got.UpdatedAt, want.CreatedAt, want.UpdatedAt)
	}
}

func TestActivityInsertReplacesOnConflict(t *testing.T) {
	s := newTestStore(t)

	first := testActivity(1, "2024-01-02", 3600)
	if err := s.Activities().Insert([]models.Activity{first}); err != nil {
		t.Fatal(err)
	}

	second := testActivity(1, "2024-01-02", 7200)
	second.UserID = 2
	if err := s.Activities().Insert([]models.Activity{second}); err != nil {
		t.Fatalf("re-insert must not error: %v", err)
	}

	all, err := s.Activities().Get(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 row after replace, got %d", len(all))
	}
	if all[0].Tracked != 7200 || all[0].UserID != 2 {
		t.Fatalf("latest insert must win, got %+v", all[0])
	}
}

func TestActivityGetWithFilters(t *testing.T) {
	s := newTestStore(t)

	a := testActivity(1, "2024-01-01", 100)
	b := testActivity(2, "2024-01-02", 200)
	b.UserID = 2
	if err := s.Activities().Insert([]models.Activity{a, b}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Activities().Get(Filters{"user_id": int64(2)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestActivityGetOneMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Activities().GetOne(Filters{"id": int64(99)})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing activity, got %+v", got)
	}
}

func TestActivityGetRaw(t *testing.T) {
	s := newTestStore(t)

	if err := s.Activities().Insert([]models.Activity{testActivity(1, "2024-01-02", 3600)}); err != nil {
		t.Fatal(err)
	}

	rows, err := s.Activities().GetRaw(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 raw row, got %d", len(rows))
	}
	if rows[0].Date != "2024-01-02" {
		t.Fatalf("raw date must stay textual, got %q", rows[0].Date)
	}
	if rows[0].Tracked != 3600 || rows[0].Manual != 1 {
		t.Fatalf("unexpected raw row: %+v", rows[0])
	}
}

func TestActivityCorruptDateAbortsRead(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetDB().Exec(`INSERT INTO activities VALUES
		(1, 'not-a-date', 1, 10, 100, 0, 0, 0, 0, 0, 0, 0, 0, 0, '2024-01-02T03:04:05Z', '2024-01-02T03:04:05Z')`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Activities().Get(nil); err == nil {
		t.Fatal("expected corrupt date to abort reconstruction")
	}
	if _, err := s.Activities().GetOne(Filters{"id": int64(1)}); err == nil {
		t.Fatal("expected corrupt date to abort reconstruction")
	}

	// Raw mode does not parse and must still serve the row.
	rows, err := s.Activities().GetRaw(nil)
	if err != nil {
		t.Fatalf("raw read should not parse dates: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 raw row, got %d", len(rows))
	}
}

func TestActivityBulkInsertEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.Activities().Insert(nil); err != nil {
		t.Fatalf("empty insert must be a no-op: %v", err)
	}
}
