package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hubsync/hubsync/internal/models"
)

// ActivityRepo stores daily activities. Conflicts on id replace the stored
// row: activities are corrected and recomputed upstream, so the latest
// remote state wins.
type ActivityRepo struct {
	s *Store
}

var _ Repository[models.Activity] = (*ActivityRepo)(nil)

const activityTable = "activities"

var activityColumns = []string{
	"id", "date", "user_id", "project_id", "task_id",
	"keyboard", "mouse", "overall", "tracked", "input_tracked",
	"manual", "idle", "resumed", "billable", "created_at", "updated_at",
}

// ActivityRow is an activity as stored, with date and timestamp columns
// left as their raw text form. The report aggregator loads these in bulk
// without paying for per-row time parsing.
type ActivityRow struct {
	ID           int64
	Date         string
	UserID       int64
	ProjectID    int64
	TaskID       int64
	Keyboard     int64
	Mouse        int64
	Overall      int64
	Tracked      int64
	InputTracked int64
	Manual       int64
	Idle         int64
	Resumed      int64
	Billable     int64
	CreatedAt    string
	UpdatedAt    string
}

func (r *ActivityRepo) CreateTable() error {
	return r.s.createTable(activityTable, []column{
		{"id", "INTEGER PRIMARY KEY"},
		{"date", "TEXT NOT NULL"},
		{"user_id", "INTEGER NOT NULL"},
		{"project_id", "INTEGER NOT NULL"},
		{"task_id", "INTEGER NOT NULL"},
		{"keyboard", "INTEGER NOT NULL DEFAULT 0"},
		{"mouse", "INTEGER NOT NULL DEFAULT 0"},
		{"overall", "INTEGER NOT NULL DEFAULT 0"},
		{"tracked", "INTEGER NOT NULL DEFAULT 0"},
		{"input_tracked", "INTEGER NOT NULL DEFAULT 0"},
		{"manual", "INTEGER NOT NULL DEFAULT 0"},
		{"idle", "INTEGER NOT NULL DEFAULT 0"},
		{"resumed", "INTEGER NOT NULL DEFAULT 0"},
		{"billable", "INTEGER NOT NULL DEFAULT 0"},
		{"created_at", "TEXT NOT NULL"},
		{"updated_at", "TEXT NOT NULL"},
	})
}

func (r *ActivityRepo) Insert(activities []models.Activity) error {
	rows := make([][]any, len(activities))
	for i, a := range activities {
		rows[i] = []any{
			a.ID, a.Day(), a.UserID, a.ProjectID, a.TaskID,
			a.Keyboard, a.Mouse, a.Overall, a.Tracked, a.InputTracked,
			boolToInt(a.Manual), a.Idle, a.Resumed, boolToInt(a.Billable),
			a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
		}
	}
	return r.s.bulkInsert(activityTable, conflictReplace, rows)
}

func (r *ActivityRepo) Get(f Filters) ([]models.Activity, error) {
	rows, err := r.s.selectRows(activityTable, activityColumns, f)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *ActivityRepo) GetOne(f Filters) (*models.Activity, error) {
	rows, err := r.s.selectRows(activityTable, activityColumns, f)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	a, err := scanActivity(rows)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetRaw returns matching rows without reconstructing typed entities.
func (r *ActivityRepo) GetRaw(f Filters) ([]ActivityRow, error) {
	rows, err := r.s.selectRows(activityTable, activityColumns, f)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raw []ActivityRow
	for rows.Next() {
		var row ActivityRow
		if err := rows.Scan(
			&row.ID, &row.Date, &row.UserID, &row.ProjectID, &row.TaskID,
			&row.Keyboard, &row.Mouse, &row.Overall, &row.Tracked, &row.InputTracked,
			&row.Manual, &row.Idle, &row.Resumed, &row.Billable,
			&row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		raw = append(raw, row)
	}
	return raw, rows.Err()
}

// scanActivity reconstructs a typed entity. A date or timestamp that no
// longer parses means the row was corrupted at write time, and the whole
// read aborts.
func scanActivity(rows *sql.Rows) (models.Activity, error) {
	var a models.Activity
	var date, createdAt, updatedAt string
	var manual, billable int64

	if err := rows.Scan(
		&a.ID, &date, &a.UserID, &a.ProjectID, &a.TaskID,
		&a.Keyboard, &a.Mouse, &a.Overall, &a.Tracked, &a.InputTracked,
		&manual, &a.Idle, &a.Resumed, &billable,
		&createdAt, &updatedAt,
	); err != nil {
		return models.Activity{}, fmt.Errorf("scan activity: %w", err)
	}

	var err error
	if a.Date, err = time.Parse(models.DateFormat, date); err != nil {
		return models.Activity{}, fmt.Errorf("activity %d has corrupt date %q: %w", a.ID, date, err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Activity{}, fmt.Errorf("activity %d has corrupt created_at %q: %w", a.ID, createdAt, err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Activity{}, fmt.Errorf("activity %d has corrupt updated_at %q: %w", a.ID, updatedAt, err)
	}

	a.Manual = manual != 0
	a.Billable = billable != 0
	return a, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
