package models

import "time"

// DateFormat is the storage and wire format for day-granularity dates.
const DateFormat = "2006-01-02"

// Organization identifies the Hubstaff organization a sync cycle is scoped to.
// It is never persisted.
type Organization struct {
	ID int64 `json:"id"`
}

// Project is append-only reference data: once a project id has been stored,
// later syncs of the same id are ignored.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Billable  bool      `json:"billable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is a lightweight reference entity used for report labels.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	TimeZone  string    `json:"time_zone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity is one day of tracked time for a (user, project, task) triple.
// The remote service may recompute an activity after the fact, so re-syncing
// an id replaces the stored row.
type Activity struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	UserID       int64     `json:"user_id"`
	ProjectID    int64     `json:"project_id"`
	TaskID       int64     `json:"task_id"`
	Keyboard     int64     `json:"keyboard"`
	Mouse        int64     `json:"mouse"`
	Overall      int64     `json:"overall"`
	Tracked      int64     `json:"tracked"`
	InputTracked int64     `json:"input_tracked"`
	Manual       bool      `json:"manual"`
	Idle         int64     `json:"idle"`
	Resumed      int64     `json:"resumed"`
	Billable     bool      `json:"billable"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Day returns the activity date in its canonical YYYY-MM-DD form.
func (a Activity) Day() string {
	return a.Date.Format(DateFormat)
}
