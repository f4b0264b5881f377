package hubstaff

import (
	"fmt"
	"time"

	"github.com/hubsync/hubsync/internal/models"
)

// Wire shapes for the Hubstaff JSON responses. Dates and timestamps arrive
// as ISO strings and are normalized into time.Time here.

type activityPayload struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	UserID       int64  `json:"user_id"`
	ProjectID    int64  `json:"project_id"`
	TaskID       int64  `json:"task_id"`
	Keyboard     int64  `json:"keyboard"`
	Mouse        int64  `json:"mouse"`
	Overall      int64  `json:"overall"`
	Tracked      int64  `json:"tracked"`
	InputTracked int64  `json:"input_tracked"`
	Manual       bool   `json:"manual"`
	Idle         int64  `json:"idle"`
	Resumed      int64  `json:"resumed"`
	Billable     bool   `json:"billable"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (p activityPayload) toActivity() (models.Activity, error) {
	date, err := time.Parse(models.DateFormat, p.Date)
	if err != nil {
		return models.Activity{}, fmt.Errorf("date %q: %w", p.Date, err)
	}
	createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return models.Activity{}, fmt.Errorf("created_at %q: %w", p.CreatedAt, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, p.UpdatedAt)
	if err != nil {
		return models.Activity{}, fmt.Errorf("updated_at %q: %w", p.UpdatedAt, err)
	}

	return models.Activity{
		ID:           p.ID,
		Date:         date,
		UserID:       p.UserID,
		ProjectID:    p.ProjectID,
		TaskID:       p.TaskID,
		Keyboard:     p.Keyboard,
		Mouse:        p.Mouse,
		Overall:      p.Overall,
		Tracked:      p.Tracked,
		InputTracked: p.InputTracked,
		Manual:       p.Manual,
		Idle:         p.Idle,
		Resumed:      p.Resumed,
		Billable:     p.Billable,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

type projectPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Billable  bool   `json:"billable"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (p projectPayload) toProject() (models.Project, error) {
	createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("created_at %q: %w", p.CreatedAt, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, p.UpdatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("updated_at %q: %w", p.UpdatedAt, err)
	}

	return models.Project{
		ID:        p.ID,
		Name:      p.Name,
		Status:    p.Status,
		Billable:  p.Billable,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
