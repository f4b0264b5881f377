package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hubsync/hubsync/internal/models"
)

// ProjectRepo stores projects as append-only reference data: conflicts on
// id keep the first-ever stored row and silently drop the incoming one.
type ProjectRepo struct {
	s *Store
}

var _ Repository[models.Project] = (*ProjectRepo)(nil)

const projectTable = "projects"

var projectColumns = []string{"id", "name", "status", "billable", "created_at", "updated_at"}

func (r *ProjectRepo) CreateTable() error {
	return r.s.createTable(projectTable, []column{
		{"id", "INTEGER PRIMARY KEY"},
		{"name", "TEXT NOT NULL"},
		{"status", "TEXT NOT NULL DEFAULT ''"},
		{"billable", "INTEGER NOT NULL DEFAULT 0"},
		{"created_at", "TEXT NOT NULL"},
		{"updated_at", "TEXT NOT NULL"},
	})
}

func (r *ProjectRepo) Insert(projects []models.Project) error {
	rows := make([][]any, len(projects))
	for i, p := range projects {
		rows[i] = []any{
			p.ID, p.Name, p.Status, boolToInt(p.Billable),
			p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
		}
	}
	return r.s.bulkInsert(projectTable, conflictIgnore, rows)
}

func (r *ProjectRepo) Get(f Filters) ([]models.Project, error) {
	rows, err := r.s.selectRows(projectTable, projectColumns, f)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) GetOne(f Filters) (*models.Project, error) {
	rows, err := r.s.selectRows(projectTable, projectColumns, f)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	p, err := scanProject(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProject(rows *sql.Rows) (models.Project, error) {
	var p models.Project
	var createdAt, updatedAt string
	var billable int64

	if err := rows.Scan(&p.ID, &p.Name, &p.Status, &billable, &createdAt, &updatedAt); err != nil {
		return models.Project{}, fmt.Errorf("scan project: %w", err)
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Project{}, fmt.Errorf("project %d has corrupt created_at %q: %w", p.ID, createdAt, err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Project{}, fmt.Errorf("project %d has corrupt updated_at %q: %w", p.ID, updatedAt, err)
	}

	p.Billable = billable != 0
	return p, nil
}
