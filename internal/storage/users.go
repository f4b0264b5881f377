package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hubsync/hubsync/internal/models"
)

// UserRepo stores users, reference data the report uses for row labels.
type UserRepo struct {
	s *Store
}

var _ Repository[models.User] = (*UserRepo)(nil)

const userTable = "users"

var userColumns = []string{"id", "name", "email", "time_zone", "status", "created_at", "updated_at"}

func (r *UserRepo) CreateTable() error {
	return r.s.createTable(userTable, []column{
		{"id", "INTEGER PRIMARY KEY"},
		{"name", "TEXT NOT NULL"},
		{"email", "TEXT UNIQUE"},
		{"time_zone", "TEXT NOT NULL DEFAULT ''"},
		{"status", "TEXT NOT NULL DEFAULT ''"},
		{"created_at", "TEXT NOT NULL"},
		{"updated_at", "TEXT NOT NULL"},
	})
}

func (r *UserRepo) Insert(users []models.User) error {
	rows := make([][]any, len(users))
	for i, u := range users {
		rows[i] = []any{
			u.ID, u.Name, u.Email, u.TimeZone, u.Status,
			u.CreatedAt.Format(time.RFC3339), u.UpdatedAt.Format(time.RFC3339),
		}
	}
	return r.s.bulkInsert(userTable, conflictIgnore, rows)
}

func (r *UserRepo) Get(f Filters) ([]models.User, error) {
	rows, err := r.s.selectRows(userTable, userColumns, f)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) GetOne(f Filters) (*models.User, error) {
	rows, err := r.s.selectRows(userTable, userColumns, f)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	u, err := scanUser(rows)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUser(rows *sql.Rows) (models.User, error) {
	var u models.User
	var createdAt, updatedAt string

	if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.TimeZone, &u.Status, &createdAt, &updatedAt); err != nil {
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}

	var err error
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.User{}, fmt.Errorf("user %d has corrupt created_at %q: %w", u.ID, createdAt, err)
	}
	if u.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.User{}, fmt.Errorf("user %d has corrupt updated_at %q: %w", u.ID, updatedAt, err)
	}
	return u, nil
}
