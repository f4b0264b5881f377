// Package storage owns the on-disk representation: one SQLite file with the
// activities, projects and users tables. No other package touches the
// database directly.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/hubsync/hubsync/internal/logger"
)

type Store struct {
	path   string
	db     *sql.DB
	logger *log.Logger
}

func NewStore(path string, lg *log.Logger) *Store {
	if lg == nil {
		lg = logger.Discard()
	}
	return &Store{path: path, logger: lg}
}

// NewMemory creates an in-memory store with all tables, for testing.
func NewMemory() (*Store, error) {
	s := NewStore(":memory:", nil)
	if err := s.open(); err != nil {
		return nil, err
	}
	if err := s.CreateTables(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Init creates the config directory, opens the database and ensures the
// schema exists. Safe to run repeatedly.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.CreateTables()
}

// Load opens an already-installed database. The schema must have been
// created by a prior `hubsync install`.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'hubsync install' first")
	}

	return s.open()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection, one writer.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s.db = db
	return nil
}

// CreateTables ensures the schema for every repository.
func (s *Store) CreateTables() error {
	for _, create := range []func() error{
		s.Activities().CreateTable,
		s.Projects().CreateTable,
		s.Users().CreateTable,
	} {
		if err := create(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Activities() *ActivityRepo { return &ActivityRepo{s: s} }
func (s *Store) Projects() *ProjectRepo    { return &ProjectRepo{s: s} }
func (s *Store) Users() *UserRepo          { return &UserRepo{s: s} }

func (s *Store) GetConfigPath() string {
	return s.path
}

// TableExists reports whether a table is present. The check is
// case-insensitive to match SQLite's behavior.
func (s *Store) TableExists(name string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", name)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetDB returns the underlying database connection, nil before Init/Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// ----------------------------------------------------------------------
// Shared storage-access helpers. Every repository builds its SQL through
// these so table names, conflict policies and filter binding live in one
// place.
// ----------------------------------------------------------------------

type column struct {
	name string
	typ  string
}

type conflictPolicy string

const (
	// conflictReplace makes the latest insert win (activities).
	conflictReplace conflictPolicy = "REPLACE"
	// conflictIgnore makes the first insert win (projects, users).
	conflictIgnore conflictPolicy = "IGNORE"
)

func (s *Store) createTable(table string, columns []column) error {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c.name + " " + c.typ
	}
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

// bulkInsert writes all rows inside one transaction. Primary-key conflicts
// are resolved by the policy and never surface as errors.
func (s *Store) bulkInsert(table string, policy conflictPolicy, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(rows[0])), ",")
	query := fmt.Sprintf("INSERT OR %s INTO %s VALUES (%s)", policy, table, placeholders)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert into %s: %w", table, err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// selectRows runs a SELECT with equality filters bound as parameters.
// Filter columns are sorted so the generated SQL is deterministic.
func (s *Store) selectRows(table string, columns []string, f Filters) (*sql.Rows, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table)

	var args []any
	if len(f) > 0 {
		keys := make([]string, 0, len(f))
		for k := range f {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		conds := make([]string, len(keys))
		for i, k := range keys {
			conds[i] = k + " = ?"
			args = append(args, f[k])
		}
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	return rows, nil
}
