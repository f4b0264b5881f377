// Package report pivots stored activity rows into a user × project matrix
// of summed tracked seconds.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/hubsync/hubsync/internal/models"
	"github.com/hubsync/hubsync/internal/storage"
)

type cellKey struct {
	user    int64
	project int64
}

// Matrix is the aggregated report: one row per observed user, one column
// per observed project, tracked seconds summed per cell. Combinations that
// were never observed are simply absent; a cell for an observed pair with
// no time defaults to zero.
type Matrix struct {
	Users    []int64
	Projects []int64
	cells    map[cellKey]int64
}

// Build aggregates raw activity rows, optionally filtered to the inclusive
// date range [start, stop] (YYYY-MM-DD). With only one bound set the range
// collapses to that single day; with neither set all rows count. A stored
// date that does not parse is a data-integrity failure and aborts the build.
func Build(rows []storage.ActivityRow, start, stop string) (*Matrix, error) {
	if start == "" {
		start = stop
	}
	if stop == "" {
		stop = start
	}

	m := &Matrix{cells: make(map[cellKey]int64)}
	users := make(map[int64]bool)
	projects := make(map[int64]bool)

	for _, row := range rows {
		if _, err := time.Parse(models.DateFormat, row.Date); err != nil {
			return nil, fmt.Errorf("activity %d has corrupt date %q: %w", row.ID, row.Date, err)
		}
		// ISO dates compare correctly as strings.
		if start != "" && (row.Date < start || row.Date > stop) {
			continue
		}

		m.cells[cellKey{row.UserID, row.ProjectID}] += row.Tracked
		users[row.UserID] = true
		projects[row.ProjectID] = true
	}

	m.Users = sortedKeys(users)
	m.Projects = sortedKeys(projects)
	return m, nil
}

// Cell returns the summed tracked seconds for a (user, project) pair.
func (m *Matrix) Cell(user, project int64) int64 {
	return m.cells[cellKey{user, project}]
}

// Empty reports whether no activity survived the filter.
func (m *Matrix) Empty() bool {
	return len(m.Users) == 0
}

// FormatSeconds renders a second count as H:MM:SS. Hours are not padded
// and keep growing past 24.
func FormatSeconds(secs int64) string {
	h := secs / 3600
	mins := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%d:%02d:%02d", h, mins, s)
}

func sortedKeys(set map[int64]bool) []int64 {
	keys := make([]int64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
