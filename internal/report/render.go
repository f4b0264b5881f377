package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Labels resolve user and project ids to display names. Missing entries
// fall back to the bare id.
type Labels struct {
	Users    map[int64]string
	Projects map[int64]string
}

func (l Labels) user(id int64) string {
	if name, ok := l.Users[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("user %d", id)
}

func (l Labels) project(id int64) string {
	if name, ok := l.Projects[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("project %d", id)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render draws the matrix as a bordered table: one row per user, one
// column per project, durations formatted H:MM:SS.
func (m *Matrix) Render(labels Labels) string {
	if m.Empty() {
		return "No tracked time recorded.\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(m.headers(labels)...)

	for _, user := range m.Users {
		t.Row(m.row(user, labels)...)
	}

	return t.String() + "\n"
}

// WriteCSV writes the same matrix in CSV form.
func (m *Matrix) WriteCSV(w io.Writer, labels Labels) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(m.headers(labels)); err != nil {
		return err
	}
	for _, user := range m.Users {
		if err := cw.Write(m.row(user, labels)); err != nil {
			return err
		}
	}
	return cw.Error()
}

func (m *Matrix) headers(labels Labels) []string {
	headers := make([]string, 0, len(m.Projects)+1)
	headers = append(headers, "User")
	for _, p := range m.Projects {
		headers = append(headers, labels.project(p))
	}
	return headers
}

func (m *Matrix) row(user int64, labels Labels) []string {
	row := make([]string, 0, len(m.Projects)+1)
	row = append(row, labels.user(user))
	for _, p := range m.Projects {
		row = append(row, FormatSeconds(m.Cell(user, p)))
	}
	return row
}
