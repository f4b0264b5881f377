package report

import (
	"github.com/hubsync/hubsync/internal/storage"
)

// Generate loads all stored activity rows in raw form, pivots them over
// the optional date range, and resolves display labels from the projects
// and users tables when those hold matching rows.
func Generate(store *storage.Store, start, stop string) (*Matrix, Labels, error) {
	rows, err := store.Activities().GetRaw(nil)
	if err != nil {
		return nil, Labels{}, err
	}

	matrix, err := Build(rows, start, stop)
	if err != nil {
		return nil, Labels{}, err
	}

	labels := Labels{
		Users:    make(map[int64]string),
		Projects: make(map[int64]string),
	}

	// Label lookups are best effort: reference tables may be empty, in
	// which case cells keep their bare ids.
	if projects, err := store.Projects().Get(nil); err == nil {
		for _, p := range projects {
			labels.Projects[p.ID] = p.Name
		}
	}
	if users, err := store.Users().Get(nil); err == nil {
		for _, u := range users {
			labels.Users[u.ID] = u.Name
		}
	}

	return matrix, labels, nil
}
