// Package syncer coordinates one sync cycle: fetch activities and projects
// from the remote source, then upsert each into its repository.
package syncer

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hubsync/hubsync/internal/logger"
	"github.com/hubsync/hubsync/internal/models"
)

// Source is the remote data source. Failed fetches come back as empty
// slices; an empty cycle is valid, just unproductive.
type Source interface {
	DailyActivities(ctx context.Context, org models.Organization, start, stop string) []models.Activity
	Projects(ctx context.Context, org models.Organization) []models.Project
}

// ActivityWriter and ProjectWriter are the storage-side halves of a cycle.
type ActivityWriter interface {
	Insert(activities []models.Activity) error
}

type ProjectWriter interface {
	Insert(projects []models.Project) error
}

// Result reports what a cycle fetched and stored.
type Result struct {
	CycleID    string
	Activities int
	Projects   int
}

type Syncer struct {
	source     Source
	activities ActivityWriter
	projects   ProjectWriter
	logger     *log.Logger
}

func New(source Source, activities ActivityWriter, projects ProjectWriter, lg *log.Logger) *Syncer {
	if lg == nil {
		lg = logger.Discard()
	}
	return &Syncer{
		source:     source,
		activities: activities,
		projects:   projects,
		logger:     lg,
	}
}

// Run executes one cycle for the organization over the inclusive date range
// [start, stop] (both optional, defaulting to today at the source).
// Activities are fetched and stored before projects.
func (s *Syncer) Run(ctx context.Context, org models.Organization, start, stop string) (Result, error) {
	result := Result{CycleID: uuid.NewString()}
	lg := s.logger.With("cycle", result.CycleID, "org", org.ID)

	lg.Debug("sync cycle starting", "start", start, "stop", stop)

	activities := s.source.DailyActivities(ctx, org, start, stop)
	if err := s.activities.Insert(activities); err != nil {
		return result, err
	}
	result.Activities = len(activities)
	lg.Debug("stored activities", "count", len(activities))

	projects := s.source.Projects(ctx, org)
	if err := s.projects.Insert(projects); err != nil {
		return result, err
	}
	result.Projects = len(projects)
	lg.Debug("stored projects", "count", len(projects))

	lg.Info("sync cycle complete", "activities", result.Activities, "projects", result.Projects)
	return result, nil
}
