package cli

import (
	"context"
	"fmt"

	"github.com/hubsync/hubsync/internal/hubstaff"
	"github.com/hubsync/hubsync/internal/models"
	"github.com/hubsync/hubsync/internal/report"
	"github.com/hubsync/hubsync/internal/syncer"
)

// SyncCmd runs one fetch-then-upsert cycle for an organization.
type SyncCmd struct {
	Org    int64  `short:"o" required:"" help:"Organization id as known to the Hubstaff API."`
	Start  string `help:"First day of the range (YYYY-MM-DD, default today)."`
	Stop   string `help:"Last day of the range (YYYY-MM-DD, default today)."`
	Report bool   `help:"Print the tracked-time report after syncing."`
}

func (c *SyncCmd) Run(ctx *Context) error {
	start, stop, err := normalizeRange(c.Start, c.Stop)
	if err != nil {
		return err
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}

	client := hubstaff.NewClient(ctx.Config, ctx.Logger)
	s := syncer.New(client, ctx.Store.Activities(), ctx.Store.Projects(), ctx.Logger)

	result, err := s.Run(context.Background(), models.Organization{ID: c.Org}, start, stop)
	if err != nil {
		return err
	}
	fmt.Printf("Synced %d activities and %d projects.\n", result.Activities, result.Projects)

	if !c.Report {
		return nil
	}

	matrix, labels, err := report.Generate(ctx.Store, start, stop)
	if err != nil {
		return err
	}
	fmt.Print(matrix.Render(labels))
	return nil
}
