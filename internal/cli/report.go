package cli

import (
	"fmt"
	"os"

	"github.com/hubsync/hubsync/internal/report"
	"github.com/hubsync/hubsync/internal/tui"
)

// ReportCmd renders the tracked-time pivot from whatever is in storage.
// Pure read path: no remote calls are made.
type ReportCmd struct {
	Start       string `help:"First day to include (YYYY-MM-DD)."`
	Stop        string `help:"Last day to include (YYYY-MM-DD)."`
	CSV         string `help:"Also write the report to a CSV file." type:"path"`
	Interactive bool   `short:"i" help:"Browse the report interactively."`
}

func (c *ReportCmd) Run(ctx *Context) error {
	start, stop, err := normalizeRange(c.Start, c.Stop)
	if err != nil {
		return err
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Interactive {
		return tui.Run(ctx.Store, start, stop)
	}

	matrix, labels, err := report.Generate(ctx.Store, start, stop)
	if err != nil {
		return err
	}

	if c.CSV != "" {
		f, err := os.Create(c.CSV)
		if err != nil {
			return fmt.Errorf("create csv file: %w", err)
		}
		defer f.Close()
		if err := matrix.WriteCSV(f, labels); err != nil {
			return err
		}
		fmt.Printf("Wrote report to %s\n", c.CSV)
	}

	fmt.Print(matrix.Render(labels))
	return nil
}
