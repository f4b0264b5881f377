// Package cli holds the command implementations dispatched by kong.
package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hubsync/hubsync/internal/config"
	"github.com/hubsync/hubsync/internal/models"
	"github.com/hubsync/hubsync/internal/storage"
)

// Context is the shared state handed to every command's Run method.
type Context struct {
	Config config.Config
	Store  *storage.Store
	Logger *log.Logger
}

// normalizeRange validates the optional date bounds and collapses a single
// bound to a one-day range. Both empty means "no filter" for reports and
// "today" for syncs.
func normalizeRange(start, stop string) (string, string, error) {
	if start == "" {
		start = stop
	}
	if stop == "" {
		stop = start
	}
	if start == "" {
		return "", "", nil
	}

	from, err := time.Parse(models.DateFormat, start)
	if err != nil {
		return "", "", fmt.Errorf("invalid start date %q, use YYYY-MM-DD", start)
	}
	to, err := time.Parse(models.DateFormat, stop)
	if err != nil {
		return "", "", fmt.Errorf("invalid stop date %q, use YYYY-MM-DD", stop)
	}
	if to.Before(from) {
		return "", "", fmt.Errorf("stop date %s is before start date %s", stop, start)
	}
	return start, stop, nil
}
