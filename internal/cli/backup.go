package cli

import (
	"fmt"
	"path/filepath"

	"github.com/hubsync/hubsync/internal/backup"
)

// BackupCmd snapshots the database, or lists and restores snapshots.
type BackupCmd struct {
	List    bool   `help:"List available backups instead of creating one."`
	Restore string `help:"Restore the database from the given backup file." type:"path" placeholder:"FILE"`
}

func (c *BackupCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Config.DBPath)

	switch {
	case c.List:
		return c.list(mgr)
	case c.Restore != "":
		return c.restore(ctx, mgr)
	default:
		return c.create(ctx, mgr)
	}
}

func (c *BackupCmd) create(ctx *Context, mgr *backup.Manager) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.Store.Close()

	path, err := mgr.Create()
	if err != nil {
		return err
	}
	ctx.Logger.Info("created backup", "path", path)
	fmt.Printf("Created backup: %s\n", path)
	return nil
}

func (c *BackupCmd) list(mgr *backup.Manager) error {
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Printf("No backups found in %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.Dir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %.1f KB\n",
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			float64(b.Size)/1024)
	}
	return nil
}

func (c *BackupCmd) restore(ctx *Context, mgr *backup.Manager) error {
	if err := mgr.Restore(c.Restore); err != nil {
		return err
	}
	ctx.Logger.Info("restored backup", "path", c.Restore)
	fmt.Printf("Restored database from: %s\n", filepath.Base(c.Restore))
	return nil
}
