package cli

import "fmt"

// InstallCmd creates the database file and its tables. Run once before the
// first sync; safe to run again.
type InstallCmd struct{}

func (c *InstallCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized hubsync storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
