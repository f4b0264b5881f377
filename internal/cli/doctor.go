package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/hubsync/hubsync/internal/backup"
)

// DoctorCmd runs environment diagnostics.
type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkSchema(ctx); err != nil {
			fmt.Printf("❌ Schema present: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema present: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema present: SKIPPED (database not reachable)\n")
	}

	if err := checkCredentials(ctx); err != nil {
		fmt.Printf("⚠ Credentials: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Credentials: OK\n")
	}

	if err := checkSingleProcess(); err != nil {
		fmt.Printf("❌ Single process: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Single process: OK\n")
	}

	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	if err := checkBackups(ctx); err != nil {
		fmt.Printf("⚠ Backups: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	var result int
	if err := ctx.Store.GetDB().QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchema(ctx *Context) error {
	for _, table := range []string{"activities", "projects", "users"} {
		exists, err := ctx.Store.TableExists(table)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("table %q is missing, run 'hubsync install'", table)
		}
	}
	return nil
}

func checkCredentials(ctx *Context) error {
	if !ctx.Config.HasCredentials() {
		return fmt.Errorf("no Hubstaff email/password found; run 'hubsync login' or set HUBSTAFF_EMAIL and HUBSTAFF_PASSWORD")
	}
	if ctx.Config.AppToken == "" {
		return fmt.Errorf("no app token found; run 'hubsync login' or set HUBSTAFF_APP_TOKEN")
	}
	return nil
}

// checkSingleProcess enforces the single-writer assumption: only one
// hubsync may touch the database file at a time.
func checkSingleProcess() error {
	self := filepath.Base(os.Args[0])
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range processes {
		if p.Pid() == os.Getpid() {
			continue
		}
		if strings.EqualFold(p.Executable(), self) {
			return fmt.Errorf("another %s process is running (pid %d)", self, p.Pid())
		}
	}
	return nil
}

func checkBackups(ctx *Context) error {
	backups, err := backup.NewManager(ctx.Config.DBPath).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found; run 'hubsync backup'")
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation("UTC"); err != nil {
		return fmt.Errorf("timezone database unavailable: %w", err)
	}
	return nil
}
