package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/hubsync/hubsync/internal/keyring"
)

// LoginCmd captures Hubstaff credentials and stores them in the OS keyring.
// Environment variables still win over keyring values at load time.
type LoginCmd struct{}

func (c *LoginCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; set HUBSTAFF_EMAIL, HUBSTAFF_PASSWORD and HUBSTAFF_APP_TOKEN instead")
	}

	email := ctx.Config.Email
	password := ctx.Config.Password
	appToken := ctx.Config.AppToken

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hubstaff email").
				Value(&email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
			huh.NewInput().
				Title("App token").
				Description("Application token issued by Hubstaff.").
				Value(&appToken),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	for key, value := range map[string]string{
		keyring.KeyEmail:    email,
		keyring.KeyPassword: password,
		keyring.KeyAppToken: appToken,
	} {
		if value == "" {
			continue
		}
		if err := keyring.Set(key, value); err != nil {
			return err
		}
	}

	fmt.Println("Credentials stored in the OS keyring.")
	return nil
}
