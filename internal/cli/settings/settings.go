package settings

import (
	"fmt"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string `help:"IANA timezone used to bucket days (or Local)."`
	NotificationsEnabled *bool   `name:"notifications" help:"Enable or disable streak notifications."`
	DefaultPatient       *string `name:"patient-id" help:"Patient used when --patient is not given."`
	WarningHour          *int    `help:"Local hour (1-23) after which streak warnings may be sent."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Printf("Current Settings:\n")
		ctx.Printf("  Timezone:              %s\n", settings.Timezone)
		ctx.Printf("  Default Patient:       %s\n", settings.DefaultPatient)
		ctx.Printf("\nNotification Settings:\n")
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		ctx.Printf("  Warning Hour:          %02d:00\n", settings.WarningHour)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.DefaultPatient != nil {
		if *c.DefaultPatient == "" {
			return fmt.Errorf("default patient cannot be empty")
		}
		settings.DefaultPatient = *c.DefaultPatient
		updated = true
	}
	if c.WarningHour != nil {
		if *c.WarningHour < 1 || *c.WarningHour > 23 {
			return fmt.Errorf("warning hour must be between 1 and 23")
		}
		settings.WarningHour = *c.WarningHour
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Printf("Settings updated successfully.\n")
	} else {
		ctx.Printf("No changes specified. Use --list to view settings or flags to update them.\n")
	}

	return nil
}
