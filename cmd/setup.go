package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults so re-running keeps prior answers.
	cfg, _ := config.Load()

	budget := strconv.FormatFloat(cfg.General.MonthlyBudget, 'f', -1, 64)
	schedule := cfg.Daemon.Schedule

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Spreadsheet ID").
				Description("The Google Sheets ID holding your loan ledger.").
				Value(&cfg.Sheets.SpreadsheetID),
			huh.NewInput().
				Title("Monthly budget").
				Description("Total committed across all loans each cycle.").
				Value(&budget).
				Validate(validateBudget),
			huh.NewInput().
				Title("Phone number").
				Description("SMS destination in E.164 form, e.g. +15551234567.").
				Value(&cfg.General.PhoneNumber),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Google client email").
				Description("Service-account email (or set GOOGLE_CLIENT_EMAIL).").
				Value(&cfg.Google.ClientEmail),
			huh.NewInput().
				Title("Twilio account SID").
				Description("Or set TWILIO_ACCOUNT_SID.").
				Value(&cfg.Twilio.AccountSID),
			huh.NewInput().
				Title("Twilio from number").
				Description("Or set TWILIO_NUMBER.").
				Value(&cfg.Twilio.FromNumber),
			huh.NewSelect[string]().
				Title("Run schedule").
				Options(
					huh.NewOption("Weekly", "@weekly"),
					huh.NewOption("Monthly", "@monthly"),
					huh.NewOption("Daily", "@daily"),
				).
				Value(&schedule),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(budget), 64)
	if err == nil && parsed > 0 {
		cfg.General.MonthlyBudget = parsed
	}
	cfg.Daemon.Schedule = schedule

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Secrets (private key, auth token) are read from the environment;")
	fmt.Println("  set GOOGLE_PRIVATE_KEY and TWILIO_AUTH_TOKEN before running.")
	fmt.Println("  Run `loanbot setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func validateBudget(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v <= 0 {
		return fmt.Errorf("budget must be positive")
	}
	return nil
}
