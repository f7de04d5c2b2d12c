package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Monthly budget: $%.2f\n", cfg.General.MonthlyBudget)
	if cfg.General.PhoneNumber != "" {
		fmt.Printf("    Phone number:   %s\n", cfg.General.PhoneNumber)
	} else {
		fmt.Println("    Phone number:   not configured")
	}
	fmt.Println()

	fmt.Println("  [Sheets]")
	if cfg.Sheets.SpreadsheetID != "" {
		fmt.Printf("    Spreadsheet:  %s\n", cfg.Sheets.SpreadsheetID)
	} else {
		fmt.Println("    Spreadsheet:  not configured")
	}
	fmt.Printf("    Loan range:   %s\n", cfg.Sheets.LoanRange)
	fmt.Printf("    Total cells:  %s (current), %s (last period)\n",
		cfg.Sheets.CurrentTotalCell, cfg.Sheets.LastTotalCell)
	fmt.Println()

	fmt.Println("  [Google]")
	if email := config.GetGoogleClientEmail(cfg); email != "" {
		fmt.Printf("    Client email: %s\n", email)
	} else {
		fmt.Println("    Client email: not configured")
	}
	if key := config.GetGooglePrivateKey(cfg); key != "" {
		fmt.Println("    Private key:  configured")
	} else {
		fmt.Println("    Private key:  not configured")
	}
	fmt.Println()

	fmt.Println("  [Twilio]")
	if sid := config.GetTwilioAccountSID(cfg); sid != "" {
		fmt.Printf("    Account SID: %s\n", mask(sid))
	} else {
		fmt.Println("    Account SID: not configured")
	}
	if from := config.GetTwilioFromNumber(cfg); from != "" {
		fmt.Printf("    From number: %s\n", from)
	} else {
		fmt.Println("    From number: not configured")
	}
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Schedule: %s\n", cfg.Daemon.Schedule)
	fmt.Printf("    Addr:     %s\n", cfg.Daemon.Addr)
	fmt.Println()

	fmt.Println("  Run `loanbot setup` to reconfigure.")
	return nil
}
