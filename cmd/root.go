// Package cmd implements the loanbot CLI commands.
package cmd

import (
	"errors"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/auth"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/config"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/ledger"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/notify"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/pipeline"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/store"
)

var (
	flagBudget      float64
	flagSpreadsheet string
	flagPhone       string
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "loanbot",
	Short: "Student loan payoff reminder bot",
	Long: "Reads your loan ledger, computes an avalanche payment plan for the\n" +
		"monthly budget, and texts you which loans to pay this cycle.",
	RunE: runPlan,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64VarP(&flagBudget, "budget", "b", 0, "Monthly budget override (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagSpreadsheet, "spreadsheet", "s", "", "Spreadsheet ID override")
	rootCmd.PersistentFlags().StringVar(&flagPhone, "to", "", "Destination phone number override")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	if flagBudget > 0 {
		cfg.General.MonthlyBudget = flagBudget
	}
	if flagSpreadsheet != "" {
		cfg.Sheets.SpreadsheetID = flagSpreadsheet
	}
	if flagPhone != "" {
		cfg.General.PhoneNumber = flagPhone
	}

	return cfg, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// newLedger builds the Sheets-backed ledger store from config.
func newLedger(cfg config.Config) (ledger.Store, error) {
	if cfg.Sheets.SpreadsheetID == "" {
		return nil, errors.New("no spreadsheet configured; run `loanbot setup` or pass --spreadsheet")
	}

	email := config.GetGoogleClientEmail(cfg)
	key := config.GetGooglePrivateKey(cfg)
	if email == "" || key == "" {
		return nil, errors.New("missing Google service-account credentials (GOOGLE_CLIENT_EMAIL / GOOGLE_PRIVATE_KEY)")
	}

	sa, err := auth.NewServiceAccount(email, key, auth.ScopeSpreadsheets)
	if err != nil {
		return nil, err
	}

	return ledger.NewSheetsClient(cfg.Sheets.SpreadsheetID, cfg.Sheets.LoanRange, sa), nil
}

// newRunner assembles a full pipeline runner. When dryRun is set, the
// notifier and history store are left out so the run has no side channels.
func newRunner(cfg config.Config, log *logrus.Logger, dryRun bool) (*pipeline.Runner, func(), error) {
	lg, err := newLedger(cfg)
	if err != nil {
		return nil, nil, err
	}

	r := &pipeline.Runner{
		Ledger:           lg,
		Log:              log,
		Budget:           decimal.NewFromFloat(cfg.General.MonthlyBudget),
		Destination:      cfg.General.PhoneNumber,
		CurrentTotalCell: cfg.Sheets.CurrentTotalCell,
		LastTotalCell:    cfg.Sheets.LastTotalCell,
	}

	cleanup := func() {}
	if dryRun {
		return r, cleanup, nil
	}

	sid := config.GetTwilioAccountSID(cfg)
	token := config.GetTwilioAuthToken(cfg)
	from := config.GetTwilioFromNumber(cfg)
	if sid != "" && token != "" && from != "" {
		r.Notifier = notify.NewTwilioClient(sid, token, from)
	} else {
		log.Warn("Twilio not configured, plan will be computed but not sent")
	}

	history, err := store.Open(store.DefaultPath())
	if err != nil {
		log.WithError(err).Warn("run history unavailable")
	} else {
		r.History = history
		cleanup = func() { _ = history.Close() }
	}

	return r, cleanup, nil
}

func mask(secret string) string {
	if len(secret) > 16 {
		return secret[:8] + "..." + secret[len(secret)-4:]
	}
	if len(secret) > 4 {
		return secret[:4] + "..."
	}
	if secret != "" {
		return "****"
	}
	return ""
}
