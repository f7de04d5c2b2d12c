package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one full payment cycle",
	Long: "Reads the ledger, computes the avalanche plan, persists the new\n" +
		"total balance, and sends the payment reminder.",
	RunE: runCycle,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runCycle(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger()
	runner, cleanup, err := newRunner(cfg, log, false)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := runner.RunCycle(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PAYMENT CYCLE COMPLETE"))
	fmt.Println()

	renderCycle(result)

	fmt.Println()
	if result.Notified {
		fmt.Println(cli.Bullet("Reminder", "sent to "+cfg.General.PhoneNumber))
	} else {
		fmt.Println(cli.Bullet("Reminder", cli.RenderWarn("not sent")))
	}
	return nil
}
