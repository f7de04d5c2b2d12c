package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/cli"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/store"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past payment cycles",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 12, "Max cycles to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	history, err := store.Open(store.DefaultPath())
	if err != nil {
		return err
	}
	defer history.Close()

	runs, err := history.Recent(flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("\n  No recorded cycles yet. Run `loanbot run` first.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PAYMENT HISTORY"))
	fmt.Println()

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		sent := ""
		if r.Notified {
			sent = "sent"
		}
		rows = append(rows, []string{
			r.RanAt.Local().Format("2006-01-02 15:04"),
			"$" + r.CurrentTotal,
			r.Direction + " $" + r.Delta,
			sent,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Ran", "Balance", "Trend", "SMS"},
		Rows:    rows,
	}))
	return nil
}
