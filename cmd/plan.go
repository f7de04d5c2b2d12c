package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/cli"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/notify"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute and show this cycle's payment plan (dry run)",
	Long: "Reads the ledger and computes the avalanche plan without writing\n" +
		"back to the spreadsheet or sending any message.",
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger()
	runner, cleanup, err := newRunner(cfg, log, true)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := runner.Preview(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("LOAN PAYMENT PLAN"))
	fmt.Println()

	renderCycle(result)

	fmt.Println()
	fmt.Println(cli.RenderMuted("  Dry run: nothing written, nothing sent. Run `loanbot run` to execute."))
	return nil
}

// renderCycle prints the computed plan and trend shared by plan and run.
func renderCycle(result *pipeline.CycleResult) {
	rows := make([][]string, 0, len(result.Plan))
	byID := make(map[string]int, len(result.Loans))
	for i, loan := range result.Loans {
		byID[loan.LoanID] = i
	}

	for _, entry := range result.Plan {
		if entry.Payment.IsZero() {
			continue
		}
		loan := result.Loans[byID[entry.LoanID]]
		payment := cli.FormatMoney(entry.Payment)
		if entry.PaidOff() {
			payment += "  FINISHED"
		}
		rows = append(rows, []string{
			entry.LoanID,
			cli.FormatRate(loan.InterestRate),
			cli.FormatMoney(loan.CurrentTotal),
			cli.FormatMoney(loan.MinPayment),
			payment,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Loan", "Rate", "Balance", "Minimum", "Pay"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Println(cli.Bullet("Budget", cli.FormatMoney(result.Discretionary.Add(sumMinimums(result)))))
	if result.Discretionary.IsNegative() {
		fmt.Println(cli.Bullet("Discretionary", cli.RenderWarn(cli.FormatMoney(result.Discretionary)+"  (minimums exceed budget)")))
	} else {
		fmt.Println(cli.Bullet("Discretionary", cli.RenderMoney(cli.FormatMoney(result.Discretionary))))
	}
	fmt.Println(cli.Bullet("Balance", fmt.Sprintf("%s, %s last period",
		cli.FormatMoney(result.CurrentTotal), notify.TrendPhrase(result.Trend))))
}

func sumMinimums(result *pipeline.CycleResult) decimal.Decimal {
	total := decimal.Zero
	for _, loan := range result.Loans {
		total = total.Add(loan.MinPayment)
	}
	return total
}
