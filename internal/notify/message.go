package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/cli"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/engine"
)

// TrendPhrase renders the balance movement as one of three fixed phrasings,
// used verbatim in the outbound message: "down {amount} from", "the same
// as", "up {amount} from".
func TrendPhrase(t engine.Trend) string {
	switch t.Direction {
	case engine.TrendDown:
		return "down " + cli.FormatAmount(t.Delta) + " from"
	case engine.TrendSame:
		return "the same as"
	default:
		return "up " + cli.FormatAmount(t.Delta) + " from"
	}
}

// ComposeMessage builds the outbound SMS body: greeting, balance trend
// sentence, one line per nonzero payment (highest first, paid-off loans
// flagged), and the update reminder footer.
func ComposeMessage(currentTotal decimal.Decimal, trend engine.Trend, plan []engine.PlanEntry) string {
	var b strings.Builder

	b.WriteString("Hi, it's your student loan bot! 🤖\n\n")
	fmt.Fprintf(&b, "Your current loan balance is $%s, %s last period.\n\n",
		cli.FormatAmount(currentTotal), TrendPhrase(trend))
	b.WriteString("Here's which loans you should pay this month:\n")

	for _, entry := range plan {
		if entry.Payment.IsZero() {
			continue
		}
		fmt.Fprintf(&b, "\n    %s: $%s", entry.LoanID, cli.FormatAmount(entry.Payment))
		if entry.PaidOff() {
			b.WriteString(" 🔥 FINISHED 🔥")
		}
	}

	b.WriteString("\n\nDon't forget to update the spreadsheet, and have a GREAT month!")
	return b.String()
}
