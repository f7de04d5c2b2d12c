// Package pipeline orchestrates one payment cycle end to end: ledger read,
// plan computation, balance persistence, notification, history.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/engine"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/ledger"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/notify"
	"github.com/znicholasbrown/student-loan-flow-bot/internal/store"
)

// Runner wires the external collaborators around the allocation engine.
// History and Notifier may be nil for dry runs.
type Runner struct {
	Ledger   ledger.Store
	Notifier notify.Notifier
	History  *store.History
	Log      *logrus.Logger

	Budget           decimal.Decimal
	Destination      string
	CurrentTotalCell string
	LastTotalCell    string
}

// CycleResult captures everything one run produced.
type CycleResult struct {
	Loans         []engine.LoanRecord
	Discretionary decimal.Decimal
	Plan          []engine.PlanEntry
	CurrentTotal  decimal.Decimal
	LastTotal     decimal.Decimal
	Trend         engine.Trend
	Message       string
	Notified      bool
}

func (r *Runner) log() *logrus.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}

// compute runs the pure engine steps on a ledger snapshot.
func (r *Runner) compute(ctx context.Context) (*CycleResult, error) {
	rows, err := r.Ledger.ReadLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading loan ledger: %w", err)
	}

	loans, err := engine.ParseLedger(rows)
	if err != nil {
		return nil, err
	}

	discretionary := engine.Discretionary(loans, r.Budget)
	switch {
	case discretionary.IsNegative():
		r.log().WithFields(logrus.Fields{
			"discretionary": discretionary.String(),
			"budget":        r.Budget.String(),
		}).Warn("minimum payments exceed budget, no extra paydown this cycle")
	case discretionary.IsZero():
		r.log().WithField("budget", r.Budget.String()).
			Info("budget exactly covers minimums, no extra paydown this cycle")
	default:
		r.log().WithField("discretionary", discretionary.String()).
			Info("allocating discretionary budget")
	}

	extras := engine.Allocate(engine.RankByRate(loans), discretionary)
	plan := engine.ComposePlan(loans, extras)

	currentText, err := r.Ledger.ReadCell(ctx, r.CurrentTotalCell)
	if err != nil {
		return nil, fmt.Errorf("reading current total: %w", err)
	}
	currentTotal, err := engine.ParseAmount(currentText)
	if err != nil {
		return nil, fmt.Errorf("current total cell %s: %w", r.CurrentTotalCell, err)
	}

	lastText, err := r.Ledger.ReadCell(ctx, r.LastTotalCell)
	if err != nil {
		return nil, fmt.Errorf("reading last-period total: %w", err)
	}
	lastTotal, err := engine.ParseAmount(lastText)
	if err != nil {
		return nil, fmt.Errorf("last-period total cell %s: %w", r.LastTotalCell, err)
	}

	return &CycleResult{
		Loans:         loans,
		Discretionary: discretionary,
		Plan:          plan,
		CurrentTotal:  currentTotal,
		LastTotal:     lastTotal,
		Trend:         engine.ComputeTrend(currentTotal, lastTotal),
	}, nil
}

// Preview runs the read and compute steps only: no write, no message, no
// history. Used by the dry-run plan command.
func (r *Runner) Preview(ctx context.Context) (*CycleResult, error) {
	return r.compute(ctx)
}

// RunCycle executes one full cycle in the fixed order: read ledger, compute
// plan, read prior total, persist the new total, send the notification.
// Any failure before the total is persisted aborts the run; a delivery
// failure after that point is logged and reported in the result instead,
// since the plan and ledger state are already consistent.
func (r *Runner) RunCycle(ctx context.Context) (*CycleResult, error) {
	result, err := r.compute(ctx)
	if err != nil {
		return nil, err
	}

	value := "$" + result.CurrentTotal.StringFixed(2)
	if err := r.Ledger.WriteCell(ctx, r.LastTotalCell, value); err != nil {
		return nil, fmt.Errorf("persisting total for next cycle: %w", err)
	}

	result.Message = notify.ComposeMessage(result.CurrentTotal, result.Trend, result.Plan)

	if r.Notifier != nil && r.Destination != "" {
		if err := r.Notifier.Send(ctx, r.Destination, result.Message); err != nil {
			r.log().WithError(err).Warn("notification delivery failed")
		} else {
			result.Notified = true
		}
	}

	r.recordHistory(result)

	return result, nil
}

// recordHistory persists the cycle outcome. Failures are logged, never
// fatal: the run already completed.
func (r *Runner) recordHistory(result *CycleResult) {
	if r.History == nil {
		return
	}

	planJSON, err := json.Marshal(result.Plan)
	if err != nil {
		r.log().WithError(err).Warn("encoding plan for history")
		return
	}

	run := store.Run{
		ID:           uuid.NewString(),
		RanAt:        time.Now(),
		CurrentTotal: result.CurrentTotal.String(),
		LastTotal:    result.LastTotal.String(),
		Delta:        result.Trend.Delta.String(),
		Direction:    directionLabel(result.Trend.Direction),
		PlanJSON:     string(planJSON),
		Notified:     result.Notified,
	}
	if err := r.History.Record(run); err != nil {
		r.log().WithError(err).Warn("recording run history")
	}
}

func directionLabel(d engine.Direction) string {
	switch d {
	case engine.TrendDown:
		return "down"
	case engine.TrendSame:
		return "same"
	default:
		return "up"
	}
}
