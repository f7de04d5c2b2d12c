package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/daemon"
)

var (
	flagDaemonAddr     string
	flagDaemonSchedule string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run payment cycles on a recurring schedule",
	Long: "Runs the full payment cycle on the configured cron schedule and\n" +
		"serves /healthz and /v1/status. Overlapping cycles are skipped so two\n" +
		"runs can never race on the persisted last-period total.",
	RunE: runDaemon,
}

func init() {
	daemonCmd.Flags().StringVar(&flagDaemonAddr, "addr", "", "HTTP listen address (default from config)")
	daemonCmd.Flags().StringVar(&flagDaemonSchedule, "schedule", "", "Cron schedule (default from config)")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if flagDaemonAddr != "" {
		cfg.Daemon.Addr = flagDaemonAddr
	}
	if flagDaemonSchedule != "" {
		cfg.Daemon.Schedule = flagDaemonSchedule
	}

	log := newLogger()
	runner, cleanup, err := newRunner(cfg, log, false)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := daemon.New(daemon.Config{
		Schedule:   cfg.Daemon.Schedule,
		Addr:       cfg.Daemon.Addr,
		RunTimeout: 5 * time.Minute,
	}, func(ctx context.Context) error {
		_, err := runner.RunCycle(ctx)
		return err
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return svc.Run(ctx)
}
