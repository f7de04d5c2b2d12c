// Package daemon provides the long-running recurring-cycle service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Config controls the daemon runtime behavior.
type Config struct {
	// Schedule is a cron expression; descriptors like @weekly are accepted.
	Schedule string
	Addr     string
	// RunTimeout bounds a single cycle.
	RunTimeout time.Duration
}

// Status is served at /v1/status.
type Status struct {
	StartedAt time.Time `json:"started_at"`
	Schedule  string    `json:"schedule"`
	NextRunAt time.Time `json:"next_run_at,omitempty"`
	LastRunAt time.Time `json:"last_run_at,omitempty"`
	RunCount  int64     `json:"run_count"`
	LastError string    `json:"last_error,omitempty"`
	Running   bool      `json:"running"`
}

// RunFunc executes one payment cycle.
type RunFunc func(ctx context.Context) error

// Service schedules recurring cycles and serves a small status API.
// Overlapping runs are skipped, never queued: two concurrent cycles could
// race on the persisted last-period total.
type Service struct {
	cfg  Config
	run  RunFunc
	log  *logrus.Logger
	cron *cron.Cron

	mu        sync.RWMutex
	startedAt time.Time
	lastRunAt time.Time
	runCount  int64
	lastError string
	running   bool
}

// New returns a daemon service executing run on the configured schedule.
func New(cfg Config, run RunFunc, log *logrus.Logger) *Service {
	if cfg.Schedule == "" {
		cfg.Schedule = "@weekly"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8790"
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Service{
		cfg:       cfg,
		run:       run,
		log:       log,
		startedAt: time.Now(),
	}
}

// Run starts the scheduler and HTTP endpoints until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.PrintfLogger(s.log)),
	))
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runOnce); err != nil {
		return fmt.Errorf("daemon: invalid schedule %q: %w", s.cfg.Schedule, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.cron.Start()
	s.log.WithFields(logrus.Fields{
		"schedule": s.cfg.Schedule,
		"addr":     s.cfg.Addr,
	}).Info("daemon started")

	select {
	case <-ctx.Done():
		<-s.cron.Stop().Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		<-s.cron.Stop().Done()
		return fmt.Errorf("daemon http server: %w", err)
	}
}

func (s *Service) runOnce() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
	defer cancel()

	err := s.run(ctx)

	s.mu.Lock()
	s.running = false
	s.lastRunAt = time.Now()
	s.runCount++
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).Error("payment cycle failed")
	} else {
		s.log.Info("payment cycle completed")
	}
}

func (s *Service) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		StartedAt: s.startedAt,
		Schedule:  s.cfg.Schedule,
		LastRunAt: s.lastRunAt,
		RunCount:  s.runCount,
		LastError: s.lastError,
		Running:   s.running,
	}
	if s.cron != nil {
		if entries := s.cron.Entries(); len(entries) > 0 {
			st.NextRunAt = entries[0].Next
		}
	}
	return st
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.status())
}
