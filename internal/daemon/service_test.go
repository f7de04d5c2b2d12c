package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunOnce_TracksOutcome(t *testing.T) {
	calls := 0
	s := New(Config{}, func(context.Context) error {
		calls++
		return nil
	}, quietLogger())

	s.runOnce()

	st := s.status()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if st.RunCount != 1 {
		t.Errorf("RunCount = %d, want 1", st.RunCount)
	}
	if st.LastError != "" {
		t.Errorf("LastError = %q, want empty", st.LastError)
	}
	if st.LastRunAt.IsZero() {
		t.Error("LastRunAt not recorded")
	}
}

func TestRunOnce_CapturesError(t *testing.T) {
	s := New(Config{}, func(context.Context) error {
		return errors.New("ledger unreachable")
	}, quietLogger())

	s.runOnce()

	if got := s.status().LastError; got != "ledger unreachable" {
		t.Errorf("LastError = %q", got)
	}

	// A later success clears the error.
	s.run = func(context.Context) error { return nil }
	s.runOnce()
	if got := s.status().LastError; got != "" {
		t.Errorf("LastError = %q, want cleared", got)
	}
}

func TestHandleStatus(t *testing.T) {
	s := New(Config{Schedule: "@weekly"}, func(context.Context) error { return nil }, quietLogger())
	s.runOnce()

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest("GET", "/v1/status", nil))

	var st Status
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if st.Schedule != "@weekly" {
		t.Errorf("Schedule = %q", st.Schedule)
	}
	if st.RunCount != 1 {
		t.Errorf("RunCount = %d, want 1", st.RunCount)
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{}, nil, nil)
	if s.cfg.Schedule != "@weekly" {
		t.Errorf("Schedule = %q, want @weekly", s.cfg.Schedule)
	}
	if s.cfg.Addr == "" || s.cfg.RunTimeout <= 0 {
		t.Error("defaults not applied")
	}
}
