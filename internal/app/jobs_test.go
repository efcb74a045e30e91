package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/swiftremit/payments-service/internal/store"
)

type flagRepoStub struct {
	store.Repository
	olderThan time.Duration
	flagged   int64
	err       error
	calls     int
}

func (s *flagRepoStub) FlagStaleTransactions(_ context.Context, olderThan time.Duration) (int64, error) {
	s.calls++
	s.olderThan = olderThan
	return s.flagged, s.err
}

func TestReconcilePendingTransactions(t *testing.T) {
	repo := &flagRepoStub{flagged: 3}
	jobs := NewJobs(repo, slog.New(slog.NewTextHandler(io.Discard, nil)), 72*time.Hour)

	jobs.ReconcilePendingTransactions()

	if repo.calls != 1 {
		t.Fatalf("expected one sweep, got %d", repo.calls)
	}
	if repo.olderThan != 72*time.Hour {
		t.Errorf("expected configured age 72h, got %s", repo.olderThan)
	}
}

func TestReconcilePendingTransactionsSurvivesStoreError(t *testing.T) {
	repo := &flagRepoStub{err: errors.New("db down")}
	jobs := NewJobs(repo, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)

	// Must not panic; the scheduler keeps running.
	jobs.ReconcilePendingTransactions()

	if repo.calls != 1 {
		t.Fatalf("expected one sweep, got %d", repo.calls)
	}
}
