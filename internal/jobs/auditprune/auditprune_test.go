package auditprune

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubStore struct {
	cutoff  time.Time
	deleted int64
	err     error
	calls   int
}

func (s *stubStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.calls++
	s.cutoff = cutoff
	return s.deleted, s.err
}

func TestRunUsesRetentionCutoff(t *testing.T) {
	store := &stubStore{deleted: 3}
	job := New(store, 90*24*time.Hour, time.Hour, nil)
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := fixed.Add(-90 * 24 * time.Hour)
	if !store.cutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", store.cutoff, want)
	}
}

func TestRunWrapsStoreError(t *testing.T) {
	storeErr := errors.New("pool closed")
	job := New(&stubStore{err: storeErr}, time.Hour, time.Hour, nil)

	err := job.Run(context.Background())
	if !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped %v", err, storeErr)
	}
}

func TestRunWithoutStoreIsNoop(t *testing.T) {
	job := New(nil, time.Hour, time.Hour, nil)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
