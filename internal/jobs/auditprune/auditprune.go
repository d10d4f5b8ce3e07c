package auditprune

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type auditStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Job trims old audit log rows so the table stays bounded. One Run is one
// pass; Start loops until the context ends.
type Job struct {
	store     auditStore
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func New(store auditStore, retention, interval time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		store:     store,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.store == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	rows, err := j.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune audit log: %w", err)
	}
	if rows > 0 {
		j.logger.Info("audit log pruned", zap.Int64("deleted", rows), zap.Time("cutoff", cutoff))
	}
	return nil
}

func (j *Job) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("audit prune pass failed", zap.Error(err))
			}
		}
	}
}
