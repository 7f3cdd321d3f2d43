package services

import (
	"context"
	"time"

	"github.com/hari2128-cell/CureVox/internal/logger"
	"github.com/hari2128-cell/CureVox/internal/metrics"
	"github.com/hari2128-cell/CureVox/internal/repositories"

	"gorm.io/gorm"
)

// janitorInterval is how often stale sessions are swept.
const janitorInterval = time.Hour

// SessionJanitor closes sessions whose login predates the refresh-token
// lifetime and keeps the active-session gauge current. Tokens expire on
// their own; the sweep only stops the session table from growing stale
// active rows.
type SessionJanitor struct {
	sessionRepo repositories.SessionRepository
	collector   *metrics.Collector
	maxAge      time.Duration
	interval    time.Duration
}

func NewSessionJanitor(sessionRepo repositories.SessionRepository, collector *metrics.Collector, maxAge time.Duration) *SessionJanitor {
	return &SessionJanitor{
		sessionRepo: sessionRepo,
		collector:   collector,
		maxAge:      maxAge,
		interval:    janitorInterval,
	}
}

// CleanOnce runs a single sweep and returns how many sessions it closed.
func (j *SessionJanitor) CleanOnce(ctx context.Context, db *gorm.DB) (int64, error) {
	closed, err := j.sessionRepo.CleanStale(db, time.Now().Add(-j.maxAge))
	if err != nil {
		return 0, err
	}

	active, err := j.sessionRepo.CountActive(db)
	if err != nil {
		logger.CtxWarn(ctx, "failed to count active sessions", "error", err)
	} else {
		j.collector.SetActiveSessions(active)
	}
	return closed, nil
}

// Start launches the periodic sweep. It stops when ctx is cancelled.
func (j *SessionJanitor) Start(ctx context.Context, db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				closed, err := j.CleanOnce(ctx, db)
				if err != nil {
					logger.CtxWarn(ctx, "session sweep failed", "error", err)
				} else if closed > 0 {
					logger.FromContext(ctx).Info("closed stale sessions", "count", closed)
				}
			}
		}
	}()
}
