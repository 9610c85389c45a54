package app

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Connector opens a database connection.
type Connector func() (*gorm.DB, error)

// Delays between background connect attempts; the last one repeats.
var connectDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	5 * time.Second,
	15 * time.Second,
	30 * time.Second,
}

func nextConnectDelay(attempt int) time.Duration {
	if attempt >= len(connectDelays) {
		attempt = len(connectDelays) - 1
	}
	return connectDelays[attempt]
}

// Attached reports whether the gorm-backed repositories have a connection.
// An App built entirely from overrides has nothing to attach and is always attached.
func (a *App) Attached() bool {
	return len(a.setters) == 0 || a.attached.Load()
}

// EnsureDB runs the connector once if no connection is attached yet.
// Concurrent callers share a single attempt.
func (a *App) EnsureDB() error {
	if a.Attached() || a.connect == nil {
		return nil
	}
	a.connectMu.Lock()
	defer a.connectMu.Unlock()
	if a.Attached() {
		return nil
	}
	db, err := a.connect()
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	a.SetDB(db)
	return nil
}

// KeepConnecting retries EnsureDB until it succeeds or ctx is done.
func (a *App) KeepConnecting(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		err := a.EnsureDB()
		if err == nil {
			if a.connect != nil {
				a.log.Info().Int("attempts", attempt+1).Msg("database attached")
			}
			return nil
		}
		delay := a.delay(attempt)
		a.log.Warn().Err(err).Dur("retry_in", delay).Msg("db connect failed")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
