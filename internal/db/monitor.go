package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// MonitorDisabled turns the pool monitor off
const MonitorDisabled = "off"

const pingTimeout = 5 * time.Second

// PoolMonitor periodically pings the database and logs pool statistics
type PoolMonitor struct {
	cron   *cron.Cron
	db     *DB
	logger *slog.Logger
}

// StartMonitor schedules pool checks. A nil monitor is returned when disabled.
func (db *DB) StartMonitor(schedule string, logger *slog.Logger) (*PoolMonitor, error) {
	if schedule == "" || schedule == MonitorDisabled {
		return nil, nil
	}

	m := &PoolMonitor{
		cron:   cron.New(),
		db:     db,
		logger: logger,
	}
	if _, err := m.cron.AddFunc(schedule, m.Check); err != nil {
		return nil, fmt.Errorf("invalid monitor schedule %q: %w", schedule, err)
	}
	m.cron.Start()

	logger.Info("database pool monitor started", "schedule", schedule)
	return m, nil
}

// Check runs a single ping and logs the pool state
func (m *PoolMonitor) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	sqlDB, err := m.db.SQL()
	if err != nil {
		m.logger.Error("database pool unavailable", "error", err)
		return
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		m.logger.Error("database ping failed", "driver", m.db.driver, "error", err)
		return
	}

	stats := sqlDB.Stats()
	m.logger.Info("database pool stats",
		"driver", m.db.driver,
		"open", stats.OpenConnections,
		"in_use", stats.InUse,
		"idle", stats.Idle,
		"wait_count", stats.WaitCount,
		"wait_duration", stats.WaitDuration,
	)
}

// Stop halts the schedule and waits for a running check to finish
func (m *PoolMonitor) Stop() {
	if m == nil {
		return
	}
	<-m.cron.Stop().Done()
}
