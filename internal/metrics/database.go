package metrics

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const slowQueryThreshold = 100 * time.Millisecond

// DatabaseMetricsCollector samples the connection pool and times queries.
type DatabaseMetricsCollector struct {
	metrics *Metrics
	logger  *zap.Logger
	sqlDB   *sql.DB
	ticker  *time.Ticker
	stopCh  chan struct{}
}

func NewDatabaseMetricsCollector(metrics *Metrics, logger *zap.Logger, db *gorm.DB) *DatabaseMetricsCollector {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB from gorm", zap.Error(err))
		metrics.RecordDBConnectionError()
	}

	return &DatabaseMetricsCollector{
		metrics: metrics,
		logger:  logger,
		sqlDB:   sqlDB,
		stopCh:  make(chan struct{}),
	}
}

func (d *DatabaseMetricsCollector) Start(interval time.Duration) {
	if d.sqlDB == nil {
		d.logger.Warn("database metrics collector not started, no sql.DB")
		return
	}

	d.ticker = time.NewTicker(interval)
	go d.loop()
	d.logger.Info("database metrics collector started", zap.Duration("interval", interval))
}

func (d *DatabaseMetricsCollector) Stop() {
	if d.ticker == nil {
		return
	}
	d.ticker.Stop()
	close(d.stopCh)
	d.logger.Info("database metrics collector stopped")
}

func (d *DatabaseMetricsCollector) loop() {
	d.collect()

	for {
		select {
		case <-d.ticker.C:
			d.collect()
		case <-d.stopCh:
			return
		}
	}
}

func (d *DatabaseMetricsCollector) collect() {
	stats := d.sqlDB.Stats()

	d.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
	d.metrics.DBConnectionsIdle.Set(float64(stats.Idle))

	d.logger.Debug("database pool stats",
		zap.Int("openConnections", stats.OpenConnections),
		zap.Int("inUse", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int64("waitCount", stats.WaitCount),
		zap.Duration("waitDuration", stats.WaitDuration),
	)
}

// Observe times fn and records it under operation and table.
func (d *DatabaseMetricsCollector) Observe(operation, table string, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)

	status := "success"
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}

	d.metrics.RecordDBQuery(operation, table, status, duration)

	if duration > slowQueryThreshold {
		d.logger.Warn("slow database query",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.String("status", status),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}

	return err
}

// Ping is used by the /health endpoint.
func (d *DatabaseMetricsCollector) Ping(ctx context.Context) error {
	if d.sqlDB == nil {
		d.metrics.RecordDBConnectionError()
		return sql.ErrConnDone
	}

	return d.Observe("ping", "health_check", func() error {
		return d.sqlDB.PingContext(ctx)
	})
}
