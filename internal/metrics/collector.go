package metrics

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// SystemCollector refreshes uptime, goroutine and memory gauges.
type SystemCollector struct {
	metrics   *Metrics
	logger    *zap.Logger
	version   string
	startTime time.Time
	ticker    *time.Ticker
	stopCh    chan struct{}
}

func NewSystemCollector(metrics *Metrics, logger *zap.Logger, version string) *SystemCollector {
	return &SystemCollector{
		metrics:   metrics,
		logger:    logger,
		version:   version,
		startTime: time.Now(),
		stopCh:    make(chan struct{}),
	}
}

func (s *SystemCollector) Start(interval time.Duration) {
	s.ticker = time.NewTicker(interval)
	s.metrics.SetServiceVersion(s.version, "unknown", s.startTime.Format("2006-01-02"))

	go s.loop()
	s.logger.Info("system metrics collector started", zap.Duration("interval", interval))
}

func (s *SystemCollector) Stop() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stopCh)
	s.logger.Info("system metrics collector stopped")
}

func (s *SystemCollector) loop() {
	s.collect()

	for {
		select {
		case <-s.ticker.C:
			s.collect()
		case <-s.stopCh:
			return
		}
	}
}

func (s *SystemCollector) collect() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	s.metrics.UpdateSystemMetrics(s.Uptime(), &memStats)
}

func (s *SystemCollector) Uptime() time.Duration {
	return time.Since(s.startTime)
}
