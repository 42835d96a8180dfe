package service

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// DefaultHealthInterval is how often dependencies are pinged.
const DefaultHealthInterval = 15 * time.Second

// StatusReporter publishes the serving state of a named service.
type StatusReporter interface {
	SetServing(service string, serving bool)
}

// Health pings dependencies and reports the overall and per-dependency state.
type Health struct {
	checks   map[string]model.Pinger
	reporter StatusReporter
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger
}

func NewHealth(checks map[string]model.Pinger, reporter StatusReporter, interval time.Duration, logger *logger.Logger) *Health {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &Health{
		checks:   checks,
		reporter: reporter,
		interval: interval,
		timeout:  interval / 2,
		logger:   logger,
	}
}

// Check pings every dependency once and publishes the result.
// The overall service, named "", is serving only when every dependency is.
func (h *Health) Check(ctx context.Context) bool {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		healthy = true
	)

	for name, pinger := range h.checks {
		wg.Add(1)
		go func(name string, pinger model.Pinger) {
			defer wg.Done()

			pingCtx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()

			err := pinger.Ping(pingCtx)
			if err != nil {
				h.logger.Warn("Health service: dependency unavailable",
					"dependency", name,
					"error", err.Error())
			}
			h.reporter.SetServing(name, err == nil)

			if err != nil {
				mu.Lock()
				healthy = false
				mu.Unlock()
			}
		}(name, pinger)
	}
	wg.Wait()

	h.reporter.SetServing("", healthy)
	return healthy
}

// Run checks dependencies every interval until ctx is done.
func (h *Health) Run(ctx context.Context) {
	h.Check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}
