package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gamecompat/internal/config"
	"github.com/gamecompat/internal/domain"
	"github.com/gamecompat/internal/postgres"
	"github.com/gamecompat/internal/redis"
)

// RetentionWorker prunes aged analysis history and keeps the result cache warm
type RetentionWorker struct {
	cache    *redis.Cache
	postgres *postgres.Repository
	config   *config.RetentionConfig
	cacheTTL time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewRetentionWorker creates a new retention worker
func NewRetentionWorker(
	cache *redis.Cache,
	postgres *postgres.Repository,
	cfg *config.RetentionConfig,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *RetentionWorker {
	return &RetentionWorker{
		cache:    cache,
		postgres: postgres,
		config:   cfg,
		cacheTTL: cacheTTL,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background retention process
func (w *RetentionWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info("retention worker started",
		"interval", w.config.Interval,
		"max_age", w.config.MaxAge,
	)

	go w.run(ctx)
	return nil
}

// Stop stops the background retention process
func (w *RetentionWorker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("retention worker stopped")
	return nil
}

// run is the main worker loop
func (w *RetentionWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.pruneHistory(ctx)
		}
	}
}

// pruneHistory deletes analyses older than the configured retention window
func (w *RetentionWorker) pruneHistory(ctx context.Context) {
	w.logger.Info("starting retention cycle")
	startTime := time.Now()

	cutoff := time.Now().Add(-w.config.MaxAge)
	deleted, err := w.postgres.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		w.logger.Error("failed to prune analysis history", "error", err)
		return
	}

	remaining, err := w.postgres.CountAnalyses(ctx)
	if err != nil {
		w.logger.Warn("failed to count remaining analyses", "error", err)
		remaining = -1
	}

	duration := time.Since(startTime)
	w.logger.Info("retention cycle completed",
		"duration", duration,
		"deleted", deleted,
		"remaining", remaining,
		"cutoff", cutoff,
	)
}

// WarmCache loads recent analyses from PostgreSQL into the result cache.
// This is useful for recovery or initialization.
func (w *RetentionWorker) WarmCache(ctx context.Context, limit int) error {
	w.logger.Debug("warming result cache from database", "limit", limit)

	recent, err := w.postgres.ListRecent(ctx, limit)
	if err != nil {
		return err
	}

	if len(recent) == 0 {
		w.logger.Debug("no analyses to warm cache with")
		return nil
	}

	results := make([]*domain.CompatibilityResult, 0, len(recent))
	for i := range recent {
		results = append(results, &recent[i])
	}

	if err := w.cache.WarmResults(ctx, results, w.cacheTTL); err != nil {
		return err
	}

	w.logger.Info("warmed result cache", "count", len(results))
	return nil
}

// IsRunning returns whether the worker is currently running
func (w *RetentionWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// RunOnce runs a single retention cycle (useful for manual triggers)
func (w *RetentionWorker) RunOnce(ctx context.Context) {
	w.pruneHistory(ctx)
}
