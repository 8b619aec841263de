package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gamecompat/internal/catalog"
	"github.com/gamecompat/internal/compat"
	"github.com/gamecompat/internal/config"
	"github.com/gamecompat/internal/domain"
	"github.com/google/uuid"
)

// LibraryProvider retrieves game-ownership snapshots from the remote API
type LibraryProvider interface {
	GetOwnedGames(ctx context.Context, userID string) (*domain.GameLibrary, error)
}

// SnapshotCache caches library snapshots and analysis results
type SnapshotCache interface {
	GetLibrary(ctx context.Context, userID string) (*domain.GameLibrary, error)
	SetLibrary(ctx context.Context, lib *domain.GameLibrary, ttl time.Duration) error
	InvalidateLibrary(ctx context.Context, userID string) error
	GetResult(ctx context.Context, user1ID, user2ID string) (*domain.CompatibilityResult, error)
	SetResult(ctx context.Context, result *domain.CompatibilityResult, ttl time.Duration) error
	InvalidateResult(ctx context.Context, user1ID, user2ID string) error
}

// HistoryStore persists completed analyses
type HistoryStore interface {
	RecordAnalysis(ctx context.Context, result *domain.CompatibilityResult) error
	RecordAnalysisBatch(ctx context.Context, results []*domain.CompatibilityResult) error
	GetAnalysis(ctx context.Context, analysisID string) (*domain.CompatibilityResult, error)
	GetLatestForPair(ctx context.Context, user1ID, user2ID string) (*domain.CompatibilityResult, error)
	ListRecent(ctx context.Context, limit int) ([]domain.CompatibilityResult, error)
}

// Broadcaster pushes completed analyses to connected clients
type Broadcaster interface {
	BroadcastAnalysis(result *domain.CompatibilityResult)
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// AnalysisService provides business logic for compatibility analysis
type AnalysisService struct {
	engine   *compat.Engine
	provider LibraryProvider
	cache    SnapshotCache
	history  HistoryStore
	catalog  catalog.Source
	cacheCfg *config.CacheConfig
	logger   *slog.Logger
	hub      Broadcaster
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	engine *compat.Engine,
	provider LibraryProvider,
	cache SnapshotCache,
	history HistoryStore,
	src catalog.Source,
	cacheCfg *config.CacheConfig,
	logger *slog.Logger,
) *AnalysisService {
	return &AnalysisService{
		engine:   engine,
		provider: provider,
		cache:    cache,
		history:  history,
		catalog:  src,
		cacheCfg: cacheCfg,
		logger:   logger,
	}
}

// SetHub sets the broadcaster for completed-analysis notifications
func (s *AnalysisService) SetHub(hub Broadcaster) {
	s.hub = hub
}

// Analyze resolves both users' libraries and computes their compatibility.
// Unfiltered requests are served from the result cache when possible.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.CompatibilityResult, error) {
	result, cached, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}
	if cached {
		return result, nil
	}

	if err := s.history.RecordAnalysis(ctx, result); err != nil {
		s.logger.Warn("failed to record analysis", "error", err)
		// Don't fail the request if history recording fails
	}

	s.finish(ctx, req, result)
	return result, nil
}

// AnalyzeBatch processes queued analysis requests, persisting all fresh
// results in a single batch write. Requests that fail validation are skipped.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, reqs []domain.AnalyzeRequest) error {
	results := make([]*domain.CompatibilityResult, 0, len(reqs))
	for _, req := range reqs {
		result, cached, err := s.compute(ctx, req)
		if err != nil {
			s.logger.Warn("skipping analysis request",
				"request_id", req.RequestID,
				"user1_id", req.User1ID,
				"user2_id", req.User2ID,
				"error", err,
			)
			continue
		}
		if cached {
			continue
		}
		s.finish(ctx, req, result)
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil
	}
	return s.history.RecordAnalysisBatch(ctx, results)
}

// compute runs one analysis, serving unfiltered requests from the result
// cache when the cached orientation matches. The cached flag reports a hit.
func (s *AnalysisService) compute(ctx context.Context, req domain.AnalyzeRequest) (*domain.CompatibilityResult, bool, error) {
	if req.User1ID == "" || req.User2ID == "" || req.User1ID == req.User2ID {
		return nil, false, domain.ErrInvalidRequest
	}

	if req.Refresh {
		s.invalidate(ctx, req.User1ID, req.User2ID)
	} else if req.Filter == nil {
		cached, err := s.cache.GetResult(ctx, req.User1ID, req.User2ID)
		if err != nil {
			s.logger.Warn("failed to read result cache", "error", err)
		} else if cached != nil && cached.User1ID == req.User1ID {
			// A hit for the reversed pair is recomputed so the attribute
			// orientation matches the request order.
			s.logger.Debug("serving cached analysis",
				"user1_id", req.User1ID,
				"user2_id", req.User2ID,
			)
			return cached, true, nil
		}
	}

	lib1, err := s.resolveLibrary(ctx, req.User1ID)
	if err != nil {
		return nil, false, fmt.Errorf("resolving library for %s: %w", req.User1ID, err)
	}
	lib2, err := s.resolveLibrary(ctx, req.User2ID)
	if err != nil {
		return nil, false, fmt.Errorf("resolving library for %s: %w", req.User2ID, err)
	}

	result, err := s.engine.Analyze(lib1, lib2, req.User1ID, req.User2ID, req.Filter)
	if err != nil {
		return nil, false, err
	}
	result.ID = uuid.New().String()
	return result, false, nil
}

// finish caches an unfiltered result and notifies subscribers
func (s *AnalysisService) finish(ctx context.Context, req domain.AnalyzeRequest, result *domain.CompatibilityResult) {
	if req.Filter == nil {
		if err := s.cache.SetResult(ctx, result, s.cacheCfg.ResultTTL); err != nil {
			s.logger.Warn("failed to cache analysis result", "error", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastAnalysis(result)
	}
}

// invalidate drops the cached snapshots and result for a pair so a refresh
// request re-fetches both libraries
func (s *AnalysisService) invalidate(ctx context.Context, user1ID, user2ID string) {
	for _, userID := range []string{user1ID, user2ID} {
		if err := s.cache.InvalidateLibrary(ctx, userID); err != nil {
			s.logger.Warn("failed to invalidate library snapshot", "user_id", userID, "error", err)
		}
	}
	if err := s.cache.InvalidateResult(ctx, user1ID, user2ID); err != nil {
		s.logger.Warn("failed to invalidate cached result", "error", err)
	}
}

// resolveLibrary returns a user's library snapshot, preferring the cache
func (s *AnalysisService) resolveLibrary(ctx context.Context, userID string) (*domain.GameLibrary, error) {
	cached, err := s.cache.GetLibrary(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to read library cache", "user_id", userID, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	lib, err := s.provider.GetOwnedGames(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetLibrary(ctx, lib, s.cacheCfg.LibraryTTL); err != nil {
		s.logger.Warn("failed to cache library snapshot", "user_id", userID, "error", err)
	}
	return lib, nil
}

// GetLibrary returns a user's library snapshot
func (s *AnalysisService) GetLibrary(ctx context.Context, userID string) (*domain.GameLibrary, error) {
	if userID == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.resolveLibrary(ctx, userID)
}

// GetAnalysis returns a stored analysis by ID
func (s *AnalysisService) GetAnalysis(ctx context.Context, analysisID string) (*domain.CompatibilityResult, error) {
	return s.history.GetAnalysis(ctx, analysisID)
}

// GetLatestForPair returns the most recent stored analysis for a user pair
func (s *AnalysisService) GetLatestForPair(ctx context.Context, user1ID, user2ID string) (*domain.CompatibilityResult, error) {
	return s.history.GetLatestForPair(ctx, user1ID, user2ID)
}

// ListRecent returns the most recent stored analyses
func (s *AnalysisService) ListRecent(ctx context.Context, limit int) ([]domain.CompatibilityResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.history.ListRecent(ctx, limit)
}

// ListCoopGames returns every cooperative catalog entry
func (s *AnalysisService) ListCoopGames() []domain.CoopGameInfo {
	return s.catalog.All()
}

// GetCoopGame returns one cooperative catalog entry
func (s *AnalysisService) GetCoopGame(appID int64) (domain.CoopGameInfo, bool) {
	return s.catalog.Lookup(appID)
}

// IsCoopGame reports whether a game appears in the cooperative catalog
func (s *AnalysisService) IsCoopGame(appID int64) bool {
	return catalog.IsCoopGame(s.catalog, appID)
}

// CoopGameStats returns aggregate counts over the cooperative catalog
func (s *AnalysisService) CoopGameStats() domain.CoopGameStats {
	return catalog.Stats(s.catalog)
}
