package catalog

import (
	"github.com/gamecompat/internal/domain"
)

// Source provides read-only access to the cooperative game catalog
type Source interface {
	// Lookup returns the catalog entry for a game, if present
	Lookup(appID int64) (domain.CoopGameInfo, bool)

	// All returns every catalog entry
	All() []domain.CoopGameInfo

	// Popular returns the entries flagged as popular
	Popular() []domain.CoopGameInfo
}

// Static is an in-memory catalog source
type Static struct {
	games map[int64]domain.CoopGameInfo
	order []int64
}

// NewStatic creates a catalog source from a fixed set of entries
func NewStatic(entries []domain.CoopGameInfo) *Static {
	s := &Static{
		games: make(map[int64]domain.CoopGameInfo, len(entries)),
		order: make([]int64, 0, len(entries)),
	}
	for _, e := range entries {
		if _, exists := s.games[e.AppID]; exists {
			continue
		}
		s.games[e.AppID] = e
		s.order = append(s.order, e.AppID)
	}
	return s
}

// NewDefault creates a catalog source seeded with the built-in entries
func NewDefault() *Static {
	return NewStatic(defaultEntries)
}

// Lookup returns the catalog entry for a game, if present
func (s *Static) Lookup(appID int64) (domain.CoopGameInfo, bool) {
	info, ok := s.games[appID]
	return info, ok
}

// All returns every catalog entry in insertion order
func (s *Static) All() []domain.CoopGameInfo {
	entries := make([]domain.CoopGameInfo, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.games[id])
	}
	return entries
}

// Popular returns the entries flagged as popular, in insertion order
func (s *Static) Popular() []domain.CoopGameInfo {
	var entries []domain.CoopGameInfo
	for _, id := range s.order {
		if s.games[id].Popular {
			entries = append(entries, s.games[id])
		}
	}
	return entries
}

// IsCoopGame reports whether a game appears in the catalog
func IsCoopGame(src Source, appID int64) bool {
	_, ok := src.Lookup(appID)
	return ok
}

// Stats computes aggregate counts over a catalog source
func Stats(src Source) domain.CoopGameStats {
	stats := domain.CoopGameStats{
		ByMode: make(map[domain.CoopMode]int),
	}
	for _, info := range src.All() {
		stats.TotalGames++
		stats.ByMode[info.Mode]++
		if info.Popular {
			stats.PopularGames++
		}
	}
	return stats
}
