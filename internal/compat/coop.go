package compat

import (
	"fmt"
	"sort"

	"github.com/gamecompat/internal/catalog"
	"github.com/gamecompat/internal/domain"
)

// Empirical tuning values for the three suggestion sources. These shape the
// ranking only; they are not load-bearing invariants.
const (
	ownedCoopBase      = 70.0
	ownedCoopFactorMul = 25.0
	ownedCoopCap       = 95.0

	preferenceBase     = 40.0
	preferenceRatioMul = 50.0
	preferenceCap      = 90.0
	preferenceCutoff   = 0.3

	popularCoopScore = 60.0

	// Genre-weight accumulation inputs.
	commonGenreWeightMul = 3.0
	engagedPlaytimeFloor = 60
	ownershipWeightCap   = 2.0
	ownershipWeightDiv   = 300.0
)

// CoopSuggester merges owned, preference-matched, and popular cooperative
// game candidates into one ranked suggestion list.
type CoopSuggester struct {
	catalog catalog.Source
}

// NewCoopSuggester creates a suggester backed by the given catalog
func NewCoopSuggester(src catalog.Source) *CoopSuggester {
	return &CoopSuggester{catalog: src}
}

// Suggest produces a deduplicated, descending-ranked cooperative suggestion
// list from the pair's common games and full libraries, optionally filtered,
// truncated to maxResults.
func (s *CoopSuggester) Suggest(common []domain.CommonGame, games1, games2 []domain.Game, filter *domain.CoopFilter, maxResults int) []domain.CoopGameSuggestion {
	owned := make(map[int64]bool, len(games1)+len(games2))
	for _, g := range games1 {
		owned[g.AppID] = true
	}
	for _, g := range games2 {
		owned[g.AppID] = true
	}

	suggestions := s.ownedSuggestions(common)
	suggestions = append(suggestions, s.preferenceSuggestions(common, games1, games2, owned)...)
	suggestions = append(suggestions, s.popularSuggestions(owned)...)

	if filter != nil {
		suggestions = s.applyFilter(suggestions, filter)
	}

	suggestions = dedupeByScore(suggestions)
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if maxResults > 0 && len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}
	return suggestions
}

// ownedSuggestions proposes catalog games both users already own, scored by
// how similarly the pair engaged with them.
func (s *CoopSuggester) ownedSuggestions(common []domain.CommonGame) []domain.CoopGameSuggestion {
	var suggestions []domain.CoopGameSuggestion
	for _, cg := range common {
		info, ok := s.catalog.Lookup(cg.AppID)
		if !ok {
			continue
		}
		score := ownedCoopBase + cg.CompatibilityFactor*ownedCoopFactorMul
		if score > ownedCoopCap {
			score = ownedCoopCap
		}
		suggestions = append(suggestions, domain.CoopGameSuggestion{
			AppID:       info.AppID,
			Name:        info.Name,
			Mode:        info.Mode,
			MaxPlayers:  info.MaxPlayers,
			Description: info.Description,
			StoreURL:    info.StoreURL,
			Score:       score,
			Reason:      "You both already own this co-op game",
			BothOwnGame: true,
		})
	}
	return suggestions
}

// preferenceSuggestions proposes unowned catalog games whose genres match the
// pair's combined genre preferences.
func (s *CoopSuggester) preferenceSuggestions(common []domain.CommonGame, games1, games2 []domain.Game, owned map[int64]bool) []domain.CoopGameSuggestion {
	weights := genreWeights(common, games1, games2)

	var totalWeight float64
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return nil
	}

	var suggestions []domain.CoopGameSuggestion
	for _, info := range s.catalog.All() {
		if owned[info.AppID] {
			continue
		}
		var matchWeight float64
		for _, genre := range info.Genres {
			matchWeight += weights[genre]
		}
		ratio := matchWeight / totalWeight
		if ratio <= preferenceCutoff {
			continue
		}
		score := preferenceBase + ratio*preferenceRatioMul
		if score > preferenceCap {
			score = preferenceCap
		}
		suggestions = append(suggestions, domain.CoopGameSuggestion{
			AppID:       info.AppID,
			Name:        info.Name,
			Mode:        info.Mode,
			MaxPlayers:  info.MaxPlayers,
			Description: info.Description,
			StoreURL:    info.StoreURL,
			Score:       score,
			Reason:      fmt.Sprintf("Matches %.0f%% of your shared genre preferences", ratio*100),
			BothOwnGame: false,
		})
	}
	return suggestions
}

// popularSuggestions proposes popular catalog games neither user owns, at a
// flat score.
func (s *CoopSuggester) popularSuggestions(owned map[int64]bool) []domain.CoopGameSuggestion {
	var suggestions []domain.CoopGameSuggestion
	for _, info := range s.catalog.Popular() {
		if owned[info.AppID] {
			continue
		}
		suggestions = append(suggestions, domain.CoopGameSuggestion{
			AppID:       info.AppID,
			Name:        info.Name,
			Mode:        info.Mode,
			MaxPlayers:  info.MaxPlayers,
			Description: info.Description,
			StoreURL:    info.StoreURL,
			Score:       popularCoopScore,
			Reason:      "Popular co-op game among player pairs",
			BothOwnGame: false,
		})
	}
	return suggestions
}

// genreWeights builds the pair's combined genre-preference map: common games
// contribute weight proportional to their compatibility factor, and every
// meaningfully played game from either library contributes weight capped by
// playtime.
func genreWeights(common []domain.CommonGame, games1, games2 []domain.Game) map[string]float64 {
	weights := make(map[string]float64)
	for _, cg := range common {
		for _, genre := range cg.Genres {
			weights[genre] += cg.CompatibilityFactor * commonGenreWeightMul
		}
	}
	addOwnershipWeights(weights, games1)
	addOwnershipWeights(weights, games2)
	return weights
}

func addOwnershipWeights(weights map[string]float64, games []domain.Game) {
	for _, g := range games {
		if g.PlaytimeForever <= engagedPlaytimeFloor {
			continue
		}
		w := float64(g.PlaytimeForever) / ownershipWeightDiv
		if w > ownershipWeightCap {
			w = ownershipWeightCap
		}
		for _, genre := range g.Genres {
			weights[genre] += w
		}
	}
}

// applyFilter keeps only suggestions satisfying every populated filter field.
// A local or online mode filter also admits games supporting both modes.
func (s *CoopSuggester) applyFilter(suggestions []domain.CoopGameSuggestion, filter *domain.CoopFilter) []domain.CoopGameSuggestion {
	filtered := suggestions[:0]
	for _, sg := range suggestions {
		if filter.Mode != "" && sg.Mode != filter.Mode && sg.Mode != domain.CoopModeBoth {
			continue
		}
		if filter.MinPlayers > 0 && sg.MaxPlayers < filter.MinPlayers {
			continue
		}
		if filter.MinScore > 0 && sg.Score < filter.MinScore {
			continue
		}
		if len(filter.Genres) > 0 && !s.matchesGenres(sg.AppID, filter.Genres) {
			continue
		}
		filtered = append(filtered, sg)
	}
	return filtered
}

// matchesGenres reports whether the catalog entry shares at least one genre
// with the required set.
func (s *CoopSuggester) matchesGenres(appID int64, required []string) bool {
	info, ok := s.catalog.Lookup(appID)
	if !ok {
		return false
	}
	for _, want := range required {
		for _, have := range info.Genres {
			if have == want {
				return true
			}
		}
	}
	return false
}

// dedupeByScore removes duplicate app IDs, keeping the highest-scoring
// instance of each.
func dedupeByScore(suggestions []domain.CoopGameSuggestion) []domain.CoopGameSuggestion {
	best := make(map[int64]int, len(suggestions))
	result := make([]domain.CoopGameSuggestion, 0, len(suggestions))
	for _, sg := range suggestions {
		if idx, seen := best[sg.AppID]; seen {
			if sg.Score > result[idx].Score {
				result[idx] = sg
			}
			continue
		}
		best[sg.AppID] = len(result)
		result = append(result, sg)
	}
	return result
}
