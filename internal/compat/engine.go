package compat

import (
	"math"
	"time"

	"github.com/gamecompat/internal/catalog"
	"github.com/gamecompat/internal/domain"
)

// Component score shaping constants.
const (
	baseRatioWeight     = 0.7
	baseFactorWeight    = 0.3
	topGenresForScore   = 5
	correlationWeight   = 0.6
	similarCountWeight  = 0.4
	similarCountTarget  = 10.0
	ownedBonusPerGame   = 15.0
	ownedBonusCap       = 50.0
	qualityBonusPerGame = 10.0
	qualityBonusCap     = 30.0
	qualityScoreFloor   = 80.0
	varietyBonusPerGame = 3.0
	varietyBonusCap     = 20.0
)

// Engine computes compatibility between two users' game libraries. It is
// pure and stateless apart from its configuration and injected catalog, so a
// single instance is safe for concurrent use.
type Engine struct {
	cfg       domain.AnalysisConfig
	catalog   catalog.Source
	suggester *CoopSuggester
}

// NewEngine creates a scoring engine with the given configuration and
// cooperative catalog. Zero-valued config fields receive defaults.
func NewEngine(cfg domain.AnalysisConfig, src catalog.Source) *Engine {
	cfg.ApplyDefaults()
	return &Engine{
		cfg:       cfg,
		catalog:   src,
		suggester: NewCoopSuggester(src),
	}
}

// Config returns the engine's effective configuration
func (e *Engine) Config() domain.AnalysisConfig {
	return e.cfg
}

// Analyze computes the consolidated compatibility result for two library
// snapshots. Validation fails atomically before any derived entity is
// produced.
func (e *Engine) Analyze(lib1, lib2 *domain.GameLibrary, user1ID, user2ID string, filter *domain.CoopFilter) (*domain.CompatibilityResult, error) {
	if lib1 == nil || lib2 == nil {
		return nil, domain.ErrInvalidInput
	}
	if !lib1.IsPublic || !lib2.IsPublic {
		return nil, domain.ErrPrivateProfile
	}
	if len(lib1.Games) == 0 && len(lib2.Games) == 0 {
		return nil, domain.ErrInsufficientData
	}

	common := CommonGames(lib1.Games, lib2.Games, e.cfg.MinPlaytime, e.catalog)
	genres := GenreCompatibilities(lib1.Games, lib2.Games, e.cfg.MinPlaytime)
	playtime := PlaytimeStats(common)
	recommendations := Recommendations(lib1.Games, lib2.Games, common, e.cfg.MinPlaytime, e.cfg.MaxRecommendations)
	coopSuggestions := e.suggester.Suggest(common, lib1.Games, lib2.Games, filter, e.cfg.MaxCoopSuggestions)

	baseScore := e.baseScore(common, lib1, lib2)
	genreScore := genreScore(genres)
	playtimeScore := playtimeScore(playtime)
	coopScore := coopBonus(coopSuggestions)

	weighted := baseScore*e.cfg.CommonGamesWeight +
		genreScore*e.cfg.GenreWeight +
		playtimeScore*e.cfg.PlaytimeWeight +
		coopScore*e.cfg.CoopWeight
	if weighted < 0 {
		weighted = 0
	}
	if weighted > 100 {
		weighted = 100
	}

	return &domain.CompatibilityResult{
		User1ID:         user1ID,
		User2ID:         user2ID,
		Score:           int(math.Round(weighted)),
		CommonGames:     common,
		Genres:          genres,
		Playtime:        playtime,
		Recommendations: recommendations,
		CoopSuggestions: coopSuggestions,
		AnalyzedAt:      time.Now().UTC(),
	}, nil
}

// baseScore blends the common-game ratio against the average library size
// with the mean per-game compatibility factor.
func (e *Engine) baseScore(common []domain.CommonGame, lib1, lib2 *domain.GameLibrary) float64 {
	total1 := lib1.GameCount
	if total1 == 0 {
		total1 = len(lib1.Games)
	}
	total2 := lib2.GameCount
	if total2 == 0 {
		total2 = len(lib2.Games)
	}

	avgTotal := float64(total1+total2) / 2
	ratio := 0.0
	if avgTotal > 0 {
		ratio = float64(len(common)) / avgTotal
	}

	avgFactor := 0.0
	if len(common) > 0 {
		var sum float64
		for _, cg := range common {
			sum += cg.CompatibilityFactor
		}
		avgFactor = sum / float64(len(common))
	}

	score := ratio*100*baseRatioWeight + avgFactor*100*baseFactorWeight
	if score > 100 {
		score = 100
	}
	return score
}

// genreScore averages the compatibility score of the top genres
func genreScore(genres []domain.GenreCompatibility) float64 {
	if len(genres) == 0 {
		return 0
	}
	top := genres
	if len(top) > topGenresForScore {
		top = top[:topGenresForScore]
	}
	var sum float64
	for _, g := range top {
		sum += g.Score
	}
	return sum / float64(len(top))
}

// playtimeScore rescales the correlation to [0,100] and blends it with the
// similar-game count, which saturates at ten games.
func playtimeScore(pt domain.PlaytimeCompatibility) float64 {
	correlationScore := (pt.Correlation + 1) * 50

	similarRatio := float64(pt.SimilarGames) / similarCountTarget
	if similarRatio > 1 {
		similarRatio = 1
	}

	score := correlationScore*correlationWeight + similarRatio*100*similarCountWeight
	if score > 100 {
		score = 100
	}
	return score
}

// coopBonus rewards owned co-op overlap, high-quality suggestions, and
// overall suggestion variety.
func coopBonus(suggestions []domain.CoopGameSuggestion) float64 {
	var ownedCount, qualityCount int
	for _, sg := range suggestions {
		if sg.BothOwnGame {
			ownedCount++
		}
		if sg.Score >= qualityScoreFloor {
			qualityCount++
		}
	}

	ownedBonus := ownedBonusPerGame * float64(ownedCount)
	if ownedBonus > ownedBonusCap {
		ownedBonus = ownedBonusCap
	}
	qualityBonus := qualityBonusPerGame * float64(qualityCount)
	if qualityBonus > qualityBonusCap {
		qualityBonus = qualityBonusCap
	}
	varietyBonus := varietyBonusPerGame * float64(len(suggestions))
	if varietyBonus > varietyBonusCap {
		varietyBonus = varietyBonusCap
	}

	bonus := ownedBonus + qualityBonus + varietyBonus
	if bonus > 100 {
		bonus = 100
	}
	return bonus
}
