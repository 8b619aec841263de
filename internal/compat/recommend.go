package compat

import (
	"fmt"
	"sort"

	"github.com/gamecompat/internal/domain"
)

const (
	recommendationBaseScore = 50.0
	// Playtime bonus is linear at 3 points per 10 played hours, capped at 30.
	playtimeBonusPerMinute = 3.0 / 600.0
	playtimeBonusCap       = 30.0
	genreBonusPerMatch     = 5.0
)

// Recommendations proposes games one user owns that the other does not,
// ranked by playtime and overlap with the genres the pair already shares.
// Each side contributes up to half the cap; on odd caps the first user gets
// the extra slot.
func Recommendations(games1, games2 []domain.Game, common []domain.CommonGame, minPlaytime int64, maxResults int) []domain.GameRecommendation {
	if maxResults <= 0 {
		return []domain.GameRecommendation{}
	}

	sharedGenres := make(map[string]bool)
	for _, cg := range common {
		for _, g := range cg.Genres {
			sharedGenres[g] = true
		}
	}

	half := maxResults / 2
	fromUser1 := sideRecommendations(games1, games2, sharedGenres, minPlaytime, maxResults-half)
	fromUser2 := sideRecommendations(games2, games1, sharedGenres, minPlaytime, half)

	recs := append(fromUser1, fromUser2...)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > maxResults {
		recs = recs[:maxResults]
	}
	return recs
}

// sideRecommendations scores the owner's games the other user does not own
// and returns the top candidates for that side.
func sideRecommendations(owned, other []domain.Game, sharedGenres map[string]bool, minPlaytime int64, limit int) []domain.GameRecommendation {
	if limit <= 0 {
		return nil
	}

	otherOwns := make(map[int64]bool, len(other))
	for _, g := range other {
		otherOwns[g.AppID] = true
	}

	var candidates []domain.GameRecommendation
	for _, g := range owned {
		if otherOwns[g.AppID] || g.PlaytimeForever < minPlaytime {
			continue
		}
		candidates = append(candidates, scoreRecommendation(g, sharedGenres))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func scoreRecommendation(g domain.Game, sharedGenres map[string]bool) domain.GameRecommendation {
	playtimeBonus := float64(g.PlaytimeForever) * playtimeBonusPerMinute
	if playtimeBonus > playtimeBonusCap {
		playtimeBonus = playtimeBonusCap
	}

	matched := 0
	for _, genre := range g.Genres {
		if sharedGenres[genre] {
			matched++
		}
	}

	score := recommendationBaseScore + playtimeBonus + genreBonusPerMatch*float64(matched)
	if score > 100 {
		score = 100
	}

	reason := fmt.Sprintf("Played %d hours by its owner", g.PlaytimeForever/60)
	if matched > 0 {
		reason = fmt.Sprintf("%s, matches %d of your shared genres", reason, matched)
	}

	return domain.GameRecommendation{
		AppID:             g.AppID,
		Name:              g.Name,
		Score:             score,
		Reason:            reason,
		Genres:            g.Genres,
		EstimatedPlaytime: g.PlaytimeForever,
	}
}
