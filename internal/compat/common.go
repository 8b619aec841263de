package compat

import (
	"sort"

	"github.com/gamecompat/internal/catalog"
	"github.com/gamecompat/internal/domain"
)

// CommonGames intersects two owned-game lists by app ID and attaches a
// per-game compatibility factor and cooperative-support flag to each hit.
// The result is sorted descending by factor; ties keep the first list's order.
func CommonGames(games1, games2 []domain.Game, minPlaytime int64, src catalog.Source) []domain.CommonGame {
	byID := make(map[int64]domain.Game, len(games2))
	for _, g := range games2 {
		byID[g.AppID] = g
	}

	common := make([]domain.CommonGame, 0)
	seen := make(map[int64]bool)
	for _, g1 := range games1 {
		g2, ok := byID[g1.AppID]
		if !ok || seen[g1.AppID] {
			continue
		}
		seen[g1.AppID] = true
		common = append(common, domain.CommonGame{
			AppID:               g1.AppID,
			Name:                g1.Name,
			User1Playtime:       g1.PlaytimeForever,
			User2Playtime:       g2.PlaytimeForever,
			CompatibilityFactor: CompatibilityFactor(g1.PlaytimeForever, g2.PlaytimeForever, minPlaytime),
			SupportsCoop:        catalog.IsCoopGame(src, g1.AppID),
			Genres:              g1.Genres,
		})
	}

	sort.SliceStable(common, func(i, j int) bool {
		return common[i].CompatibilityFactor > common[j].CompatibilityFactor
	})
	return common
}
