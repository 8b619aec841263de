package compat

import (
	"sort"

	"github.com/gamecompat/internal/domain"
)

// GenreCompatibilities aggregates per-genre ownership for each user, counting
// only games at or above the minimum playtime, and scores each genre by how
// closely the two counts match. Sorted descending by score, then genre name.
func GenreCompatibilities(games1, games2 []domain.Game, minPlaytime int64) []domain.GenreCompatibility {
	counts1 := genreCounts(games1, minPlaytime)
	counts2 := genreCounts(games2, minPlaytime)

	seen := make(map[string]bool, len(counts1)+len(counts2))
	genres := make([]string, 0, len(counts1)+len(counts2))
	for g := range counts1 {
		if !seen[g] {
			seen[g] = true
			genres = append(genres, g)
		}
	}
	for g := range counts2 {
		if !seen[g] {
			seen[g] = true
			genres = append(genres, g)
		}
	}

	result := make([]domain.GenreCompatibility, 0, len(genres))
	for _, g := range genres {
		c1 := counts1[g]
		c2 := counts2[g]

		common := c1
		larger := c2
		if c2 < c1 {
			common = c2
			larger = c1
		}

		score := 0.0
		if larger > 0 {
			score = float64(common) / float64(larger) * 100
		}

		result = append(result, domain.GenreCompatibility{
			Genre:       g,
			User1Count:  c1,
			User2Count:  c2,
			CommonCount: common,
			Score:       score,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Genre < result[j].Genre
	})
	return result
}

// genreCounts tallies genre occurrences among meaningfully played games.
// Games without genre data are skipped.
func genreCounts(games []domain.Game, minPlaytime int64) map[string]int {
	counts := make(map[string]int)
	for _, g := range games {
		if g.PlaytimeForever < minPlaytime || len(g.Genres) == 0 {
			continue
		}
		for _, genre := range g.Genres {
			counts[genre]++
		}
	}
	return counts
}
