package compat

import (
	"math"

	"github.com/gamecompat/internal/domain"
)

// Games whose playtime difference is within 30% of the larger value count
// as similar.
const similarDiffRatio = 0.3

// PlaytimeStats computes aggregate playtime-similarity statistics over the
// common-game set. An empty input yields all-zero statistics.
func PlaytimeStats(common []domain.CommonGame) domain.PlaytimeCompatibility {
	if len(common) == 0 {
		return domain.PlaytimeCompatibility{}
	}

	var (
		sumDiff  float64
		similar  int
		total    int64
	)
	for _, cg := range common {
		diff := cg.User1Playtime - cg.User2Playtime
		if diff < 0 {
			diff = -diff
		}
		sumDiff += float64(diff)
		total += cg.User1Playtime + cg.User2Playtime

		larger := cg.User1Playtime
		if cg.User2Playtime > larger {
			larger = cg.User2Playtime
		}
		if larger > 0 && float64(diff)/float64(larger) <= similarDiffRatio {
			similar++
		}
	}

	return domain.PlaytimeCompatibility{
		AvgPlaytimeDiff: sumDiff / float64(len(common)),
		Correlation:     playtimeCorrelation(common),
		SimilarGames:    similar,
		TotalPlaytime:   total,
	}
}

// playtimeCorrelation computes the Pearson correlation coefficient over the
// two playtime sequences. Zero variance on either side yields 0.
func playtimeCorrelation(common []domain.CommonGame) float64 {
	n := float64(len(common))

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for _, cg := range common {
		x := float64(cg.User1Playtime)
		y := float64(cg.User2Playtime)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
		sumY2 += y * y
	}

	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}
