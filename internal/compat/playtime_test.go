package compat

import (
	"testing"

	"github.com/gamecompat/internal/domain"
)

func TestPlaytimeStats_Empty(t *testing.T) {
	stats := PlaytimeStats(nil)
	if stats.AvgPlaytimeDiff != 0 || stats.Correlation != 0 || stats.SimilarGames != 0 || stats.TotalPlaytime != 0 {
		t.Errorf("empty input should yield all-zero statistics, got %+v", stats)
	}
}

func TestPlaytimeStats_Aggregates(t *testing.T) {
	common := []domain.CommonGame{
		{User1Playtime: 100, User2Playtime: 120}, // diff 20, 20/120 <= 0.3 -> similar
		{User1Playtime: 1000, User2Playtime: 200}, // diff 800, 800/1000 > 0.3 -> not similar
	}
	stats := PlaytimeStats(common)

	if !almostEqual(stats.AvgPlaytimeDiff, 410) {
		t.Errorf("AvgPlaytimeDiff = %v, want 410", stats.AvgPlaytimeDiff)
	}
	if stats.SimilarGames != 1 {
		t.Errorf("SimilarGames = %d, want 1", stats.SimilarGames)
	}
	if stats.TotalPlaytime != 1420 {
		t.Errorf("TotalPlaytime = %d, want 1420", stats.TotalPlaytime)
	}
}

func TestPlaytimeStats_SimilarZeroPlaytimes(t *testing.T) {
	// Zero on both sides guards the division: not counted as similar.
	common := []domain.CommonGame{{User1Playtime: 0, User2Playtime: 0}}
	stats := PlaytimeStats(common)
	if stats.SimilarGames != 0 {
		t.Errorf("SimilarGames = %d, want 0 for zero playtimes", stats.SimilarGames)
	}
}

func TestPlaytimeStats_PerfectCorrelation(t *testing.T) {
	common := []domain.CommonGame{
		{User1Playtime: 100, User2Playtime: 200},
		{User1Playtime: 200, User2Playtime: 400},
		{User1Playtime: 300, User2Playtime: 600},
	}
	stats := PlaytimeStats(common)
	if !almostEqual(stats.Correlation, 1) {
		t.Errorf("Correlation = %v, want 1 for perfectly linear playtimes", stats.Correlation)
	}
}

func TestPlaytimeStats_NegativeCorrelation(t *testing.T) {
	common := []domain.CommonGame{
		{User1Playtime: 100, User2Playtime: 300},
		{User1Playtime: 200, User2Playtime: 200},
		{User1Playtime: 300, User2Playtime: 100},
	}
	stats := PlaytimeStats(common)
	if !almostEqual(stats.Correlation, -1) {
		t.Errorf("Correlation = %v, want -1 for inverse playtimes", stats.Correlation)
	}
}

func TestPlaytimeStats_ZeroVariance(t *testing.T) {
	common := []domain.CommonGame{
		{User1Playtime: 100, User2Playtime: 100},
		{User1Playtime: 100, User2Playtime: 500},
	}
	stats := PlaytimeStats(common)
	if stats.Correlation != 0 {
		t.Errorf("Correlation = %v, want 0 when one side has zero variance", stats.Correlation)
	}
}
