package compat

import (
	"testing"

	"github.com/gamecompat/internal/domain"
)

func TestRecommendations_ExcludesCommonAndUnplayed(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 1, Name: "Shared", PlaytimeForever: 500},
		{AppID: 2, Name: "OnlyMine", PlaytimeForever: 500},
		{AppID: 3, Name: "BarelyPlayed", PlaytimeForever: 10},
	}
	games2 := []domain.Game{
		{AppID: 1, Name: "Shared", PlaytimeForever: 500},
	}
	common := CommonGames(games1, games2, 60, testCatalog())

	recs := Recommendations(games1, games2, common, 60, 10)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].AppID != 2 {
		t.Errorf("recommended app %d, want 2", recs[0].AppID)
	}
}

func TestRecommendations_Scoring(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 1, Name: "Shared", PlaytimeForever: 500, Genres: []string{"Action"}},
		// 600 minutes -> 3 playtime points; one shared genre -> 5 points.
		{AppID: 2, Name: "Pick", PlaytimeForever: 600, Genres: []string{"Action", "Indie"}},
	}
	games2 := []domain.Game{
		{AppID: 1, Name: "Shared", PlaytimeForever: 500, Genres: []string{"Action"}},
	}
	common := CommonGames(games1, games2, 60, testCatalog())

	recs := Recommendations(games1, games2, common, 60, 10)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if !almostEqual(recs[0].Score, 58) {
		t.Errorf("score = %v, want 58 (50 base + 3 playtime + 5 genre)", recs[0].Score)
	}
	if recs[0].EstimatedPlaytime != 600 {
		t.Errorf("EstimatedPlaytime = %d, want 600", recs[0].EstimatedPlaytime)
	}
}

func TestRecommendations_PlaytimeBonusCapped(t *testing.T) {
	games1 := []domain.Game{
		// 100000 minutes would be 500 points uncapped; bonus caps at 30.
		{AppID: 2, Name: "Marathon", PlaytimeForever: 100000},
	}
	recs := Recommendations(games1, nil, nil, 60, 10)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if !almostEqual(recs[0].Score, 80) {
		t.Errorf("score = %v, want 80 (50 base + 30 capped playtime)", recs[0].Score)
	}
}

func TestRecommendations_CapSplit(t *testing.T) {
	var games1, games2 []domain.Game
	for i := int64(1); i <= 10; i++ {
		games1 = append(games1, domain.Game{AppID: i, PlaytimeForever: 500})
		games2 = append(games2, domain.Game{AppID: 100 + i, PlaytimeForever: 500})
	}

	recs := Recommendations(games1, games2, nil, 60, 4)
	if len(recs) != 4 {
		t.Fatalf("got %d recommendations, want 4", len(recs))
	}
	var fromUser1, fromUser2 int
	for _, r := range recs {
		if r.AppID <= 10 {
			fromUser1++
		} else {
			fromUser2++
		}
	}
	if fromUser1 != 2 || fromUser2 != 2 {
		t.Errorf("split = %d/%d, want 2/2", fromUser1, fromUser2)
	}
}

func TestRecommendations_OddCapFavorsFirstUser(t *testing.T) {
	var games1, games2 []domain.Game
	for i := int64(1); i <= 10; i++ {
		games1 = append(games1, domain.Game{AppID: i, PlaytimeForever: 500})
		games2 = append(games2, domain.Game{AppID: 100 + i, PlaytimeForever: 500})
	}

	recs := Recommendations(games1, games2, nil, 60, 5)
	if len(recs) != 5 {
		t.Fatalf("got %d recommendations, want 5", len(recs))
	}
	var fromUser1 int
	for _, r := range recs {
		if r.AppID <= 10 {
			fromUser1++
		}
	}
	if fromUser1 != 3 {
		t.Errorf("first user contributed %d slots, want 3 on an odd cap", fromUser1)
	}
}

func TestRecommendations_SortedAndTruncated(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 1, PlaytimeForever: 6000},
		{AppID: 2, PlaytimeForever: 300},
		{AppID: 3, PlaytimeForever: 1200},
	}
	games2 := []domain.Game{
		{AppID: 20, PlaytimeForever: 2400},
		{AppID: 21, PlaytimeForever: 900},
	}
	recs := Recommendations(games1, games2, nil, 60, 2)
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Score < recs[1].Score {
		t.Error("recommendations not sorted descending by score")
	}
	if recs[0].AppID != 1 {
		t.Errorf("top recommendation app %d, want 1 (most played)", recs[0].AppID)
	}
}

func TestRecommendations_SingleSidedHonorsSplit(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 1, PlaytimeForever: 6000},
		{AppID: 2, PlaytimeForever: 300},
		{AppID: 3, PlaytimeForever: 1200},
	}
	// One empty library still only fills the other side's share of the cap.
	recs := Recommendations(games1, nil, nil, 60, 2)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].AppID != 1 {
		t.Errorf("recommendation app %d, want 1 (most played)", recs[0].AppID)
	}
}
