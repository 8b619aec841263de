package compat

import (
	"testing"

	"github.com/gamecompat/internal/catalog"
	"github.com/gamecompat/internal/domain"
)

func testCatalog() *catalog.Static {
	return catalog.NewStatic([]domain.CoopGameInfo{
		{AppID: 550, Name: "Left 4 Dead 2", Mode: domain.CoopModeBoth, MaxPlayers: 4, Genres: []string{"Action", "Co-op"}, Popular: true},
		{AppID: 620, Name: "Portal 2", Mode: domain.CoopModeBoth, MaxPlayers: 2, Genres: []string{"Puzzle", "Co-op"}, Popular: true},
		{AppID: 892970, Name: "Valheim", Mode: domain.CoopModeOnline, MaxPlayers: 10, Genres: []string{"Survival", "Co-op"}, Popular: false},
	})
}

func TestCommonGames_Intersection(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 10, Name: "A", PlaytimeForever: 100, Genres: []string{"Action"}},
		{AppID: 20, Name: "B", PlaytimeForever: 200},
		{AppID: 30, Name: "C", PlaytimeForever: 300},
	}
	games2 := []domain.Game{
		{AppID: 20, Name: "B", PlaytimeForever: 250},
		{AppID: 40, Name: "D", PlaytimeForever: 400},
	}

	common := CommonGames(games1, games2, 60, testCatalog())
	if len(common) != 1 {
		t.Fatalf("got %d common games, want 1", len(common))
	}
	cg := common[0]
	if cg.AppID != 20 || cg.User1Playtime != 200 || cg.User2Playtime != 250 {
		t.Errorf("unexpected common game: %+v", cg)
	}
	want := CompatibilityFactor(200, 250, 60)
	if !almostEqual(cg.CompatibilityFactor, want) {
		t.Errorf("factor = %v, want %v", cg.CompatibilityFactor, want)
	}
}

func TestCommonGames_AttributeOrder(t *testing.T) {
	// The first argument's playtime always populates User1Playtime, and the
	// genre set comes from the first user's copy.
	games1 := []domain.Game{{AppID: 10, Name: "A", PlaytimeForever: 100, Genres: []string{"RPG"}}}
	games2 := []domain.Game{{AppID: 10, Name: "A", PlaytimeForever: 900, Genres: []string{"Action"}}}

	forward := CommonGames(games1, games2, 60, testCatalog())
	reverse := CommonGames(games2, games1, 60, testCatalog())

	if len(forward) != 1 || len(reverse) != 1 {
		t.Fatalf("got %d and %d common games, want 1 and 1", len(forward), len(reverse))
	}
	if forward[0].User1Playtime != 100 || reverse[0].User1Playtime != 900 {
		t.Errorf("User1Playtime = %d and %d, want 100 and 900",
			forward[0].User1Playtime, reverse[0].User1Playtime)
	}
	if forward[0].Genres[0] != "RPG" || reverse[0].Genres[0] != "Action" {
		t.Errorf("genres not taken from the first argument's copy")
	}
}

func TestCommonGames_SortedByFactorDescending(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 1, Name: "low", PlaytimeForever: 30},     // both below -> 0.1
		{AppID: 2, Name: "mid", PlaytimeForever: 1000},   // one below -> 0.4
		{AppID: 3, Name: "high", PlaytimeForever: 500},   // both above
	}
	games2 := []domain.Game{
		{AppID: 1, PlaytimeForever: 20},
		{AppID: 2, PlaytimeForever: 10},
		{AppID: 3, PlaytimeForever: 500},
	}

	common := CommonGames(games1, games2, 60, testCatalog())
	if len(common) != 3 {
		t.Fatalf("got %d common games, want 3", len(common))
	}
	for i := 1; i < len(common); i++ {
		if common[i].CompatibilityFactor > common[i-1].CompatibilityFactor {
			t.Errorf("common games not sorted descending at index %d", i)
		}
	}
	if common[0].AppID != 3 || common[2].AppID != 1 {
		t.Errorf("unexpected order: %d, %d, %d", common[0].AppID, common[1].AppID, common[2].AppID)
	}
}

func TestCommonGames_CoopFlag(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 550, Name: "Left 4 Dead 2", PlaytimeForever: 100},
		{AppID: 99, Name: "Solo Game", PlaytimeForever: 100},
	}
	games2 := []domain.Game{
		{AppID: 550, PlaytimeForever: 100},
		{AppID: 99, PlaytimeForever: 100},
	}

	common := CommonGames(games1, games2, 60, testCatalog())
	flags := make(map[int64]bool, len(common))
	for _, cg := range common {
		flags[cg.AppID] = cg.SupportsCoop
	}
	if !flags[550] {
		t.Error("catalog game not flagged as coop")
	}
	if flags[99] {
		t.Error("non-catalog game flagged as coop")
	}
}

func TestCommonGames_MembershipCommutative(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 1, PlaytimeForever: 100},
		{AppID: 2, PlaytimeForever: 100},
		{AppID: 3, PlaytimeForever: 100},
	}
	games2 := []domain.Game{
		{AppID: 2, PlaytimeForever: 500},
		{AppID: 3, PlaytimeForever: 500},
		{AppID: 4, PlaytimeForever: 500},
	}

	forward := CommonGames(games1, games2, 60, testCatalog())
	reverse := CommonGames(games2, games1, 60, testCatalog())

	forwardIDs := make(map[int64]bool)
	for _, cg := range forward {
		forwardIDs[cg.AppID] = true
	}
	if len(forward) != len(reverse) {
		t.Fatalf("forward has %d games, reverse has %d", len(forward), len(reverse))
	}
	for _, cg := range reverse {
		if !forwardIDs[cg.AppID] {
			t.Errorf("app %d in reverse but not forward", cg.AppID)
		}
	}
}

func TestCommonGames_NoDuplicates(t *testing.T) {
	games1 := []domain.Game{
		{AppID: 1, PlaytimeForever: 100},
		{AppID: 1, PlaytimeForever: 200},
	}
	games2 := []domain.Game{{AppID: 1, PlaytimeForever: 100}}

	common := CommonGames(games1, games2, 60, testCatalog())
	seen := make(map[int64]bool)
	for _, cg := range common {
		if seen[cg.AppID] {
			t.Errorf("duplicate app %d in common games", cg.AppID)
		}
		seen[cg.AppID] = true
	}
}
