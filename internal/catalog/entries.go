package catalog

import (
	"github.com/gamecompat/internal/domain"
)

// defaultEntries is the built-in cooperative game table, keyed by Steam app ID.
var defaultEntries = []domain.CoopGameInfo{
	{
		AppID:       730,
		Name:        "Counter-Strike 2",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  10,
		Description: "Team-based tactical shooter with competitive matchmaking.",
		StoreURL:    "https://store.steampowered.com/app/730",
		Genres:      []string{"Action", "FPS"},
		Popular:     true,
	},
	{
		AppID:       570,
		Name:        "Dota 2",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  10,
		Description: "Five-versus-five MOBA played in coordinated teams.",
		StoreURL:    "https://store.steampowered.com/app/570",
		Genres:      []string{"Strategy", "MOBA"},
		Popular:     true,
	},
	{
		AppID:       440,
		Name:        "Team Fortress 2",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  24,
		Description: "Class-based multiplayer shooter.",
		StoreURL:    "https://store.steampowered.com/app/440",
		Genres:      []string{"Action", "FPS"},
		Popular:     false,
	},
	{
		AppID:       550,
		Name:        "Left 4 Dead 2",
		Mode:        domain.CoopModeBoth,
		MaxPlayers:  4,
		Description: "Four-player cooperative zombie campaign.",
		StoreURL:    "https://store.steampowered.com/app/550",
		Genres:      []string{"Action", "Co-op", "Zombies"},
		Popular:     true,
	},
	{
		AppID:       620,
		Name:        "Portal 2",
		Mode:        domain.CoopModeBoth,
		MaxPlayers:  2,
		Description: "Two-player cooperative puzzle campaign with dedicated co-op levels.",
		StoreURL:    "https://store.steampowered.com/app/620",
		Genres:      []string{"Puzzle", "Co-op"},
		Popular:     true,
	},
	{
		AppID:       105600,
		Name:        "Terraria",
		Mode:        domain.CoopModeBoth,
		MaxPlayers:  8,
		Description: "Sandbox adventure with shared worlds.",
		StoreURL:    "https://store.steampowered.com/app/105600",
		Genres:      []string{"Sandbox", "Adventure", "Survival"},
		Popular:     true,
	},
	{
		AppID:       252490,
		Name:        "Rust",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  100,
		Description: "Multiplayer survival on shared servers.",
		StoreURL:    "https://store.steampowered.com/app/252490",
		Genres:      []string{"Survival", "Multiplayer"},
		Popular:     false,
	},
	{
		AppID:       413150,
		Name:        "Stardew Valley",
		Mode:        domain.CoopModeBoth,
		MaxPlayers:  4,
		Description: "Farming sim with a shared cooperative farm.",
		StoreURL:    "https://store.steampowered.com/app/413150",
		Genres:      []string{"Simulation", "RPG", "Casual"},
		Popular:     true,
	},
	{
		AppID:       322330,
		Name:        "Don't Starve Together",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  6,
		Description: "Cooperative wilderness survival.",
		StoreURL:    "https://store.steampowered.com/app/322330",
		Genres:      []string{"Survival", "Co-op"},
		Popular:     false,
	},
	{
		AppID:       394360,
		Name:        "Hearts of Iron IV",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  32,
		Description: "Grand strategy with cooperative alliances.",
		StoreURL:    "https://store.steampowered.com/app/394360",
		Genres:      []string{"Strategy", "Simulation"},
		Popular:     false,
	},
	{
		AppID:       1145360,
		Name:        "Hades",
		Mode:        domain.CoopModeLocal,
		MaxPlayers:  2,
		Description: "Roguelike with local co-op via shared controller play.",
		StoreURL:    "https://store.steampowered.com/app/1145360",
		Genres:      []string{"Roguelike", "Action"},
		Popular:     false,
	},
	{
		AppID:       648800,
		Name:        "Raft",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  8,
		Description: "Cooperative ocean survival on a growing raft.",
		StoreURL:    "https://store.steampowered.com/app/648800",
		Genres:      []string{"Survival", "Co-op", "Adventure"},
		Popular:     true,
	},
	{
		AppID:       739630,
		Name:        "Phasmophobia",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  4,
		Description: "Four-player cooperative ghost hunting.",
		StoreURL:    "https://store.steampowered.com/app/739630",
		Genres:      []string{"Horror", "Co-op"},
		Popular:     true,
	},
	{
		AppID:       1172470,
		Name:        "Apex Legends",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  3,
		Description: "Squad-based battle royale.",
		StoreURL:    "https://store.steampowered.com/app/1172470",
		Genres:      []string{"Action", "Battle Royale", "FPS"},
		Popular:     true,
	},
	{
		AppID:       1938090,
		Name:        "Call of Duty",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  4,
		Description: "Squad multiplayer and cooperative operations.",
		StoreURL:    "https://store.steampowered.com/app/1938090",
		Genres:      []string{"Action", "FPS"},
		Popular:     false,
	},
	{
		AppID:       548430,
		Name:        "Deep Rock Galactic",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  4,
		Description: "Cooperative cave mining with class synergy.",
		StoreURL:    "https://store.steampowered.com/app/548430",
		Genres:      []string{"Action", "Co-op", "FPS"},
		Popular:     true,
	},
	{
		AppID:       892970,
		Name:        "Valheim",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  10,
		Description: "Viking survival in shared procedurally generated worlds.",
		StoreURL:    "https://store.steampowered.com/app/892970",
		Genres:      []string{"Survival", "Open World", "Co-op"},
		Popular:     true,
	},
	{
		AppID:       1426210,
		Name:        "It Takes Two",
		Mode:        domain.CoopModeBoth,
		MaxPlayers:  2,
		Description: "Built exclusively for two-player co-op.",
		StoreURL:    "https://store.steampowered.com/app/1426210",
		Genres:      []string{"Adventure", "Co-op", "Platformer"},
		Popular:     true,
	},
	{
		AppID:       728880,
		Name:        "Overcooked! 2",
		Mode:        domain.CoopModeBoth,
		MaxPlayers:  4,
		Description: "Chaotic cooperative kitchen management.",
		StoreURL:    "https://store.steampowered.com/app/728880",
		Genres:      []string{"Casual", "Co-op", "Party"},
		Popular:     false,
	},
	{
		AppID:       346110,
		Name:        "ARK: Survival Evolved",
		Mode:        domain.CoopModeOnline,
		MaxPlayers:  70,
		Description: "Dinosaur survival on shared servers.",
		StoreURL:    "https://store.steampowered.com/app/346110",
		Genres:      []string{"Survival", "Open World", "Adventure"},
		Popular:     false,
	},
}
