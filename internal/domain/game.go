package domain

// Game represents a single owned game as reported by the library provider
type Game struct {
	AppID           int64    `json:"app_id"`
	Name            string   `json:"name"`
	PlaytimeForever int64    `json:"playtime_forever"`
	PlaytimeRecent  int64    `json:"playtime_recent,omitempty"`
	Genres          []string `json:"genres,omitempty"`
}

// GameLibrary represents one user's owned games snapshot
type GameLibrary struct {
	UserID    string `json:"user_id"`
	Games     []Game `json:"games"`
	GameCount int    `json:"game_count"`
	IsPublic  bool   `json:"is_public"`
}

// CoopMode classifies how a cooperative game is played together
type CoopMode string

const (
	CoopModeLocal  CoopMode = "local"
	CoopModeOnline CoopMode = "online"
	CoopModeBoth   CoopMode = "both"
)

// CoopGameInfo is a static catalog entry describing a cooperative game
type CoopGameInfo struct {
	AppID       int64    `json:"app_id"`
	Name        string   `json:"name"`
	Mode        CoopMode `json:"mode"`
	MaxPlayers  int      `json:"max_players"`
	Description string   `json:"description"`
	StoreURL    string   `json:"store_url"`
	Genres      []string `json:"genres,omitempty"`
	Popular     bool     `json:"popular"`
}

// CoopGameStats contains aggregate counts over the cooperative catalog
type CoopGameStats struct {
	TotalGames   int              `json:"total_games"`
	PopularGames int              `json:"popular_games"`
	ByMode       map[CoopMode]int `json:"by_mode"`
}
