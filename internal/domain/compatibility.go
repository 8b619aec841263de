package domain

import (
	"time"
)

// CommonGame represents a game owned by both users with a per-game compatibility factor
type CommonGame struct {
	AppID               int64    `json:"app_id"`
	Name                string   `json:"name"`
	User1Playtime       int64    `json:"user1_playtime"`
	User2Playtime       int64    `json:"user2_playtime"`
	CompatibilityFactor float64  `json:"compatibility_factor"`
	SupportsCoop        bool     `json:"supports_coop"`
	Genres              []string `json:"genres,omitempty"`
}

// GenreCompatibility represents how closely two users' ownership of one genre matches
type GenreCompatibility struct {
	Genre       string  `json:"genre"`
	User1Count  int     `json:"user1_count"`
	User2Count  int     `json:"user2_count"`
	CommonCount int     `json:"common_count"`
	Score       float64 `json:"score"`
}

// PlaytimeCompatibility aggregates playtime similarity over the common-game set
type PlaytimeCompatibility struct {
	AvgPlaytimeDiff float64 `json:"avg_playtime_diff"`
	Correlation     float64 `json:"correlation"`
	SimilarGames    int     `json:"similar_games"`
	TotalPlaytime   int64   `json:"total_playtime"`
}

// GameRecommendation proposes a game one user owns that the other might enjoy
type GameRecommendation struct {
	AppID             int64    `json:"app_id"`
	Name              string   `json:"name"`
	Score             float64  `json:"score"`
	Reason            string   `json:"reason"`
	Genres            []string `json:"genres,omitempty"`
	EstimatedPlaytime int64    `json:"estimated_playtime"`
}

// CoopGameSuggestion proposes a cooperative game for the pair to play together
type CoopGameSuggestion struct {
	AppID       int64    `json:"app_id"`
	Name        string   `json:"name"`
	Mode        CoopMode `json:"mode"`
	MaxPlayers  int      `json:"max_players"`
	Description string   `json:"description,omitempty"`
	StoreURL    string   `json:"store_url,omitempty"`
	Score       float64  `json:"score"`
	Reason      string   `json:"reason"`
	BothOwnGame bool     `json:"both_own_game"`
}

// CoopFilter narrows the cooperative suggestion list
type CoopFilter struct {
	Mode       CoopMode `json:"mode,omitempty"`
	MinPlayers int      `json:"min_players,omitempty"`
	MinScore   float64  `json:"min_score,omitempty"`
	Genres     []string `json:"genres,omitempty"`
}

// CompatibilityResult is the consolidated outcome of one analysis run
type CompatibilityResult struct {
	ID              string                `json:"id,omitempty"`
	User1ID         string                `json:"user1_id"`
	User2ID         string                `json:"user2_id"`
	Score           int                   `json:"score"`
	CommonGames     []CommonGame          `json:"common_games"`
	Genres          []GenreCompatibility  `json:"genres"`
	Playtime        PlaytimeCompatibility `json:"playtime"`
	Recommendations []GameRecommendation  `json:"recommendations"`
	CoopSuggestions []CoopGameSuggestion  `json:"coop_suggestions"`
	AnalyzedAt      time.Time             `json:"analyzed_at"`
}

// AnalysisConfig holds the tunable weights and thresholds for the scoring engine
type AnalysisConfig struct {
	CommonGamesWeight  float64 `json:"common_games_weight" yaml:"common_games_weight"`
	GenreWeight        float64 `json:"genre_weight" yaml:"genre_weight"`
	PlaytimeWeight     float64 `json:"playtime_weight" yaml:"playtime_weight"`
	CoopWeight         float64 `json:"coop_weight" yaml:"coop_weight"`
	MinPlaytime        int64   `json:"min_playtime" yaml:"min_playtime"`
	MaxRecommendations int     `json:"max_recommendations" yaml:"max_recommendations"`
	MaxCoopSuggestions int     `json:"max_coop_suggestions" yaml:"max_coop_suggestions"`
}

// DefaultAnalysisConfig returns the standard weights and thresholds
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		CommonGamesWeight:  0.35,
		GenreWeight:        0.25,
		PlaytimeWeight:     0.25,
		CoopWeight:         0.15,
		MinPlaytime:        60,
		MaxRecommendations: 10,
		MaxCoopSuggestions: 10,
	}
}

// ApplyDefaults fills zero-valued fields with the standard configuration
func (c *AnalysisConfig) ApplyDefaults() {
	def := DefaultAnalysisConfig()
	if c.CommonGamesWeight == 0 && c.GenreWeight == 0 && c.PlaytimeWeight == 0 && c.CoopWeight == 0 {
		c.CommonGamesWeight = def.CommonGamesWeight
		c.GenreWeight = def.GenreWeight
		c.PlaytimeWeight = def.PlaytimeWeight
		c.CoopWeight = def.CoopWeight
	}
	if c.MinPlaytime == 0 {
		c.MinPlaytime = def.MinPlaytime
	}
	if c.MaxRecommendations == 0 {
		c.MaxRecommendations = def.MaxRecommendations
	}
	if c.MaxCoopSuggestions == 0 {
		c.MaxCoopSuggestions = def.MaxCoopSuggestions
	}
}

// AnalyzeRequest represents a request to analyze two users' libraries
type AnalyzeRequest struct {
	RequestID string      `json:"request_id,omitempty"`
	User1ID   string      `json:"user1_id"`
	User2ID   string      `json:"user2_id"`
	Filter    *CoopFilter `json:"filter,omitempty"`
	Refresh   bool        `json:"refresh,omitempty"`
}
