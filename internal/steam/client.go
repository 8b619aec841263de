package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gamecompat/internal/config"
	"github.com/gamecompat/internal/domain"
)

// Client retrieves game-ownership data from a Steam-compatible Web API
type Client struct {
	cfg        *config.SteamConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new library retrieval client
func NewClient(cfg *config.SteamConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// ownedGamesResponse mirrors the provider's GetOwnedGames wire format
type ownedGamesResponse struct {
	Response struct {
		GameCount int `json:"game_count"`
		Games     []struct {
			AppID           int64    `json:"appid"`
			Name            string   `json:"name"`
			PlaytimeForever int64    `json:"playtime_forever"`
			Playtime2Weeks  int64    `json:"playtime_2weeks"`
			Genres          []string `json:"genres,omitempty"`
		} `json:"games"`
	} `json:"response"`
}

// GetOwnedGames retrieves a user's game library snapshot. A provider response
// with no game data is treated as a private profile.
func (c *Client) GetOwnedGames(ctx context.Context, userID string) (*domain.GameLibrary, error) {
	endpoint := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/", c.cfg.BaseURL)

	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("steamid", userID)
	params.Set("include_appinfo", "1")
	params.Set("include_played_free_games", "1")
	params.Set("format", "json")

	body, err := c.getWithRetry(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var parsed ownedGamesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing owned games response: %w", err)
	}

	// Private profiles come back as an empty response object.
	if parsed.Response.Games == nil && parsed.Response.GameCount == 0 {
		return &domain.GameLibrary{
			UserID:   userID,
			IsPublic: false,
		}, nil
	}

	games := make([]domain.Game, 0, len(parsed.Response.Games))
	for _, g := range parsed.Response.Games {
		games = append(games, domain.Game{
			AppID:           g.AppID,
			Name:            g.Name,
			PlaytimeForever: g.PlaytimeForever,
			PlaytimeRecent:  g.Playtime2Weeks,
			Genres:          g.Genres,
		})
	}

	return &domain.GameLibrary{
		UserID:    userID,
		Games:     games,
		GameCount: parsed.Response.GameCount,
		IsPublic:  true,
	}, nil
}

// getWithRetry issues a GET with bounded retries. Rate-limited responses wait
// for the provider's Retry-After hint when present; server errors back off on
// the configured delay.
func (c *Client) getWithRetry(ctx context.Context, requestURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.RetryDelay * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("requesting owned games: %w", err)
			c.logger.Warn("library request failed", "attempt", attempt+1, "error", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("reading response body: %w", readErr)
			}
			return body, nil

		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, domain.ErrPrivateProfile

		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrUserNotFound

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = domain.ErrRateLimited
			if wait := retryAfter(resp); wait > 0 {
				c.logger.Warn("rate limited by provider", "retry_after", wait)
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(wait):
				}
			}

		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("provider returned status %d", resp.StatusCode)
			c.logger.Warn("provider server error", "status", resp.StatusCode, "attempt", attempt+1)

		default:
			return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("owned games request exhausted retries: %w", lastErr)
}

// retryAfter parses the Retry-After response header, capped at 30 seconds
func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	if seconds > 30 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}
