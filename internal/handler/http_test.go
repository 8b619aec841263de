package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gamecompat/internal/catalog"
	"github.com/gamecompat/internal/compat"
	"github.com/gamecompat/internal/config"
	"github.com/gamecompat/internal/domain"
	"github.com/gamecompat/internal/service"
	"github.com/gamecompat/internal/websocket"
)

type stubProvider struct {
	libraries map[string]*domain.GameLibrary
}

func (p *stubProvider) GetOwnedGames(ctx context.Context, userID string) (*domain.GameLibrary, error) {
	lib, ok := p.libraries[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return lib, nil
}

type stubCache struct{}

func (stubCache) GetLibrary(ctx context.Context, userID string) (*domain.GameLibrary, error) {
	return nil, nil
}

func (stubCache) SetLibrary(ctx context.Context, lib *domain.GameLibrary, ttl time.Duration) error {
	return nil
}

func (stubCache) InvalidateLibrary(ctx context.Context, userID string) error {
	return nil
}

func (stubCache) GetResult(ctx context.Context, user1ID, user2ID string) (*domain.CompatibilityResult, error) {
	return nil, nil
}

func (stubCache) SetResult(ctx context.Context, result *domain.CompatibilityResult, ttl time.Duration) error {
	return nil
}

func (stubCache) InvalidateResult(ctx context.Context, user1ID, user2ID string) error {
	return nil
}

type stubHistory struct {
	analyses map[string]*domain.CompatibilityResult
}

func (h *stubHistory) RecordAnalysis(ctx context.Context, result *domain.CompatibilityResult) error {
	if h.analyses == nil {
		h.analyses = make(map[string]*domain.CompatibilityResult)
	}
	h.analyses[result.ID] = result
	return nil
}

func (h *stubHistory) RecordAnalysisBatch(ctx context.Context, results []*domain.CompatibilityResult) error {
	for _, r := range results {
		if err := h.RecordAnalysis(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *stubHistory) GetAnalysis(ctx context.Context, analysisID string) (*domain.CompatibilityResult, error) {
	if r, ok := h.analyses[analysisID]; ok {
		return r, nil
	}
	return nil, domain.ErrAnalysisNotFound
}

func (h *stubHistory) GetLatestForPair(ctx context.Context, user1ID, user2ID string) (*domain.CompatibilityResult, error) {
	for _, r := range h.analyses {
		if (r.User1ID == user1ID && r.User2ID == user2ID) || (r.User1ID == user2ID && r.User2ID == user1ID) {
			return r, nil
		}
	}
	return nil, domain.ErrAnalysisNotFound
}

func (h *stubHistory) ListRecent(ctx context.Context, limit int) ([]domain.CompatibilityResult, error) {
	var out []domain.CompatibilityResult
	for _, r := range h.analyses {
		if len(out) >= limit {
			break
		}
		out = append(out, *r)
	}
	return out, nil
}

func newTestHandler(t *testing.T, provider *stubProvider, history *stubHistory) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	src := catalog.NewDefault()
	engine := compat.NewEngine(domain.DefaultAnalysisConfig(), src)
	cacheCfg := &config.CacheConfig{LibraryTTL: 15 * time.Minute, ResultTTL: time.Hour}
	svc := service.NewAnalysisService(engine, provider, stubCache{}, history, src, cacheCfg, logger)
	hub := websocket.NewHub(logger)
	return NewHandler(svc, hub, logger)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func publicLibrary(userID string, games ...domain.Game) *domain.GameLibrary {
	return &domain.GameLibrary{
		UserID:    userID,
		Games:     games,
		GameCount: len(games),
		IsPublic:  true,
	}
}

func TestCreateAnalysis(t *testing.T) {
	provider := &stubProvider{
		libraries: map[string]*domain.GameLibrary{
			"alice": publicLibrary("alice",
				domain.Game{AppID: 550, Name: "Left 4 Dead 2", PlaytimeForever: 900, Genres: []string{"Action"}},
			),
			"bob": publicLibrary("bob",
				domain.Game{AppID: 550, Name: "Left 4 Dead 2", PlaytimeForever: 700, Genres: []string{"Action"}},
			),
		},
	}
	h := newTestHandler(t, provider, &stubHistory{})
	router := h.Router()

	body := `{"user1_id": "alice", "user2_id": "bob"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("response not successful: %s", resp.Error)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data has unexpected shape: %T", resp.Data)
	}
	if data["user1_id"] != "alice" || data["user2_id"] != "bob" {
		t.Errorf("result users = %v/%v", data["user1_id"], data["user2_id"])
	}
	score, ok := data["score"].(float64)
	if !ok || score < 0 || score > 100 {
		t.Errorf("score = %v, want 0..100", data["score"])
	}
}

func TestCreateAnalysis_BadRequests(t *testing.T) {
	h := newTestHandler(t, &stubProvider{}, &stubHistory{})
	router := h.Router()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing users", `{}`},
		{"same user", `{"user1_id": "alice", "user2_id": "alice"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateAnalysis_UnknownUser(t *testing.T) {
	h := newTestHandler(t, &stubProvider{}, &stubHistory{})
	router := h.Router()

	body := `{"user1_id": "alice", "user2_id": "bob"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreateAnalysis_PrivateProfile(t *testing.T) {
	provider := &stubProvider{
		libraries: map[string]*domain.GameLibrary{
			"alice": {UserID: "alice", IsPublic: false},
			"bob":   publicLibrary("bob", domain.Game{AppID: 550, Name: "Left 4 Dead 2", PlaytimeForever: 700}),
		},
	}
	h := newTestHandler(t, provider, &stubHistory{})
	router := h.Router()

	body := `{"user1_id": "alice", "user2_id": "bob"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestGetAnalysis(t *testing.T) {
	history := &stubHistory{
		analyses: map[string]*domain.CompatibilityResult{
			"abc123": {ID: "abc123", User1ID: "alice", User2ID: "bob", Score: 72},
		},
	}
	h := newTestHandler(t, &stubProvider{}, history)
	router := h.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/abc123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analyses/unknown", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unknown analysis", rec.Code)
	}
}

func TestGetLatestAnalysis_RequiresBothUsers(t *testing.T) {
	h := newTestHandler(t, &stubProvider{}, &stubHistory{})
	router := h.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/latest?user1_id=alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListAnalyses_RejectsBadLimit(t *testing.T) {
	h := newTestHandler(t, &stubProvider{}, &stubHistory{})
	router := h.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetLibrary(t *testing.T) {
	provider := &stubProvider{
		libraries: map[string]*domain.GameLibrary{
			"alice": publicLibrary("alice", domain.Game{AppID: 550, Name: "Left 4 Dead 2", PlaytimeForever: 900}),
		},
	}
	h := newTestHandler(t, provider, &stubHistory{})
	router := h.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice/library", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data has unexpected shape: %T", resp.Data)
	}
	if data["user_id"] != "alice" {
		t.Errorf("user_id = %v, want alice", data["user_id"])
	}
}

func TestCoopEndpoints(t *testing.T) {
	h := newTestHandler(t, &stubProvider{}, &stubHistory{})
	router := h.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coop/games", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/coop/games/550", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("lookup status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/coop/games/999999999", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown game status = %d, want 404", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/coop/games/not-a-number", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric game status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/coop/stats", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("stats status = %d, want 200", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t, &stubProvider{}, &stubHistory{})
	router := h.Router()

	for _, path := range []string{"/health", "/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestCORSPreflights(t *testing.T) {
	h := newTestHandler(t, &stubProvider{}, &stubHistory{})
	router := h.Router()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyses", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
