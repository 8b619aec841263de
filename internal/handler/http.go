package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gamecompat/internal/domain"
	"github.com/gamecompat/internal/service"
	"github.com/gamecompat/internal/websocket"
)

// Handler provides HTTP handlers for the compatibility API
type Handler struct {
	service *service.AnalysisService
	hub     *websocket.Hub
	logger  *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(service *service.AnalysisService, hub *websocket.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		logger:  logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(corsMiddleware)

	// Health check
	r.Get("/health", h.HealthCheck)
	r.Get("/ready", h.ReadyCheck)

	// WebSocket endpoint
	r.Get("/ws", h.HandleWebSocket)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Analysis operations
		r.Route("/analyses", func(r chi.Router) {
			r.Post("/", h.CreateAnalysis)
			r.Get("/", h.ListAnalyses)
			r.Get("/latest", h.GetLatestAnalysis)
			r.Get("/{analysisID}", h.GetAnalysis)
		})

		// Library operations
		r.Get("/users/{userID}/library", h.GetLibrary)

		// Cooperative catalog
		r.Route("/coop", func(r chi.Router) {
			r.Get("/games", h.ListCoopGames)
			r.Get("/games/{gameID}", h.GetCoopGame)
			r.Get("/stats", h.GetCoopStats)
		})

		// WebSocket info endpoint
		r.Get("/ws/stats", h.GetWebSocketStats)
	})

	return r
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeSuccess writes a successful JSON response
func (h *Handler) writeSuccess(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError writes an error JSON response
func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// writeAnalysisError maps analysis errors to HTTP status codes
func (h *Handler) writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPrivateProfile):
		h.writeError(w, http.StatusForbidden, err)
	case errors.Is(err, domain.ErrInsufficientData):
		h.writeError(w, http.StatusUnprocessableEntity, err)
	case domain.IsValidationError(err) || errors.Is(err, domain.ErrInvalidRequest):
		h.writeError(w, http.StatusBadRequest, err)
	case domain.IsNotFoundError(err):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrRateLimited):
		h.writeError(w, http.StatusTooManyRequests, err)
	default:
		h.logger.Error("analysis request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
	}
}

// HandleWebSocket handles WebSocket upgrade requests
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWs(h.hub, h.logger, w, r)
}

// GetWebSocketStats returns WebSocket connection statistics
func (h *Handler) GetWebSocketStats(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]interface{}{
		"total_connections": h.hub.GetTotalConnections(),
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "healthy"})
}

// ReadyCheck returns service readiness status
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "ready"})
}

// CreateAnalysis runs a compatibility analysis for two users
func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}

	if req.User1ID == "" || req.User2ID == "" {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}

	result, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}

	h.writeSuccess(w, result)
}

// ListAnalyses returns the most recent stored analyses
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
			return
		}
		limit = parsed
	}

	results, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list analyses", "error", err)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
		return
	}

	h.writeSuccess(w, map[string]interface{}{
		"analyses": results,
		"count":    len(results),
	})
}

// GetLatestAnalysis returns the most recent stored analysis for a user pair
func (h *Handler) GetLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	user1ID := r.URL.Query().Get("user1_id")
	user2ID := r.URL.Query().Get("user2_id")
	if user1ID == "" || user2ID == "" {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}

	result, err := h.service.GetLatestForPair(r.Context(), user1ID, user2ID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.logger.Error("failed to get latest analysis", "error", err)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
		return
	}

	h.writeSuccess(w, result)
}

// GetAnalysis returns a stored analysis by ID
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID := chi.URLParam(r, "analysisID")

	result, err := h.service.GetAnalysis(r.Context(), analysisID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.logger.Error("failed to get analysis", "error", err, "analysis_id", analysisID)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
		return
	}

	h.writeSuccess(w, result)
}

// GetLibrary returns a user's game library snapshot
func (h *Handler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	lib, err := h.service.GetLibrary(r.Context(), userID)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}

	h.writeSuccess(w, lib)
}

// ListCoopGames returns the cooperative game catalog
func (h *Handler) ListCoopGames(w http.ResponseWriter, r *http.Request) {
	games := h.service.ListCoopGames()
	h.writeSuccess(w, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetCoopGame returns a single cooperative catalog entry
func (h *Handler) GetCoopGame(w http.ResponseWriter, r *http.Request) {
	appID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}

	game, ok := h.service.GetCoopGame(appID)
	if !ok {
		h.writeError(w, http.StatusNotFound, domain.ErrGameNotFound)
		return
	}

	h.writeSuccess(w, game)
}

// GetCoopStats returns aggregate counts over the cooperative catalog
func (h *Handler) GetCoopStats(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, h.service.CoopGameStats())
}
