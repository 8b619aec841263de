package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gamecompat/internal/config"
	"github.com/gamecompat/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL-based analysis history access
type Repository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(cfg *config.PostgresConfig, logger *slog.Logger) (*Repository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Repository{
		pool:   pool,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// RunMigrations executes database migrations
func (r *Repository) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY,
			user1_id VARCHAR(64) NOT NULL,
			user2_id VARCHAR(64) NOT NULL,
			score INT NOT NULL,
			result JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_pair ON analyses(user1_id, user2_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at DESC)`,
	}

	for _, migration := range migrations {
		_, err := r.pool.Exec(ctx, migration)
		if err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	r.logger.Info("database migrations completed")
	return nil
}

// RecordAnalysis persists a completed analysis
func (r *Repository) RecordAnalysis(ctx context.Context, result *domain.CompatibilityResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	query := `
		INSERT INTO analyses (id, user1_id, user2_id, score, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.pool.Exec(ctx, query,
		result.ID,
		result.User1ID,
		result.User2ID,
		result.Score,
		resultJSON,
		result.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("recording analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves a stored analysis by ID
func (r *Repository) GetAnalysis(ctx context.Context, analysisID string) (*domain.CompatibilityResult, error) {
	query := `SELECT result FROM analyses WHERE id = $1`

	var resultJSON []byte
	err := r.pool.QueryRow(ctx, query, analysisID).Scan(&resultJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("getting analysis: %w", err)
	}

	var result domain.CompatibilityResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	return &result, nil
}

// GetLatestForPair retrieves the most recent stored analysis for a user pair,
// matching either argument order
func (r *Repository) GetLatestForPair(ctx context.Context, user1ID, user2ID string) (*domain.CompatibilityResult, error) {
	query := `
		SELECT result FROM analyses
		WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)
		ORDER BY created_at DESC
		LIMIT 1
	`
	var resultJSON []byte
	err := r.pool.QueryRow(ctx, query, user1ID, user2ID).Scan(&resultJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("getting latest analysis for pair: %w", err)
	}

	var result domain.CompatibilityResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	return &result, nil
}

// ListRecent retrieves the most recent stored analyses
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]domain.CompatibilityResult, error) {
	query := `
		SELECT result FROM analyses
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var results []domain.CompatibilityResult
	for rows.Next() {
		var resultJSON []byte
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		var result domain.CompatibilityResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, fmt.Errorf("unmarshaling result: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}

// CountAnalyses returns the total number of stored analyses
func (r *Repository) CountAnalyses(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting analyses: %w", err)
	}
	return count, nil
}

// DeleteOlderThan removes analyses created before the cutoff and returns the
// number of rows removed
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM analyses WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting aged analyses: %w", err)
	}
	return result.RowsAffected(), nil
}

// RecordAnalysisBatch persists multiple analyses efficiently
func (r *Repository) RecordAnalysisBatch(ctx context.Context, results []*domain.CompatibilityResult) error {
	if len(results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO analyses (id, user1_id, user2_id, score, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, res := range results {
		resultJSON, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		batch.Queue(query, res.ID, res.User1ID, res.User2ID, res.Score, resultJSON, res.AnalyzedAt)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range results {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch recording analyses: %w", err)
		}
	}
	return nil
}
