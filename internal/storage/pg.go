package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// queryTimeout bounds every PostgreSQL round trip.
const queryTimeout = 5 * time.Second

// PGStore is the PostgreSQL backend.
type PGStore struct {
	pool *pgxpool.Pool
}

var _ Backend = (*PGStore)(nil)

// OpenPostgres connects to dsn, verifies the connection and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PGStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: parse dsn: %w", err)
	}
	poolCfg.MaxConns = 4
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ping db: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	err = runMigrations(ctx, db, "postgres", "migrations/postgres")
	db.Close()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &PGStore{pool: pool}, nil
}

// Close releases the pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PGStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), queryTimeout)
}

// SaveScore records a new score for the given game.
func (s *PGStore) SaveScore(gameID string, score int) (int64, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var id int64
	err := s.pool.QueryRow(ctx,
		"INSERT INTO scores (game_id, score) VALUES ($1, $2) RETURNING id",
		gameID, score,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game.
func (s *PGStore) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = $1
		 ORDER BY score DESC, id ASC
		 LIMIT $2`,
		gameID, limitOrDefault(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game.
func (s *PGStore) HighScore(gameID string) (int, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var score int
	err := s.pool.QueryRow(ctx,
		"SELECT COALESCE(MAX(score), 0) FROM scores WHERE game_id = $1",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// ClearScores deletes all scores and the best score for the given game.
func (s *PGStore) ClearScores(gameID string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM scores WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM best_scores WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear best score: %w", err)
	}
	return tx.Commit(ctx)
}

// BestScore returns the stored best score for the given game.
func (s *PGStore) BestScore(gameID string) (int, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var score int
	err := s.pool.QueryRow(ctx,
		"SELECT score FROM best_scores WHERE game_id = $1",
		gameID,
	).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SetBestScore stores score unless a higher value is already stored.
func (s *PGStore) SetBestScore(gameID string, score int) error {
	ctx, cancel := s.ctx()
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO best_scores (game_id, score, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (game_id) DO UPDATE
		 SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at
		 WHERE EXCLUDED.score > best_scores.score`,
		gameID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a specific game.
func (s *PGStore) Stats(gameID string) (*GameStats, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	stats := &GameStats{GameID: gameID}
	var lastPlayed *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)::float8,
		        COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = $1`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if lastPlayed != nil {
		stats.LastPlayed = *lastPlayed
	}
	return stats, nil
}
