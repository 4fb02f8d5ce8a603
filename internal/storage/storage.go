// Package storage persists score history and best scores.
//
// Three backends share one surface: a SQLite file (the default, pure Go via
// modernc.org/sqlite), a PostgreSQL pool (pgx) for hosted servers, and an
// in-process Memory store for headless runs. Schemas are managed by goose.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Backend is the storage surface used by the game and the UI.
type Backend interface {
	// SaveScore appends a finished run to the history and returns its ID.
	SaveScore(gameID string, score int) (int64, error)
	// TopScores returns up to limit history entries, best first.
	TopScores(gameID string, limit int) ([]ScoreEntry, error)
	// HighScore returns the best score in the history, or 0.
	HighScore(gameID string) (int, error)
	// ClearScores deletes the history and the best score of a game.
	ClearScores(gameID string) error
	// Stats aggregates the history of a game.
	Stats(gameID string) (*GameStats, error)

	// BestScore returns the stored best score, or 0 if none was recorded.
	BestScore(gameID string) (int, error)
	// SetBestScore stores score if it is above the stored best.
	SetBestScore(gameID string, score int) error

	Close() error
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// DefaultLimit is used when a non-positive limit is passed to TopScores.
const DefaultLimit = 10

// MemoryDSN selects the in-process store.
const MemoryDSN = "memory:"

// Open opens the backend named by dsn:
//
//	postgres://... or postgresql://...  PostgreSQL
//	memory:                             in-process store
//	anything else                       SQLite file path (~ is expanded)
func Open(dsn string) (Backend, error) {
	switch {
	case isPostgresDSN(dsn):
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return OpenPostgres(ctx, dsn)
	case dsn == MemoryDSN:
		return NewMemory(), nil
	case dsn == "":
		return nil, fmt.Errorf("storage: empty database path")
	default:
		return OpenSQLite(dsn)
	}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// parseTime converts a driver timestamp value, which SQLite may return as
// either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
