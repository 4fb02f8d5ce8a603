package storage

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Memory is an in-process backend. Nothing survives Close.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	scores []ScoreEntry
	best   map[string]int
}

var _ Backend = (*Memory)(nil)

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{best: make(map[string]int)}
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// SaveScore records a new score for the given game.
func (m *Memory) SaveScore(gameID string, score int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.scores = append(m.scores, ScoreEntry{
		ID:        m.nextID,
		GameID:    gameID,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	})
	return m.nextID, nil
}

// TopScores returns up to limit entries, best first.
func (m *Memory) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ScoreEntry
	for _, e := range m.scores {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b ScoreEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if n := limitOrDefault(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// HighScore returns the highest score in the history.
func (m *Memory) HighScore(gameID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	high := 0
	for _, e := range m.scores {
		if e.GameID == gameID {
			high = max(high, e.Score)
		}
	}
	return high, nil
}

// ClearScores deletes the history and the best score of a game.
func (m *Memory) ClearScores(gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scores = slices.DeleteFunc(m.scores, func(e ScoreEntry) bool {
		return e.GameID == gameID
	})
	delete(m.best, gameID)
	return nil
}

// Stats aggregates the history of a game.
func (m *Memory) Stats(gameID string) (*GameStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &GameStats{GameID: gameID}
	for _, e := range m.scores {
		if e.GameID != gameID {
			continue
		}
		stats.GamesCount++
		stats.HighScore = max(stats.HighScore, e.Score)
		stats.TotalScore += int64(e.Score)
		if e.CreatedAt.After(stats.LastPlayed) {
			stats.LastPlayed = e.CreatedAt
		}
	}
	if stats.GamesCount > 0 {
		stats.AvgScore = float64(stats.TotalScore) / float64(stats.GamesCount)
	}
	return stats, nil
}

// BestScore returns the stored best score.
func (m *Memory) BestScore(gameID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best[gameID], nil
}

// SetBestScore stores score if it is above the stored best.
func (m *Memory) SetBestScore(gameID string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.best[gameID] {
		m.best[gameID] = score
	}
	return nil
}
