package flappy

import (
	"io"

	"github.com/charmbracelet/log"
)

// BestScoreStore persists the best score under a key.
type BestScoreStore interface {
	BestScore(key string) (int, error)
	SetBestScore(key string, score int) error
}

// ScoreTracker counts passed pairs and keeps the best score.
type ScoreTracker struct {
	current int
	best    int
	key     string
	store   BestScoreStore
	logger  *log.Logger
}

// NewScoreTracker reads the best score once. A nil store starts from zero
// and never writes.
func NewScoreTracker(store BestScoreStore, key string, logger *log.Logger) *ScoreTracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &ScoreTracker{
		key:    key,
		store:  store,
		logger: logger,
	}
	if store == nil {
		return s
	}

	best, err := store.BestScore(key)
	if err != nil {
		logger.Warn("could not read best score", "key", key, "error", err)
		return s
	}
	s.best = max(best, 0)
	return s
}

// OnGatePassed adds one point and records a new best synchronously.
func (s *ScoreTracker) OnGatePassed() {
	s.current++
	if s.current <= s.best {
		return
	}

	s.best = s.current
	if s.store == nil {
		return
	}
	if err := s.store.SetBestScore(s.key, s.best); err != nil {
		// Best-effort save, the run continues regardless
		s.logger.Warn("could not save best score", "key", s.key, "score", s.best, "error", err)
	}
}

// Reset zeroes the current score. The best score is kept.
func (s *ScoreTracker) Reset() {
	s.current = 0
}

// Current returns the score of the running game.
func (s *ScoreTracker) Current() int {
	return s.current
}

// Best returns the best score seen so far.
func (s *ScoreTracker) Best() int {
	return s.best
}
