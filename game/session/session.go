package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

var (
	ErrNoNextLevel = errors.New("no next level")
	ErrLevelNotWon = errors.New("current level is not won yet")
)

// Session is one play-through: an engine, the source it loads from and the
// levels completed so far
type Session struct {
	ID             string
	CreatedAt      time.Time
	LastAccessedAt time.Time

	source    level.Source
	engine    *engine.GameEngine
	completed map[int]bool
}

// New creates a session starting at startLevel
func New(src level.Source, startLevel int) (*Session, error) {
	eng, err := engine.NewEngine(src, startLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := time.Now()
	return &Session{
		ID:             generateSessionID(),
		CreatedAt:      now,
		LastAccessedAt: now,
		source:         src,
		engine:         eng,
		completed:      make(map[int]bool),
	}, nil
}

// Engine returns the session's engine
func (s *Session) Engine() *engine.GameEngine {
	return s.engine
}

// LevelID returns the current level
func (s *Session) LevelID() int {
	return s.engine.CurrentLevelID()
}

// Do executes an action and records a completion when it wins the level
func (s *Session) Do(action engine.Action) (engine.Outcome, error) {
	s.touch()
	outcome, err := s.engine.Do(action)
	if err != nil {
		return outcome, err
	}
	if s.engine.HasWon() {
		s.completed[s.engine.CurrentLevelID()] = true
	}
	return outcome, nil
}

// HasNextLevel reports whether level N+1 exists
func (s *Session) HasNextLevel() bool {
	return s.source.Exists(s.engine.CurrentLevelID() + 1)
}

// Advance loads the next level. The current level must be won.
func (s *Session) Advance() error {
	s.touch()
	if !s.engine.HasWon() {
		return ErrLevelNotWon
	}

	next := s.engine.CurrentLevelID() + 1
	if !s.source.Exists(next) {
		return fmt.Errorf("%w after level %d", ErrNoNextLevel, next-1)
	}
	return s.engine.Reload(next)
}

// Goto loads level id regardless of progress
func (s *Session) Goto(id int) error {
	s.touch()
	return s.engine.Reload(id)
}

// Restart reloads the current level from its source
func (s *Session) Restart() error {
	s.touch()
	return s.engine.Restart()
}

// Completed returns the ids of the levels won in this session, ascending
func (s *Session) Completed() []int {
	ids := make([]int, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Session) touch() {
	s.LastAccessedAt = time.Now()
}

// generateSessionID generates a random 4-character session ID
func generateSessionID() string {
	// Generate 2 random bytes (4 hex characters)
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
