package engine

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/sokoban/game/level"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNoSource      = errors.New("level source is nil")
)

// Engine provides the main interface for game operations
type Engine interface {
	// Actions
	Apply(action Action) bool
	Undo() bool
	Do(action Action) (Outcome, error)

	// Level lifecycle
	Reload(levelID int) error
	Restart() error
	CurrentLevelID() int

	// Read-only views
	HasWon() bool
	Extents() (width, height int)
	TileAt(p level.Position) (level.Tile, bool)
	Entities() []level.Entity
	Player() level.Entity
	UndoDepth() int
	Snapshot() Snapshot
}

// GameEngine implements the Engine interface
type GameEngine struct {
	source   level.Source
	levelID  int
	grid     *level.Grid
	entities []level.Entity
	player   int
	history  []undoFrame
}

// NewEngine creates an engine with level levelID loaded from src
func NewEngine(src level.Source, levelID int) (*GameEngine, error) {
	if src == nil {
		return nil, ErrNoSource
	}

	e := &GameEngine{source: src}
	if err := e.Reload(levelID); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineFromLevel creates an engine around an already parsed level. Reload
// and Restart fail unless a source is attached with SetSource.
func NewEngineFromLevel(lvl *level.Level) (*GameEngine, error) {
	e := &GameEngine{}
	if err := e.install(lvl.Clone()); err != nil {
		return nil, err
	}
	return e, nil
}

// SetSource replaces the source used by Reload and Restart
func (e *GameEngine) SetSource(src level.Source) {
	e.source = src
}

// Reload discards the current level, its entities and the undo history, and
// loads levelID. On failure the current state is left untouched.
func (e *GameEngine) Reload(levelID int) error {
	if e.source == nil {
		return ErrNoSource
	}

	lvl, err := e.source.Load(levelID)
	if err != nil {
		return err
	}
	lvl.ID = levelID
	return e.install(lvl)
}

// Restart reloads the current level
func (e *GameEngine) Restart() error {
	return e.Reload(e.levelID)
}

// install validates lvl and makes it the current state
func (e *GameEngine) install(lvl *level.Level) error {
	player := -1
	for i, ent := range lvl.Entities {
		if tile, ok := lvl.Grid.Tile(ent.Pos); !ok || tile == level.Wall {
			return fmt.Errorf("level %d: %s at (%d,%d) is outside the floor: %w",
				lvl.ID, ent.Kind, ent.Pos.X, ent.Pos.Y, level.ErrMalformedLevel)
		}
		if ent.Kind != level.Player {
			continue
		}
		if player >= 0 {
			return fmt.Errorf("level %d: more than one player: %w", lvl.ID, level.ErrMalformedLevel)
		}
		player = i
	}
	if player < 0 {
		return fmt.Errorf("level %d: no player: %w", lvl.ID, level.ErrMalformedLevel)
	}

	e.levelID = lvl.ID
	e.grid = lvl.Grid
	e.entities = lvl.Entities
	e.player = player
	e.history = nil
	return nil
}

// Apply executes a move action. It returns true if any entity moved. Non-move
// actions are ignored and return false; use Do for those.
func (e *GameEngine) Apply(action Action) bool {
	if !action.IsMove() {
		return false
	}
	_, ok := e.move(action.Delta())
	return ok
}

// Undo restores the positions recorded by the most recent move. It returns
// false when there is nothing to undo.
func (e *GameEngine) Undo() bool {
	if len(e.history) == 0 {
		return false
	}

	frame := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	for _, entry := range frame {
		e.entities[entry.index].Pos = entry.pos
	}
	return true
}

// Do executes any action and reports what happened
func (e *GameEngine) Do(action Action) (Outcome, error) {
	switch action {
	case MoveLeft, MoveRight, MoveUp, MoveDown:
		chain, ok := e.move(action.Delta())
		switch {
		case !ok:
			return Blocked, nil
		case chain > 1:
			return Pushed, nil
		default:
			return Moved, nil
		}
	case Undo:
		if e.Undo() {
			return Undone, nil
		}
		return NothingToUndo, nil
	case Restart:
		if err := e.Restart(); err != nil {
			return Blocked, err
		}
		return Restarted, nil
	default:
		return Blocked, fmt.Errorf("%w: %d", ErrUnknownAction, uint8(action))
	}
}

// HasWon returns true when every box stands on a goal
func (e *GameEngine) HasWon() bool {
	for _, ent := range e.entities {
		if ent.Kind != level.Box {
			continue
		}
		if tile, _ := e.grid.Tile(ent.Pos); tile != level.Goal {
			return false
		}
	}
	return true
}

// CurrentLevelID returns the id of the loaded level
func (e *GameEngine) CurrentLevelID() int {
	return e.levelID
}

// Extents returns the bounding width and height of the grid
func (e *GameEngine) Extents() (width, height int) {
	return e.grid.Width(), e.grid.Height()
}

// TileAt returns the tile at p; ok is false outside the stored rows
func (e *GameEngine) TileAt(p level.Position) (level.Tile, bool) {
	return e.grid.Tile(p)
}

// Grid returns the tile grid. Tiles are immutable.
func (e *GameEngine) Grid() *level.Grid {
	return e.grid
}

// Entities returns a copy of the entity list in level order
func (e *GameEngine) Entities() []level.Entity {
	out := make([]level.Entity, len(e.entities))
	copy(out, e.entities)
	return out
}

// Player returns the controlled entity
func (e *GameEngine) Player() level.Entity {
	return e.entities[e.player]
}

// UndoDepth returns how many moves can be undone
func (e *GameEngine) UndoDepth() int {
	return len(e.history)
}

// Snapshot returns a read-only copy of the current state
func (e *GameEngine) Snapshot() Snapshot {
	width, height := e.Extents()
	boxes, home := e.boxCounts()
	return Snapshot{
		LevelID:   e.levelID,
		Width:     width,
		Height:    height,
		Rows:      level.Rows(e.grid, e.entities),
		Entities:  e.Entities(),
		Player:    e.entities[e.player].Pos,
		Boxes:     boxes,
		BoxesHome: home,
		UndoDepth: len(e.history),
		Won:       boxes == home,
	}
}

// boxCounts returns the number of boxes and how many of them are on goals
func (e *GameEngine) boxCounts() (total, onGoal int) {
	for _, ent := range e.entities {
		if ent.Kind != level.Box {
			continue
		}
		total++
		if tile, _ := e.grid.Tile(ent.Pos); tile == level.Goal {
			onGoal++
		}
	}
	return total, onGoal
}
