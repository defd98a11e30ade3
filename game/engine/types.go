package engine

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// Action is an abstract player command
type Action uint8

const (
	MoveLeft Action = iota
	MoveRight
	MoveUp
	MoveDown
	Undo
	Restart
)

// MoveActions lists the four directional actions in a stable order
var MoveActions = []Action{MoveUp, MoveDown, MoveLeft, MoveRight}

// String returns the action name accepted by ParseAction
func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case Undo:
		return "undo"
	case Restart:
		return "restart"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// IsMove reports whether a is one of the four directions
func (a Action) IsMove() bool {
	return a <= MoveDown
}

// Delta returns the grid offset of a move action
func (a Action) Delta() level.Position {
	switch a {
	case MoveLeft:
		return level.Position{X: -1, Y: 0}
	case MoveRight:
		return level.Position{X: 1, Y: 0}
	case MoveUp:
		return level.Position{X: 0, Y: -1}
	case MoveDown:
		return level.Position{X: 0, Y: 1}
	default:
		return level.Position{}
	}
}

// ParseAction maps a command name to an Action. Names are case-insensitive.
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left", "l":
		return MoveLeft, nil
	case "right", "r":
		return MoveRight, nil
	case "up", "u":
		return MoveUp, nil
	case "down", "d":
		return MoveDown, nil
	case "undo":
		return Undo, nil
	case "restart", "reset":
		return Restart, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// Outcome describes what an action did
type Outcome uint8

const (
	// Blocked means a move changed nothing
	Blocked Outcome = iota
	Moved
	Pushed
	Undone
	// NothingToUndo means undo was requested with an empty history
	NothingToUndo
	Restarted
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Blocked:
		return "blocked"
	case Moved:
		return "moved"
	case Pushed:
		return "pushed"
	case Undone:
		return "undone"
	case NothingToUndo:
		return "nothing_to_undo"
	case Restarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// undoEntry is an entity index and where it stood before an action
type undoEntry struct {
	index int
	pos   level.Position
}

// undoFrame holds every entity one action relocated
type undoFrame []undoEntry

// Snapshot is a read-only copy of the engine state for presentation layers
type Snapshot struct {
	LevelID   int            `json:"level_id"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Rows      []string       `json:"rows"`
	Entities  []level.Entity `json:"entities"`
	Player    level.Position `json:"player"`
	Boxes     int            `json:"boxes"`
	BoxesHome int            `json:"boxes_home"`
	UndoDepth int            `json:"undo_depth"`
	Won       bool           `json:"won"`
}
