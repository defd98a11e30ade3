package service

import (
	"time"

	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// Event types reported in GameEvent.Type
const (
	EventMove          = "move"
	EventPush          = "push"
	EventBlocked       = "blocked"
	EventUndo          = "undo"
	EventNothingToUndo = "nothing_to_undo"
	EventRestart       = "restart"
	EventLevelComplete = "level_complete"
	EventLevelLoaded   = "level_loaded"
)

// Stop reason codes reported by BulkAct
const (
	StopBlocked       = "blocked"
	StopWon           = "won"
	StopInvalidAction = "invalid_action"
)

// MaxBulkActions caps the number of actions executed by one BulkAct call
const MaxBulkActions = 200

// EntityView is an entity in wire form
type EntityView struct {
	Kind string `json:"kind"` // "player" or "box"
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// StateView is a read-only snapshot of the session
type StateView struct {
	SessionID     string         `json:"session_id"`
	LevelID       int            `json:"level_id"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Rows          []string       `json:"rows"`
	Entities      []EntityView   `json:"entities"`
	Player        level.Position `json:"player"`
	Boxes         int            `json:"boxes"`
	BoxesOnGoal   int            `json:"boxes_on_goal"`
	Won           bool           `json:"won"`
	UndoDepth     int            `json:"undo_depth"`
	HasNextLevel  bool           `json:"has_next_level"`
	PossibleMoves []string       `json:"possible_moves,omitempty"`
	Completed     []int          `json:"completed_levels,omitempty"`
}

// ActionResult contains the result of a single action
type ActionResult struct {
	Action  string      `json:"action"`
	Outcome string      `json:"outcome"`
	Success bool        `json:"success"` // false when the action changed nothing
	Message string      `json:"message"`
	Events  []GameEvent `json:"events,omitempty"`
	State   *StateView  `json:"state"`

	// AttemptedTo is set when a move was blocked
	AttemptedTo *CellInfo `json:"attempted_to,omitempty"`
}

// BulkActionResult contains the result of several actions run in sequence
type BulkActionResult struct {
	RequestedActions int         `json:"requested_actions"`
	ActionsExecuted  int         `json:"actions_executed"`
	Success          bool        `json:"success"`
	Events           []GameEvent `json:"events"`
	StoppedReason    string      `json:"stopped_reason,omitempty"`    // Human-readable reason
	StopReasonCode   string      `json:"stop_reason_code,omitempty"`  // blocked|won|invalid_action
	StoppedOnAction  int         `json:"stopped_on_action,omitempty"` // 1-based index of the action that caused stop
	Truncated        bool        `json:"truncated,omitempty"`
	Limit            int         `json:"limit,omitempty"`

	StartPos level.Position `json:"start_pos"`
	EndPos   level.Position `json:"end_pos"`

	AttemptedTo *CellInfo  `json:"attempted_to,omitempty"`
	State       *StateView `json:"state"`
}

// CellInfo describes one cell of the board
type CellInfo struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	InBounds bool   `json:"in_bounds"`
	Tile     string `json:"tile"` // floor, goal or wall
	Char     string `json:"char"` // as drawn, entities included
	Passable bool   `json:"passable"`
	Occupant string `json:"occupant,omitempty"` // player or box
}

// LevelInfo provides information about a level file
type LevelInfo struct {
	ID        int    `json:"id"`
	Filename  string `json:"filename"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Boxes     int    `json:"boxes"`
	Goals     int    `json:"goals"`
	Error     string `json:"error,omitempty"`
	Current   bool   `json:"current"`
	Completed bool   `json:"completed"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Position  level.Position `json:"position"`
}
