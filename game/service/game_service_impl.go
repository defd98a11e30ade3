package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
	"github.com/wricardo/mcp-training/sokoban/game/session"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	session *session.Session
	levels  LevelCatalog
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewGameService creates a game service around sess. levels should be the
// source sess was created from.
func NewGameService(sess *session.Session, levels LevelCatalog, logger *slog.Logger) GameService {
	return &gameServiceImpl{
		session: sess,
		levels:  levels,
		logger:  logger.With("session", sess.ID),
	}
}

// Act executes a single named action
func (s *gameServiceImpl) Act(ctx context.Context, name string) (*ActionResult, error) {
	action, err := engine.ParseAction(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(action)
}

// BulkAct executes actions in order. It stops at the first blocked move, at
// an unknown action, or once the level is won.
func (s *gameServiceImpl) BulkAct(ctx context.Context, names []string) (*BulkActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng := s.session.Engine()
	result := &BulkActionResult{
		RequestedActions: len(names),
		Events:           make([]GameEvent, 0),
		Success:          true,
		StartPos:         eng.Player().Pos,
	}

	// Limit actions to prevent abuse
	if len(names) > MaxBulkActions {
		result.Truncated = true
		result.Limit = MaxBulkActions
		names = names[:MaxBulkActions]
	}

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		action, err := engine.ParseAction(name)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("action %d invalid: %q", i+1, name)
			result.StopReasonCode = StopInvalidAction
			result.StoppedOnAction = i + 1
			break
		}

		step, err := s.do(action)
		if err != nil {
			return nil, err
		}
		result.Events = append(result.Events, step.Events...)

		if !step.Success && action.IsMove() {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("action %d blocked: %s", i+1, action)
			result.StopReasonCode = StopBlocked
			result.StoppedOnAction = i + 1
			result.AttemptedTo = step.AttemptedTo
			break
		}
		result.ActionsExecuted++

		if action.IsMove() && eng.HasWon() {
			if i+1 < len(names) {
				result.StoppedReason = fmt.Sprintf("level %d complete after action %d", eng.CurrentLevelID(), i+1)
				result.StopReasonCode = StopWon
				result.StoppedOnAction = i + 1
			}
			break
		}
	}

	result.EndPos = eng.Player().Pos
	result.State = s.state()
	return result, nil
}

// Undo reverts the most recent move
func (s *gameServiceImpl) Undo(ctx context.Context) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(engine.Undo)
}

// Restart reloads the current level
func (s *gameServiceImpl) Restart(ctx context.Context) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(engine.Restart)
}

// NextLevel advances to level N+1 once level N is won
func (s *gameServiceImpl) NextLevel(ctx context.Context) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Advance(); err != nil {
		return nil, err
	}
	return s.loaded("next_level"), nil
}

// LoadLevel jumps to levelID
func (s *gameServiceImpl) LoadLevel(ctx context.Context, levelID int) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Goto(levelID); err != nil {
		s.logger.Warn("level load failed", "level", levelID, "error", err)
		return nil, err
	}
	return s.loaded("load_level"), nil
}

// ListLevels returns every level in the catalog
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	infos, err := s.levels.List()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make(map[int]bool)
	for _, id := range s.session.Completed() {
		completed[id] = true
	}
	current := s.session.LevelID()

	result := make([]*LevelInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, &LevelInfo{
			ID:        info.ID,
			Filename:  info.Filename,
			Width:     info.Width,
			Height:    info.Height,
			Boxes:     info.Boxes,
			Goals:     info.Goals,
			Error:     info.Error,
			Current:   info.ID == current,
			Completed: completed[info.ID],
		})
	}
	return result, nil
}

// GetState retrieves the current game state
func (s *gameServiceImpl) GetState(ctx context.Context) (*StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(), nil
}

// DescribeCell reports what is at (x, y). Cells outside the level are walls.
func (s *gameServiceImpl) DescribeCell(ctx context.Context, x, y int) (*CellInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.describe(level.Position{X: x, Y: y}), nil
}

// do runs action against the session and builds its result. Callers hold mu.
func (s *gameServiceImpl) do(action engine.Action) (*ActionResult, error) {
	eng := s.session.Engine()
	wonBefore := eng.HasWon()
	from := eng.Player().Pos

	outcome, err := s.session.Do(action)
	if err != nil {
		s.logger.Error("action failed", "action", action.String(), "error", err)
		return nil, err
	}

	to := eng.Player().Pos
	result := &ActionResult{
		Action:  action.String(),
		Outcome: outcome.String(),
		Success: outcome != engine.Blocked && outcome != engine.NothingToUndo,
	}

	switch outcome {
	case engine.Moved:
		result.Events = append(result.Events, newEvent(EventMove, fmt.Sprintf("Moved %s", action), to))
	case engine.Pushed:
		result.Events = append(result.Events, newEvent(EventPush, fmt.Sprintf("Pushed a box %s", action), to))
	case engine.Blocked:
		result.AttemptedTo = s.describe(from.Add(action.Delta()))
		result.Events = append(result.Events, newEvent(EventBlocked,
			fmt.Sprintf("Can't move %s: %s", action, blockedBy(result.AttemptedTo)), from))
	case engine.Undone:
		result.Events = append(result.Events, newEvent(EventUndo, "Undid the last move", to))
	case engine.NothingToUndo:
		result.Events = append(result.Events, newEvent(EventNothingToUndo, "Nothing to undo", to))
	case engine.Restarted:
		result.Events = append(result.Events, newEvent(EventRestart, fmt.Sprintf("Level %d restarted", eng.CurrentLevelID()), to))
	}

	if action.IsMove() && !wonBefore && eng.HasWon() {
		msg := fmt.Sprintf("Level %d complete!", eng.CurrentLevelID())
		if s.session.HasNextLevel() {
			msg += " Use next_level to continue."
		} else {
			msg += " That was the last level."
		}
		result.Events = append(result.Events, newEvent(EventLevelComplete, msg, to))
		s.logger.Info("level complete", "level", eng.CurrentLevelID(), "undo_depth", eng.UndoDepth())
	}

	result.Message = result.Events[len(result.Events)-1].Message
	result.State = s.state()
	s.logger.Debug("action", "action", result.Action, "outcome", result.Outcome, "x", to.X, "y", to.Y)
	return result, nil
}

// loaded builds the result of a level change
func (s *gameServiceImpl) loaded(action string) *ActionResult {
	eng := s.session.Engine()
	msg := fmt.Sprintf("Level %d loaded", eng.CurrentLevelID())
	s.logger.Info("level loaded", "level", eng.CurrentLevelID())
	return &ActionResult{
		Action:  action,
		Outcome: EventLevelLoaded,
		Success: true,
		Message: msg,
		Events:  []GameEvent{newEvent(EventLevelLoaded, msg, eng.Player().Pos)},
		State:   s.state(),
	}
}

// state builds the StateView. Callers hold mu.
func (s *gameServiceImpl) state() *StateView {
	eng := s.session.Engine()
	snap := eng.Snapshot()

	entities := make([]EntityView, 0, len(snap.Entities))
	for _, ent := range snap.Entities {
		entities = append(entities, EntityView{Kind: ent.Kind.String(), X: ent.Pos.X, Y: ent.Pos.Y})
	}

	var moves []string
	for _, a := range eng.GetPossibleMoves() {
		moves = append(moves, a.String())
	}

	return &StateView{
		SessionID:     s.session.ID,
		LevelID:       snap.LevelID,
		Width:         snap.Width,
		Height:        snap.Height,
		Rows:          snap.Rows,
		Entities:      entities,
		Player:        snap.Player,
		Boxes:         snap.Boxes,
		BoxesOnGoal:   snap.BoxesHome,
		Won:           snap.Won,
		UndoDepth:     snap.UndoDepth,
		HasNextLevel:  s.session.HasNextLevel(),
		PossibleMoves: moves,
		Completed:     s.session.Completed(),
	}
}

// describe builds the CellInfo for p. Callers hold mu.
func (s *gameServiceImpl) describe(p level.Position) *CellInfo {
	eng := s.session.Engine()
	tile, ok := eng.TileAt(p)

	info := &CellInfo{
		X:        p.X,
		Y:        p.Y,
		InBounds: ok,
		Tile:     tile.String(),
		Char:     string(tile.Rune()),
		Passable: eng.CanMoveTo(p),
	}
	for _, ent := range eng.Entities() {
		if ent.Pos == p {
			info.Occupant = ent.Kind.String()
			info.Char = string(level.EntityRune(ent.Kind, tile))
			break
		}
	}
	return info
}

func blockedBy(cell *CellInfo) string {
	switch {
	case !cell.InBounds:
		return "edge of the level"
	case cell.Occupant == level.Box.String():
		return "box cannot be pushed"
	default:
		return cell.Tile
	}
}

func newEvent(eventType, message string, pos level.Position) GameEvent {
	return GameEvent{
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
		Position:  pos,
	}
}
