package engine

import "github.com/wricardo/mcp-training/sokoban/game/level"

// CanMoveTo checks whether an entity may stand on p, ignoring other entities.
// Cells outside the grid or past the end of a short row count as walls.
func (e *GameEngine) CanMoveTo(p level.Position) bool {
	tile, ok := e.grid.Tile(p)
	return ok && tile.IsPassable()
}

// occupant returns the index of the entity at p, or -1
func (e *GameEngine) occupant(p level.Position) int {
	for i, ent := range e.entities {
		if ent.Pos == p {
			return i
		}
	}
	return -1
}

// canPush reports whether an entity of kind k may shove whatever is in front of it
func canPush(k level.Kind) bool {
	return k == level.Player
}

// resolveChain walks from the player along delta and collects the entities
// that would move, player first. It returns nil when the move is blocked.
func (e *GameEngine) resolveChain(delta level.Position) []int {
	chain := []int{e.player}
	head := e.player

	for {
		target := e.entities[head].Pos.Add(delta)
		if !e.CanMoveTo(target) {
			return nil
		}

		next := e.occupant(target)
		if next < 0 {
			return chain
		}
		if !canPush(e.entities[head].Kind) {
			return nil
		}

		chain = append(chain, next)
		head = next
	}
}

// move resolves and commits a move of the player. It pushes one undo frame
// when something moved and returns the number of entities that moved.
func (e *GameEngine) move(delta level.Position) (int, bool) {
	chain := e.resolveChain(delta)
	if chain == nil {
		return 0, false
	}

	frame := make(undoFrame, 0, len(chain))
	for _, i := range chain {
		frame = append(frame, undoEntry{index: i, pos: e.entities[i].Pos})
	}
	// Shift from the far end so no two entities share a cell mid-commit
	for k := len(chain) - 1; k >= 0; k-- {
		i := chain[k]
		e.entities[i].Pos = e.entities[i].Pos.Add(delta)
	}

	e.history = append(e.history, frame)
	return len(chain), true
}

// CanMove reports whether a move action would change anything, without
// performing it
func (e *GameEngine) CanMove(action Action) bool {
	if !action.IsMove() {
		return false
	}
	return e.resolveChain(action.Delta()) != nil
}

// GetPossibleMoves returns the move actions that are not blocked
func (e *GameEngine) GetPossibleMoves() []Action {
	var possible []Action
	for _, a := range MoveActions {
		if e.CanMove(a) {
			possible = append(possible, a)
		}
	}
	return possible
}
