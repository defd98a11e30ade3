// Package engine provides the rule engine of the Sokoban puzzle.
//
// The engine package implements the game mechanics including:
//   - Grid-based movement with wall collision
//   - Pushing boxes (the player may push one box; boxes never push)
//   - An undo history of every move that changed something
//   - Win detection (every box on a goal)
//   - Level (re)loading through a level.Source
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Action is the abstract command a frontend feeds
// in; Snapshot is the read-only view a frontend draws from.
//
// Usage:
//
//	src := level.NewDirSource(os.DirFS("levels"))
//	eng, err := engine.NewEngine(src, 1)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Apply(engine.MoveRight)
//	if eng.HasWon() {
//		// advance to the next level
//	}
//	eng.Undo()
//
// Rules:
//
// A level has exactly one player. A move shifts the player one cell unless
// the target is a wall. If a box is in the way it is pushed one cell in the
// same direction, provided the cell beyond it is neither a wall nor occupied.
// A blocked move changes nothing and leaves no undo entry. The level is won
// when every box stands on a goal tile; a level without boxes is won from the
// start.
//
// The engine is not safe for concurrent use.
package engine
