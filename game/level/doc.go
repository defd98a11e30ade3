// Package level loads Sokoban levels from their plain-text description.
//
// A level is a grid of tiles plus an ordered list of entities (the player
// and the boxes). Each line of the level text is one grid row:
//
//	' '  floor
//	'@'  floor with the player
//	'$'  floor with a box
//	'.'  goal
//	'+'  goal with the player
//	'*'  goal with a box
//	'#'  wall
//
// Any other character makes the level malformed. Rows may have different
// lengths; they are stored as given and a lookup past the end of a row
// reports that no tile exists there. Trailing empty lines are ignored.
//
// Usage:
//
//	src := level.NewDirSource(os.DirFS("levels"))
//	lvl, err := src.Load(1)
//	if errors.Is(err, level.ErrLevelNotFound) {
//		// no such level
//	}
//
// Levels are addressed by a positive integer id; DirSource maps id N to the
// file "N.txt".
package level
