package engine

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// createTestEngine loads text as level 1 of an in-memory source
func createTestEngine(t *testing.T, text string) *GameEngine {
	t.Helper()
	src := level.NewDirSource(fstest.MapFS{
		"1.txt": {Data: []byte(text)},
	})
	eng, err := NewEngine(src, 1)
	require.NoError(t, err)
	return eng
}

func positions(eng *GameEngine) []level.Position {
	out := make([]level.Position, 0, len(eng.entities))
	for _, ent := range eng.entities {
		out = append(out, ent.Pos)
	}
	return out
}

func TestApply_MovesPlayer(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   level.Position
	}{
		{"left", MoveLeft, level.Position{X: 1, Y: 2}},
		{"right", MoveRight, level.Position{X: 3, Y: 2}},
		{"up", MoveUp, level.Position{X: 2, Y: 1}},
		{"down", MoveDown, level.Position{X: 2, Y: 3}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			eng := createTestEngine(t, "#####\n#   #\n# @ #\n#   #\n#####\n")
			assert.True(t, eng.Apply(test.action))
			assert.Equal(t, test.want, eng.Player().Pos)
			assert.Equal(t, 1, eng.UndoDepth())
		})
	}
}

func TestApply_WallImpermeable(t *testing.T) {
	// Player boxed in by walls on every side
	eng := createTestEngine(t, "###\n#@#\n###\n")
	for _, a := range MoveActions {
		before := positions(eng)
		assert.False(t, eng.Apply(a), "action %s", a)
		assert.Equal(t, before, positions(eng), "action %s", a)
	}
	assert.Equal(t, 0, eng.UndoDepth())
}

func TestApply_BoxAgainstWall(t *testing.T) {
	eng := createTestEngine(t, "####\n#@$#\n####\n")
	before := positions(eng)
	assert.False(t, eng.Apply(MoveRight))
	assert.Equal(t, before, positions(eng))
}

func TestApply_PushBox(t *testing.T) {
	eng := createTestEngine(t, "######\n#@$  #\n######\n")
	assert.True(t, eng.Apply(MoveRight))

	ents := eng.Entities()
	assert.Equal(t, level.Position{X: 2, Y: 1}, ents[0].Pos)
	assert.Equal(t, level.Position{X: 3, Y: 1}, ents[1].Pos)
}

func TestApply_BoxDoesNotPushBox(t *testing.T) {
	eng := createTestEngine(t, "#######\n#@$$  #\n#######\n")
	before := positions(eng)

	assert.False(t, eng.Apply(MoveRight))
	assert.Equal(t, before, positions(eng))
	assert.Equal(t, 0, eng.UndoDepth())
}

func TestApply_BoxesInAColumn(t *testing.T) {
	eng := createTestEngine(t, "###\n#@#\n#$#\n#$#\n# #\n###\n")
	before := positions(eng)
	assert.False(t, eng.Apply(MoveDown))
	assert.Equal(t, before, positions(eng))
}

func TestApply_RaggedRowIsBlocked(t *testing.T) {
	// Row 1 is shorter than row 0; moving past its end must not escape the grid
	eng := createTestEngine(t, "######\n#@\n######\n")
	assert.False(t, eng.Apply(MoveRight))
	assert.Equal(t, level.Position{X: 1, Y: 1}, eng.Player().Pos)
}

func TestApply_OpenEdgeIsBlocked(t *testing.T) {
	eng := createTestEngine(t, "@ \n")
	assert.False(t, eng.Apply(MoveLeft))
	assert.False(t, eng.Apply(MoveUp))
	assert.False(t, eng.Apply(MoveDown))
	assert.True(t, eng.Apply(MoveRight))
	assert.False(t, eng.Apply(MoveRight))
}

func TestApply_NonMoveActionIgnored(t *testing.T) {
	eng := createTestEngine(t, "#####\n#@  #\n#####\n")
	assert.False(t, eng.Apply(Undo))
	assert.False(t, eng.Apply(Restart))
	assert.Equal(t, 0, eng.UndoDepth())
}

func TestCanMoveAndPossibleMoves(t *testing.T) {
	eng := createTestEngine(t, "#####\n#@$ #\n# ###\n#####\n")

	assert.True(t, eng.CanMove(MoveRight))
	assert.True(t, eng.CanMove(MoveDown))
	assert.False(t, eng.CanMove(MoveLeft))
	assert.False(t, eng.CanMove(MoveUp))
	assert.False(t, eng.CanMove(Undo))
	assert.Equal(t, []Action{MoveDown, MoveRight}, eng.GetPossibleMoves())

	// CanMove must not mutate
	assert.Equal(t, level.Position{X: 1, Y: 1}, eng.Player().Pos)
	assert.Equal(t, 0, eng.UndoDepth())
}
