package engine

import (
	"errors"
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/sokoban/game/level"
)

func TestNewEngine(t *testing.T) {
	eng := createTestEngine(t, "#####\n#@$.#\n#####\n")

	assert.Equal(t, 1, eng.CurrentLevelID())
	w, h := eng.Extents()
	assert.Equal(t, 5, w)
	assert.Equal(t, 3, h)
	assert.Equal(t, level.Player, eng.Player().Kind)
	assert.Equal(t, level.Position{X: 1, Y: 1}, eng.Player().Pos)
	assert.False(t, eng.HasWon())
	assert.Equal(t, 0, eng.UndoDepth())
}

func TestNewEngine_Errors(t *testing.T) {
	src := level.NewDirSource(fstest.MapFS{
		"1.txt": {Data: []byte("#####\n#  .#\n#####\n")},
		"2.txt": {Data: []byte("#####\n#@@.#\n#####\n")},
		"3.txt": {Data: []byte("#####\n#@x.#\n#####\n")},
		"4.txt": {Data: []byte("\n\n")},
	})

	tests := []struct {
		name    string
		levelID int
		want    error
	}{
		{"no player", 1, level.ErrMalformedLevel},
		{"two players", 2, level.ErrMalformedLevel},
		{"bad character", 3, level.ErrMalformedLevel},
		{"empty", 4, level.ErrMalformedLevel},
		{"missing", 5, level.ErrLevelNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			eng, err := NewEngine(src, test.levelID)
			assert.Nil(t, eng)
			assert.ErrorIs(t, err, test.want)
		})
	}

	_, err := NewEngine(nil, 1)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestScenario_WalkOntoGoalWithoutBoxes(t *testing.T) {
	eng := createTestEngine(t, "#####\n#@ .#\n#####")
	assert.True(t, eng.HasWon(), "no boxes means the level is won")

	assert.True(t, eng.Apply(MoveRight))
	assert.True(t, eng.Apply(MoveRight))

	assert.Equal(t, level.Position{X: 3, Y: 1}, eng.Player().Pos)
	tile, ok := eng.TileAt(eng.Player().Pos)
	require.True(t, ok)
	assert.Equal(t, level.Goal, tile)
	assert.True(t, eng.HasWon())
}

func TestScenario_PushBoxOntoGoal(t *testing.T) {
	eng := createTestEngine(t, "#####\n#@$.#\n#####")
	assert.False(t, eng.HasWon())

	assert.True(t, eng.Apply(MoveRight))

	ents := eng.Entities()
	assert.Equal(t, level.Position{X: 2, Y: 1}, ents[0].Pos)
	assert.Equal(t, level.Position{X: 3, Y: 1}, ents[1].Pos)
	assert.True(t, eng.HasWon())
}

func TestScenario_BlockedThenMoveAndUndo(t *testing.T) {
	eng := createTestEngine(t, "#####\n#@$.#\n#####")
	initial := eng.Snapshot()

	assert.False(t, eng.Apply(MoveLeft))
	assert.True(t, eng.Apply(MoveRight))
	assert.True(t, eng.Undo())

	assert.Equal(t, initial, eng.Snapshot())
	assert.False(t, eng.Undo(), "blocked move left nothing to undo")
}

func TestUndo_RestoresPushChain(t *testing.T) {
	eng := createTestEngine(t, "#######\n#@$   #\n#######\n")
	start := positions(eng)

	require.True(t, eng.Apply(MoveRight))
	require.True(t, eng.Apply(MoveRight))
	assert.Equal(t, 2, eng.UndoDepth())

	assert.True(t, eng.Undo())
	assert.Equal(t, []level.Position{{X: 2, Y: 1}, {X: 3, Y: 1}}, positions(eng))
	assert.True(t, eng.Undo())
	assert.Equal(t, start, positions(eng))
	assert.False(t, eng.Undo())
}

func TestUndo_EmptyStackIsNoop(t *testing.T) {
	eng := createTestEngine(t, "####\n#@ #\n####\n")
	before := positions(eng)
	assert.False(t, eng.Undo())
	assert.Equal(t, before, positions(eng))
}

func TestHasWon(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"no boxes", "####\n#@.#\n####", true},
		{"all boxes on goals", "#####\n#@**#\n#####", true},
		{"one box off goal", "######\n#@*$.#\n######", false},
		{"player on goal does not count", "#####\n#+$ #\n#####", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			eng := createTestEngine(t, test.text)
			assert.Equal(t, test.want, eng.HasWon())
		})
	}
}

func TestReload(t *testing.T) {
	src := level.NewDirSource(fstest.MapFS{
		"1.txt": {Data: []byte("#####\n#@$.#\n#####\n")},
		"2.txt": {Data: []byte("######\n#@ $.#\n######\n")},
		"3.txt": {Data: []byte("#?#\n")},
	})
	eng, err := NewEngine(src, 1)
	require.NoError(t, err)
	require.True(t, eng.Apply(MoveRight))

	require.NoError(t, eng.Reload(2))
	assert.Equal(t, 2, eng.CurrentLevelID())
	assert.Equal(t, 0, eng.UndoDepth())
	w, _ := eng.Extents()
	assert.Equal(t, 6, w)

	// A failed reload keeps the current level
	require.True(t, eng.Apply(MoveRight))
	err = eng.Reload(3)
	assert.ErrorIs(t, err, level.ErrMalformedLevel)
	assert.Equal(t, 2, eng.CurrentLevelID())
	assert.Equal(t, 1, eng.UndoDepth())

	err = eng.Reload(9)
	assert.ErrorIs(t, err, level.ErrLevelNotFound)
	assert.Equal(t, 2, eng.CurrentLevelID())
}

func TestRestart(t *testing.T) {
	eng := createTestEngine(t, "######\n#@$ .#\n######\n")
	initial := eng.Snapshot()

	require.True(t, eng.Apply(MoveRight))
	require.True(t, eng.Apply(MoveRight))
	require.NoError(t, eng.Restart())

	assert.Equal(t, initial, eng.Snapshot())
	assert.Equal(t, 0, eng.UndoDepth())
}

func TestNewEngineFromLevel(t *testing.T) {
	lvl, err := level.ParseString("#####\n#@$.#\n#####")
	require.NoError(t, err)

	eng, err := NewEngineFromLevel(lvl)
	require.NoError(t, err)
	require.True(t, eng.Apply(MoveRight))
	assert.Equal(t, 1, lvl.Entities[0].Pos.X, "source level must not be mutated")

	assert.ErrorIs(t, eng.Restart(), ErrNoSource)
}

func TestDo_Outcomes(t *testing.T) {
	eng := createTestEngine(t, "######\n#@ $.#\n######\n")

	steps := []struct {
		action Action
		want   Outcome
	}{
		{MoveLeft, Blocked},
		{Undo, NothingToUndo},
		{MoveRight, Moved},
		{MoveRight, Pushed},
		{MoveRight, Blocked},
		{Undo, Undone},
		{Restart, Restarted},
	}

	for i, step := range steps {
		got, err := eng.Do(step.action)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, step.want, got, "step %d (%s)", i, step.action)
	}

	_, err := eng.Do(Action(99))
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestSnapshot(t *testing.T) {
	eng := createTestEngine(t, "######\n#@$*.#\n######\n")
	snap := eng.Snapshot()

	assert.Equal(t, 1, snap.LevelID)
	assert.Equal(t, []string{"######", "#@$*.#", "######"}, snap.Rows)
	assert.Equal(t, 2, snap.Boxes)
	assert.Equal(t, 1, snap.BoxesHome)
	assert.False(t, snap.Won)
	assert.Equal(t, level.Position{X: 1, Y: 1}, snap.Player)

	// Entities in the snapshot are a copy
	snap.Entities[0].Pos.X = 4
	assert.Equal(t, 1, eng.Player().Pos.X)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input string
		want  Action
	}{
		{"left", MoveLeft},
		{"RIGHT", MoveRight},
		{" up ", MoveUp},
		{"d", MoveDown},
		{"undo", Undo},
		{"restart", Restart},
		{"reset", Restart},
	}
	for _, test := range tests {
		got, err := ParseAction(test.input)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.want, got, test.input)
	}

	_, err := ParseAction("jump")
	assert.True(t, errors.Is(err, ErrUnknownAction))

	for _, a := range []Action{MoveLeft, MoveRight, MoveUp, MoveDown, Undo, Restart} {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
}

// propertyLevel has boxes next to walls, next to each other and on goals
const propertyLevel = `  #######
###  .  #
#  $ #$ ##
# .$@ $. #
##  *   ##
 # .$ #  #
 ########
`

func TestProperty_RoundTripUndo(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		eng := createTestEngine(t, propertyLevel)
		start := positions(eng)

		applied := 0
		for i := 0; i < 40; i++ {
			if eng.Apply(MoveActions[rng.Intn(len(MoveActions))]) {
				applied++
			}
		}
		require.Equal(t, applied, eng.UndoDepth())

		for i := 0; i < applied; i++ {
			require.True(t, eng.Undo())
		}
		assert.Equal(t, start, positions(eng), "run %d", run)
	}
}

func TestProperty_RandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	actions := []Action{MoveLeft, MoveRight, MoveUp, MoveDown, MoveLeft, MoveRight, MoveUp, MoveDown, Undo}

	eng := createTestEngine(t, propertyLevel)
	for i := 0; i < 2000; i++ {
		a := actions[rng.Intn(len(actions))]
		before := positions(eng)

		if a.IsMove() {
			target := eng.Player().Pos.Add(a.Delta())
			if tile, ok := eng.TileAt(target); !ok || tile == level.Wall {
				require.False(t, eng.Apply(a))
				require.Equal(t, before, positions(eng), "wall must block step %d", i)
				continue
			}
			eng.Apply(a)
		} else {
			eng.Undo()
		}

		seen := make(map[level.Position]bool)
		for _, ent := range eng.Entities() {
			require.False(t, seen[ent.Pos], "two entities at %v after step %d", ent.Pos, i)
			seen[ent.Pos] = true

			tile, ok := eng.TileAt(ent.Pos)
			require.True(t, ok)
			require.NotEqual(t, level.Wall, tile)
		}
	}
}
