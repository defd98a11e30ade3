// Package validate checks level files before they are played. It checks:
//   - The file parses (only known characters)
//   - Exactly one player
//   - Entities stand on floor or goal
//   - There are no more boxes than goals
//   - Every box and goal is reachable from the player, ignoring boxes
//
// Unreachable cells and box-less levels are reported as warnings; whether a
// level can actually be solved is not checked.
package validate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// Result captures the outcome of validating a single file.
// If Valid is true, Errors is empty; Notes holds the passed checks.
type Result struct {
	File     string
	LevelID  int
	Valid    bool
	Errors   []string
	Warnings []string
	Notes    []string
}

func (r *Result) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) note(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// File loads and validates one level file
func File(path string) Result {
	name := filepath.Base(path)
	id, _ := level.IDFromFileName(name)
	result := Result{File: name, LevelID: id, Valid: true}

	f, err := os.Open(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}
	defer f.Close()

	lvl, err := level.Parse(f)
	if err != nil {
		var perr *level.ParseError
		switch {
		case errors.As(err, &perr) && perr.Line > 0:
			result.fail("Line %d, column %d: %s", perr.Line, perr.Column, perr.Reason)
		case errors.As(err, &perr):
			result.fail("Invalid level: %s", perr.Reason)
		default:
			result.fail("Invalid level: %v", err)
		}
		return result
	}

	Level(lvl, &result)
	return result
}

// Level runs the structural checks on a parsed level and records them in result
func Level(lvl *level.Level, result *Result) {
	var players []level.Position
	for _, ent := range lvl.Entities {
		if tile, ok := lvl.Grid.Tile(ent.Pos); !ok || tile == level.Wall {
			result.fail("%s at (%d,%d) is not on floor", ent.Kind, ent.Pos.X, ent.Pos.Y)
		}
		if ent.Kind == level.Player {
			players = append(players, ent.Pos)
		}
	}

	switch len(players) {
	case 0:
		result.fail("No player found")
	case 1:
		result.note("✓ Player at (%d,%d)", players[0].X, players[0].Y)
	default:
		result.fail("Found %d players, expected exactly one", len(players))
	}

	boxes := lvl.Count(level.Box)
	goals := lvl.Grid.CountTiles(level.Goal)
	switch {
	case boxes > goals:
		result.fail("%d boxes but only %d goals: the level can never be won", boxes, goals)
	case boxes == 0:
		result.warn("No boxes: the level is won before the first move")
	default:
		result.note("✓ %d boxes, %d goals", boxes, goals)
	}

	if len(players) == 1 {
		checkReachability(lvl, players[0], result)
	}
}

// checkReachability flood fills from the player through non-wall cells and
// warns about boxes and goals outside the filled region
func checkReachability(lvl *level.Level, start level.Position, result *Result) {
	visited := map[level.Position]bool{start: true}
	queue := []level.Position{start}
	directions := []level.Position{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			next := current.Add(d)
			if visited[next] {
				continue
			}
			if tile, ok := lvl.Grid.Tile(next); !ok || tile == level.Wall {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}

	var unreachable []string
	for _, ent := range lvl.Entities {
		if ent.Kind == level.Box && !visited[ent.Pos] {
			unreachable = append(unreachable, fmt.Sprintf("box at (%d,%d)", ent.Pos.X, ent.Pos.Y))
		}
	}
	for y := 0; y < lvl.Grid.Height(); y++ {
		for x := 0; x < lvl.Grid.RowLen(y); x++ {
			p := level.Position{X: x, Y: y}
			if tile, _ := lvl.Grid.Tile(p); tile == level.Goal && !visited[p] {
				unreachable = append(unreachable, fmt.Sprintf("goal at (%d,%d)", x, y))
			}
		}
	}

	if len(unreachable) > 0 {
		result.warn("Unreachable from the player: %s", strings.Join(unreachable, ", "))
		return
	}
	result.note("✓ All boxes and goals reachable from the player")
}

// Dir validates every numbered level file in dir, ordered by level id
func Dir(dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var results []Result
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := level.IDFromFileName(entry.Name()); !ok {
			continue
		}
		results = append(results, File(filepath.Join(dir, entry.Name())))
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no level files in %s: %w", dir, fs.ErrNotExist)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].LevelID < results[j].LevelID
	})
	return results, nil
}

// Report prints a concise report and returns whether every level is valid
func Report(w io.Writer, results []Result) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, note := range result.Notes {
				fmt.Fprintln(w, "  "+note)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All levels are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some levels have errors")
	}
	return allValid
}
