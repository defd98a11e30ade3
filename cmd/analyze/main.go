// Command analyze prints quick, human-readable heuristics about the level
// files in a levels directory. It summarizes dimensions, box and goal counts,
// and highlights dead corners: floor cells that are not goals and have walls
// on two adjacent sides, so a box pushed there can never leave.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/mcp-training/sokoban/game/catalog"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

func main() {
	dir := "levels"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := run(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, dir string) error {
	manager, err := catalog.NewManager(dir)
	if err != nil {
		return err
	}

	infos, err := manager.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintf(w, "No levels found in %s\n", dir)
		return nil
	}

	for _, info := range infos {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)
		if info.Error != "" {
			fmt.Fprintf(w, "Error: %s\n", info.Error)
			continue
		}
		lvl, err := manager.Load(info.ID)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		analyzeLevel(w, lvl)
	}
	return nil
}

func analyzeLevel(w io.Writer, lvl *level.Level) {
	fmt.Fprintf(w, "Level: %d\n", lvl.ID)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", lvl.Grid.Width(), lvl.Grid.Height())

	var players, boxes []level.Position
	boxesOnGoal := 0
	for _, ent := range lvl.Entities {
		switch ent.Kind {
		case level.Player:
			players = append(players, ent.Pos)
		case level.Box:
			boxes = append(boxes, ent.Pos)
			if tile, _ := lvl.Grid.Tile(ent.Pos); tile == level.Goal {
				boxesOnGoal++
			}
		}
	}

	for _, p := range players {
		fmt.Fprintf(w, "Player Position: (%d, %d)\n", p.X, p.Y)
	}
	fmt.Fprintf(w, "Total Boxes: %d\n", len(boxes))
	fmt.Fprintf(w, "Total Goals: %d\n", lvl.Grid.CountTiles(level.Goal))
	fmt.Fprintf(w, "Boxes On Goals: %d\n", boxesOnGoal)

	corners := deadCorners(lvl.Grid)
	fmt.Fprintf(w, "Dead Corners: %d\n", len(corners))

	dead := make(map[level.Position]bool, len(corners))
	for _, c := range corners {
		dead[c] = true
	}
	var stuck []level.Position
	for _, b := range boxes {
		if dead[b] {
			stuck = append(stuck, b)
		}
	}

	if len(stuck) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d boxes start in a dead corner!\n", len(stuck))
		for _, p := range stuck {
			fmt.Fprintf(w, "   - (%d, %d)\n", p.X, p.Y)
		}
	} else {
		fmt.Fprintln(w, "✅ No box starts in a dead corner")
	}
}

// deadCorners returns the non-goal floor cells with walls on two adjacent
// sides, in row order
func deadCorners(g *level.Grid) []level.Position {
	var corners []level.Position
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.RowLen(y); x++ {
			p := level.Position{X: x, Y: y}
			if tile, _ := g.Tile(p); tile != level.Floor {
				continue
			}
			up := isWall(g, p.Add(level.Position{Y: -1}))
			down := isWall(g, p.Add(level.Position{Y: 1}))
			left := isWall(g, p.Add(level.Position{X: -1}))
			right := isWall(g, p.Add(level.Position{X: 1}))
			if (up || down) && (left || right) {
				corners = append(corners, p)
			}
		}
	}
	return corners
}

func isWall(g *level.Grid, p level.Position) bool {
	tile, _ := g.Tile(p)
	return tile == level.Wall
}
