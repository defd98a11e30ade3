package level

import "strings"

// EntityRune returns the level-text character for an entity standing on tile t
func EntityRune(k Kind, t Tile) rune {
	switch {
	case k == Player && t == Goal:
		return '+'
	case k == Player:
		return '@'
	case k == Box && t == Goal:
		return '*'
	default:
		return '$'
	}
}

// Rows renders the grid with entities drawn on top, one string per row.
// Rows keep their stored length, so ragged levels stay ragged.
func Rows(g *Grid, entities []Entity) []string {
	cells := make([][]rune, g.Height())
	for y := range cells {
		cells[y] = make([]rune, g.RowLen(y))
		for x := range cells[y] {
			t, _ := g.Tile(Position{X: x, Y: y})
			cells[y][x] = t.Rune()
		}
	}

	for _, e := range entities {
		t, ok := g.Tile(e.Pos)
		if !ok {
			continue
		}
		cells[e.Pos.Y][e.Pos.X] = EntityRune(e.Kind, t)
	}

	rows := make([]string, len(cells))
	for y, row := range cells {
		rows[y] = string(row)
	}
	return rows
}

// Format renders the grid and entities back into level text
func Format(g *Grid, entities []Entity) string {
	return strings.Join(Rows(g, entities), "\n") + "\n"
}
