package level

// Tile is the static content of a grid cell
type Tile uint8

const (
	Floor Tile = iota
	Goal
	Wall
)

// String returns the tile name used in logs and tool output
func (t Tile) String() string {
	switch t {
	case Floor:
		return "floor"
	case Goal:
		return "goal"
	case Wall:
		return "wall"
	default:
		return "unknown"
	}
}

// Rune returns the level-text character for an unoccupied tile
func (t Tile) Rune() rune {
	switch t {
	case Goal:
		return '.'
	case Wall:
		return '#'
	default:
		return ' '
	}
}

// IsPassable reports whether an entity may stand on the tile
func (t Tile) IsPassable() bool {
	return t != Wall
}

// Kind identifies what an entity is
type Kind uint8

const (
	Player Kind = iota
	Box
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case Player:
		return "player"
	case Box:
		return "box"
	default:
		return "unknown"
	}
}

// Position represents x,y coordinates (column, row)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Entity is a movable object on the grid
type Entity struct {
	Kind Kind     `json:"kind"`
	Pos  Position `json:"pos"`
}

// Grid holds the tiles of a level. Rows keep their original lengths.
type Grid struct {
	rows  [][]Tile
	width int
}

// NewGrid builds a grid from rows of tiles. The rows are not copied.
func NewGrid(rows [][]Tile) *Grid {
	g := &Grid{rows: rows}
	for _, row := range rows {
		if len(row) > g.width {
			g.width = len(row)
		}
	}
	return g
}

// Width is the length of the longest row
func (g *Grid) Width() int {
	return g.width
}

// Height is the number of rows
func (g *Grid) Height() int {
	return len(g.rows)
}

// RowLen returns the stored length of row y, or 0 outside the grid
func (g *Grid) RowLen(y int) int {
	if y < 0 || y >= len(g.rows) {
		return 0
	}
	return len(g.rows[y])
}

// Tile returns the tile at p. ok is false when p is outside the grid or
// past the end of its row.
func (g *Grid) Tile(p Position) (t Tile, ok bool) {
	if p.Y < 0 || p.Y >= len(g.rows) {
		return Wall, false
	}
	row := g.rows[p.Y]
	if p.X < 0 || p.X >= len(row) {
		return Wall, false
	}
	return row[p.X], true
}

// Level is a parsed level: its grid and the entities in text order
type Level struct {
	ID       int
	Grid     *Grid
	Entities []Entity
}

// Clone returns a copy whose entity slice can be mutated freely. The grid is
// shared since tiles never change after loading.
func (l *Level) Clone() *Level {
	entities := make([]Entity, len(l.Entities))
	copy(entities, l.Entities)
	return &Level{
		ID:       l.ID,
		Grid:     l.Grid,
		Entities: entities,
	}
}

// Count returns how many entities of kind k the level has
func (l *Level) Count(k Kind) int {
	n := 0
	for _, e := range l.Entities {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// CountTiles returns how many cells of tile t the grid has
func (g *Grid) CountTiles(t Tile) int {
	count := 0
	for _, row := range g.rows {
		for _, tile := range row {
			if tile == t {
				count++
			}
		}
	}
	return count
}
