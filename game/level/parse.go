package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrLevelNotFound  = errors.New("level not found")
	ErrMalformedLevel = errors.New("malformed level")
)

// ParseError describes where a level text stopped making sense. It matches
// ErrMalformedLevel with errors.Is.
type ParseError struct {
	Line   int  // 1-based, 0 when the error is not tied to a line
	Column int  // 1-based
	Char   rune // offending character, 0 if none
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed level: %s", e.Reason)
	}
	if e.Char != 0 {
		return fmt.Sprintf("malformed level: line %d, col %d: %s %q", e.Line, e.Column, e.Reason, e.Char)
	}
	return fmt.Sprintf("malformed level: line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedLevel
}

// MaxLineLength is the longest level row Parse accepts, in bytes
const MaxLineLength = 1 << 20

// Parse reads a level description, one grid row per line
func Parse(r io.Reader) (*Level, error) {
	var rows [][]Tile
	var entities []Entity

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineLength)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		y := len(rows)
		row := make([]Tile, 0, len(line))

		col := 0
		for _, c := range line {
			x := len(row)
			col++

			switch c {
			case ' ', '@', '$':
				row = append(row, Floor)
			case '.', '+', '*':
				row = append(row, Goal)
			case '#':
				row = append(row, Wall)
			default:
				return nil, &ParseError{Line: y + 1, Column: col, Char: c, Reason: "unrecognized character"}
			}

			switch c {
			case '@', '+':
				entities = append(entities, Entity{Kind: Player, Pos: Position{X: x, Y: y}})
			case '$', '*':
				entities = append(entities, Entity{Kind: Box, Pos: Position{X: x, Y: y}})
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: len(rows) + 1, Reason: fmt.Sprintf("line longer than %d bytes", MaxLineLength)}
		}
		return nil, fmt.Errorf("failed to read level: %w", err)
	}

	// Trailing blank lines in the file produce empty rows
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, &ParseError{Reason: "level is empty"}
	}

	return &Level{
		Grid:     NewGrid(rows),
		Entities: entities,
	}, nil
}

// ParseString parses a level held in memory
func ParseString(s string) (*Level, error) {
	return Parse(strings.NewReader(s))
}
