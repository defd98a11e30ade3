package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/sokoban/game/service"
)

const instructions = `Sokoban - Complete Instructions

GAME OBJECTIVE:
Push every box onto a goal square. The level is complete when no box stands off a goal.

GAME MECHANICS:
- Movement: The player moves one cell up, down, left or right
- Pushing: Walking into a box pushes it one cell, if the cell behind it is free floor or goal
- Boxes cannot be pulled, and a box cannot push another box
- Walls (#) stop both the player and boxes
- Undo takes back one move at a time, including any box it pushed
- Restart reloads the level from its file and clears the undo history

GRID LEGEND:
- @ - Player on floor
- + - Player on a goal
- $ - Box on floor
- * - Box on a goal
- . - Empty goal
- # - Wall
- (space) - Floor

COORDINATES:
x is the column and y is the row, both 0-based from the top-left corner.

TIPS:
- A box pushed into a corner that is not a goal can never be moved again; undo it
- Plan pushes from the goal backwards
- Use describe_cell when unsure what is at a position
- After level_complete, call next_level to continue`

func formatGameState(state *service.StateView) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Level %d | Position: (%d,%d) | Boxes on goal: %d/%d | Undo depth: %d\n",
		state.LevelID, state.Player.X, state.Player.Y, state.BoxesOnGoal, state.Boxes, state.UndoDepth))

	if state.Won {
		if state.HasNextLevel {
			b.WriteString("🎉 Level complete! Call next_level to continue.\n")
		} else {
			b.WriteString("🎉 Level complete! This is the last level.\n")
		}
	}
	if len(state.PossibleMoves) > 0 {
		b.WriteString(fmt.Sprintf("Possible moves: %s\n", strings.Join(state.PossibleMoves, ", ")))
	} else {
		b.WriteString("Possible moves: none (undo or restart)\n")
	}

	b.WriteString("\n")
	b.WriteString(formatBoard(state.Rows))
	return b.String()
}

// formatBoard draws rows with a column ruler so coordinates can be read off
func formatBoard(rows []string) string {
	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	var b strings.Builder
	b.WriteString("    ")
	for x := 0; x < width; x++ {
		b.WriteString(fmt.Sprintf("%d", x%10))
	}
	b.WriteString("\n")
	for y, row := range rows {
		b.WriteString(fmt.Sprintf("%3d %s\n", y, row))
	}
	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString(fmt.Sprintf("✓ %s: %s\n", result.Action, result.Outcome))
	} else {
		b.WriteString(fmt.Sprintf("✗ %s: %s\n", result.Action, result.Outcome))
	}

	// Failure diagnostic (if available)
	if result.AttemptedTo != nil {
		b.WriteString("Blocked: " + formatCellLine(result.AttemptedTo) + "\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatGameState(result.State))
	return b.String()
}

func formatBulkActionResult(result *service.BulkActionResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Executed %d/%d moves", result.ActionsExecuted, result.RequestedActions))
	if result.Truncated {
		b.WriteString(fmt.Sprintf(" (truncated to %d)", result.Limit))
	}
	b.WriteString(fmt.Sprintf(" | (%d,%d)→(%d,%d)\n",
		result.StartPos.X, result.StartPos.Y, result.EndPos.X, result.EndPos.Y))

	if result.StopReasonCode != "" {
		b.WriteString(fmt.Sprintf("Stopped [%s]: %s\n", result.StopReasonCode, result.StoppedReason))
	}
	if result.AttemptedTo != nil {
		b.WriteString("Blocked: " + formatCellLine(result.AttemptedTo) + "\n")
	}

	// Only the events that matter for planning
	for _, event := range result.Events {
		switch event.Type {
		case service.EventPush, service.EventLevelComplete, service.EventBlocked, service.EventRestart:
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatGameState(result.State))
	return b.String()
}

func formatLevelList(levels []*service.LevelInfo) string {
	if len(levels) == 0 {
		return "No levels found"
	}

	var b strings.Builder
	b.WriteString("Available levels:\n")
	for _, lvl := range levels {
		marker := " "
		if lvl.Current {
			marker = ">"
		}
		done := ""
		if lvl.Completed {
			done = " ✓"
		}
		if lvl.Error != "" {
			b.WriteString(fmt.Sprintf("%s %d: invalid (%s)\n", marker, lvl.ID, lvl.Error))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %d: %dx%d, %d boxes, %d goals%s\n",
			marker, lvl.ID, lvl.Width, lvl.Height, lvl.Boxes, lvl.Goals, done))
	}
	return b.String()
}

func formatCellInfo(cell *service.CellInfo) string {
	var b strings.Builder
	b.WriteString(formatCellLine(cell) + "\n")
	if !cell.InBounds {
		b.WriteString("Outside the level; treated as wall\n")
	}
	switch cell.Occupant {
	case "player":
		b.WriteString("Player's current position\n")
	case "box":
		b.WriteString("Box - push it by walking into it\n")
	}
	return b.String()
}

func formatCellLine(cell *service.CellInfo) string {
	passStr := "impassable"
	if cell.Passable {
		passStr = "passable"
	}
	line := fmt.Sprintf("(%d,%d) char='%s' tile=%s %s", cell.X, cell.Y, cell.Char, cell.Tile, passStr)
	if cell.Occupant != "" {
		line += " occupant=" + cell.Occupant
	}
	return line
}
