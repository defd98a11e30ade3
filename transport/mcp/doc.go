// Package mcp provides a Model Context Protocol server for the Sokoban game.
//
// The mcp package implements:
//   - MCP server for AI agent integration over stdio
//   - Tool definitions for game operations
//   - Text rendering of the board with a coordinate ruler
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the board and level status
//   - move: Execute a single directional move
//   - bulk_move: Execute several moves in sequence
//   - undo: Take back the last move
//   - restart: Restart the current level
//   - next_level: Advance after completing a level
//   - load_level: Jump to a level by number
//   - list_levels: List available levels
//   - describe_cell: Inspect one cell
//   - game_instructions: Rules and legend
//
// The server drives a service.GameService in-process. It plays a single
// session; there is no multi-player or network mode.
//
// Usage:
//
//	srv := mcp.NewServer(gameService, version, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
