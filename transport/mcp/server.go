package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/sokoban/game/service"
)

// Server exposes a game service as MCP tools
type Server struct {
	service   service.GameService
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over svc
func NewServer(svc service.GameService, version string, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		logger:  logger,
	}
	s.mcpServer = server.NewMCPServer(
		"Sokoban",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sokoban - MCP Interface

GAME OBJECTIVE:
Push every box ($) onto a goal (.) to complete the level. You are the player (@).

AVAILABLE TOOLS:
- game_state: Get the current board and status
- move: Single move (up/down/left/right) - requires intent explanation
- bulk_move: Several moves at once - requires intent explanation
- undo: Take back the last move
- restart: Restart the current level
- next_level: Continue after completing a level
- load_level: Jump to a level by number
- list_levels: List available levels
- describe_cell: Get detailed info about a specific cell
- game_instructions: Rules and legend

NOTE: The 'intent' parameter on move/bulk_move serves as rubber duck debugging - explain your reasoning!`),
	)

	s.registerTools()
	return s
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over Stdin/Stdout until the client disconnects
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the current board, box count and undo depth"),
	), s.handleGameState)

	s.mcpServer.AddTool(mcp.NewTool("move",
		mcp.WithDescription("Move the player one cell, pushing a box if one is in the way"),
		mcp.WithString("direction",
			mcp.Required(),
			mcp.Enum("up", "down", "left", "right"),
			mcp.Description("Direction to move"),
		),
		mcp.WithString("intent",
			mcp.Description("Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)"),
		),
	), s.handleMove)

	s.mcpServer.AddTool(mcp.NewTool("bulk_move",
		mcp.WithDescription(fmt.Sprintf("Run up to %d moves in order. Stops at the first blocked move or when the level is complete. 'undo' and 'restart' are accepted as steps.", service.MaxBulkActions)),
		mcp.WithArray("moves",
			mcp.Required(),
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Moves to execute, e.g. [\"up\", \"up\", \"left\"]"),
		),
		mcp.WithString("intent",
			mcp.Description("Brief explanation of the plan behind these moves"),
		),
	), s.handleBulkMove)

	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Take back the most recent move"),
	), s.handleUndo)

	s.mcpServer.AddTool(mcp.NewTool("restart",
		mcp.WithDescription("Restart the current level from its file"),
	), s.handleRestart)

	s.mcpServer.AddTool(mcp.NewTool("next_level",
		mcp.WithDescription("Load the next level. Only allowed once the current level is complete."),
	), s.handleNextLevel)

	s.mcpServer.AddTool(mcp.NewTool("load_level",
		mcp.WithDescription("Load a level by number, discarding progress on the current one"),
		mcp.WithNumber("level", mcp.Required(), mcp.Description("Level number (1-based)")),
	), s.handleLoadLevel)

	s.mcpServer.AddTool(mcp.NewTool("list_levels",
		mcp.WithDescription("List available levels with their size and box count"),
	), s.handleListLevels)

	s.mcpServer.AddTool(mcp.NewTool("describe_cell",
		mcp.WithDescription("Get detailed info about a specific cell"),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("X coordinate (column) of the cell to describe (0-based)")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Y coordinate (row) of the cell to describe (0-based)")),
	), s.handleDescribeCell)

	s.mcpServer.AddTool(mcp.NewTool("game_instructions",
		mcp.WithDescription("Get the rules, legend and tips"),
	), s.handleGameInstructions)
}

// Tool handlers

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.service.GetState(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)
	s.logger.Debug("mcp move", "direction", direction, "intent", intent)

	if _, ok := directions[strings.ToLower(direction)]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid direction %q: use up, down, left or right", direction)), nil
	}

	result, err := s.service.Act(ctx, direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(result)), nil
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)
	s.logger.Debug("mcp bulk move", "count", len(movesRaw), "intent", intent)

	// Convert moves to string array
	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}
	if len(moves) == 0 {
		return mcp.NewToolResultError("moves must be a non-empty array of strings"), nil
	}

	result, err := s.service.BulkAct(ctx, moves)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBulkActionResult(result)), nil
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.Undo(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(result)), nil
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.Restart(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(result)), nil
}

func (s *Server) handleNextLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.NextLevel(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(result)), nil
}

func (s *Server) handleLoadLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := intArg(arguments(request), "level")
	if !ok {
		return mcp.NewToolResultError("level must be a number"), nil
	}

	result, err := s.service.LoadLevel(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(result)), nil
}

func (s *Server) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levels, err := s.service.ListLevels(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatLevelList(levels)), nil
}

func (s *Server) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y must be numbers"), nil
	}

	cell, err := s.service.DescribeCell(ctx, x, y)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCellInfo(cell)), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

var directions = map[string]struct{}{
	"up": {}, "down": {}, "left": {}, "right": {},
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
