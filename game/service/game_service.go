package service

import (
	"context"

	"github.com/wricardo/mcp-training/sokoban/game/catalog"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// GameService defines all game-related operations
type GameService interface {
	// Game Operations
	Act(ctx context.Context, action string) (*ActionResult, error)
	BulkAct(ctx context.Context, actions []string) (*BulkActionResult, error)
	Undo(ctx context.Context) (*ActionResult, error)
	Restart(ctx context.Context) (*ActionResult, error)

	// Level Progression
	NextLevel(ctx context.Context) (*ActionResult, error)
	LoadLevel(ctx context.Context, levelID int) (*ActionResult, error)
	ListLevels(ctx context.Context) ([]*LevelInfo, error)

	// Game State
	GetState(ctx context.Context) (*StateView, error)
	DescribeCell(ctx context.Context, x, y int) (*CellInfo, error)
}

// LevelCatalog handles level loading and listing
type LevelCatalog interface {
	level.Source
	List() ([]catalog.Info, error)
}
