// Package service provides the business logic layer for the Sokoban game.
//
// The service package implements:
//   - Action parsing and execution with per-action events
//   - Bulk action runs that stop when blocked or when the level is won
//   - Level progression and level listing
//   - Board inspection for clients that cannot see the screen
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// LevelCatalog is the level source the service lists levels from; catalog.Manager
// implements it.
//
// Architecture:
//
// The service layer sits between the transports (terminal and MCP) and the
// session, turning engine outcomes into wire-friendly results. All calls are
// serialised by one mutex, so transports may call it from any goroutine.
//
// Usage:
//
//	levels, _ := catalog.NewManager("levels")
//	sess, _ := session.New(levels, 1)
//	gameService := service.NewGameService(sess, levels, logger)
//
//	result, err := gameService.Act(ctx, "right")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Message)
package service
