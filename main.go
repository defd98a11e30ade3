// Command sokoban plays Sokoban levels from a directory of text files.
//
// It supports four commands:
//  1. "play" (default) – runs the game in the terminal
//  2. "mcp" – serves the game as MCP tools over stdio
//  3. "levels" – lists the levels in the levels directory
//  4. "validate" – checks every level file and reports problems
//
// Flags and SOKOBAN_* environment variables take precedence over the YAML
// settings file, which takes precedence over the built-in defaults. A .env
// file in the working directory is loaded first when present.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/sokoban/config"
	"github.com/wricardo/mcp-training/sokoban/game/catalog"
	"github.com/wricardo/mcp-training/sokoban/game/service"
	"github.com/wricardo/mcp-training/sokoban/game/session"
	"github.com/wricardo/mcp-training/sokoban/internal/logging"
	"github.com/wricardo/mcp-training/sokoban/transport/mcp"
	"github.com/wricardo/mcp-training/sokoban/transport/terminal"
	"github.com/wricardo/mcp-training/sokoban/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "sokoban"
)

// ErrInvalidLevels is returned by the validate command when a level fails
var ErrInvalidLevels = errors.New("some levels are invalid")

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the command tree
func newCommand() *cli.Command {
	defaults := config.Default()

	return &cli.Command{
		Name:    AppName,
		Usage:   "push every box onto a goal",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML settings file",
				Sources: cli.EnvVars("SOKOBAN_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "levels-dir",
				Value:   defaults.LevelsDir,
				Usage:   "directory containing <n>.txt level files",
				Sources: cli.EnvVars("SOKOBAN_LEVELS_DIR"),
			},
			&cli.IntFlag{
				Name:    "level",
				Value:   defaults.StartLevel,
				Usage:   "level to start on",
				Sources: cli.EnvVars("SOKOBAN_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Value:   defaults.LogFile,
				Usage:   "log file for the terminal game",
				Sources: cli.EnvVars("SOKOBAN_LOG_FILE"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("SOKOBAN_DEBUG"),
			},
			&cli.BoolFlag{
				Name:    "watch",
				Usage:   "reload level files when they change on disk",
				Sources: cli.EnvVars("SOKOBAN_WATCH"),
			},
		},
		Action: runPlay,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play in the terminal (default)",
				Action: runPlay,
			},
			{
				Name:   "mcp",
				Usage:  "serve the game as MCP tools over stdio",
				Action: runMCP,
			},
			{
				Name:   "levels",
				Usage:  "list the available levels",
				Action: runLevels,
			},
			{
				Name:   "validate",
				Usage:  "check every level file",
				Action: runValidate,
			},
		},
	}
}

// loadSettings reads the settings file and applies explicitly set flags on top
func loadSettings(cmd *cli.Command) (*config.Settings, error) {
	settings, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("levels-dir") {
		settings.LevelsDir = cmd.String("levels-dir")
	}
	if cmd.IsSet("level") {
		settings.StartLevel = cmd.Int("level")
	}
	if cmd.IsSet("log-file") {
		settings.LogFile = cmd.String("log-file")
	}
	if cmd.Bool("debug") {
		settings.LogLevel = "debug"
	}
	if cmd.IsSet("watch") {
		settings.Watch = cmd.Bool("watch")
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// newSession opens the levels directory and starts a session on the
// configured level
func newSession(settings *config.Settings) (*catalog.Manager, *session.Session, error) {
	levels, err := catalog.NewManager(settings.LevelsDir)
	if err != nil {
		return nil, nil, err
	}
	sess, err := session.New(levels, settings.StartLevel)
	if err != nil {
		return nil, nil, err
	}
	return levels, sess, nil
}

// runPlay runs the terminal game. Logs go to the log file since the screen
// owns the terminal.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logging.ParseLevel(settings.LogLevel), logOut)

	levels, sess, err := newSession(settings)
	if err != nil {
		return err
	}

	keymap, err := terminal.NewKeymap(settings.Keys)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	app := terminal.NewApp(screen, sess, keymap, logger)
	if settings.Watch {
		watcher, err := levels.Watch()
		if err != nil {
			logger.Warn("level watcher unavailable", "dir", levels.Dir(), "error", err)
		} else {
			defer watcher.Close()
			go logWatchErrors(logger, watcher)
			app.WatchLevels(watcher.Events)
		}
	}

	logger.Info("starting", "app", AppName, "version", Version, "levels_dir", settings.LevelsDir)
	return app.Run(ctx)
}

// runMCP serves the game over stdio. Stdout carries the protocol, so logs go
// to stderr.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(logging.ParseLevel(settings.LogLevel), nil)

	levels, sess, err := newSession(settings)
	if err != nil {
		return err
	}

	if settings.Watch {
		watcher, err := levels.Watch()
		if err != nil {
			logger.Warn("level watcher unavailable", "dir", levels.Dir(), "error", err)
		} else {
			defer watcher.Close()
			go logWatchErrors(logger, watcher)
			go func() {
				for id := range watcher.Events {
					logger.Info("level file changed, restart to pick it up", "level", id)
				}
			}()
		}
	}

	gameService := service.NewGameService(sess, levels, logger)
	mcpServer := mcp.NewServer(gameService, Version, logger)

	logger.Info("MCP stdio server ready", "levels_dir", settings.LevelsDir, "level", sess.LevelID())
	if err := mcpServer.ServeStdio(); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runLevels prints one line per level file
func runLevels(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	levels, err := catalog.NewManager(settings.LevelsDir)
	if err != nil {
		return err
	}
	infos, err := levels.List()
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if len(infos) == 0 {
		fmt.Fprintf(w, "No levels found in %s\n", settings.LevelsDir)
		return nil
	}
	for _, info := range infos {
		if info.Error != "" {
			fmt.Fprintf(w, "%3d  %-10s  error: %s\n", info.ID, info.Filename, info.Error)
			continue
		}
		fmt.Fprintf(w, "%3d  %-10s  %dx%d, %d boxes, %d goals\n",
			info.ID, info.Filename, info.Width, info.Height, info.Boxes, info.Goals)
	}
	return nil
}

// runValidate checks every level file and fails if any is invalid
func runValidate(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	results, err := validate.Dir(settings.LevelsDir)
	if err != nil {
		return err
	}
	if !validate.Report(cmd.Root().Writer, results) {
		return ErrInvalidLevels
	}
	return nil
}

func logWatchErrors(logger *slog.Logger, watcher *catalog.Watcher) {
	for err := range watcher.Errors {
		logger.Warn("level watcher error", "error", err)
	}
}
