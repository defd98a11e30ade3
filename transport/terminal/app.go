package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/session"
)

// dialogKind tells the event loop which keys a dialog reacts to
type dialogKind uint8

const (
	dialogNone dialogKind = iota
	dialogWon
	dialogError
)

// App is the interactive terminal game
type App struct {
	screen   tcell.Screen
	session  *session.Session
	keymap   *Keymap
	renderer *Renderer
	logger   *slog.Logger
	reloads  <-chan int

	dialog     *Dialog
	dialogKind dialogKind
}

// NewApp creates the game loop around an initialised screen. The caller owns
// the screen and calls Fini after Run returns.
func NewApp(screen tcell.Screen, sess *session.Session, keymap *Keymap, logger *slog.Logger) *App {
	return &App{
		screen:   screen,
		session:  sess,
		keymap:   keymap,
		renderer: NewRenderer(),
		logger:   logger.With("session", sess.ID),
	}
}

// WatchLevels makes the app reload the current level whenever its id
// arrives on ch
func (a *App) WatchLevels(ch <-chan int) {
	a.reloads = ch
}

// Run draws the game and processes input until the player quits or ctx is
// cancelled
func (a *App) Run(ctx context.Context) error {
	eventChan := make(chan tcell.Event, 100)
	stop := make(chan struct{})
	defer close(stop)
	go a.pollEvents(eventChan, stop)

	a.logger.Info("game started", "level", a.session.LevelID())
	a.draw()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				a.logger.Info("game quit", "level", a.session.LevelID(), "completed", a.session.Completed())
				return nil
			}

		case id, ok := <-a.reloads:
			if !ok {
				a.reloads = nil
				continue
			}
			a.reload(id)
		}
		a.draw()
	}
}

// pollEvents forwards screen events to out until the screen is finalised or
// stop is closed
func (a *App) pollEvents(out chan<- tcell.Event, stop <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			// Screen finalised
			close(out)
			return
		}
		select {
		case out <- ev:
		case <-stop:
			return
		}
	}
}

// handleEvent processes a tcell event and returns false if the game should exit
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	cmd := a.keymap.Lookup(ev)
	if cmd == CmdQuit {
		return false
	}

	switch a.dialogKind {
	case dialogError:
		a.closeDialog()
		return true
	case dialogWon:
		switch cmd {
		case CmdNext:
			a.advance()
		case CmdUndo, CmdRestart:
			a.closeDialog()
			a.do(cmd)
		}
		return true
	}

	a.do(cmd)
	return true
}

// do runs the engine action behind cmd and opens the win dialog when the
// action completes the level
func (a *App) do(cmd Command) {
	action, ok := cmd.Action()
	if !ok {
		return
	}

	outcome, err := a.session.Do(action)
	if err != nil {
		a.logger.Error("action failed", "action", action.String(), "error", err)
		a.showError(fmt.Sprintf("Level %d", a.session.LevelID()), err)
		return
	}
	a.logger.Debug("action", "action", action.String(), "outcome", outcome.String())

	if (outcome == engine.Moved || outcome == engine.Pushed) && a.session.Engine().HasWon() {
		a.logger.Info("level complete", "level", a.session.LevelID(), "undo_depth", a.session.Engine().UndoDepth())
		a.showWon()
	}
}

func (a *App) advance() {
	if !a.session.HasNextLevel() {
		return
	}
	if err := a.session.Advance(); err != nil {
		a.logger.Error("advance failed", "level", a.session.LevelID(), "error", err)
		a.showError("Next level", err)
		return
	}
	a.logger.Info("level loaded", "level", a.session.LevelID())
	a.closeDialog()
}

// reload picks up an edited level file when it is the one being played
func (a *App) reload(id int) {
	if id != a.session.LevelID() {
		return
	}
	if err := a.session.Restart(); err != nil {
		a.logger.Warn("level reload failed", "level", id, "error", err)
		a.showError(fmt.Sprintf("Level %d changed on disk", id), err)
		return
	}
	a.logger.Info("level reloaded", "level", id)
	a.closeDialog()
}

func (a *App) showWon() {
	id := a.session.LevelID()
	if a.session.HasNextLevel() {
		a.dialog = &Dialog{
			Title: fmt.Sprintf("Level %d complete!", id),
			Lines: []string{
				"Every box is on a goal.",
				"",
				"n/Enter next level   u undo   q quit",
			},
		}
	} else {
		a.dialog = &Dialog{
			Title: "All levels complete!",
			Lines: []string{
				fmt.Sprintf("Level %d was the last one.", id),
				"",
				"u undo   r restart   q quit",
			},
		}
	}
	a.dialogKind = dialogWon
}

func (a *App) showError(title string, err error) {
	a.dialog = &Dialog{
		Title: title,
		Lines: []string{err.Error(), "", "press any key"},
	}
	a.dialogKind = dialogError
}

func (a *App) closeDialog() {
	a.dialog = nil
	a.dialogKind = dialogNone
}

func (a *App) draw() {
	a.screen.Clear()
	a.renderer.Draw(a.screen, a.session.Engine().Snapshot(), a.dialog)
	a.screen.Show()
}
