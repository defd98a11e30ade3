package terminal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

var ErrUnknownKey = errors.New("unknown key name")

// Command is what a key press asks the frontend to do
type Command uint8

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdUndo
	CmdRestart
	CmdNext
	CmdQuit
)

var commandNames = map[string]Command{
	"up":      CmdUp,
	"down":    CmdDown,
	"left":    CmdLeft,
	"right":   CmdRight,
	"undo":    CmdUndo,
	"restart": CmdRestart,
	"next":    CmdNext,
	"quit":    CmdQuit,
}

// Action returns the engine action behind c, if any
func (c Command) Action() (engine.Action, bool) {
	switch c {
	case CmdUp:
		return engine.MoveUp, true
	case CmdDown:
		return engine.MoveDown, true
	case CmdLeft:
		return engine.MoveLeft, true
	case CmdRight:
		return engine.MoveRight, true
	case CmdUndo:
		return engine.Undo, true
	case CmdRestart:
		return engine.Restart, true
	default:
		return 0, false
	}
}

// binding identifies a key press. r is only set for tcell.KeyRune.
type binding struct {
	key tcell.Key
	r   rune
}

var namedKeys = map[string][]tcell.Key{
	"up":        {tcell.KeyUp},
	"down":      {tcell.KeyDown},
	"left":      {tcell.KeyLeft},
	"right":     {tcell.KeyRight},
	"enter":     {tcell.KeyEnter},
	"esc":       {tcell.KeyEscape},
	"escape":    {tcell.KeyEscape},
	"backspace": {tcell.KeyBackspace, tcell.KeyBackspace2},
	"tab":       {tcell.KeyTab},
}

var defaultKeys = map[string][]string{
	"up":      {"Up", "w", "k"},
	"down":    {"Down", "s", "j"},
	"left":    {"Left", "a", "h"},
	"right":   {"Right", "d", "l"},
	"undo":    {"u", "z", "Backspace"},
	"restart": {"r"},
	"next":    {"n", "Enter"},
	"quit":    {"q", "Esc"},
}

// Keymap maps key presses to commands
type Keymap struct {
	bindings map[binding]Command
}

// NewKeymap builds the default keymap. Each action named in overrides has its
// default keys replaced by the listed ones. Ctrl-C always quits.
func NewKeymap(overrides map[string][]string) (*Keymap, error) {
	km := &Keymap{bindings: make(map[binding]Command)}

	for action, keys := range defaultKeys {
		if _, replaced := overrides[action]; replaced {
			continue
		}
		if err := km.bind(action, keys); err != nil {
			return nil, err
		}
	}
	for action, keys := range overrides {
		if err := km.bind(action, keys); err != nil {
			return nil, err
		}
	}

	km.bindings[binding{key: tcell.KeyCtrlC}] = CmdQuit
	return km, nil
}

func (km *Keymap) bind(action string, keys []string) error {
	cmd, ok := commandNames[action]
	if !ok {
		return fmt.Errorf("%w: action %q", ErrUnknownKey, action)
	}
	for _, name := range keys {
		bs, err := parseKey(name)
		if err != nil {
			return err
		}
		for _, b := range bs {
			km.bindings[b] = cmd
		}
	}
	return nil
}

// parseKey turns "Up", "Backspace" or a single character into bindings.
// Letters are bound in lower case and matched case-insensitively.
func parseKey(name string) ([]binding, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return []binding{{key: tcell.KeyRune, r: unicode.ToLower(r)}}, nil
	}

	keys, ok := namedKeys[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	bs := make([]binding, 0, len(keys))
	for _, k := range keys {
		bs = append(bs, binding{key: k})
	}
	return bs, nil
}

// Lookup returns the command bound to ev, or CmdNone
func (km *Keymap) Lookup(ev *tcell.EventKey) Command {
	b := binding{key: ev.Key()}
	if b.key == tcell.KeyRune {
		b.r = unicode.ToLower(ev.Rune())
	}
	return km.bindings[b]
}
