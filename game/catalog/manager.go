package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/wricardo/mcp-training/sokoban/game/level"
)

var (
	ErrLevelsDirNotFound = errors.New("levels directory not found")
)

// Info summarises one level file
type Info struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Boxes    int    `json:"boxes"`
	Goals    int    `json:"goals"`
	Error    string `json:"error,omitempty"` // set when the file does not parse
}

// Manager handles level loading and caching. It implements level.Source.
type Manager struct {
	dir    string
	fsys   fs.FS
	source *level.DirSource
	levels map[int]*level.Level
	mu     sync.RWMutex
}

// NewManager creates a level manager over a directory of "<N>.txt" files
func NewManager(dir string) (*Manager, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrLevelsDirNotFound, dir)
	}

	m := NewManagerFS(os.DirFS(dir))
	m.dir = dir
	return m, nil
}

// NewManagerFS creates a level manager over an arbitrary file system
func NewManagerFS(fsys fs.FS) *Manager {
	return &Manager{
		fsys:   fsys,
		source: level.NewDirSource(fsys),
		levels: make(map[int]*level.Level),
	}
}

// Dir returns the directory the manager reads from, or "" for NewManagerFS
func (m *Manager) Dir() string {
	return m.dir
}

// Load returns level id. Each call hands out a fresh copy of the cached parse,
// so callers may move its entities.
func (m *Manager) Load(id int) (*level.Level, error) {
	m.mu.RLock()
	// Check cache first
	if lvl, exists := m.levels[id]; exists {
		m.mu.RUnlock()
		return lvl.Clone(), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if lvl, exists := m.levels[id]; exists {
		return lvl.Clone(), nil
	}

	lvl, err := m.source.Load(id)
	if err != nil {
		return nil, err
	}

	m.levels[id] = lvl
	return lvl.Clone(), nil
}

// Exists reports whether level id has a file
func (m *Manager) Exists(id int) bool {
	m.mu.RLock()
	_, cached := m.levels[id]
	m.mu.RUnlock()
	if cached {
		return true
	}
	return m.source.Exists(id)
}

// List returns information about every numbered level file, ordered by id.
// Files that fail to parse are included with Error set.
func (m *Manager) List() ([]Info, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := level.IDFromFileName(entry.Name())
		if !ok {
			continue
		}

		info := Info{ID: id, Filename: entry.Name()}
		lvl, err := m.Load(id)
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Width = lvl.Grid.Width()
			info.Height = lvl.Grid.Height()
			info.Boxes = lvl.Count(level.Box)
			info.Goals = lvl.Grid.CountTiles(level.Goal)
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos, nil
}

// Invalidate drops the cached parse of level id
func (m *Manager) Invalidate(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.levels, id)
}

// RefreshCache drops every cached level
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = make(map[int]*level.Level)
}
