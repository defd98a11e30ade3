package level

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// Source locates level descriptions by id
type Source interface {
	// Load parses level id. It fails with ErrLevelNotFound or ErrMalformedLevel.
	Load(id int) (*Level, error)

	// Exists reports whether level id has a description, without parsing it
	Exists(id int) bool
}

// FileExt is the extension of level files
const FileExt = ".txt"

// FileName returns the file name that holds level id
func FileName(id int) string {
	return strconv.Itoa(id) + FileExt
}

// IDFromFileName extracts the level id from a file name such as "12.txt".
// ok is false for anything that is not a positive numbered level file.
func IDFromFileName(name string) (id int, ok bool) {
	if !strings.HasSuffix(name, FileExt) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSuffix(name, FileExt))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// DirSource reads "<id>.txt" files from a file system
type DirSource struct {
	fsys fs.FS
}

// NewDirSource creates a source over fsys, typically os.DirFS(dir)
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Load reads and parses level id
func (s *DirSource) Load(id int) (*Level, error) {
	if id < 1 {
		return nil, fmt.Errorf("level %d: %w", id, ErrLevelNotFound)
	}

	f, err := s.fsys.Open(FileName(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("level %d: %w", id, ErrLevelNotFound)
		}
		return nil, fmt.Errorf("failed to open level %d: %w", id, err)
	}
	defer f.Close()

	lvl, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", id, err)
	}
	lvl.ID = id
	return lvl, nil
}

// Exists checks whether the level file is present
func (s *DirSource) Exists(id int) bool {
	if id < 1 {
		return false
	}
	info, err := fs.Stat(s.fsys, FileName(id))
	return err == nil && !info.IsDir()
}
