package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sokoban.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, "levels", s.LevelsDir)
	assert.Equal(t, 1, s.StartLevel)
	assert.False(t, s.Watch)
	assert.NoError(t, s.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		s, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeSettingsFile(t, `
levels_dir: puzzles
watch: true
keys:
  undo: ["u", "Backspace"]
`)
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "puzzles", s.LevelsDir)
		assert.Equal(t, 1, s.StartLevel)
		assert.True(t, s.Watch)
		assert.Equal(t, "sokoban.log", s.LogFile)
		assert.Equal(t, []string{"u", "Backspace"}, s.Keys["undo"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrSettingsNotFound)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeSettingsFile(t, "levels_dir: [unclosed\n"))
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeSettingsFile(t, "start_level: 0\n"))
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"empty levels dir", func(s *Settings) { s.LevelsDir = "" }, true},
		{"negative start level", func(s *Settings) { s.StartLevel = -2 }, true},
		{"known key action", func(s *Settings) { s.Keys = map[string][]string{"quit": {"x"}} }, false},
		{"unknown key action", func(s *Settings) { s.Keys = map[string][]string{"jump": {"j"}} }, true},
		{"action without keys", func(s *Settings) { s.Keys = map[string][]string{"undo": {}} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
