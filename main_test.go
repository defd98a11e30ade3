package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/sokoban/config"
)

func TestConstants(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.Equal(t, "sokoban", AppName)
}

func createLevelsDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &buf
	cmd.ErrWriter = &buf
	err := cmd.Run(context.Background(), append([]string{AppName}, args...))
	return buf.String(), err
}

func TestLevelsCommand(t *testing.T) {
	dir := createLevelsDir(t, map[string]string{
		"1.txt":     "######\n#@ $.#\n######\n",
		"2.txt":     "#####\n#@?.#\n#####\n",
		"readme.md": "not a level",
	})

	out, err := runCommand(t, "--levels-dir", dir, "levels")
	require.NoError(t, err)
	assert.Contains(t, out, "1.txt")
	assert.Contains(t, out, "6x3, 1 boxes, 1 goals")
	assert.Contains(t, out, "2.txt")
	assert.Contains(t, out, "error:")
	assert.NotContains(t, out, "readme", "non-level files are skipped")
}

func TestLevelsCommand_MissingDir(t *testing.T) {
	_, err := runCommand(t, "--levels-dir", filepath.Join(t.TempDir(), "missing"), "levels")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		dir := createLevelsDir(t, map[string]string{
			"1.txt": "######\n#@ $.#\n######\n",
		})
		out, err := runCommand(t, "--levels-dir", dir, "validate")
		require.NoError(t, err)
		assert.Contains(t, out, "✅ All levels are valid!")
	})

	t.Run("invalid level", func(t *testing.T) {
		dir := createLevelsDir(t, map[string]string{
			"1.txt": "######\n#@ $.#\n######\n",
			"2.txt": "######\n# $$.#\n######\n",
		})
		out, err := runCommand(t, "--levels-dir", dir, "validate")
		assert.ErrorIs(t, err, ErrInvalidLevels)
		assert.Contains(t, out, "❌ INVALID")
	})
}

func TestLoadSettings(t *testing.T) {
	settingsFile := filepath.Join(t.TempDir(), "sokoban.yaml")
	content := "levels_dir: from-file\nstart_level: 3\nlog_level: warn\nwatch: true\n"
	require.NoError(t, os.WriteFile(settingsFile, []byte(content), 0644))

	tests := []struct {
		name          string
		args          []string
		wantLevelsDir string
		wantLevel     int
		wantLogLevel  string
		wantWatch     bool
		wantErr       bool
	}{
		{
			name:          "defaults",
			args:          nil,
			wantLevelsDir: "levels",
			wantLevel:     1,
			wantLogLevel:  "info",
		},
		{
			name:          "settings file",
			args:          []string{"--config", settingsFile},
			wantLevelsDir: "from-file",
			wantLevel:     3,
			wantLogLevel:  "warn",
			wantWatch:     true,
		},
		{
			name:          "flags override settings file",
			args:          []string{"--config", settingsFile, "--levels-dir", "from-flag", "--level", "5", "--debug", "--watch=false"},
			wantLevelsDir: "from-flag",
			wantLevel:     5,
			wantLogLevel:  "debug",
		},
		{
			name:    "invalid start level",
			args:    []string{"--level", "0"},
			wantErr: true,
		},
		{
			name:    "missing settings file",
			args:    []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var settings *config.Settings
			cmd := newCommand()
			cmd.Action = func(ctx context.Context, c *cli.Command) error {
				var err error
				settings, err = loadSettings(c)
				return err
			}

			err := cmd.Run(context.Background(), append([]string{AppName}, tt.args...))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevelsDir, settings.LevelsDir)
			assert.Equal(t, tt.wantLevel, settings.StartLevel)
			assert.Equal(t, tt.wantLogLevel, settings.LogLevel)
			assert.Equal(t, tt.wantWatch, settings.Watch)
		})
	}
}
