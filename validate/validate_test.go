package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLevel(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantValid   bool
		wantError   string
		wantWarning string
	}{
		{
			name:      "valid level",
			content:   "######\n#@ $.#\n######\n",
			wantValid: true,
		},
		{
			name:      "unknown character",
			content:   "#####\n#@?.#\n#####\n",
			wantError: "Line 2, column 3",
		},
		{
			name:      "empty file",
			content:   "\n\n",
			wantError: "level is empty",
		},
		{
			name:      "no player",
			content:   "#####\n# $.#\n#####\n",
			wantError: "No player found",
		},
		{
			name:      "two players",
			content:   "######\n#@@$.#\n######\n",
			wantError: "Found 2 players",
		},
		{
			name:      "more boxes than goals",
			content:   "######\n#@$$.#\n######\n",
			wantError: "2 boxes but only 1 goals",
		},
		{
			name:        "no boxes",
			content:     "####\n#@.#\n####\n",
			wantValid:   true,
			wantWarning: "No boxes",
		},
		{
			name:        "unreachable goal",
			content:     "########\n#@$.#  #\n#   # .#\n########\n",
			wantValid:   true,
			wantWarning: "goal at (6,2)",
		},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLevel(t, dir, filepath.Base(t.Name())+".txt", tt.content)

			result := File(path)
			assert.Equal(t, tt.wantValid, result.Valid, "errors: %v", result.Errors)
			if tt.wantError != "" {
				assert.Contains(t, strings.Join(result.Errors, "\n"), tt.wantError)
			}
			if tt.wantWarning != "" {
				assert.Contains(t, strings.Join(result.Warnings, "\n"), tt.wantWarning)
			}
			if tt.wantValid {
				assert.Empty(t, result.Errors)
			}
		})
	}
}

func TestFile_Missing(t *testing.T) {
	result := File(filepath.Join(t.TempDir(), "7.txt"))
	assert.False(t, result.Valid)
	assert.Equal(t, 7, result.LevelID)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Failed to read file")
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "10.txt", "######\n#@ $.#\n######\n")
	writeLevel(t, dir, "2.txt", "#####\n# $.#\n#####\n")
	writeLevel(t, dir, "notes.md", "not a level")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "3.txt"), 0755))

	results, err := Dir(dir)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 2, results[0].LevelID)
	assert.Equal(t, 10, results[1].LevelID)
	assert.False(t, results[0].Valid)
	assert.True(t, results[1].Valid)
}

func TestDir_Errors(t *testing.T) {
	_, err := Dir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err, "missing directory")

	_, err = Dir(t.TempDir())
	assert.Error(t, err, "directory without levels")
}

func TestReport(t *testing.T) {
	valid := Result{File: "1.txt", LevelID: 1, Valid: true, Notes: []string{"✓ Player at (1,1)"}}
	invalid := Result{File: "2.txt", LevelID: 2, Valid: false, Errors: []string{"No player found"}}
	warned := Result{File: "3.txt", LevelID: 3, Valid: true, Warnings: []string{"No boxes"}}

	var buf bytes.Buffer
	assert.True(t, Report(&buf, []Result{valid, warned}))
	out := buf.String()
	for _, want := range []string{"1.txt", "✅ VALID", "✓ Player at (1,1)", "⚠️  No boxes", "✅ All levels are valid!"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	assert.False(t, Report(&buf, []Result{valid, invalid}))
	out = buf.String()
	for _, want := range []string{"❌ INVALID", "❌ No player found", "❌ Some levels have errors"} {
		assert.Contains(t, out, want)
	}
}
