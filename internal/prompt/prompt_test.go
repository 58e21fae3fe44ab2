package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	stageDir := filepath.Join(dir, string(StageScreening))
	writeFile(t, filepath.Join(stageDir, "prompt.txt"), "You screen articles.")
	writeFile(t, filepath.Join(stageDir, "instructions.txt"), "Pick two per game.")
	writeFile(t, filepath.Join(stageDir, "memory.txt"), "Yesterday: rates.")
	writeFile(t, filepath.Join(stageDir, "files", "b_games.txt"), "game rules")
	writeFile(t, filepath.Join(stageDir, "files", "a_style.txt"), "style guide")
	writeFile(t, filepath.Join(stageDir, "files", "ignored.md"), "not loaded")

	p, err := NewLoader(dir).Load(StageScreening)
	require.NoError(t, err)

	assert.Equal(t, "You screen articles.", p.Prompt)
	assert.Equal(t, "Pick two per game.", p.Instructions)
	assert.Equal(t, "Yesterday: rates.", p.Memory)
	require.Len(t, p.ReferenceFiles, 2)
	assert.Equal(t, "a_style.txt", p.ReferenceFiles[0].Name)
	assert.Equal(t, "b_games.txt", p.ReferenceFiles[1].Name)

	system := p.SystemPrompt()
	assert.Contains(t, system, "You screen articles.")
	assert.Contains(t, system, "Pick two per game.")
	assert.Contains(t, system, "### a_style.txt\nstyle guide")
	assert.Less(t, strings.Index(system, "a_style.txt"), strings.Index(system, "b_games.txt"))
	assert.NotContains(t, system, "Yesterday")
}

func TestLoader_Load_OptionalFilesMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, string(StageGeneration), "prompt.txt"), "Draft questions.")

	p, err := NewLoader(dir).Load(StageGeneration)
	require.NoError(t, err)
	assert.Empty(t, p.Instructions)
	assert.Empty(t, p.Memory)
	assert.Empty(t, p.ReferenceFiles)
}

func TestLoader_Load_MissingPrompt(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load(StageScreening)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage step1")
}
