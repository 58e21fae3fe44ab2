package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stage names a prompt directory under the prompts root.
type Stage string

const (
	StageScreening  Stage = "step1"
	StageGeneration Stage = "step2"
)

// ReferenceFile is a piece of reference material appended to a system prompt.
type ReferenceFile struct {
	Name    string
	Content string
}

// StagePrompts holds the texts that steer one model stage.
type StagePrompts struct {
	Prompt         string
	Instructions   string
	Memory         string
	ReferenceFiles []ReferenceFile
}

// Loader reads stage prompts from a directory tree:
//
//	<dir>/<stage>/prompt.txt
//	<dir>/<stage>/instructions.txt
//	<dir>/<stage>/memory.txt
//	<dir>/<stage>/files/*.txt
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads the prompt set of a stage. prompt.txt is required; everything else is optional.
func (l *Loader) Load(stage Stage) (*StagePrompts, error) {
	stageDir := filepath.Join(l.dir, string(stage))

	prompt, err := os.ReadFile(filepath.Join(stageDir, "prompt.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt for stage %s: %w", stage, err)
	}
	instructions, err := readOptional(filepath.Join(stageDir, "instructions.txt"))
	if err != nil {
		return nil, err
	}
	memory, err := readOptional(filepath.Join(stageDir, "memory.txt"))
	if err != nil {
		return nil, err
	}

	refs, err := loadReferenceFiles(filepath.Join(stageDir, "files"))
	if err != nil {
		return nil, err
	}

	return &StagePrompts{
		Prompt:         string(prompt),
		Instructions:   instructions,
		Memory:         memory,
		ReferenceFiles: refs,
	}, nil
}

// SystemPrompt composes the stage prompt, its instructions and every reference file.
func (s *StagePrompts) SystemPrompt() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.Prompt)
	b.WriteString("\n\n")
	b.WriteString(s.Instructions)
	b.WriteString("\n\n참조 파일:\n")
	for _, ref := range s.ReferenceFiles {
		fmt.Fprintf(&b, "\n### %s\n%s\n", ref.Name, ref.Content)
	}
	return b.String()
}

func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func loadReferenceFiles(dir string) ([]ReferenceFile, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list reference files in %s: %w", dir, err)
	}
	sort.Strings(matches)

	refs := make([]ReferenceFile, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read reference file %s: %w", path, err)
		}
		refs = append(refs, ReferenceFile{Name: filepath.Base(path), Content: string(data)})
	}
	return refs, nil
}
