// Package terminal contains adapters that talk to the operator's terminal.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/example/schemadoc/internal/ports/secondary"
)

// ErrAborted is returned when the operator presses Ctrl-C or closes input.
var ErrAborted = errors.New("aborted")

// lineReader is the part of *liner.State the prompter uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// Prompter implements secondary.Prompter with line editing.
type Prompter struct {
	open func() lineReader
}

// NewPrompter creates a prompter. Each question opens and restores the
// terminal so an editor or pager can run between prompts.
func NewPrompter() *Prompter {
	return &Prompter{open: func() lineReader {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		return state
	}}
}

// Ask prints prompt and reads one line.
func (p *Prompter) Ask(prompt string) (string, error) {
	state := p.open()
	defer state.Close()

	line, err := state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return line, nil
}

// Confirm asks a yes/no question. Only "y" or "yes" confirm.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Ask(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Ensure Prompter implements the interface
var _ secondary.Prompter = (*Prompter)(nil)
