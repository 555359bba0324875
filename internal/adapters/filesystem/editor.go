package filesystem

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/example/schemadoc/internal/ports/secondary"
)

// fallbackEditors are tried in order when nothing is configured.
var fallbackEditors = []string{"vi", "nano"}

// EditorLauncher implements secondary.Editor by running an external program
// attached to the terminal.
type EditorLauncher struct {
	command  string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewEditorLauncher creates an editor launcher. command is the configured
// editor; when empty, $EDITOR is used, then the first of vi or nano found.
func NewEditorLauncher(command string) *EditorLauncher {
	return &EditorLauncher{command: command, getenv: os.Getenv, lookPath: exec.LookPath}
}

// Command returns the editor command line that will be run.
func (e *EditorLauncher) Command() ([]string, error) {
	if fields := strings.Fields(e.command); len(fields) > 0 {
		return fields, nil
	}
	if fields := strings.Fields(e.getenv("EDITOR")); len(fields) > 0 {
		return fields, nil
	}
	for _, name := range fallbackEditors {
		if path, err := e.lookPath(name); err == nil {
			return []string{path}, nil
		}
	}
	return nil, fmt.Errorf("no editor found: set EDITOR or install vi")
}

// Edit opens path in the editor and waits for it to exit.
func (e *EditorLauncher) Edit(ctx context.Context, path string) error {
	args, err := e.Command()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", args[0], err)
	}
	return nil
}

// Ensure EditorLauncher implements the interface
var _ secondary.Editor = (*EditorLauncher)(nil)
