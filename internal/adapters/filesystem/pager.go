package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/example/schemadoc/internal/ports/secondary"
)

// Pager implements secondary.Pager by piping text into an external pager.
type Pager struct {
	command string
	getenv  func(string) string
	out     io.Writer
}

// NewPager creates a pager. command is the configured pager; when empty,
// $PAGER is used, then "less -R".
func NewPager(command string, out io.Writer) *Pager {
	return &Pager{command: command, getenv: os.Getenv, out: out}
}

// Command returns the pager command line that will be run.
func (p *Pager) Command() []string {
	if fields := strings.Fields(p.command); len(fields) > 0 {
		return fields
	}
	if fields := strings.Fields(p.getenv("PAGER")); len(fields) > 0 {
		return fields
	}
	return []string{"less", "-R"}
}

// Page shows text through the pager. If the pager cannot be started the text
// is written directly.
func (p *Pager) Page(ctx context.Context, text string) error {
	args := p.Command()
	if _, err := exec.LookPath(args[0]); err != nil {
		_, err := io.WriteString(p.out, text)
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = p.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pager %s failed: %w", args[0], err)
	}
	return nil
}

// Ensure Pager implements the interface
var _ secondary.Pager = (*Pager)(nil)
