package secondary

import "context"

// Editor launches the operator's text editor on a file.
type Editor interface {
	// Edit blocks until the editor exits. There is no timeout: the operator
	// controls how long the session lasts.
	Edit(ctx context.Context, path string) error
}

// BufferStore owns the on-disk edit buffers.
type BufferStore interface {
	// Write stores content in the buffer for kind ("table" or "column") and
	// returns its path. Writing again replaces the previous buffer.
	Write(kind, content string) (string, error)

	// Read returns the current buffer content.
	Read(path string) (string, error)

	// Remove deletes the buffer. Missing files are not an error.
	Remove(path string) error
}

// Prompter asks the operator questions on the terminal.
type Prompter interface {
	// Ask prints prompt and returns the line typed, without the newline.
	Ask(prompt string) (string, error)

	// Confirm asks a yes/no question. Only "y" or "yes" confirm.
	Confirm(prompt string) (bool, error)
}

// Pager shows long text to the operator.
type Pager interface {
	Page(ctx context.Context, text string) error
}
