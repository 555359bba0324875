package terminal

import (
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
)

type scriptedReader struct {
	lines  []string
	err    error
	closed *int
}

func (r *scriptedReader) Prompt(string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Close() error {
	*r.closed++
	return nil
}

func scripted(err error, lines ...string) (*Prompter, *int) {
	closed := 0
	reader := &scriptedReader{lines: lines, err: err, closed: &closed}
	return &Prompter{open: func() lineReader { return reader }}, &closed
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"yes", true},
		{" Y ", true},
		{"n", false},
		{"", false},
		{"yep", false},
	}
	for _, tt := range tests {
		p, closed := scripted(nil, tt.answer)
		got, err := p.Confirm("Try again? (y/n) ")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", tt.answer, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.answer, got, tt.want)
		}
		if *closed != 1 {
			t.Errorf("expected terminal to be restored once, got %d", *closed)
		}
	}
}

func TestPrompter_Ask_Aborted(t *testing.T) {
	for _, cause := range []error{liner.ErrPromptAborted, io.EOF} {
		p, _ := scripted(cause)
		if _, err := p.Ask("New table name: "); !errors.Is(err, ErrAborted) {
			t.Errorf("expected ErrAborted for %v, got %v", cause, err)
		}
	}
}
