package filesystem

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPager_Command(t *testing.T) {
	p := NewPager("", nil)
	p.getenv = func(string) string { return "" }
	if diff := cmp.Diff([]string{"less", "-R"}, p.Command()); diff != "" {
		t.Errorf("default mismatch (-want +got):\n%s", diff)
	}

	p.getenv = func(string) string { return "more" }
	if diff := cmp.Diff([]string{"more"}, p.Command()); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}

	p.command = "bat --plain"
	if diff := cmp.Diff([]string{"bat", "--plain"}, p.Command()); diff != "" {
		t.Errorf("configured mismatch (-want +got):\n%s", diff)
	}
}

func TestPager_Page(t *testing.T) {
	out := &bytes.Buffer{}
	if err := NewPager("cat", out).Page(context.Background(), "TABLE main.orders\n"); err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if out.String() != "TABLE main.orders\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestPager_MissingProgramWritesDirectly(t *testing.T) {
	out := &bytes.Buffer{}
	if err := NewPager("no-such-pager-binary", out).Page(context.Background(), "text"); err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if out.String() != "text" {
		t.Errorf("unexpected output %q", out.String())
	}
}
