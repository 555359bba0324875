package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEditorLauncher_Command(t *testing.T) {
	tests := []struct {
		name      string
		command   string
		env       string
		available map[string]bool
		want      []string
		wantErr   bool
	}{
		{name: "configured", command: "code --wait", env: "emacs", want: []string{"code", "--wait"}},
		{name: "environment", env: "emacs -nw", want: []string{"emacs", "-nw"}},
		{name: "vi fallback", available: map[string]bool{"vi": true, "nano": true}, want: []string{"/usr/bin/vi"}},
		{name: "nano fallback", available: map[string]bool{"nano": true}, want: []string{"/usr/bin/nano"}},
		{name: "nothing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditorLauncher(tt.command)
			e.getenv = func(string) string { return tt.env }
			e.lookPath = func(name string) (string, error) {
				if tt.available[name] {
					return "/usr/bin/" + name, nil
				}
				return "", errors.New("not found")
			}

			got, err := e.Command()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Command failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("command mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEditorLauncher_Edit(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho '___description: edited' > \"$1\"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	buffer := filepath.Join(dir, "buffer.tmp")
	if err := os.WriteFile(buffer, []byte("___description: \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewEditorLauncher(script).Edit(context.Background(), buffer); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	data, _ := os.ReadFile(buffer)
	if string(data) != "___description: edited\n" {
		t.Errorf("unexpected buffer %q", data)
	}
}

func TestEditorLauncher_EditFailure(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "failing-editor")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := NewEditorLauncher(script).Edit(context.Background(), filepath.Join(dir, "x")); err == nil {
		t.Fatal("expected error from a failing editor")
	}
}
