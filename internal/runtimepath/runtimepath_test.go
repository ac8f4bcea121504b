package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/cegui-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	tests := []struct {
		instance string
		want     string
		wantErr  bool
	}{
		{"", filepath.Join(td, "cegui-preview.sock"), false},
		{"demo", filepath.Join(td, "cegui-demo.sock"), false},
		{"../evil", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.instance, func(t *testing.T) {
			got, err := SocketPath(tt.instance)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SocketPath(%q) error = %v, wantErr %v", tt.instance, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("SocketPath(%q) = %q, want %q", tt.instance, got, tt.want)
			}
		})
	}
}
