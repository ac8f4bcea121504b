// Package runtimepath locates the per-user runtime directory holding the
// control sockets of running previews.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultInstance names the control socket when no instance is given.
const DefaultInstance = "preview"

// Dir returns the runtime directory. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/cegui-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/cegui-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the control socket path of an instance. An empty
// instance means DefaultInstance.
func SocketPath(instance string) (string, error) {
	if instance == "" {
		instance = DefaultInstance
	}
	if strings.ContainsAny(instance, `/\`) {
		return "", fmt.Errorf("invalid instance name %q", instance)
	}
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, "cegui-"+instance+".sock"), nil
}
