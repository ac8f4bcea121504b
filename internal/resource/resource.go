// Package resource loads named data files for the GUI core: raw bytes from
// resource groups and decoded images turned into renderer textures.
package resource

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/1broseidon/cegui/internal/guierr"
)

// RawDataContainer holds the bytes of one loaded resource
type RawDataContainer struct {
	Name string
	Data []byte
}

// Size returns the number of bytes held
func (c *RawDataContainer) Size() int { return len(c.Data) }

// Release drops the held bytes
func (c *RawDataContainer) Release() {
	c.Data = nil
	c.Name = ""
}

// Provider loads resource data. Load fills out; the caller hands the same
// container back to Unload when done with it.
type Provider interface {
	Load(filename string, out *RawDataContainer, group string) error
	Unload(out *RawDataContainer)
}

// DirProvider maps resource groups to directories on disk
type DirProvider struct {
	groups       map[string]string
	defaultGroup string
}

// NewDirProvider returns a provider with no groups. Files requested from an
// unknown group resolve relative to the working directory.
func NewDirProvider() *DirProvider {
	return &DirProvider{groups: make(map[string]string)}
}

// SetGroupDirectory maps group to dir
func (p *DirProvider) SetGroupDirectory(group, dir string) {
	p.groups[group] = dir
}

// GroupDirectory returns the directory of group, or "" when unmapped
func (p *DirProvider) GroupDirectory(group string) string { return p.groups[group] }

// ClearGroupDirectory removes a group mapping
func (p *DirProvider) ClearGroupDirectory(group string) { delete(p.groups, group) }

// SetDefaultGroup selects the group used for requests with an empty group
func (p *DirProvider) SetDefaultGroup(group string) { p.defaultGroup = group }

// DefaultGroup returns the group used for requests with an empty group
func (p *DirProvider) DefaultGroup() string { return p.defaultGroup }

// Groups lists the mapped group names
func (p *DirProvider) Groups() []string {
	out := make([]string, 0, len(p.groups))
	for g := range p.groups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the path a load of filename in group would read
func (p *DirProvider) Resolve(filename, group string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	if group == "" {
		group = p.defaultGroup
	}
	if dir, ok := p.groups[group]; ok {
		return filepath.Join(dir, filename)
	}
	return filename
}

func (p *DirProvider) Load(filename string, out *RawDataContainer, group string) error {
	if filename == "" {
		return guierr.InvalidRequest("resource filename is empty")
	}
	full := p.Resolve(filename, group)
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return guierr.Generic(err, "resource %q (group %q) not found", filename, group)
		}
		return guierr.Generic(err, "reading resource %q", full)
	}
	out.Name = filename
	out.Data = data
	return nil
}

func (p *DirProvider) Unload(out *RawDataContainer) { out.Release() }

// FSProvider reads resources from an fs.FS, one sub-directory per group
type FSProvider struct {
	fsys   fs.FS
	groups map[string]string
}

// NewFSProvider serves files from fsys. Groups without a mapping resolve at
// the root of fsys.
func NewFSProvider(fsys fs.FS) *FSProvider {
	return &FSProvider{fsys: fsys, groups: make(map[string]string)}
}

// SetGroupDirectory maps group to a slash-separated directory inside the FS
func (p *FSProvider) SetGroupDirectory(group, dir string) { p.groups[group] = dir }

func (p *FSProvider) Load(filename string, out *RawDataContainer, group string) error {
	if filename == "" {
		return guierr.InvalidRequest("resource filename is empty")
	}
	name := filename
	if dir, ok := p.groups[group]; ok {
		name = path.Join(dir, filename)
	}
	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return guierr.Generic(err, "resource %q (group %q)", filename, group)
	}
	out.Name = filename
	out.Data = data
	return nil
}

func (p *FSProvider) Unload(out *RawDataContainer) { out.Release() }

// Chain tries each provider in turn and returns the first success
type Chain []Provider

func (c Chain) Load(filename string, out *RawDataContainer, group string) error {
	var errs []error
	for _, p := range c {
		err := p.Load(filename, out, group)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return guierr.Generic(nil, "no resource providers for %q", filename)
	}
	return errors.Join(errs...)
}

func (c Chain) Unload(out *RawDataContainer) { out.Release() }
