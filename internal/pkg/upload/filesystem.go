package upload

import (
	"os"
	"path/filepath"
)

// Filesystem is the subset of file system primitives the configurator needs.
type Filesystem interface {
	IsAbs(path string) bool
	MkdirAll(path string) error
	IsDir(path string) bool
}

// OSFilesystem uses the local disk.
type OSFilesystem struct{}

func (OSFilesystem) IsAbs(path string) bool {
	return filepath.IsAbs(path)
}

// MkdirAll treats an existing directory as success, so concurrent first
// uploads into the same folder do not fail each other.
func (OSFilesystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (OSFilesystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Resolver supplies the default destination and the root for relative ones.
type Resolver interface {
	ModuleName() string
	UploadRoot() string
}

// StaticResolver is a Resolver with fixed values, usually read from the env.
type StaticResolver struct {
	Module string
	Root   string
}

func (r StaticResolver) ModuleName() string { return r.Module }

func (r StaticResolver) UploadRoot() string { return r.Root }
