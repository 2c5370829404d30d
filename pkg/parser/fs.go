package parser

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the subset of filesystem access the analyzer needs.
type FileSystem interface {
	// Stat returns file metadata for path.
	Stat(path string) (fs.FileInfo, error)

	// WalkDir walks the tree rooted at root, calling fn for each entry.
	WalkDir(root string, fn fs.WalkDirFunc) error

	// Open opens path for reading.
	Open(path string) (io.ReadCloser, error)
}

// OSFileSystem implements FileSystem on top of the operating system.
type OSFileSystem struct{}

// Stat implements FileSystem.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// WalkDir implements FileSystem.
func (OSFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// Open implements FileSystem.
func (OSFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path) // #nosec G304 -- paths come from walking the configured directory
}
