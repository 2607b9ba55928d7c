// Package assets resolves release asset patterns into files and loads their content.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var errNotRegularFile = errors.New("not a regular file")

// ErrNotRegularFile is returned by [Load] for directories and special files.
var ErrNotRegularFile = errNotRegularFile

// File is a release asset loaded into memory.
type File struct {
	Name    string // Base name, used as the uploaded asset name
	Path    string
	Size    int64
	Content []byte
}

// Load reads the asset at path. Callers treat any error as "asset unavailable"
// and skip the asset rather than failing the release.
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat asset: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", errNotRegularFile, path)
	}

	// #nosec G304 - asset paths are supplied by the user on purpose
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}

	return &File{
		Name:    filepath.Base(path),
		Path:    path,
		Size:    int64(len(content)),
		Content: content,
	}, nil
}
