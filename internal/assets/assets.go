// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assets reads layer trait files from a directory tree. Each layer
// is a subdirectory; each non-hidden file in it is one trait.
package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// hiddenPrefix marks entries that are never treated as traits.
const hiddenPrefix = "."

// Dir is an asset store rooted at a directory on disk.
type Dir struct {
	root string
}

// NewDir returns a store rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the store's base directory.
func (d *Dir) Root() string {
	return d.root
}

// List returns the sorted names of the files in dir, relative to the store
// root. Hidden entries (names starting with ".") and subdirectories are
// skipped. A missing directory is an error.
func (d *Dir) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(d.root, dir))
	if err != nil {
		return nil, fmt.Errorf("reading layer directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, hiddenPrefix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Open decodes the image at path, relative to the store root.
func (d *Dir) Open(path string) (image.Image, error) {
	f, err := os.Open(filepath.Join(d.root, path))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
