// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
)

// AbsentMarker is the ledger cell for a layer that contributed no trait.
// No trait may use it as a display identifier.
const AbsentMarker = "none"

// Trait is one option within a layer: a file in the layer directory, or
// the absent sentinel (empty File) of an optional layer.
type Trait struct {
	File string `json:"file" yaml:"file"`
}

// Absent reports whether t is the absent sentinel.
func (t Trait) Absent() bool {
	return t.File == ""
}

// Display returns the ledger identifier: the file name without its
// extension, or AbsentMarker.
func (t Trait) Display() string {
	if t.Absent() {
		return AbsentMarker
	}
	return strings.TrimSuffix(t.File, filepath.Ext(t.File))
}

// Selection is the outcome of one layer in a combination.
type Selection struct {
	// Layer is the layer display name.
	Layer string `json:"layer" yaml:"layer"`

	// Directory is the layer directory relative to the assets directory.
	Directory string `json:"directory" yaml:"directory"`

	// Index is the chosen position in the layer's trait list.
	Index int `json:"index" yaml:"index"`

	Trait Trait `json:"trait" yaml:"trait"`
}

// Combination holds one selection per layer, in layer order.
type Combination []Selection

// Cells returns the display identifier of every selection, in layer order.
func (c Combination) Cells() []string {
	cells := make([]string, len(c))
	for i, s := range c {
		cells[i] = s.Trait.Display()
	}
	return cells
}

// Key returns a string that is equal for two combinations iff their
// selections match layer for layer.
func (c Combination) Key() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.Trait.File
	}
	return strings.Join(parts, "\x00")
}

// Paths returns the asset-relative file references of the non-absent
// selections, in layer order.
func (c Combination) Paths() []string {
	var paths []string
	for _, s := range c {
		if s.Trait.Absent() {
			continue
		}
		paths = append(paths, filepath.Join(s.Directory, s.Trait.File))
	}
	return paths
}
