// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package edition

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/nft-generator/internal/ledger"
	"github.com/pdiddy/nft-generator/pkg/types"
)

const (
	imagesDir    = "images"
	singleDir    = "single_images"
	metadataFile = "metadata.csv"
	stagingDir   = ".staging"
	imageExt     = ".png"
)

// Dir returns the directory of the named edition under outputDir.
func Dir(outputDir, name string) string {
	return filepath.Join(outputDir, "edition "+name)
}

// ImagesDir returns the directory holding the edition's images.
func ImagesDir(outputDir, name string) string {
	return filepath.Join(Dir(outputDir, name), imagesDir)
}

// MetadataPath returns the path of the edition's CSV ledger.
func MetadataPath(outputDir, name string) string {
	return filepath.Join(Dir(outputDir, name), metadataFile)
}

// PadWidth returns the number of digits in count-1, the width every image
// number is zero-padded to.
func PadWidth(count int) int {
	if count <= 1 {
		return 1
	}
	return len(strconv.Itoa(count - 1))
}

// FileName returns the zero-padded file name of image i.
func FileName(i, width int) string {
	return fmt.Sprintf("%0*d%s", width, i, imageExt)
}

// requireEmpty fails with types.ErrConfig when dir already holds images
// from an earlier run. Hidden entries are ignored.
func requireEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading images directory: %w", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		return fmt.Errorf("%w: %s already holds %s; choose another edition name or remove it",
			types.ErrConfig, dir, e.Name())
	}
	return nil
}

// removeImages deletes the files of the given image numbers.
func removeImages(dir string, width int, indices []int) error {
	for _, i := range indices {
		if err := os.Remove(filepath.Join(dir, FileName(i, width))); err != nil {
			return fmt.Errorf("removing image %d: %w", i, err)
		}
	}
	return nil
}

// renumber moves the images numbered current to 0..len(current)-1,
// preserving ascending order. Files that change number move into a staging
// directory first and then back, so no rename can land on a file that has
// not been moved yet.
func renumber(dir string, width int, current []int) error {
	sorted := slices.Clone(current)
	slices.Sort(sorted)

	staging := filepath.Join(dir, stagingDir)
	var moved []int
	for target, idx := range sorted {
		if idx == target {
			continue
		}
		if len(moved) == 0 {
			if err := os.MkdirAll(staging, 0o755); err != nil {
				return fmt.Errorf("creating staging directory: %w", err)
			}
		}
		if err := os.Rename(filepath.Join(dir, FileName(idx, width)), filepath.Join(staging, FileName(target, width))); err != nil {
			return fmt.Errorf("staging image %d: %w", idx, err)
		}
		moved = append(moved, target)
	}
	if len(moved) == 0 {
		return nil
	}

	for _, target := range moved {
		dst := filepath.Join(dir, FileName(target, width))
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("renaming to %s: target exists", FileName(target, width))
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", FileName(target, width), err)
		}
		if err := os.Rename(filepath.Join(staging, FileName(target, width)), dst); err != nil {
			return fmt.Errorf("renaming image %d: %w", target, err)
		}
	}
	return os.Remove(staging)
}

// Verify checks that dir holds exactly the images 0..count-1 at the given
// padding width and nothing else.
func Verify(dir string, width, count int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading images directory: %w", err)
	}

	want := make(map[string]bool, count)
	for i := range count {
		want[FileName(i, width)] = true
	}
	found := 0
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !want[e.Name()] {
			return fmt.Errorf("unexpected file %s in %s", e.Name(), dir)
		}
		found++
	}
	if found != count {
		return fmt.Errorf("found %d images in %s, ledger has %d rows", found, dir, count)
	}
	return nil
}

// WriteMetadata writes l as CSV to the edition's metadata file.
func WriteMetadata(path string, l *ledger.Ledger) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".metadata-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writeErr := l.WriteCSV(tmp)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing metadata: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	return os.Rename(tmpPath, path)
}
