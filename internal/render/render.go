// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render composites layer images into one PNG file.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdiddy/nft-generator/pkg/types"
)

// Renderer produces one image file from layer files given in compositing
// order.
type Renderer interface {
	Render(paths []string, outPath string) error
}

// Opener decodes an image by asset-relative path.
type Opener interface {
	Open(path string) (image.Image, error)
}

// Compositor draws each layer over the first one, aligned at the origin,
// and saves the result as PNG.
type Compositor struct {
	store Opener
}

// NewCompositor returns a Compositor reading layer files from store.
func NewCompositor(store Opener) *Compositor {
	return &Compositor{store: store}
}

// Render composites paths and writes outPath. Every failure wraps
// types.ErrRender.
func (c *Compositor) Render(paths []string, outPath string) error {
	img, err := c.Composite(paths)
	if err != nil {
		return err
	}
	if err := Save(img, outPath); err != nil {
		return fmt.Errorf("%w: %v", types.ErrRender, err)
	}
	return nil
}

// Composite returns the image produced by drawing paths[1:] over paths[0].
// The canvas takes the bounds of the base layer.
func (c *Compositor) Composite(paths []string) (*image.NRGBA, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no layers to render", types.ErrRender)
	}

	base, err := c.store.Open(paths[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRender, err)
	}
	bounds := base.Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), base, bounds.Min, draw.Src)

	for _, p := range paths[1:] {
		overlay, err := c.store.Open(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrRender, err)
		}
		draw.Draw(canvas, canvas.Bounds(), overlay, overlay.Bounds().Min, draw.Over)
	}
	return canvas, nil
}

// Save encodes img as PNG at path through a temporary file in the same
// directory, renamed into place on success.
func Save(img image.Image, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".render-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	encErr := png.Encode(tmp, img)
	closeErr := tmp.Close()
	if encErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), encErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
