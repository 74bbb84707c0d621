// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	root := t.TempDir()
	layer := filepath.Join(root, "hat")
	require.NoError(t, os.MkdirAll(filepath.Join(layer, "sub"), 0o755))
	for _, name := range []string{"cap.png", ".DS_Store", "beret.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(layer, name), nil, 0o644))
	}

	d := NewDir(root)
	names, err := d.List("hat")
	require.NoError(t, err)
	assert.Equal(t, []string{"beret.png", "cap.png"}, names)

	_, err = d.List("missing")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(root, "red.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(root, "junk.png"), []byte("not an image"), 0o644))

	d := NewDir(root)
	got, err := d.Open("red.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), got.Bounds())

	_, err = d.Open("junk.png")
	assert.Error(t, err)
	_, err = d.Open("absent.png")
	assert.Error(t, err)
}
