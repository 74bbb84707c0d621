// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nft-generator/internal/assets"
	"github.com/pdiddy/nft-generator/pkg/types"
)

// writePNG writes a 4x4 image to root/rel. Pixels for which paint returns
// true get c; the rest stay fully transparent.
func writePNG(t *testing.T, root, rel string, c color.NRGBA, paint func(x, y int) bool) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			if paint(x, y) {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func all(int, int) bool { return true }

func TestCompositorLayersInOrder(t *testing.T) {
	root := t.TempDir()
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	writePNG(t, root, "bg/red.png", red, all)
	writePNG(t, root, "hat/blue.png", blue, func(x, y int) bool { return y == 0 })

	out := filepath.Join(t.TempDir(), "0.png")
	c := NewCompositor(assets.NewDir(root))
	require.NoError(t, c.Render([]string{"bg/red.png", "hat/blue.png"}, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Equal(t, blue, color.NRGBAModel.Convert(img.At(1, 0)), "overlay pixel")
	assert.Equal(t, red, color.NRGBAModel.Convert(img.At(1, 2)), "transparent overlay keeps base")
}

func TestCompositorBaseOnly(t *testing.T) {
	root := t.TempDir()
	green := color.NRGBA{G: 255, A: 255}
	writePNG(t, root, "bg/green.png", green, all)

	img, err := NewCompositor(assets.NewDir(root)).Composite([]string{"bg/green.png"})
	require.NoError(t, err)
	assert.Equal(t, green, img.NRGBAAt(3, 3))
}

func TestCompositorErrors(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "bg/a.png", color.NRGBA{A: 255}, all)
	require.NoError(t, os.WriteFile(filepath.Join(root, "bg", "broken.png"), []byte("not a png"), 0o644))

	tests := []struct {
		name  string
		paths []string
		out   string
	}{
		{name: "no layers", paths: nil},
		{name: "missing base", paths: []string{"bg/missing.png"}},
		{name: "undecodable overlay", paths: []string{"bg/a.png", "bg/broken.png"}},
		{name: "unwritable output", paths: []string{"bg/a.png"}, out: filepath.Join(root, "no-such-dir", "0.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.out
			if out == "" {
				out = filepath.Join(t.TempDir(), "0.png")
			}
			err := NewCompositor(assets.NewDir(root)).Render(tt.paths, out)
			assert.ErrorIs(t, err, types.ErrRender)
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "no output file on failure")
		})
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, Save(img, filepath.Join(dir, "00.png")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "00.png", entries[0].Name())
}
