// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package edition generates an edition: it draws trait combinations,
// renders one image per draw, and keeps a rarity ledger in step with the
// image files through duplicate removal and renumbering.
package edition

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/nft-generator/internal/catalog"
	"github.com/pdiddy/nft-generator/internal/ledger"
	"github.com/pdiddy/nft-generator/internal/render"
	"github.com/pdiddy/nft-generator/pkg/types"
)

const defaultMaxRetries = 1000

// State is the phase of a generation run.
type State int

const (
	StateInit State = iota
	StateSampling
	StateDeduping
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSampling:
		return "sampling"
	case StateDeduping:
		return "deduping"
	case StateFinalized:
		return "finalized"
	}
	return "unknown"
}

// Drawer produces one trait combination per call.
type Drawer interface {
	Draw() (types.Combination, error)
}

// Result holds the outcome of a run.
type Result struct {
	Name      string
	Attempts  int
	Distinct  int
	Dir       string
	ImagesDir string
	Width     int
	Ledger    *ledger.Ledger
}

// Generator runs editions. It is not safe for concurrent use: the images
// directory and the ledger belong to one run at a time.
type Generator struct {
	cfg      types.GenerationConfig
	cat      *catalog.Catalog
	drawer   Drawer
	renderer render.Renderer
	w        io.Writer
	now      func() time.Time
	state    State
}

// New returns a Generator. Status lines go to w.
func New(cfg types.GenerationConfig, cat *catalog.Catalog, drawer Drawer, renderer render.Renderer, w io.Writer) *Generator {
	if cfg.Strategy == "" {
		cfg.Strategy = types.StrategyDropDuplicates
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	return &Generator{
		cfg:      cfg,
		cat:      cat,
		drawer:   drawer,
		renderer: renderer,
		w:        w,
		now:      time.Now,
	}
}

// State returns the phase reached by the most recent run.
func (g *Generator) State() State {
	return g.state
}

// Run generates the named edition. Any failure aborts the run and leaves
// the files written so far in place.
func (g *Generator) Run(name string) (*Result, error) {
	g.state = StateInit
	if err := validateName(name); err != nil {
		return nil, err
	}
	count := g.cfg.Count
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be greater than 0, got %d", types.ErrConfig, count)
	}
	reject := g.cfg.Strategy == types.StrategyReject
	switch g.cfg.Strategy {
	case types.StrategyDropDuplicates, types.StrategyReject:
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", types.ErrConfig, g.cfg.Strategy)
	}
	if reject && uint64(count) > g.cat.TotalCombinations() {
		return nil, fmt.Errorf("%w: %d distinct images requested, only %d combinations exist",
			types.ErrCapacity, count, g.cat.TotalCombinations())
	}

	res := &Result{
		Name:      name,
		Attempts:  count,
		Dir:       Dir(g.cfg.OutputDir, name),
		ImagesDir: ImagesDir(g.cfg.OutputDir, name),
		Width:     PadWidth(count),
		Ledger:    ledger.New(g.cat.Columns()),
	}
	if err := os.MkdirAll(res.ImagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}
	if err := requireEmpty(res.ImagesDir); err != nil {
		return nil, err
	}

	g.state = StateSampling
	seen := make(map[string]bool, count)
	step := max(1, count/10)
	for attempt := range count {
		combo, err := g.next(seen, reject)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", attempt, err)
		}

		out := filepath.Join(res.ImagesDir, FileName(attempt, res.Width))
		if err := g.renderer.Render(combo.Paths(), out); err != nil {
			return nil, fmt.Errorf("image %d: %w", attempt, renderError(err))
		}
		if err := res.Ledger.Append(attempt, combo.Cells()); err != nil {
			return nil, err
		}
		if (attempt+1)%step == 0 || attempt+1 == count {
			fmt.Fprintf(g.w, "rendered %d/%d\n", attempt+1, count)
		}
	}

	res.Distinct = res.Ledger.Distinct()
	fmt.Fprintf(g.w, "Generated %d images, %d are distinct\n", res.Attempts, res.Distinct)

	if g.cfg.DropDuplicates && !reject {
		g.state = StateDeduping
		if err := Dedup(res.ImagesDir, res.Width, res.Ledger, g.w); err != nil {
			return nil, err
		}
	}

	res.Ledger.Compact()
	if err := Verify(res.ImagesDir, res.Width, res.Ledger.Len()); err != nil {
		return nil, err
	}
	g.state = StateFinalized
	return res, nil
}

// Dedup removes the ledger rows that repeat an earlier combination,
// deletes their image files, and renumbers the remaining files and rows to
// a contiguous range. Running it on a deduplicated ledger changes nothing.
func Dedup(dir string, width int, l *ledger.Ledger, w io.Writer) error {
	removed := l.Dedup()
	if len(removed) > 0 {
		fmt.Fprintf(w, "Removing %d images...\n", len(removed))
	}
	if err := removeImages(dir, width, removed); err != nil {
		return err
	}
	if err := renumber(dir, width, l.Indices()); err != nil {
		return err
	}
	l.Compact()
	return nil
}

// next draws a combination. Under rejection sampling it redraws seen
// combinations up to MaxRetries times.
func (g *Generator) next(seen map[string]bool, reject bool) (types.Combination, error) {
	if !reject {
		return g.drawer.Draw()
	}
	for range g.cfg.MaxRetries {
		combo, err := g.drawer.Draw()
		if err != nil {
			return nil, err
		}
		key := combo.Key()
		if !seen[key] {
			seen[key] = true
			return combo, nil
		}
	}
	return nil, fmt.Errorf("%w: no new combination after %d draws", types.ErrCapacity, g.cfg.MaxRetries)
}

// RenderSingle draws one combination and writes it to
// outputDir/single_images/<unix seconds>.png.
func (g *Generator) RenderSingle() (string, types.Combination, error) {
	combo, err := g.drawer.Draw()
	if err != nil {
		return "", nil, err
	}
	dir := filepath.Join(g.cfg.OutputDir, singleDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	out := filepath.Join(dir, strconv.FormatInt(g.now().Unix(), 10)+imageExt)
	if err := g.renderer.Render(combo.Paths(), out); err != nil {
		return "", nil, renderError(err)
	}
	return out, combo, nil
}

// renderError makes sure a renderer failure matches types.ErrRender.
func renderError(err error) error {
	if errors.Is(err, types.ErrRender) {
		return err
	}
	return fmt.Errorf("%w: %w", types.ErrRender, err)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: edition name is empty", types.ErrConfig)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: edition name %q is not a valid directory name", types.ErrConfig, name)
	}
	return nil
}
