package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nft-generator/internal/edition"
	"github.com/pdiddy/nft-generator/internal/render"
	"github.com/pdiddy/nft-generator/internal/sampler"
)

var singleCmd = &cobra.Command{
	Use:   "single",
	Short: "Render one random image for previewing the layers",
	Long: `Single draws one trait combination and writes it to
output/single_images/<timestamp>.png. It does not touch any edition.`,
	RunE: runSingle,
}

func init() {
	rootCmd.AddCommand(singleCmd)
}

func runSingle(cmd *cobra.Command, args []string) error {
	cat, store, src, err := loadCatalog()
	if err != nil {
		return err
	}

	gen := edition.New(generationConfig(), cat, sampler.New(cat, src), render.NewCompositor(store), os.Stdout)
	path, combo, err := gen.RenderSingle()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s: %s\n", path, strings.Join(combo.Cells(), ", "))
	return nil
}
