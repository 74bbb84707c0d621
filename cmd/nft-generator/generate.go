// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nft-generator/internal/edition"
	"github.com/pdiddy/nft-generator/internal/ledger"
	"github.com/pdiddy/nft-generator/internal/render"
	"github.com/pdiddy/nft-generator/internal/sampler"
	"github.com/pdiddy/nft-generator/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate <edition>",
	Short: "Generate an edition of composite images",
	Long: `Generate draws --count trait combinations, renders one image per draw
into output/edition <edition>/images/, and writes the rarity ledger to
metadata.csv. With --drop-dup (the default) duplicate combinations are
removed afterwards and the remaining images are renumbered, so an edition
may end up smaller than --count. With --strategy reject duplicates are
redrawn before rendering instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int("count", 0, "number of images to draw (required, > 0)")
	generateCmd.Flags().Bool("drop-dup", true, "remove duplicate combinations after rendering")
	generateCmd.Flags().String("strategy", string(types.StrategyDropDuplicates), "duplicate handling: drop or reject")
	generateCmd.Flags().Int("max-retries", 0, "redraws per image under --strategy reject (default 1000)")

	for key, flag := range map[string]string{
		"count":           "count",
		"drop_duplicates": "drop-dup",
		"strategy":        "strategy",
		"max_retries":     "max-retries",
	} {
		viper.BindPFlag(key, generateCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(generateCmd)
}

func generationConfig() types.GenerationConfig {
	return types.GenerationConfig{
		AssetsDir:      viper.GetString("assets_dir"),
		OutputDir:      viper.GetString("output_dir"),
		Count:          viper.GetInt("count"),
		DropDuplicates: viper.GetBool("drop_duplicates"),
		Strategy:       types.Strategy(viper.GetString("strategy")),
		MaxRetries:     viper.GetInt("max_retries"),
		Seed:           viper.GetUint64("seed"),
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg := generationConfig()
	if cfg.Count < 1 {
		return fmt.Errorf("--count must be greater than 0")
	}

	fmt.Fprintln(os.Stdout, "Checking assets...")
	cat, store, src, err := loadCatalog()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "You can create a total of %d distinct images\n\n", cat.TotalCombinations())

	fmt.Fprintln(os.Stdout, "Starting task...")
	gen := edition.New(cfg, cat, sampler.New(cat, src), render.NewCompositor(store), os.Stdout)
	res, err := gen.Run(name)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Saving metadata...")
	if err := edition.WriteMetadata(edition.MetadataPath(cfg.OutputDir, name), res.Ledger); err != nil {
		return err
	}

	archive, err := ledger.NewStore(types.ArchiveConfig{OutputDir: cfg.OutputDir})
	if err != nil {
		return err
	}
	defer archive.Close()

	ed := ledger.Edition{
		Name:     name,
		Attempts: res.Attempts,
		Distinct: res.Distinct,
		Seed:     src.Seed(),
		Strategy: string(cfg.Strategy),
	}
	if err := archive.Record(context.Background(), ed, res.Ledger); err != nil {
		fmt.Fprintf(os.Stderr, "warning: edition index update failed: %v\n", err)
	}

	fmt.Fprintf(os.Stdout, "Task complete! %d images in %s (seed %d)\n", res.Ledger.Len(), res.ImagesDir, src.Seed())
	return nil
}
