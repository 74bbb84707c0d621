// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nft-generator CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nft-generator/internal/assets"
	"github.com/pdiddy/nft-generator/internal/catalog"
	"github.com/pdiddy/nft-generator/internal/project"
	"github.com/pdiddy/nft-generator/internal/rng"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the nft-generator CLI.
var rootCmd = &cobra.Command{
	Use:   "nft-generator",
	Short: "Generate image editions from weighted trait layers",
	Long: `nft-generator combines independent image layers into editions of
composite images. Each layer contributes one trait chosen according to its
rarity weights; optional layers may contribute nothing.

Layers are declared in layers.yaml. Trait images live in one directory per
layer under the assets directory. Each edition is written to
output/edition <name>/ with its images and a metadata.csv rarity ledger.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nft-generator.yaml or ~/.config/nft-generator/config.yaml)")
	rootCmd.PersistentFlags().String("layers", project.DefaultFile, "layer configuration file")
	rootCmd.PersistentFlags().String("assets-dir", "assets", "base directory for layer trait files")
	rootCmd.PersistentFlags().String("output-dir", "output", "base directory for editions and the edition index")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed for reproducible runs (0 = random)")

	for key, flag := range map[string]string{
		"layers":     "layers",
		"assets_dir": "assets-dir",
		"output_dir": "output-dir",
		"seed":       "seed",
	} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nft-generator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nft-generator"))
		}
	}

	viper.SetEnvPrefix("NFT_GENERATOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadCatalog reads the layer configuration and resolves it against the
// assets directory. The returned source seeds both random rarity weights
// and sampling, so a fixed seed reproduces a whole run. Its Seed method
// reports the effective seed when none was given.
func loadCatalog() (*catalog.Catalog, *assets.Dir, *rng.PCG, error) {
	cfg, err := project.Load(viper.GetString("layers"))
	if err != nil {
		return nil, nil, nil, err
	}
	store := assets.NewDir(viper.GetString("assets_dir"))
	src := rng.New(viper.GetUint64("seed"))

	cat, err := catalog.Build(cfg.Layers, store, src)
	if err != nil {
		return nil, nil, nil, err
	}
	return cat, store, src, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
