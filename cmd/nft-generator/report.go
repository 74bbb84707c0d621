// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nft-generator/internal/edition"
	"github.com/pdiddy/nft-generator/internal/ledger"
	"github.com/pdiddy/nft-generator/pkg/types"
)

// --- report subcommand ---

var reportCmd = &cobra.Command{
	Use:   "report <edition>",
	Short: "Show the realized trait rarity of an edition",
	Long: `Report reads an edition from the edition index and prints how often each
trait appears. With --format yaml or json the report is written to
rarity.yaml or rarity.json in the edition directory instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	name := args[0]
	format, _ := cmd.Flags().GetString("format")
	outputDir := viper.GetString("output_dir")

	archive, err := ledger.NewStore(types.ArchiveConfig{OutputDir: outputDir})
	if err != nil {
		return err
	}
	defer archive.Close()

	ctx := context.Background()
	switch format {
	case "table", "":
		counts, err := archive.TraitCounts(ctx, name)
		if err != nil {
			return err
		}
		renderCounts(os.Stdout, counts)
	case "yaml":
		path := filepath.Join(edition.Dir(outputDir, name), "rarity.yaml")
		if err := archive.ExportYAML(ctx, name, path); err != nil {
			return err
		}
		fmt.Println("Exported to", path)
	case "json":
		path := filepath.Join(edition.Dir(outputDir, name), "rarity.json")
		if err := archive.ExportJSON(ctx, name, path); err != nil {
			return err
		}
		fmt.Println("Exported to", path)
	default:
		return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
	}
	return nil
}

func renderCounts(w io.Writer, counts []ledger.TraitCount) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Layer", "Trait", "Count", "Share"})
	prev := ""
	for _, c := range counts {
		if prev != "" && c.Layer != prev {
			t.AppendSeparator()
		}
		prev = c.Layer
		t.AppendRow(table.Row{c.Layer, c.Trait, c.Count, fmt.Sprintf("%.1f%%", c.Share*100)})
	}
	t.Render()
}

// --- editions subcommand ---

var editionsCmd = &cobra.Command{
	Use:   "editions",
	Short: "List generated editions",
	RunE:  runEditions,
}

func runEditions(cmd *cobra.Command, args []string) error {
	archive, err := ledger.NewStore(types.ArchiveConfig{OutputDir: viper.GetString("output_dir")})
	if err != nil {
		return err
	}
	defer archive.Close()

	eds, err := archive.Editions(context.Background())
	if err != nil {
		return err
	}
	if len(eds) == 0 {
		fmt.Println("No editions found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Edition", "Drawn", "Distinct", "Strategy", "Created"})
	for _, ed := range eds {
		t.AppendRow(table.Row{ed.Name, ed.Attempts, ed.Distinct, ed.Strategy, ed.CreatedAt.Local().Format("2006-01-02 15:04")})
	}
	t.Render()
	return nil
}

func init() {
	reportCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(editionsCmd)
}
