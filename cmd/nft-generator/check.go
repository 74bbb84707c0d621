package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the layer configuration and report capacity",
	Long: `Check loads every layer directory, resolves rarity weights, and prints
the number of traits per layer and the total number of distinct
combinations that can be generated.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stdout, "Checking assets...")
	cat, _, _, err := loadCatalog()
	if err != nil {
		return err
	}

	for _, l := range cat.Layers() {
		kind := "required"
		if !l.Required() {
			kind = "optional"
		}
		fmt.Fprintf(os.Stdout, "  %-20s %3d traits (%s)\n", l.Name(), l.Len(), kind)
	}
	fmt.Fprintf(os.Stdout, "\nYou can create a total of %d distinct images\n", cat.TotalCombinations())
	return nil
}
