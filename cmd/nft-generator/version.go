package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of nft-generator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nft-generator %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
