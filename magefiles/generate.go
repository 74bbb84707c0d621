package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// Check validates layers.yaml against the assets directory and prints the
// number of distinct combinations.
func Check() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "check")
}

// Sample generates a ten-image "sample" edition with a fixed seed and
// prints its rarity report.
func Sample() error {
	mg.Deps(Build)
	if err := sh.RunV(binPath(), "generate", "sample", "--count", "10", "--seed", "1"); err != nil {
		return err
	}
	return sh.RunV(binPath(), "report", "sample")
}
