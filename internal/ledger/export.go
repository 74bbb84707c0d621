// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// RarityReport is the exported form of an edition's trait counts.
type RarityReport struct {
	Edition string       `json:"edition" yaml:"edition"`
	Traits  []TraitCount `json:"traits" yaml:"traits"`
}

// ExportYAML writes the edition's trait counts to path.
func (s *Store) ExportYAML(ctx context.Context, edition, path string) error {
	report, err := s.report(ctx, edition)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the edition's trait counts to path.
func (s *Store) ExportJSON(ctx context.Context, edition, path string) error {
	report, err := s.report(ctx, edition)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) report(ctx context.Context, edition string) (RarityReport, error) {
	counts, err := s.TraitCounts(ctx, edition)
	if err != nil {
		return RarityReport{}, fmt.Errorf("querying for export: %w", err)
	}
	return RarityReport{Edition: edition, Traits: counts}, nil
}
