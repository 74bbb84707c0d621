// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nft-generator/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(types.ArchiveConfig{OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func TestNewStoreCreatesSchema(t *testing.T) {
	store, dir := testStore(t)

	if _, err := os.Stat(filepath.Join(dir, indexDir, dbFile)); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
	for _, table := range []string{"editions", "cells"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestRecordAndTraitCounts(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	l := sampleLedger(t)
	l.Dedup()
	l.Compact()

	ed := Edition{Name: "genesis", Attempts: 6, Distinct: 4, Seed: 1 << 63, Strategy: "drop"}
	if err := store.Record(ctx, ed, l); err != nil {
		t.Fatal(err)
	}

	counts, err := store.TraitCounts(ctx, "genesis")
	if err != nil {
		t.Fatal(err)
	}
	want := []TraitCount{
		{Layer: "Background", Trait: "blue", Count: 2, Share: 0.5},
		{Layer: "Background", Trait: "green", Count: 1, Share: 0.25},
		{Layer: "Background", Trait: "red", Count: 1, Share: 0.25},
		{Layer: "Hat", Trait: "cap", Count: 3, Share: 0.75},
		{Layer: "Hat", Trait: "none", Count: 1, Share: 0.25},
	}
	if len(counts) != len(want) {
		t.Fatalf("got %d counts, want %d: %+v", len(counts), len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}

	eds, err := store.Editions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(eds) != 1 {
		t.Fatalf("got %d editions, want 1", len(eds))
	}
	if eds[0].Seed != 1<<63 || eds[0].Distinct != 4 || len(eds[0].Layers) != 2 {
		t.Errorf("edition = %+v", eds[0])
	}
}

func TestRecordReplacesEdition(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, Edition{Name: "e", Attempts: 6, Distinct: 4}, sampleLedger(t)); err != nil {
		t.Fatal(err)
	}

	small := New([]string{"Background", "Hat"})
	small.Append(0, []string{"white", "none"})
	if err := store.Record(ctx, Edition{Name: "e", Attempts: 1, Distinct: 1, CreatedAt: time.Now()}, small); err != nil {
		t.Fatal(err)
	}

	counts, err := store.TraitCounts(ctx, "e")
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 2 || counts[0].Trait != "white" || counts[0].Share != 1 {
		t.Errorf("counts after re-record = %+v", counts)
	}
}

func TestEditionsRejectsCorruptRows(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{name: "seed", column: "seed", value: "not-a-number"},
		{name: "layers", column: "layers", value: "{broken"},
		{name: "created_at", column: "created_at", value: "yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := testStore(t)
			ctx := context.Background()
			if err := store.Record(ctx, Edition{Name: "e", Seed: 5}, sampleLedger(t)); err != nil {
				t.Fatal(err)
			}
			if _, err := store.db.Exec(`UPDATE editions SET `+tt.column+` = ? WHERE name = 'e'`, tt.value); err != nil {
				t.Fatal(err)
			}
			if _, err := store.Editions(ctx); err == nil {
				t.Errorf("expected error for corrupt %s", tt.column)
			}
		})
	}
}

func TestTraitCountsUnknownEdition(t *testing.T) {
	store, _ := testStore(t)
	if _, err := store.TraitCounts(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown edition")
	}
}

func TestExport(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()
	if err := store.Record(ctx, Edition{Name: "e"}, sampleLedger(t)); err != nil {
		t.Fatal(err)
	}

	yamlPath := filepath.Join(dir, "rarity.yaml")
	if err := store.ExportYAML(ctx, "e", yamlPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML RarityReport
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML.Edition != "e" || len(fromYAML.Traits) == 0 {
		t.Errorf("yaml report = %+v", fromYAML)
	}

	jsonPath := filepath.Join(dir, "rarity.json")
	if err := store.ExportJSON(ctx, "e", jsonPath); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON RarityReport
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatal(err)
	}
	if len(fromJSON.Traits) != len(fromYAML.Traits) {
		t.Errorf("json has %d traits, yaml has %d", len(fromJSON.Traits), len(fromYAML.Traits))
	}
}
