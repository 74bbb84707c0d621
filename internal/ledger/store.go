// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nft-generator/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "editions.db"
)

// Edition describes one completed generation run.
type Edition struct {
	Name      string    `json:"name" yaml:"name"`
	Attempts  int       `json:"attempts" yaml:"attempts"`
	Distinct  int       `json:"distinct" yaml:"distinct"`
	Seed      uint64    `json:"seed" yaml:"seed"`
	Strategy  string    `json:"strategy" yaml:"strategy"`
	Layers    []string  `json:"layers" yaml:"layers"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TraitCount is the realized frequency of one trait in an edition.
type TraitCount struct {
	Layer string  `json:"layer" yaml:"layer"`
	Trait string  `json:"trait" yaml:"trait"`
	Count int     `json:"count" yaml:"count"`
	Share float64 `json:"share" yaml:"share"`
}

// Store archives edition ledgers in a SQLite database.
type Store struct {
	db        *sql.DB
	outputDir string
}

// NewStore opens or creates the archive at outputDir/index/editions.db and
// creates the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.OutputDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, outputDir: cfg.OutputDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS editions (
			name TEXT PRIMARY KEY,
			attempts INTEGER NOT NULL,
			distinct_count INTEGER NOT NULL,
			seed TEXT,
			strategy TEXT,
			layers TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cells (
			edition TEXT NOT NULL REFERENCES editions(name) ON DELETE CASCADE,
			image INTEGER NOT NULL,
			position INTEGER NOT NULL,
			layer TEXT NOT NULL,
			trait TEXT NOT NULL,
			PRIMARY KEY (edition, image, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cells_trait ON cells(edition, layer, trait)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores ed and its ledger, replacing an earlier record of the
// same edition name.
func (s *Store) Record(ctx context.Context, ed Edition, l *Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cells WHERE edition = ?`, ed.Name); err != nil {
		return fmt.Errorf("deleting old cells: %w", err)
	}

	layersJSON, _ := json.Marshal(l.Columns)
	created := ed.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO editions (name, attempts, distinct_count, seed, strategy, layers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			attempts=excluded.attempts, distinct_count=excluded.distinct_count,
			seed=excluded.seed, strategy=excluded.strategy,
			layers=excluded.layers, created_at=excluded.created_at`,
		ed.Name, ed.Attempts, ed.Distinct, strconv.FormatUint(ed.Seed, 10), ed.Strategy,
		string(layersJSON), created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting edition: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells (edition, image, position, layer, trait) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range l.Rows {
		for pos, cell := range r.Cells {
			if _, err := stmt.ExecContext(ctx, ed.Name, r.Index, pos, l.Columns[pos], cell); err != nil {
				return fmt.Errorf("inserting image %d: %w", r.Index, err)
			}
		}
	}

	return tx.Commit()
}

// Editions lists archived editions, newest first.
func (s *Store) Editions(ctx context.Context) ([]Edition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, attempts, distinct_count, seed, strategy, layers, created_at
		 FROM editions ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("querying editions: %w", err)
	}
	defer rows.Close()

	var out []Edition
	for rows.Next() {
		var (
			ed                    Edition
			seed, layers, created string
		)
		if err := rows.Scan(&ed.Name, &ed.Attempts, &ed.Distinct, &seed, &ed.Strategy, &layers, &created); err != nil {
			return nil, fmt.Errorf("scanning edition: %w", err)
		}
		if ed.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("parsing seed of edition %q: %w", ed.Name, err)
		}
		if err := json.Unmarshal([]byte(layers), &ed.Layers); err != nil {
			return nil, fmt.Errorf("parsing layers of edition %q: %w", ed.Name, err)
		}
		if ed.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of edition %q: %w", ed.Name, err)
		}
		out = append(out, ed)
	}
	return out, rows.Err()
}

// TraitCounts returns how often each trait appears in the edition, in
// layer order and by descending count within a layer.
func (s *Store) TraitCounts(ctx context.Context, edition string) ([]TraitCount, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(DISTINCT image) FROM cells WHERE edition = ?`, edition,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting images: %w", err)
	}
	if total == 0 {
		return nil, fmt.Errorf("edition %q not found", edition)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT layer, trait, count(*) AS n FROM cells
		 WHERE edition = ?
		 GROUP BY position, layer, trait
		 ORDER BY position, n DESC, trait`, edition)
	if err != nil {
		return nil, fmt.Errorf("querying trait counts: %w", err)
	}
	defer rows.Close()

	var out []TraitCount
	for rows.Next() {
		var tc TraitCount
		if err := rows.Scan(&tc.Layer, &tc.Trait, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning trait count: %w", err)
		}
		tc.Share = float64(tc.Count) / float64(total)
		out = append(out, tc)
	}
	return out, rows.Err()
}
