// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records which trait combination each generated image
// carries, removes duplicate rows, and archives editions in SQLite.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Row is one generated image. Index is the image's current file number.
type Row struct {
	Index int      `json:"index" yaml:"index"`
	Cells []string `json:"cells" yaml:"cells"`
}

// Ledger is a table with one column per layer and one row per image.
type Ledger struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
}

// New returns an empty ledger with the given layer columns.
func New(columns []string) *Ledger {
	return &Ledger{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (l *Ledger) Len() int {
	return len(l.Rows)
}

// Append adds a row for the image with file number index.
func (l *Ledger) Append(index int, cells []string) error {
	if len(cells) != len(l.Columns) {
		return fmt.Errorf("row %d has %d cells, ledger has %d columns", index, len(cells), len(l.Columns))
	}
	l.Rows = append(l.Rows, Row{Index: index, Cells: append([]string(nil), cells...)})
	return nil
}

// Indices returns the file number of every row, in row order.
func (l *Ledger) Indices() []int {
	idx := make([]int, len(l.Rows))
	for i, r := range l.Rows {
		idx[i] = r.Index
	}
	return idx
}

// Dedup removes every row whose cells equal those of an earlier row,
// keeping survivors in their original order. It returns the file numbers
// of the removed rows in ascending order.
func (l *Ledger) Dedup() []int {
	seen := make(map[string]bool, len(l.Rows))
	kept := l.Rows[:0]
	var removed []int
	for _, r := range l.Rows {
		key := strings.Join(r.Cells, "\x00")
		if seen[key] {
			removed = append(removed, r.Index)
			continue
		}
		seen[key] = true
		kept = append(kept, r)
	}
	clear(l.Rows[len(kept):])
	l.Rows = kept
	slices.Sort(removed)
	return removed
}

// Compact renumbers rows to 0..Len()-1 in row order.
func (l *Ledger) Compact() {
	for i := range l.Rows {
		l.Rows[i].Index = i
	}
}

// Distinct returns the number of distinct combinations among the rows.
func (l *Ledger) Distinct() int {
	seen := make(map[string]bool, len(l.Rows))
	for _, r := range l.Rows {
		seen[strings.Join(r.Cells, "\x00")] = true
	}
	return len(seen)
}

// WriteCSV writes a header row of layer names followed by one line per
// row. The row index is not written; it matches the image file name.
func (l *Ledger) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(l.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range l.Rows {
		if err := cw.Write(r.Cells); err != nil {
			return fmt.Errorf("writing row %d: %w", r.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a ledger written by WriteCSV. Rows are numbered in file
// order.
func ReadCSV(r io.Reader) (*Ledger, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing ledger: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing ledger: missing header row")
	}
	l := New(records[0])
	for i, rec := range records[1:] {
		if err := l.Append(i, rec); err != nil {
			return nil, err
		}
	}
	return l, nil
}
