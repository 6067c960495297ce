// This file implements JSONL loading at attach time.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and column
// lists. Designs load before the placements that reference them.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{designsFile, "designs", []string{"design_id", "name", "rows", "cols", "created_at", "updated_at"}},
	{placementsFile, "placements", []string{"design_id", "token_id", "cell_id", "cell_ord", "shape"}},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts the records
// into SQLite in one transaction: all succeed or the database stays empty.
// Malformed lines, unknown fields, and rows that violate constraints (for
// example a second token on the same cell, or a cell outside the design's
// grid) are skipped.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only the
// listed columns are extracted; a record missing any of them is skipped.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		complete := true
		for i, col := range columns {
			val, ok := obj[col]
			if !ok || val == nil {
				complete = false
				break
			}
			if f, isNum := val.(float64); isNum {
				val = int64(f)
			}
			args[i] = val
		}
		if !complete {
			continue
		}

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
	}
	return nil
}
