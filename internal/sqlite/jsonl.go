// This file provides JSONL read/write helpers with atomic persistence.
package sqlite

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONL files holding the source of truth in the data directory.
const (
	designsFile    = "designs.jsonl"
	placementsFile = "placements.jsonl"
)

// designRecord is one line of designs.jsonl.
type designRecord struct {
	DesignID  string `json:"design_id"`
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// placementRecord is one line of placements.jsonl.
type placementRecord struct {
	DesignID string `json:"design_id"`
	TokenID  string `json:"token_id"`
	CellID   string `json:"cell_id"`
	CellOrd  int    `json:"cell_ord"`
	Shape    string `json:"shape"`
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// initJSONLFiles creates empty JSONL files that do not exist yet.
func initJSONLFiles(dataDir string) error {
	for _, name := range []string{designsFile, placementsFile} {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	return nil
}

// persistDesigns dumps the designs table to designs.jsonl.
func persistDesigns(q querier, dataDir string) error {
	rows, err := q.Query(`SELECT design_id, name, rows, cols, created_at, updated_at
		FROM designs ORDER BY created_at, design_id`)
	if err != nil {
		return fmt.Errorf("query designs: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var r designRecord
		if err := rows.Scan(&r.DesignID, &r.Name, &r.Rows, &r.Cols, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return fmt.Errorf("scan design: %w", err)
		}
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		records = append(records, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(dataDir, designsFile), records)
}

// persistPlacements dumps the placements table to placements.jsonl.
func persistPlacements(q querier, dataDir string) error {
	rows, err := q.Query(`SELECT design_id, token_id, cell_id, cell_ord, shape
		FROM placements ORDER BY design_id, cell_ord`)
	if err != nil {
		return fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var r placementRecord
		if err := rows.Scan(&r.DesignID, &r.TokenID, &r.CellID, &r.CellOrd, &r.Shape); err != nil {
			return fmt.Errorf("scan placement: %w", err)
		}
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		records = append(records, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(dataDir, placementsFile), records)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}
