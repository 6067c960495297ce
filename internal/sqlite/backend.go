// Package sqlite implements the SQLite design store for quiltboard.
// SQLite is the query engine; designs.jsonl and placements.jsonl in the data
// directory are the source of truth. The database is rebuilt from the JSONL
// files on every Attach and the files are rewritten atomically after every
// mutation.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// dbFileName is the SQLite file created inside the data directory.
const dbFileName = "quilt.db"

// Backend implements types.DesignStore.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

var _ types.DesignStore = (*Backend)(nil)

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, initializes the SQLite schema,
// and loads the JSONL files. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}
	config = config.WithDefaults()

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return err
	}

	// The database is a cache of the JSONL files; start from a fresh schema.
	dbPath := filepath.Join(config.DataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	// PRAGMAs are per connection.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFiles(config.DataDir); err != nil {
		db.Close()
		return err
	}

	if err := loadAllJSONL(db, config.DataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index or trigger: %w", err)
		}
	}
	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// DataDir returns the directory holding the JSONL files.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// generateUUID generates a new UUID v7 for design IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
