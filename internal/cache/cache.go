// Package cache persists the article history snapshot in a local sqlite
// database. The whole (capped) record list is serialized as one JSON blob
// under a fixed key; a corrupt or absent snapshot reads back as empty
// history, never as an error.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

const historyKey = "news_history"

type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
	path    string
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	c := &Cache{readDB: readDB, writeDB: writeDB, path: dbPath}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Load reads the last persisted history snapshot. An absent key or an
// undecodable blob both return (nil, nil): history starts empty.
func (c *Cache) Load() ([]model.Article, error) {
	var blob []byte
	err := c.readDB.QueryRow(
		"SELECT value FROM snapshots WHERE key = ?", historyKey,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var history []model.Article
	if err := json.Unmarshal(blob, &history); err != nil {
		// Corrupt snapshot: reset to empty rather than failing startup.
		return nil, nil
	}
	return history, nil
}

// Save replaces the persisted snapshot with the given history.
func (c *Cache) Save(history []model.Article) error {
	blob, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = c.writeDB.Exec(`
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, historyKey, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Clear drops the persisted snapshot and refresh marker.
func (c *Cache) Clear() error {
	if _, err := c.writeDB.Exec("DELETE FROM snapshots WHERE key = ?", historyKey); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	_, err := c.writeDB.Exec("DELETE FROM meta WHERE key = 'last_refresh'")
	return err
}

// Stats returns the number of records in the snapshot and the database
// file size in bytes.
func (c *Cache) Stats() (int, int64, error) {
	history, err := c.Load()
	if err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(c.path)
	if err != nil {
		return len(history), 0, err
	}
	return len(history), info.Size(), nil
}

func (c *Cache) NeedsRefresh(interval time.Duration) bool {
	var value string
	err := c.readDB.QueryRow("SELECT value FROM meta WHERE key = 'last_refresh'").Scan(&value)
	if err != nil {
		return true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return true
	}
	return time.Since(t) > interval
}

func (c *Cache) SetLastRefresh() error {
	_, err := c.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_refresh', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().Format(time.RFC3339))
	return err
}
