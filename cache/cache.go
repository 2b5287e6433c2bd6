// Package cache stores decoded pixel grids in sqlite so later runs skip
// image decoding. Deleting the database file is always safe.
package cache

import (
	"database/sql"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/neurlang/concrete/datasets/images"
	"github.com/neurlang/concrete/errs"
)

// Cache is the bottleneck store. It is safe for concurrent use.
type Cache struct {
	db     *sql.DB
	logger *zap.Logger

	mut          sync.Mutex
	hits, misses int
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory store.
func Open(path string, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.IO(err, "opening bottleneck cache %q", path)
	}
	// a single connection keeps ":memory:" one database
	db.SetMaxOpenConns(1)

	c := &Cache{
		db:     db,
		logger: logger,
	}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, errs.IO(err, "migrating bottleneck cache %q", path)
	}
	logger.Info("bottleneck cache opened", zap.String("db_path", path))
	return c, nil
}

// migrate creates tables
func (c *Cache) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bottlenecks (
		digest BLOB NOT NULL,
		size INTEGER NOT NULL,
		pixels BLOB NOT NULL,
		PRIMARY KEY (digest, size)
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Get returns the grid stored for the image digest, or nil when there is none.
func (c *Cache) Get(digest [32]byte, size int) (*images.Grid, error) {
	var pixels []byte
	err := c.db.QueryRow(`SELECT pixels FROM bottlenecks WHERE digest = ? AND size = ?`,
		digest[:], size).Scan(&pixels)
	c.mut.Lock()
	defer c.mut.Unlock()
	if err == sql.ErrNoRows {
		c.misses++
		return nil, nil
	}
	if err != nil {
		return nil, errs.IO(err, "reading bottleneck")
	}
	c.hits++
	return images.NewGrid(size, pixels)
}

// Put stores the grid of the image digest, replacing an older row.
func (c *Cache) Put(digest [32]byte, g *images.Grid) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO bottlenecks (digest, size, pixels) VALUES (?, ?, ?)`,
		digest[:], g.Size(), g.Pixels())
	if err != nil {
		return errs.IO(err, "writing bottleneck")
	}
	return nil
}

// Stats reports the lookups answered and missed since Open.
func (c *Cache) Stats() (hits, misses int) {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.hits, c.misses
}

// Close closes the database.
func (c *Cache) Close() error {
	c.logger.Debug("bottleneck cache closed", zap.Int("hits", c.hits), zap.Int("misses", c.misses))
	return c.db.Close()
}
