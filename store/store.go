package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/regionview/world"
)

// ErrNoWorld is returned by LoadWorld when nothing has been saved yet
var ErrNoWorld = errors.New("no saved world")

// formatVersion is bumped when the region blob layout changes
const formatVersion = "1"

// Meta keys
const (
	metaFormat  = "format"
	metaWorldID = "world_id"
	metaTick    = "tick"
)

// Store persists a world snapshot in a SQLite file
type Store struct {
	db *sql.DB
}

// Open creates or opens the snapshot database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("open store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS regions (
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			last_update_tick INTEGER NOT NULL,
			blocks BLOB NOT NULL,
			PRIMARY KEY (x, y, z)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Close releases the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveWorld replaces the stored snapshot with every resident region of w
func (s *Store) SaveWorld(ctx context.Context, w *world.World) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM regions;`); err != nil {
		return fmt.Errorf("save world: %w", err)
	}

	meta := [][2]string{
		{metaFormat, formatVersion},
		{metaWorldID, strconv.FormatUint(uint64(w.ID()), 10)},
		{metaTick, w.CurrentTick().String()},
	}
	for _, kv := range meta {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO meta(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
			kv[0], kv[1]); err != nil {
			return fmt.Errorf("save world meta %s: %w", kv[0], err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO regions(x, y, z, last_update_tick, blocks) VALUES(?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	defer stmt.Close()

	for _, c := range w.Coords() {
		cr, _ := w.Lookup(c)
		if _, err = stmt.ExecContext(ctx, c.X, c.Y, c.Z, int64(cr.LastUpdateTick), EncodeRegion(cr.Region)); err != nil {
			return fmt.Errorf("save region %s: %w", c, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	return nil
}

// LoadWorld rebuilds the saved world
// Region ticks are restored as saved, so a renderer sees them as already current
func (s *Store) LoadWorld(ctx context.Context) (*world.World, error) {
	meta, err := s.readMeta(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := meta[metaTick]; !ok {
		return nil, ErrNoWorld
	}
	if v := meta[metaFormat]; v != formatVersion {
		return nil, fmt.Errorf("load world: unsupported format %q", v)
	}
	id, err := strconv.ParseUint(meta[metaWorldID], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("load world id: %w", err)
	}
	tick, err := strconv.ParseUint(meta[metaTick], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("load world tick: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT x, y, z, last_update_tick, blocks FROM regions;`)
	if err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}
	defer rows.Close()

	regions := make(map[world.Coord]world.CachedRegion)
	for rows.Next() {
		var (
			c    world.Coord
			last int64
			blob []byte
		)
		if err := rows.Scan(&c.X, &c.Y, &c.Z, &last, &blob); err != nil {
			return nil, fmt.Errorf("load regions: %w", err)
		}
		region, err := DecodeRegion(blob)
		if err != nil {
			return nil, fmt.Errorf("load region %s: %w", c, err)
		}
		regions[c] = world.CachedRegion{Region: region, LastUpdateTick: world.Tick(last)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}

	w := world.New(world.ID(id))
	w.Restore(world.Tick(tick), regions)
	return w, nil
}

func (s *Store) readMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta;`)
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("read meta: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}
