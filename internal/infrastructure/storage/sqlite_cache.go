package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS last_request (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	cookie TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	status TEXT NOT NULL
)`

// SQLiteCache persists the single last-request snapshot in a sqlite file.
// One reader at validation start, one writer at validation end; no
// concurrent access is expected.
type SQLiteCache struct {
	db *sql.DB
}

var _ ports.RequestCache = (*SQLiteCache)(nil)

// Open creates (or opens) the cache database at path and ensures the
// snapshot table exists. ":memory:" is accepted for tests.
func Open(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	return NewSQLiteCache(db)
}

// NewSQLiteCache wires an existing database handle.
func NewSQLiteCache(db *sql.DB) (*SQLiteCache, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure cache schema: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Load reads the snapshot. An empty table reports ok=false, not an error.
func (c *SQLiteCache) Load(ctx context.Context) (domain.Request, bool, error) {
	query, args, err := sq.
		Select("cookie", "start_date", "end_date", "status").
		From("last_request").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return domain.Request{}, false, fmt.Errorf("build load query: %w", err)
	}

	var cookie, startRaw, endRaw, statusRaw string
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&cookie, &startRaw, &endRaw, &statusRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Request{}, false, nil
	}
	if err != nil {
		return domain.Request{}, false, fmt.Errorf("load last request: %w", err)
	}

	startDate, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return domain.Request{}, false, fmt.Errorf("parse cached start date: %w", err)
	}
	endDate, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return domain.Request{}, false, fmt.Errorf("parse cached end date: %w", err)
	}

	return domain.Request{
		Cookie:    cookie,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.Status(statusRaw),
	}, true, nil
}

// Store overwrites the snapshot unconditionally.
func (c *SQLiteCache) Store(ctx context.Context, req domain.Request) error {
	query, args, err := sq.
		Insert("last_request").
		Columns("id", "cookie", "start_date", "end_date", "status").
		Values(1, req.Cookie, req.StartDate.Format(time.RFC3339), req.EndDate.Format(time.RFC3339), string(req.Status)).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			cookie = excluded.cookie,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build store query: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store last request: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
