// Package journal records finished runs in a SQLite database.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT    NOT NULL,
	program     TEXT    NOT NULL,
	argument    INTEGER NOT NULL,
	result      TEXT    NOT NULL,
	exit_code   INTEGER NOT NULL,
	cells       INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	started_at  TEXT    NOT NULL
)`

// Entry is one run.
type Entry struct {
	RunID     string
	Program   string
	Argument  int64
	Result    string // "Interpreter returned ..." text or the fault line
	ExitCode  int
	Cells     int
	Duration  time.Duration
	StartedAt time.Time
}

type Journal struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Record(ctx context.Context, e Entry) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, program, argument, result, exit_code, cells, duration_ns, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Program, e.Argument, e.Result, e.ExitCode, e.Cells,
		e.Duration.Nanoseconds(), e.StartedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("journal: record: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, program, argument, result, exit_code, cells, duration_ns, started_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			nanos   int64
			started string
		)
		if err := rows.Scan(&e.RunID, &e.Program, &e.Argument, &e.Result, &e.ExitCode, &e.Cells, &nanos, &started); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.Duration = time.Duration(nanos)
		if e.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("journal: started_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
