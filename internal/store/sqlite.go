package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/tyler180/sportsref/pkg/record"
)

// ErrBadName is returned for table or column names that are not plain
// identifiers.
var ErrBadName = errors.New("store: invalid identifier")

var reIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite writes records to a local database file, one table per entity kind.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path; ":memory:" works for tests.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	// a :memory: database lives and dies with its connection
	db.SetMaxOpenConns(1)
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// DB exposes the handle for ad hoc queries.
func (s *SQLite) DB() *sql.DB { return s.db }

func columnType(k record.Kind) string {
	switch k {
	case record.Int:
		return "INTEGER"
	case record.Float:
		return "REAL"
	}
	return "TEXT"
}

func quote(name string) (string, error) {
	if !reIdent.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return `"` + name + `"`, nil
}

// createSQL builds the CREATE TABLE statement for t with id as primary key.
func createSQL(name string, t record.Table) (string, error) {
	tbl, err := quote(name)
	if err != nil {
		return "", err
	}
	cols := []string{`"id" TEXT PRIMARY KEY`}
	for _, d := range t {
		if d.Name == "id" {
			continue
		}
		c, err := quote(d.Name)
		if err != nil {
			return "", err
		}
		cols = append(cols, c+" "+columnType(d.Kind))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tbl, strings.Join(cols, ", ")), nil
}

// WriteRecords creates table name from the descriptor columns of t when
// missing and upserts every item. Absent values are written as NULL.
func (s *SQLite) WriteRecords(ctx context.Context, name string, t record.Table, items []Item) error {
	ddl, err := createSQL(name, t)
	if err != nil {
		return err
	}
	slog.Debug("sqlite create", "sql", ddl)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	cols := []string{`"id"`}
	names := []string{}
	for _, d := range t {
		if d.Name == "id" {
			continue
		}
		c, _ := quote(d.Name)
		cols = append(cols, c)
		names = append(names, d.Name)
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	tbl, _ := quote(name)
	insert := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)", tbl, strings.Join(cols, ", "), marks)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", name, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", name, err)
	}
	defer stmt.Close()

	written := 0
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		args := make([]any, 0, len(cols))
		args = append(args, it.ID)
		for _, n := range names {
			args = append(args, it.Row[n])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %s %s: %w", name, it.ID, err)
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	slog.Debug("sqlite export done", "table", name, "rows", written)
	return nil
}
