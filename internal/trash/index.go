package trash

import (
	"database/sql"
	"errors"
	"fmt"

	"iv-go/internal/trash/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// index is the SQLite bookkeeping behind the filesystem trash: which
// stored file belongs to which original path, and when it was deleted.
type index struct {
	db *sql.DB
}

// openIndex opens (creating if needed) the index database at path and
// brings its schema up to date. path can be ":memory:" for tests.
func openIndex(path string) (*index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trash index: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating trash index: %w", err)
	}

	return &index{db: db}, nil
}

func (i *index) add(e Entry) error {
	_, err := i.db.Exec(
		`INSERT INTO trash_entries (id, basename, original_path, trashed_name, deleted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Basename, e.OriginalPath, e.TrashedName, e.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("recording trash entry: %w", err)
	}
	return nil
}

// latestByBasename returns the most recently deleted entry with the given
// base name, or nil when none exists.
func (i *index) latestByBasename(basename string) (*Entry, error) {
	row := i.db.QueryRow(
		`SELECT id, basename, original_path, trashed_name, deleted_at
		 FROM trash_entries WHERE basename = ?
		 ORDER BY deleted_at DESC, id DESC LIMIT 1`,
		basename,
	)

	var e Entry
	err := row.Scan(&e.ID, &e.Basename, &e.OriginalPath, &e.TrashedName, &e.DeletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding trash entry: %w", err)
	}
	return &e, nil
}

func (i *index) remove(id string) error {
	if _, err := i.db.Exec(`DELETE FROM trash_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("removing trash entry: %w", err)
	}
	return nil
}

// list returns all entries, newest first.
func (i *index) list() ([]Entry, error) {
	rows, err := i.db.Query(
		`SELECT id, basename, original_path, trashed_name, deleted_at
		 FROM trash_entries ORDER BY deleted_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing trash entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Basename, &e.OriginalPath, &e.TrashedName, &e.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning trash entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing trash entries: %w", err)
	}
	return entries, nil
}

func (i *index) close() error {
	if i.db != nil {
		return i.db.Close()
	}
	return nil
}
