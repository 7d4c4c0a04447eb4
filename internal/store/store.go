// Package store archives watch history in SQLite so that several exports
// can be accumulated and queried together.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Watch.date is milliseconds since the Unix epoch, UTC.
const schema = `
CREATE TABLE IF NOT EXISTS Import (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  imported_at DATETIME NOT NULL,
  entries INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS Watch (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  title_url TEXT,
  date INTEGER NOT NULL,
  import INTEGER,
  FOREIGN KEY (import) REFERENCES Import(id),
  UNIQUE (title, date)
);

CREATE TABLE IF NOT EXISTS WatchChannel (
  watch INTEGER NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  url TEXT,
  FOREIGN KEY (watch) REFERENCES Watch(id),
  PRIMARY KEY (watch, position)
);

CREATE INDEX IF NOT EXISTS WatchDate ON Watch(date);
`

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// ensureSchema upgrades archives created before the title_url column existed.
func ensureSchema(db *sql.DB) error {
	return addColumnIfNotExists(db, "Watch", "title_url", "TEXT")
}

func addColumnIfNotExists(db *sql.DB, table, column, typeDef string) error {
	exists, err := columnExists(db, table, column)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if !exists {
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typeDef)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, column, err)
		}
	}
	return nil
}

func columnExists(db *sql.DB, tableName string, columnName string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == columnName {
			return true, nil
		}
	}
	return false, rows.Err()
}
