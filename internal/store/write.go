package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/watch-history-tools/internal/history"
)

// AddEntries archives entries from one export in a single transaction.
// Entries already archived (same title and time) are skipped. It returns
// the number of new entries.
func (s *Store) AddEntries(source string, entries []history.Entry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	importID, err := createImport(tx, source, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	added := 0
	for _, e := range entries {
		watchID, inserted, err := createWatch(tx, importID, e)
		if err != nil {
			return 0, err
		}
		if !inserted {
			continue
		}
		added++
		for i, ch := range e.Channels {
			if err := createWatchChannel(tx, watchID, i, ch); err != nil {
				return 0, err
			}
		}
	}

	if _, err := tx.Exec("UPDATE Import SET entries = ? WHERE id = ?", added, importID); err != nil {
		return 0, fmt.Errorf("updating import %d: %w", importID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}

func createImport(tx *sql.Tx, source string, at time.Time) (int64, error) {
	res, err := tx.Exec("INSERT INTO Import (source, imported_at, entries) VALUES (?, ?, 0)", source, at)
	if err != nil {
		return 0, fmt.Errorf("inserting import %q: %w", source, err)
	}
	return res.LastInsertId()
}

func createWatch(tx *sql.Tx, importID int64, e history.Entry) (int64, bool, error) {
	date := e.Time.UnixMilli()
	var id int64
	err := tx.QueryRow("SELECT id FROM Watch WHERE title = ? AND date = ?", e.Title, date).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("checking watch %q: %w", e.Title, err)
	}

	res, err := tx.Exec("INSERT INTO Watch (title, title_url, date, import) VALUES (?, ?, ?, ?)",
		e.Title, nullString(e.TitleURL), date, importID)
	if err != nil {
		return 0, false, fmt.Errorf("inserting watch %q: %w", e.Title, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading watch id: %w", err)
	}
	return id, true, nil
}

func createWatchChannel(tx *sql.Tx, watchID int64, position int, ch history.Channel) error {
	_, err := tx.Exec("INSERT INTO WatchChannel (watch, position, name, url) VALUES (?, ?, ?, ?)",
		watchID, position, ch.Name, nullString(ch.URL))
	if err != nil {
		return fmt.Errorf("inserting channel %q: %w", ch.Name, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
