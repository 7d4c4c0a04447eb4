package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/watch-history-tools/internal/history"
)

type Import struct {
	ID         int64
	Source     string
	ImportedAt time.Time
	Entries    int
}

// GetEntries returns every archived entry, oldest first.
func (s *Store) GetEntries() ([]history.Entry, error) {
	query := `
	SELECT Watch.id, Watch.title, Watch.title_url, Watch.date, WatchChannel.name, WatchChannel.url
	FROM Watch
	LEFT JOIN WatchChannel ON WatchChannel.watch = Watch.id
	ORDER BY Watch.date, Watch.id, WatchChannel.position
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	lastID := int64(-1)
	for rows.Next() {
		var (
			id                    int64
			title                 string
			titleURL, name, chURL sql.NullString
			date                  int64
		)
		if err := rows.Scan(&id, &title, &titleURL, &date, &name, &chURL); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if id != lastID {
			entries = append(entries, history.Entry{
				Title:    title,
				TitleURL: titleURL.String,
				Time:     time.UnixMilli(date).UTC(),
			})
			lastID = id
		}
		if name.Valid {
			e := &entries[len(entries)-1]
			e.Channels = append(e.Channels, history.Channel{Name: name.String, URL: chURL.String})
		}
	}
	return entries, rows.Err()
}

// GetLastImport returns the most recent import. ok is false when nothing
// has been imported yet.
func (s *Store) GetLastImport() (imp Import, ok bool, err error) {
	row := s.db.QueryRow("SELECT id, source, imported_at, entries FROM Import ORDER BY id DESC LIMIT 1")
	err = row.Scan(&imp.ID, &imp.Source, &imp.ImportedAt, &imp.Entries)
	if err == sql.ErrNoRows {
		return Import{}, false, nil
	}
	if err != nil {
		return Import{}, false, fmt.Errorf("scanning last import: %w", err)
	}
	return imp, true, nil
}

func (s *Store) CountEntries() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Watch").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
