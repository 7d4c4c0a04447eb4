package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/ademuri/watch-history-tools/internal/history"
)

func createTestDb(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "watch-history.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%s) error: %v", dbPath, err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func watched(title, channel string, at time.Time) history.Entry {
	e := history.Entry{Title: title, TitleURL: "https://www.youtube.com/watch?v=" + title, Time: at}
	if channel != "" {
		e.Channels = []history.Channel{{Name: channel, URL: "https://www.youtube.com/@" + channel}}
	}
	return e
}

func TestAddEntries(t *testing.T) {
	s := createTestDb(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	entries := []history.Entry{
		watched("a", "Alpha", base),
		watched("b", "", base.Add(time.Hour)),
		watched("c", "Beta", base.Add(-time.Hour)),
	}

	added, err := s.AddEntries("first.json", entries)
	if err != nil {
		t.Fatalf("AddEntries failed: %v", err)
	}
	if added != 3 {
		t.Errorf("AddEntries added %d, want 3", added)
	}

	// Idempotent insert (same data plus one new entry)
	added, err = s.AddEntries("second.json", append(entries, watched("d", "Alpha", base.Add(2*time.Hour))))
	if err != nil {
		t.Fatalf("AddEntries (repeat) failed: %v", err)
	}
	if added != 1 {
		t.Errorf("AddEntries (repeat) added %d, want 1", added)
	}

	n, err := s.CountEntries()
	if err != nil {
		t.Fatalf("CountEntries: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 watches, got %d", n)
	}

	imp, ok, err := s.GetLastImport()
	if err != nil || !ok {
		t.Fatalf("GetLastImport() = %v, %v", ok, err)
	}
	if imp.Source != "second.json" || imp.Entries != 1 {
		t.Errorf("GetLastImport() = %+v", imp)
	}
}

func TestGetEntries(t *testing.T) {
	s := createTestDb(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 500_000_000, time.UTC)
	two := watched("two channels", "Alpha", base)
	two.Channels = append(two.Channels, history.Channel{Name: "Guest"})
	entries := []history.Entry{
		watched("later", "Beta", base.Add(time.Hour)),
		two,
		watched("no channel", "", base.Add(-time.Hour)),
	}
	if _, err := s.AddEntries("export.json", entries); err != nil {
		t.Fatalf("AddEntries failed: %v", err)
	}

	got, err := s.GetEntries()
	if err != nil {
		t.Fatalf("GetEntries failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("GetEntries returned %d entries, want 3", len(got))
	}
	if got[0].Title != "no channel" || len(got[0].Channels) != 0 {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[1].Title != "two channels" || len(got[1].Channels) != 2 || got[1].Channels[1].Name != "Guest" {
		t.Errorf("second entry = %+v", got[1])
	}
	if !got[1].Time.Equal(base) {
		t.Errorf("time = %v, want %v", got[1].Time, base)
	}
	if got[2].TitleURL != "https://www.youtube.com/watch?v=later" || got[2].ChannelName() != "Beta" {
		t.Errorf("third entry = %+v", got[2])
	}
}

func TestGetTopChannels(t *testing.T) {
	s := createTestDb(t)

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	entries := []history.Entry{
		watched("1", "Beta", jan),
		watched("2", "Alpha", jan.Add(time.Hour)),
		watched("3", "Alpha", jan.Add(2*time.Hour)),
		watched("4", "Beta", jan.Add(3*time.Hour)),
		watched("5", "Gamma", jan.Add(4*time.Hour)),
		watched("6", "Gamma", feb),
		watched("7", "Gamma", feb),
	}
	if _, err := s.AddEntries("export.json", entries); err != nil {
		t.Fatalf("AddEntries failed: %v", err)
	}

	got, err := s.GetTopChannels(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 2)
	if err != nil {
		t.Fatalf("GetTopChannels failed: %v", err)
	}
	want := []ChannelWatchCount{{"Beta", 2}, {"Alpha", 2}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("GetTopChannels(January) = %v, want %v", got, want)
	}

	got, err = s.GetTopChannels(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	if err != nil {
		t.Fatalf("GetTopChannels failed: %v", err)
	}
	if len(got) != 3 || got[0] != (ChannelWatchCount{"Gamma", 3}) {
		t.Errorf("GetTopChannels(2024) = %v", got)
	}
}

func TestGetLastImport_empty(t *testing.T) {
	s := createTestDb(t)
	_, ok, err := s.GetLastImport()
	if err != nil {
		t.Fatalf("GetLastImport() error: %v", err)
	}
	if ok {
		t.Errorf("GetLastImport() ok = true on empty archive")
	}
}

func TestNew_upgradesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE Watch (id INTEGER PRIMARY KEY AUTOINCREMENT, title TEXT NOT NULL, date INTEGER NOT NULL, import INTEGER, UNIQUE (title, date))"); err != nil {
		t.Fatalf("creating old table: %v", err)
	}
	db.Close()

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(old) error: %v", err)
	}
	defer s.Close()

	exists, err := columnExists(s.db, "Watch", "title_url")
	if err != nil {
		t.Fatalf("columnExists: %v", err)
	}
	if !exists {
		t.Errorf("title_url column was not added")
	}
}
