package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/history"
	"github.com/ademuri/watch-history-tools/internal/store"
)

const export = `[
  {"header": "YouTube", "title": "Watched Lo-fi beats to study to", "titleUrl": "https://www.youtube.com/watch?v=a1",
   "subtitles": [{"name": "Lofi Girl"}], "time": "2024-03-01T02:00:00Z"},
  {"header": "YouTube", "title": "Watched lofi rain", "subtitles": [{"name": "Lofi Girl"}], "time": "2024-03-02T03:00:00Z"},
  {"header": "YouTube Music", "title": "Watched 재즈 piano music", "subtitles": [{"name": "Cafe"}], "time": "2024-03-09T21:00:00Z"},
  {"header": "YouTube", "title": "Watched K-pop hits 2024", "time": "2024-04-16T14:00:00Z"}
]`

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watch-history.json")
	if err := os.WriteFile(path, []byte(export), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}
	return path
}

func TestNoDataLoaded(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache.json"))

	checks := map[string]func() error{
		"Statistics":   func() error { _, err := s.Statistics(); return err },
		"Topics":       func() error { _, err := s.Topics(10); return err },
		"TimePatterns": func() error { _, err := s.TimePatterns(); return err },
		"ChannelStats": func() error { _, err := s.ChannelStats("x"); return err },
		"Monthly":      func() error { _, err := s.MonthlyTrends(3); return err },
		"Content":      func() error { _, err := s.ContentByTime(5); return err },
		"Phases":       func() error { _, err := s.Phases(14); return err },
		"Diversity":    func() error { _, err := s.Diversity(); return err },
		"Prompt":       func() error { _, _, err := s.Prompt(); return err },
		"Prompts":      func() error { _, err := s.Prompts(3); return err },
		"Export":       func() error { _, err := s.Export("json"); return err },
		"Suggest":      func() error { _, err := s.Suggest(); return err },
		"Report":       func() error { _, err := s.Report(time.Now()); return err },
	}
	for name, check := range checks {
		if err := check(); !errors.Is(err, ErrNoDataLoaded) {
			t.Errorf("%s error = %v, want ErrNoDataLoaded", name, err)
		}
	}
}

func TestLoadAndCache(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache.json")
	path := writeExport(t)

	s := New(cache)
	stats, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if stats.TotalVideos != 4 || stats.UniqueChannels != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if _, err := os.Stat(cache); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	restored := New(cache)
	if !restored.LoadCache() {
		t.Fatalf("LoadCache() = false")
	}
	if restored.FilePath() != path {
		t.Errorf("FilePath() = %q, want %q", restored.FilePath(), path)
	}
	entries, err := restored.Entries()
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	if len(entries) != 4 || entries[0].ChannelName() != "Lofi Girl" || entries[0].VideoID() != "a1" {
		t.Errorf("restored entries = %+v", entries)
	}
	if !entries[0].Time.Equal(time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)) {
		t.Errorf("restored time = %v", entries[0].Time)
	}

	if !restored.ClearCache() {
		t.Fatalf("ClearCache() = false")
	}
	if _, err := os.Stat(cache); !os.IsNotExist(err) {
		t.Errorf("cache still present after ClearCache: %v", err)
	}
	if _, err := restored.Entries(); !errors.Is(err, ErrNoDataLoaded) {
		t.Errorf("Entries() after clear error = %v", err)
	}
	if restored.LoadCache() {
		t.Errorf("LoadCache() after clear = true")
	}
	if !restored.ClearCache() {
		t.Errorf("ClearCache() with no cache = false")
	}
}

func TestLoadCache_corrupt(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(cache, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if New(cache).LoadCache() {
		t.Errorf("LoadCache(corrupt) = true")
	}
	if New("").LoadCache() {
		t.Errorf("LoadCache(no path) = true")
	}
}

func TestLoad_errors(t *testing.T) {
	s := New("")
	if _, err := s.Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, history.ErrFileAccess) {
		t.Errorf("Load(missing) error = %v, want ErrFileAccess", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte(`{"a": 1}`), 0o644)
	if _, err := s.Load(bad); !errors.Is(err, history.ErrParse) {
		t.Errorf("Load(bad) error = %v, want ErrParse", err)
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	os.WriteFile(empty, []byte(`[]`), 0o644)
	if _, err := s.Load(empty); !errors.Is(err, analysis.ErrEmptyInput) {
		t.Errorf("Load(empty) error = %v, want ErrEmptyInput", err)
	}
}

func TestAnalyses(t *testing.T) {
	s := New("")
	if _, err := s.Load(writeExport(t)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ta, err := s.Topics(5)
	if err != nil || ta.Keywords[0].Word != "lofi" {
		t.Errorf("Topics() = %+v, %v", ta, err)
	}
	if _, err := s.ChannelStats("nobody"); !errors.Is(err, analysis.ErrNotFound) {
		t.Errorf("ChannelStats(nobody) error = %v", err)
	}
	months, err := s.MonthlyTrends(0)
	if err != nil || len(months) != 2 {
		t.Errorf("MonthlyTrends() = %v, %v", months, err)
	}
	prompts, err := s.Prompts(3)
	if err != nil || len(prompts) != 3 {
		t.Errorf("Prompts(3) = %v, %v", prompts, err)
	}
	md, err := s.Export("markdown")
	if err != nil || !strings.HasPrefix(md, "# YouTube Watch History Analysis Report") {
		t.Errorf("Export(markdown) = %q, %v", md, err)
	}
	sugg, err := s.Suggest()
	if err != nil || len(sugg.CurrentFavorites) != 2 {
		t.Errorf("Suggest() = %+v, %v", sugg, err)
	}
}

func TestArchive(t *testing.T) {
	db, err := store.New(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer db.Close()

	s := New("", WithArchive(db))
	path := writeExport(t)
	if _, err := s.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := s.Load(path); err != nil {
		t.Fatalf("Load() again error: %v", err)
	}

	fresh := New("", WithArchive(db))
	stats, err := fresh.LoadArchive()
	if err != nil {
		t.Fatalf("LoadArchive() error: %v", err)
	}
	if stats.TotalVideos != 4 {
		t.Errorf("archived TotalVideos = %d, want 4", stats.TotalVideos)
	}

	if _, err := New("").LoadArchive(); err == nil {
		t.Errorf("LoadArchive() without archive succeeded")
	}
}

func TestConcurrentUse(t *testing.T) {
	s := New("")
	path := writeExport(t)
	if _, err := s.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				s.Load(path)
				return
			}
			if _, err := s.Diversity(); err != nil {
				t.Errorf("Diversity() error: %v", err)
			}
		}(i)
	}
	wg.Wait()
}
