package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleExport = `[
  {
    "header": "YouTube",
    "title": "Watched Lo-fi beats to study to",
    "titleUrl": "https://www.youtube.com/watch?v=abc123&t=10",
    "subtitles": [{"name": "Chillhop", "url": "https://www.youtube.com/channel/x"}],
    "time": "2024-03-02T03:15:00.123Z"
  },
  {
    "header": "YouTube Music",
    "title": "Watched 재즈 piano music",
    "time": "2024-03-04T21:00:00+09:00"
  },
  {
    "header": "Google Search",
    "title": "Searched for cats",
    "time": "2024-03-04T10:00:00Z"
  },
  {
    "header": "YouTube",
    "title": "Watched broken timestamp",
    "time": "yesterday"
  },
  {
    "header": "YouTube",
    "subtitles": [{"url": "https://www.youtube.com/channel/y"}],
    "time": "2024-03-05T12:00:00Z"
  }
]`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Parse() returned %d entries, want 3", len(entries))
	}

	first := entries[0]
	if got, want := first.CleanTitle(), "Lo-fi beats to study to"; got != want {
		t.Errorf("CleanTitle() = %q, want %q", got, want)
	}
	if got, want := first.ChannelName(), "Chillhop"; got != want {
		t.Errorf("ChannelName() = %q, want %q", got, want)
	}
	if got, want := first.VideoID(), "abc123"; got != want {
		t.Errorf("VideoID() = %q, want %q", got, want)
	}
	if first.Time.Hour() != 3 || first.Time.Location() != time.UTC {
		t.Errorf("Time = %v, want 03:15 UTC", first.Time)
	}

	second := entries[1]
	if got, want := second.Time, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("offset time = %v, want %v", got, want)
	}
	if second.ChannelName() != "" {
		t.Errorf("ChannelName() = %q, want empty", second.ChannelName())
	}
	if second.VideoID() != "" {
		t.Errorf("VideoID() = %q, want empty", second.VideoID())
	}

	third := entries[2]
	if third.Title != "Unknown" {
		t.Errorf("missing title = %q, want Unknown", third.Title)
	}
	if third.ChannelName() != "Unknown" {
		t.Errorf("missing channel name = %q, want Unknown", third.ChannelName())
	}
}

func TestParse_notAList(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"header": "YouTube"}`))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Parse(object) error = %v, want ErrParse", err)
	}
}

func TestParse_skipsMalformedRecords(t *testing.T) {
	entries, err := Parse(strings.NewReader(`[1, "x", {"header": "YouTube", "title": "ok", "time": "2024-01-01T00:00:00Z"}]`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Parse() returned %d entries, want 1", len(entries))
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch-history.json")
	if err := os.WriteFile(path, []byte(sampleExport), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	entries, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("ParseFile() returned %d entries, want 3", len(entries))
	}

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrFileAccess) {
		t.Errorf("ParseFile(missing) error = %v, want ErrFileAccess", err)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-01-02T03:04:05Z", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), true},
		{"2024-01-02T03:04:05.5+01:00", time.Date(2024, 1, 2, 2, 4, 5, 500000000, time.UTC), true},
		{"2024-01-02T03:04:05", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), true},
		{"not a time", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseTime(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
