// Package history reads watch-history exports into Entry values.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrFileAccess = errors.New("history file not accessible")
	ErrParse      = errors.New("history file is not a list of records")
)

const (
	titlePrefix  = "Watched "
	videoIDMark  = "watch?v="
	unknownTitle = "Unknown"
	unknownName  = "Unknown"
)

// Headers accepted as watch activity. Anything else in the export is ignored.
var acceptedHeaders = map[string]bool{
	"YouTube":       true,
	"YouTube Music": true,
}

type Channel struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Entry is one watch record. The json tags match the export format, so the
// same type doubles as the snapshot projection.
type Entry struct {
	Title    string    `json:"title"`
	TitleURL string    `json:"titleUrl,omitempty"`
	Time     time.Time `json:"time"`
	Channels []Channel `json:"subtitles,omitempty"`
}

// CleanTitle strips the "Watched " prefix the export puts on every title.
func (e Entry) CleanTitle() string {
	return strings.TrimPrefix(e.Title, titlePrefix)
}

// ChannelName returns the first channel's name, or "" when there is none.
func (e Entry) ChannelName() string {
	if len(e.Channels) == 0 {
		return ""
	}
	return e.Channels[0].Name
}

func (e Entry) VideoID() string {
	i := strings.Index(e.TitleURL, videoIDMark)
	if i < 0 {
		return ""
	}
	id := e.TitleURL[i+len(videoIDMark):]
	if j := strings.IndexByte(id, '&'); j >= 0 {
		id = id[:j]
	}
	return id
}

type rawRecord struct {
	Header    string  `json:"header"`
	Title     *string `json:"title"`
	TitleURL  string  `json:"titleUrl"`
	Time      string  `json:"time"`
	Subtitles []struct {
		Name *string `json:"name"`
		URL  string  `json:"url"`
	} `json:"subtitles"`
}

// ParseFile reads and parses the export at path.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes a JSON array of activity records. Records with an unknown
// header, an undecodable shape or an unparseable time are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	var records []json.RawMessage
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	entries := make([]Entry, 0, len(records))
	for _, msg := range records {
		var rec rawRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			continue
		}
		if !acceptedHeaders[rec.Header] {
			continue
		}
		ts, err := ParseTime(rec.Time)
		if err != nil {
			continue
		}
		entries = append(entries, newEntry(rec, ts))
	}
	return entries, nil
}

func newEntry(rec rawRecord, ts time.Time) Entry {
	title := unknownTitle
	if rec.Title != nil {
		title = norm.NFC.String(*rec.Title)
	}
	e := Entry{
		Title:    title,
		TitleURL: rec.TitleURL,
		Time:     ts,
	}
	for _, s := range rec.Subtitles {
		name := unknownName
		if s.Name != nil {
			name = norm.NFC.String(*s.Name)
		}
		e.Channels = append(e.Channels, Channel{Name: name, URL: s.URL})
	}
	return e
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts ISO-8601 timestamps with a Z suffix or a numeric offset
// and returns them in UTC. Timestamps without an offset are read as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
