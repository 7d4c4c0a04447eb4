// Package session holds the watch history currently loaded for analysis
// and runs every analysis against it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/generator"
	"github.com/ademuri/watch-history-tools/internal/history"
	"github.com/ademuri/watch-history-tools/internal/report"
	"github.com/ademuri/watch-history-tools/internal/topics"
)

// profileTopics is how many keywords feed a taste profile.
const profileTopics = 20

var ErrNoDataLoaded = errors.New("please call analyze_watch_history first to load data")

// Archive receives every loaded history and can hand it back later.
type Archive interface {
	AddEntries(source string, entries []history.Entry) (int, error)
	GetEntries() ([]history.Entry, error)
}

// Session is safe for concurrent use. Loads replace the data wholesale.
type Session struct {
	mu        sync.Mutex
	entries   []history.Entry
	filePath  string
	cachePath string
	extractor topics.Extractor
	archive   Archive
}

type Option func(*Session)

// WithArchive appends every loaded history to a.
func WithArchive(a Archive) Option {
	return func(s *Session) { s.archive = a }
}

func WithExtractor(ex topics.Extractor) Option {
	return func(s *Session) { s.extractor = ex }
}

// New creates an empty session whose snapshot lives at cachePath. An empty
// cachePath disables the snapshot.
func New(cachePath string, opts ...Option) *Session {
	s := &Session{cachePath: cachePath, extractor: topics.SimpleExtractor{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type snapshot struct {
	FilePath string          `json:"file_path"`
	Entries  []history.Entry `json:"entries"`
}

// Load parses the export at path, replaces the session data with it and
// returns its statistics.
func (s *Session) Load(path string) (analysis.Statistics, error) {
	entries, err := history.ParseFile(path)
	if err != nil {
		return analysis.Statistics{}, err
	}
	stats, err := analysis.ComputeStatistics(entries)
	if err != nil {
		return analysis.Statistics{}, fmt.Errorf("%s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.filePath = path
	if !s.saveCacheLocked() {
		log.Printf("could not write cache %s", s.cachePath)
	}
	if s.archive != nil {
		added, err := s.archive.AddEntries(path, entries)
		if err != nil {
			log.Printf("archiving %s: %v", path, err)
		} else {
			log.Printf("archived %d new entries from %s", added, path)
		}
	}
	return stats, nil
}

// LoadArchive replaces the session data with everything in the archive.
func (s *Session) LoadArchive() (analysis.Statistics, error) {
	if s.archive == nil {
		return analysis.Statistics{}, errors.New("no archive configured")
	}
	entries, err := s.archive.GetEntries()
	if err != nil {
		return analysis.Statistics{}, fmt.Errorf("reading archive: %w", err)
	}
	stats, err := analysis.ComputeStatistics(entries)
	if err != nil {
		return analysis.Statistics{}, fmt.Errorf("archive: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.filePath = ""
	if !s.saveCacheLocked() {
		log.Printf("could not write cache %s", s.cachePath)
	}
	return stats, nil
}

func (s *Session) saveCacheLocked() bool {
	if s.cachePath == "" {
		return false
	}
	data, err := json.Marshal(snapshot{FilePath: s.filePath, Entries: s.entries})
	if err != nil {
		return false
	}
	return os.WriteFile(s.cachePath, data, 0o600) == nil
}

// LoadCache restores the last loaded history from the snapshot.
func (s *Session) LoadCache() bool {
	if s.cachePath == "" {
		return false
	}
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		return false
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return false
	}
	for i := range snap.Entries {
		snap.Entries[i].Time = snap.Entries[i].Time.UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = snap.Entries
	s.filePath = snap.FilePath
	return true
}

// ClearCache removes the snapshot and forgets the loaded data. A missing
// snapshot counts as cleared.
func (s *Session) ClearCache() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cachePath != "" {
		if err := os.Remove(s.cachePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return false
		}
	}
	s.entries = nil
	s.filePath = ""
	return true
}

// FilePath is the path the current data was loaded from.
func (s *Session) FilePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filePath
}

func (s *Session) Extractor() topics.Extractor {
	return s.extractor
}

// Entries returns the loaded entries, or ErrNoDataLoaded.
func (s *Session) Entries() ([]history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		return nil, ErrNoDataLoaded
	}
	return s.entries, nil
}

func (s *Session) Statistics() (analysis.Statistics, error) {
	entries, err := s.Entries()
	if err != nil {
		return analysis.Statistics{}, err
	}
	return analysis.ComputeStatistics(entries)
}

func (s *Session) Topics(limit int) (topics.Analysis, error) {
	entries, err := s.Entries()
	if err != nil {
		return topics.Analysis{}, err
	}
	return topics.AnalyzeTopics(entries, limit, s.extractor), nil
}

func (s *Session) TimePatterns() (analysis.TimePattern, error) {
	entries, err := s.Entries()
	if err != nil {
		return analysis.TimePattern{}, err
	}
	return analysis.AnalyzeTimePatterns(entries)
}

func (s *Session) ChannelStats(name string) (analysis.ChannelStats, error) {
	entries, err := s.Entries()
	if err != nil {
		return analysis.ChannelStats{}, err
	}
	return analysis.GetChannelStats(entries, name)
}

func (s *Session) MonthlyTrends(topN int) ([]analysis.MonthlyTrend, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return analysis.AnalyzeMonthlyTrends(entries, topN), nil
}

func (s *Session) ContentByTime(topN int) ([]analysis.ContentTime, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return analysis.AnalyzeContentByTime(entries, topN), nil
}

func (s *Session) Phases(minPhaseDays int) ([]analysis.Phase, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return analysis.DetectWatchingPhases(entries, minPhaseDays), nil
}

func (s *Session) Diversity() (analysis.Diversity, error) {
	entries, err := s.Entries()
	if err != nil {
		return analysis.Diversity{}, err
	}
	return analysis.ComputeDiversity(entries), nil
}

// TasteProfile runs the topic and time analyses that feed prompt
// generation.
func (s *Session) TasteProfile() (generator.TasteProfile, error) {
	entries, err := s.Entries()
	if err != nil {
		return generator.TasteProfile{}, err
	}
	tp, err := analysis.AnalyzeTimePatterns(entries)
	if err != nil {
		return generator.TasteProfile{}, err
	}
	ta := topics.AnalyzeTopics(entries, profileTopics, s.extractor)
	return generator.BuildTasteProfile(ta, tp), nil
}

func (s *Session) Prompt() (generator.TasteProfile, generator.Prompt, error) {
	profile, err := s.TasteProfile()
	if err != nil {
		return generator.TasteProfile{}, generator.Prompt{}, err
	}
	return profile, generator.GeneratePrompt(profile), nil
}

func (s *Session) Prompts(count int) ([]generator.Prompt, error) {
	profile, err := s.TasteProfile()
	if err != nil {
		return nil, err
	}
	return generator.GenerateVariations(profile, count), nil
}

func (s *Session) Export(format string) (string, error) {
	entries, err := s.Entries()
	if err != nil {
		return "", err
	}
	summary, err := report.Summarize(entries, s.extractor)
	if err != nil {
		return "", err
	}
	return report.Export(summary, format)
}

func (s *Session) Suggest() (report.Suggestions, error) {
	entries, err := s.Entries()
	if err != nil {
		return report.Suggestions{}, err
	}
	tp, err := analysis.AnalyzeTimePatterns(entries)
	if err != nil {
		return report.Suggestions{}, err
	}
	ta := topics.AnalyzeTopics(entries, profileTopics, s.extractor)
	return report.Suggest(entries, ta, tp, generator.BuildTasteProfile(ta, tp)), nil
}

func (s *Session) Report(now time.Time) (*report.Report, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return report.Generate(entries, s.FilePath(), s.extractor, now)
}
