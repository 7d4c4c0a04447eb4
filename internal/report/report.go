// Package report assembles analysis results into exportable documents.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/generator"
	"github.com/ademuri/watch-history-tools/internal/history"
	"github.com/ademuri/watch-history-tools/internal/topics"
)

var ErrUnknownFormat = errors.New("unknown export format")

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"

	exportKeywords = 10
	topicLimit     = 20
)

// Summary is the document written by Export.
type Summary struct {
	Statistics   StatisticsSummary   `json:"statistics" yaml:"statistics"`
	Topics       TopicsSummary       `json:"topics" yaml:"topics"`
	TimePatterns TimePatternsSummary `json:"time_patterns" yaml:"time_patterns"`
	Diversity    DiversitySummary    `json:"diversity" yaml:"diversity"`
}

type StatisticsSummary struct {
	TotalVideos     int     `json:"total_videos" yaml:"total_videos"`
	UniqueChannels  int     `json:"unique_channels" yaml:"unique_channels"`
	DateRange       string  `json:"date_range" yaml:"date_range"`
	VideosPerDayAvg float64 `json:"videos_per_day_avg" yaml:"videos_per_day_avg"`
}

type TopicsSummary struct {
	Keywords   []topics.Keyword `json:"keywords" yaml:"keywords"`
	Categories []string         `json:"categories" yaml:"categories"`
}

type TimePatternsSummary struct {
	PeakHours      []int    `json:"peak_hours" yaml:"peak_hours"`
	PeakDays       []string `json:"peak_days" yaml:"peak_days"`
	LateNightRatio float64  `json:"late_night_ratio" yaml:"late_night_ratio"`
	WeekendRatio   float64  `json:"weekend_ratio" yaml:"weekend_ratio"`
}

type DiversitySummary struct {
	Score          float64 `json:"score" yaml:"score"`
	Interpretation string  `json:"interpretation" yaml:"interpretation"`
}

// Summarize runs the analyses that make up an export.
func Summarize(entries []history.Entry, ex topics.Extractor) (Summary, error) {
	stats, err := analysis.ComputeStatistics(entries)
	if err != nil {
		return Summary{}, fmt.Errorf("computing statistics: %w", err)
	}
	patterns, err := analysis.AnalyzeTimePatterns(entries)
	if err != nil {
		return Summary{}, fmt.Errorf("analyzing time patterns: %w", err)
	}
	ta := topics.AnalyzeTopics(entries, topicLimit, ex)
	diversity := analysis.ComputeDiversity(entries)

	keywords := ta.Keywords
	if len(keywords) > exportKeywords {
		keywords = keywords[:exportKeywords]
	}
	return Summary{
		Statistics: StatisticsSummary{
			TotalVideos:     stats.TotalVideos,
			UniqueChannels:  stats.UniqueChannels,
			DateRange:       stats.DateRange(),
			VideosPerDayAvg: stats.VideosPerDayAvg,
		},
		Topics: TopicsSummary{Keywords: keywords, Categories: ta.Categories},
		TimePatterns: TimePatternsSummary{
			PeakHours:      patterns.PeakHours,
			PeakDays:       patterns.PeakDays,
			LateNightRatio: patterns.LateNightRatio,
			WeekendRatio:   patterns.WeekendRatio,
		},
		Diversity: DiversitySummary{Score: diversity.OverallScore, Interpretation: diversity.Interpretation},
	}, nil
}

// Export renders s as markdown, json or yaml. An empty format means
// markdown.
func Export(s Summary, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatMarkdown:
		return Markdown(s), nil
	case FormatJSON:
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding json: %w", err)
		}
		return string(out), nil
	case FormatYAML:
		return encodeYAML(s)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func encodeYAML(v any) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.String(), nil
}

func Markdown(s Summary) string {
	var b strings.Builder
	b.WriteString("# YouTube Watch History Analysis Report\n\n")

	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- **Total Videos**: %d\n", s.Statistics.TotalVideos)
	fmt.Fprintf(&b, "- **Unique Channels**: %d\n", s.Statistics.UniqueChannels)
	fmt.Fprintf(&b, "- **Date Range**: %s\n", s.Statistics.DateRange)
	fmt.Fprintf(&b, "- **Average Videos/Day**: %v\n\n", s.Statistics.VideosPerDayAvg)

	b.WriteString("## Top Keywords\n")
	for _, k := range s.Topics.Keywords {
		fmt.Fprintf(&b, "- %s: %d\n", k.Word, k.Count)
	}
	b.WriteString("\n## Categories\n")
	b.WriteString(strings.Join(s.Topics.Categories, ", "))
	b.WriteString("\n\n")

	hours := make([]string, len(s.TimePatterns.PeakHours))
	for i, h := range s.TimePatterns.PeakHours {
		hours[i] = fmt.Sprintf("%d:00", h)
	}
	b.WriteString("## Viewing Patterns\n")
	fmt.Fprintf(&b, "- **Peak Hours**: %s\n", strings.Join(hours, ", "))
	fmt.Fprintf(&b, "- **Peak Days**: %s\n", strings.Join(s.TimePatterns.PeakDays, ", "))
	fmt.Fprintf(&b, "- **Late Night Ratio**: %.1f%%\n", s.TimePatterns.LateNightRatio*100)
	fmt.Fprintf(&b, "- **Weekend Ratio**: %.1f%%\n\n", s.TimePatterns.WeekendRatio*100)

	b.WriteString("## Channel Diversity\n")
	fmt.Fprintf(&b, "- **Score**: %v/100\n", s.Diversity.Score)
	fmt.Fprintf(&b, "- **Interpretation**: %s\n\n", s.Diversity.Interpretation)

	b.WriteString("---\n*Generated by watch-history-tools*\n")
	return b.String()
}

// Report is the full profile written by the report command.
type Report struct {
	Metadata     Metadata                `yaml:"profile_metadata" json:"profile_metadata"`
	Statistics   analysis.Statistics     `yaml:"statistics" json:"statistics"`
	Diversity    analysis.Diversity      `yaml:"diversity" json:"diversity"`
	Topics       topics.Analysis         `yaml:"topics" json:"topics"`
	TimePatterns analysis.TimePattern    `yaml:"time_patterns" json:"time_patterns"`
	Monthly      []analysis.MonthlyTrend `yaml:"monthly_trends" json:"monthly_trends"`
	Trend        analysis.TrendSummary   `yaml:"trend" json:"trend"`
	ContentTime  []analysis.ContentTime  `yaml:"content_by_time" json:"content_by_time"`
	Phases       []analysis.Phase        `yaml:"phases" json:"phases"`
	Taste        generator.TasteProfile  `yaml:"taste_profile" json:"taste_profile"`
	Prompts      []generator.Prompt      `yaml:"prompts" json:"prompts"`
}

type Metadata struct {
	GeneratedDate string `yaml:"generated_date" json:"generated_date"`
	Source        string `yaml:"source" json:"source"`
	Extractor     string `yaml:"extractor" json:"extractor"`
	TimeInsight   string `yaml:"time_insight" json:"time_insight"`
}

// Generate builds the full profile for entries loaded from source.
func Generate(entries []history.Entry, source string, ex topics.Extractor, now time.Time) (*Report, error) {
	if ex == nil {
		ex = topics.SimpleExtractor{}
	}
	stats, err := analysis.ComputeStatistics(entries)
	if err != nil {
		return nil, fmt.Errorf("computing statistics: %w", err)
	}
	patterns, err := analysis.AnalyzeTimePatterns(entries)
	if err != nil {
		return nil, fmt.Errorf("analyzing time patterns: %w", err)
	}
	ta := topics.AnalyzeTopics(entries, topicLimit, ex)
	monthly := analysis.AnalyzeMonthlyTrends(entries, analysis.DefaultMonthlyTopN)
	taste := generator.BuildTasteProfile(ta, patterns)

	return &Report{
		Metadata: Metadata{
			GeneratedDate: now.Format("2006-01-02"),
			Source:        source,
			Extractor:     ex.Name(),
			TimeInsight:   analysis.TimeInsight(patterns),
		},
		Statistics:   stats,
		Diversity:    analysis.ComputeDiversity(entries),
		Topics:       ta,
		TimePatterns: patterns,
		Monthly:      monthly,
		Trend:        analysis.SummarizeTrend(monthly),
		ContentTime:  analysis.AnalyzeContentByTime(entries, analysis.DefaultContentTopN),
		Phases:       analysis.DetectWatchingPhases(entries, analysis.DefaultMinPhaseDays),
		Taste:        taste,
		Prompts:      generator.GenerateVariations(taste, 5),
	}, nil
}

// YAML encodes the report with two-space indentation.
func (r *Report) YAML() (string, error) {
	return encodeYAML(r)
}
