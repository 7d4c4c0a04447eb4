// Package analysis computes statistics and temporal patterns over a loaded
// watch history.
package analysis

import (
	"errors"
	"math"
	"time"

	"github.com/ademuri/watch-history-tools/internal/counter"
	"github.com/ademuri/watch-history-tools/internal/history"
)

var (
	ErrEmptyInput = errors.New("no entries to analyze")
	ErrNotFound   = errors.New("not found")
)

const (
	dateFormat       = "2006-01-02"
	topChannelsLimit = 20
	concentrationTop = 5
)

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// wholeDays is the number of complete days between a and b.
func wholeDays(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

func timeRange(entries []history.Entry) (first, last time.Time) {
	first, last = entries[0].Time, entries[0].Time
	for _, e := range entries[1:] {
		if e.Time.Before(first) {
			first = e.Time
		}
		if e.Time.After(last) {
			last = e.Time
		}
	}
	return first, last
}

func channelCounter(entries []history.Entry) *counter.Counter[string] {
	c := counter.New[string]()
	for _, e := range entries {
		if name := e.ChannelName(); name != "" {
			c.Add(name)
		}
	}
	return c
}

func ComputeStatistics(entries []history.Entry) (Statistics, error) {
	if len(entries) == 0 {
		return Statistics{}, ErrEmptyInput
	}

	channels := channelCounter(entries)
	first, last := timeRange(entries)
	days := wholeDays(first, last)
	if days < 1 {
		days = 1
	}

	stats := Statistics{
		TotalVideos:     len(entries),
		UniqueChannels:  channels.Len(),
		DateRangeStart:  first,
		DateRangeEnd:    last,
		VideosPerDayAvg: roundTo(float64(len(entries))/float64(days), 2),
	}
	for _, p := range channels.MostCommon(topChannelsLimit) {
		stats.TopChannels = append(stats.TopChannels, ChannelCount{Channel: p.Key, Count: p.Count})
	}
	return stats, nil
}

// ComputeDiversity scores how evenly viewing is spread across channels.
// Empty input is not an error; it yields a zero score with an explanation.
func ComputeDiversity(entries []history.Entry) Diversity {
	if len(entries) == 0 {
		return Diversity{Interpretation: "No data to analyze"}
	}
	channels := channelCounter(entries)
	total := channels.Total()
	if total == 0 {
		return Diversity{Interpretation: "No channel data available"}
	}

	entropy := 0.0
	for _, p := range channels.MostCommon(0) {
		share := float64(p.Count) / float64(total)
		entropy -= share * math.Log2(share)
	}
	maxEntropy := 1.0
	if total > 1 {
		maxEntropy = math.Log2(float64(total))
	}
	normalized := entropy / maxEntropy * 100

	top := 0
	for _, p := range channels.MostCommon(concentrationTop) {
		top += p.Count
	}
	concentration := float64(top) / float64(total) * 100
	uniqueRatio := float64(channels.Len()) / float64(total)

	score := normalized*0.5 + (100-concentration)*0.3 + uniqueRatio*100*0.2
	score = math.Min(100, math.Max(0, score))

	return Diversity{
		OverallScore:            roundTo(score, 1),
		ChannelEntropy:          roundTo(entropy, 3),
		TopChannelConcentration: roundTo(concentration, 1),
		UniqueRatio:             roundTo(uniqueRatio, 3),
		Interpretation:          interpretDiversity(score),
	}
}

func interpretDiversity(score float64) string {
	switch {
	case score >= 70:
		return "Highly diverse - you explore many different channels"
	case score >= 50:
		return "Moderately diverse - you have favorites but still explore"
	case score >= 30:
		return "Focused viewer - you stick to your preferred channels"
	default:
		return "Very focused - you primarily watch a few channels"
	}
}
