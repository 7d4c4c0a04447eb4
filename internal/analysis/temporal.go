package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/ademuri/watch-history-tools/internal/counter"
	"github.com/ademuri/watch-history-tools/internal/history"
)

const (
	peakHoursLimit = 3
	peakDaysLimit  = 2
	lateNightEnd   = 5
)

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

type hourDayCounts struct {
	hours *counter.Counter[int]
	days  *counter.Counter[string]
}

func countHoursAndDays(entries []history.Entry) hourDayCounts {
	c := hourDayCounts{hours: counter.New[int](), days: counter.New[string]()}
	for _, e := range entries {
		c.hours.Add(e.Time.Hour())
		c.days.Add(e.Time.Weekday().String())
	}
	return c
}

func (c hourDayCounts) peakHours() []int {
	var peaks []int
	for _, p := range c.hours.MostCommon(peakHoursLimit) {
		peaks = append(peaks, p.Key)
	}
	return peaks
}

func (c hourDayCounts) peakDays() []string {
	var peaks []string
	for _, p := range c.days.MostCommon(peakDaysLimit) {
		peaks = append(peaks, p.Key)
	}
	return peaks
}

// AnalyzeTimePatterns buckets entries by UTC hour and weekday.
func AnalyzeTimePatterns(entries []history.Entry) (TimePattern, error) {
	if len(entries) == 0 {
		return TimePattern{}, ErrEmptyInput
	}

	counts := countHoursAndDays(entries)
	lateNight, weekend := 0, 0
	for _, e := range entries {
		if e.Time.Hour() < lateNightEnd {
			lateNight++
		}
		if isWeekend(e.Time.Weekday()) {
			weekend++
		}
	}
	n := float64(len(entries))

	return TimePattern{
		PeakHours:          counts.peakHours(),
		PeakDays:           counts.peakDays(),
		HourlyDistribution: counts.hours.Map(),
		DailyDistribution:  counts.days.Map(),
		LateNightRatio:     roundTo(float64(lateNight)/n, 3),
		WeekendRatio:       roundTo(float64(weekend)/n, 3),
	}, nil
}

// TimeInsight summarizes a TimePattern in one line.
func TimeInsight(p TimePattern) string {
	var insights []string
	if p.LateNightRatio > 0.3 {
		insights = append(insights, "You're a night owl - 30%+ of videos watched between midnight and 5am")
	}
	if p.WeekendRatio > 0.5 {
		insights = append(insights, "Weekend watcher - majority of viewing happens on weekends")
	}
	if len(p.PeakHours) > 0 {
		insights = append(insights, fmt.Sprintf("Peak viewing hours: %v", p.PeakHours))
	}
	if len(insights) == 0 {
		return "Balanced viewing patterns"
	}
	return strings.Join(insights, " | ")
}

// GetChannelStats reports on every entry whose channel name contains query,
// ignoring case. The reported name is that of the first match.
func GetChannelStats(entries []history.Entry, query string) (ChannelStats, error) {
	q := strings.ToLower(query)
	var matched []history.Entry
	for _, e := range entries {
		name := e.ChannelName()
		if name != "" && strings.Contains(strings.ToLower(name), q) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return ChannelStats{}, fmt.Errorf("%w: no videos found for channel: %s", ErrNotFound, query)
	}

	first, last := timeRange(matched)
	counts := countHoursAndDays(matched)
	return ChannelStats{
		Channel:            matched[0].ChannelName(),
		TotalVideos:        len(matched),
		FirstWatched:       first,
		LastWatched:        last,
		ViewingPeriodDays:  wholeDays(first, last),
		PeakHours:          counts.peakHours(),
		PeakDays:           counts.peakDays(),
		HourlyDistribution: counts.hours.Map(),
		DailyDistribution:  counts.days.Map(),
	}, nil
}
