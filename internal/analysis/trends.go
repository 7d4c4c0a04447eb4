package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ademuri/watch-history-tools/internal/counter"
	"github.com/ademuri/watch-history-tools/internal/history"
	"github.com/ademuri/watch-history-tools/internal/topics"
)

const (
	DefaultMonthlyTopN   = 3
	DefaultContentTopN   = 5
	DefaultMinPhaseDays  = 14
	minPhaseWeeks        = 2
	monthKeyFormat       = "2006-01"
	phasePeriodFormat    = "2006.01"
	trendChangeThreshold = 10.0
)

// TimeSlot is a fixed range of UTC hours, [Start, End).
type TimeSlot struct {
	Name  string
	Start int
	End   int
	Hours string
}

var TimeSlots = []TimeSlot{
	{"late_night", 0, 5, "00:00-05:00"},
	{"morning", 5, 12, "05:00-12:00"},
	{"afternoon", 12, 18, "12:00-18:00"},
	{"evening", 18, 24, "18:00-24:00"},
}

func slotIndex(hour int) int {
	for i, s := range TimeSlots {
		if hour >= s.Start && hour < s.End {
			return i
		}
	}
	return len(TimeSlots) - 1
}

var phaseNames = map[string]string{
	"music":         "Music Exploration",
	"gaming":        "Gaming Focus",
	"tech":          "Tech Learning",
	"education":     "Study Period",
	"entertainment": "Entertainment Binge",
	"general":       "Mixed Viewing",
}

func categoryCounts(entries []history.Entry) *counter.Counter[string] {
	c := counter.New[string]()
	for _, e := range entries {
		for _, cat := range topics.MatchCategories(e.CleanTitle()) {
			c.Add(cat)
		}
	}
	return c
}

func topKeys[K comparable](c *counter.Counter[K], n int) []K {
	keys := []K{}
	for _, p := range c.MostCommon(n) {
		keys = append(keys, p.Key)
	}
	return keys
}

func topCategories(entries []history.Entry, n int) []string {
	cats := topKeys(categoryCounts(entries), n)
	if len(cats) == 0 {
		return []string{topics.DefaultCategory}
	}
	return cats
}

// AnalyzeMonthlyTrends groups entries by calendar month, oldest first.
// topN <= 0 means DefaultMonthlyTopN. Empty input gives an empty list.
func AnalyzeMonthlyTrends(entries []history.Entry, topN int) []MonthlyTrend {
	if topN <= 0 {
		topN = DefaultMonthlyTopN
	}
	byMonth := make(map[string][]history.Entry)
	for _, e := range entries {
		key := e.Time.Format(monthKeyFormat)
		byMonth[key] = append(byMonth[key], e)
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	trends := []MonthlyTrend{}
	for _, month := range months {
		monthEntries := byMonth[month]
		activeDays := make(map[string]bool)
		for _, e := range monthEntries {
			activeDays[e.Time.Format(dateFormat)] = true
		}
		trends = append(trends, MonthlyTrend{
			Month:          month,
			VideoCount:     len(monthEntries),
			TopCategories:  topCategories(monthEntries, topN),
			TopChannels:    topKeys(channelCounter(monthEntries), topN),
			AvgDailyVideos: roundTo(float64(len(monthEntries))/float64(len(activeDays)), 2),
		})
	}
	return trends
}

// SummarizeTrend compares the video count of the earlier half of the months
// with the later half.
func SummarizeTrend(trends []MonthlyTrend) TrendSummary {
	if len(trends) < 2 {
		return TrendSummary{Label: "insufficient data"}
	}
	half := len(trends) / 2
	first, second := 0, 0
	for i, t := range trends {
		if i < half {
			first += t.VideoCount
		} else {
			second += t.VideoCount
		}
	}
	if first == 0 {
		return TrendSummary{Label: "stable"}
	}
	growth := float64(second-first) / float64(first) * 100
	label := "stable"
	switch {
	case growth > trendChangeThreshold:
		label = "increasing"
	case growth < -trendChangeThreshold:
		label = "decreasing"
	}
	return TrendSummary{Label: label, GrowthPercent: roundTo(growth, 1)}
}

// AnalyzeContentByTime reports keywords and categories for each time slot
// that has any entries, in slot order. topN <= 0 means DefaultContentTopN.
func AnalyzeContentByTime(entries []history.Entry, topN int) []ContentTime {
	if topN <= 0 {
		topN = DefaultContentTopN
	}
	bySlot := make([][]history.Entry, len(TimeSlots))
	for _, e := range entries {
		i := slotIndex(e.Time.Hour())
		bySlot[i] = append(bySlot[i], e)
	}

	result := []ContentTime{}
	for i, slotEntries := range bySlot {
		if len(slotEntries) == 0 {
			continue
		}
		keywords := []string{}
		for _, k := range topics.ExtractKeywords(topics.CleanTitles(slotEntries), topN) {
			keywords = append(keywords, k.Word)
		}
		result = append(result, ContentTime{
			Slot:          TimeSlots[i].Name,
			HourRange:     TimeSlots[i].Hours,
			VideoCount:    len(slotEntries),
			TopCategories: topCategories(slotEntries, topN),
			TopKeywords:   keywords,
		})
	}
	return result
}

var slotTitle = cases.Title(language.English)

// ContentInsights describes the leading category of each slot.
func ContentInsights(slots []ContentTime) []string {
	insights := []string{}
	for _, s := range slots {
		if s.VideoCount == 0 {
			continue
		}
		top := topics.DefaultCategory
		if len(s.TopCategories) > 0 {
			top = s.TopCategories[0]
		}
		name := slotTitle.String(strings.ReplaceAll(s.Slot, "_", " "))
		insights = append(insights, fmt.Sprintf("%s: primarily %s content", name, top))
	}
	return insights
}

// weekStart returns midnight UTC on the Monday of t's week.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

type weekSummary struct {
	start    time.Time
	category string
	count    int
}

func minWeeksFor(minPhaseDays int) int {
	weeks := int(math.Ceil(float64(minPhaseDays) / 7))
	if weeks < minPhaseWeeks {
		return minPhaseWeeks
	}
	return weeks
}

// DetectWatchingPhases finds runs of consecutive active weeks sharing one
// dominant category. A run is reported when it lasts at least
// max(2, ceil(minPhaseDays/7)) weeks.
func DetectWatchingPhases(entries []history.Entry, minPhaseDays int) []Phase {
	phases := []Phase{}
	if len(entries) == 0 {
		return phases
	}

	sorted := append([]history.Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var weeks []weekSummary
	var weekEntries []history.Entry
	flush := func() {
		if len(weekEntries) == 0 {
			return
		}
		dominant := topics.DefaultCategory
		if top := categoryCounts(weekEntries).MostCommon(1); len(top) > 0 {
			dominant = top[0].Key
		}
		weeks = append(weeks, weekSummary{
			start:    weekStart(weekEntries[0].Time),
			category: dominant,
			count:    len(weekEntries),
		})
		weekEntries = nil
	}
	for _, e := range sorted {
		if len(weekEntries) > 0 && !weekStart(e.Time).Equal(weekStart(weekEntries[0].Time)) {
			flush()
		}
		weekEntries = append(weekEntries, e)
	}
	flush()

	minWeeks := minWeeksFor(minPhaseDays)
	for i := 0; i < len(weeks); {
		j := i
		count := 0
		for j < len(weeks) && weeks[j].category == weeks[i].category {
			count += weeks[j].count
			j++
		}
		if n := j - i; n >= minWeeks {
			phases = append(phases, newPhase(weeks[i], weeks[j-1], n, count))
		}
		i = j
	}
	return phases
}

func newPhase(first, last weekSummary, weeks, count int) Phase {
	name, ok := phaseNames[first.category]
	if !ok {
		name = phaseNames[topics.DefaultCategory]
	}
	return Phase{
		Period:             first.start.Format(phasePeriodFormat) + " - " + last.start.Format(phasePeriodFormat),
		Name:               name,
		DominantCategories: []string{first.category},
		VideoCount:         count,
		Weeks:              weeks,
		Description:        fmt.Sprintf("%d weeks of %s (%d videos)", weeks, strings.ToLower(name), count),
	}
}
