package analysis

import "time"

type ChannelCount struct {
	Channel string `json:"channel" yaml:"channel"`
	Count   int    `json:"count" yaml:"count"`
}

// Statistics is the overall summary of a loaded history.
type Statistics struct {
	TotalVideos     int            `json:"total_videos" yaml:"total_videos"`
	UniqueChannels  int            `json:"unique_channels" yaml:"unique_channels"`
	DateRangeStart  time.Time      `json:"date_range_start" yaml:"date_range_start"`
	DateRangeEnd    time.Time      `json:"date_range_end" yaml:"date_range_end"`
	TopChannels     []ChannelCount `json:"top_channels" yaml:"top_channels"`
	VideosPerDayAvg float64        `json:"videos_per_day_avg" yaml:"videos_per_day_avg"`
}

// DateRange formats the covered dates as "YYYY-MM-DD to YYYY-MM-DD".
func (s Statistics) DateRange() string {
	return s.DateRangeStart.Format(dateFormat) + " to " + s.DateRangeEnd.Format(dateFormat)
}

type Diversity struct {
	OverallScore            float64 `json:"overall_score" yaml:"overall_score"`
	ChannelEntropy          float64 `json:"channel_entropy" yaml:"channel_entropy"`
	TopChannelConcentration float64 `json:"top_channel_concentration" yaml:"top_channel_concentration"`
	UniqueRatio             float64 `json:"unique_ratio" yaml:"unique_ratio"`
	Interpretation          string  `json:"interpretation" yaml:"interpretation"`
}

type TimePattern struct {
	PeakHours          []int          `json:"peak_hours" yaml:"peak_hours"`
	PeakDays           []string       `json:"peak_days" yaml:"peak_days"`
	HourlyDistribution map[int]int    `json:"hourly_distribution" yaml:"hourly_distribution"`
	DailyDistribution  map[string]int `json:"daily_distribution" yaml:"daily_distribution"`
	LateNightRatio     float64        `json:"late_night_ratio" yaml:"late_night_ratio"`
	WeekendRatio       float64        `json:"weekend_ratio" yaml:"weekend_ratio"`
}

type MonthlyTrend struct {
	Month          string   `json:"month" yaml:"month"`
	VideoCount     int      `json:"video_count" yaml:"video_count"`
	TopCategories  []string `json:"top_categories" yaml:"top_categories"`
	TopChannels    []string `json:"top_channels" yaml:"top_channels"`
	AvgDailyVideos float64  `json:"avg_daily" yaml:"avg_daily"`
}

// TrendSummary compares the first and second half of the monthly counts.
type TrendSummary struct {
	Label         string  `json:"trend" yaml:"trend"`
	GrowthPercent float64 `json:"growth_percent" yaml:"growth_percent"`
}

type ContentTime struct {
	Slot          string   `json:"slot" yaml:"slot"`
	HourRange     string   `json:"hours" yaml:"hours"`
	VideoCount    int      `json:"video_count" yaml:"video_count"`
	TopCategories []string `json:"top_categories" yaml:"top_categories"`
	TopKeywords   []string `json:"top_keywords" yaml:"top_keywords"`
}

type Phase struct {
	Period             string   `json:"period" yaml:"period"`
	Name               string   `json:"name" yaml:"name"`
	DominantCategories []string `json:"categories" yaml:"categories"`
	VideoCount         int      `json:"video_count" yaml:"video_count"`
	Weeks              int      `json:"weeks" yaml:"weeks"`
	Description        string   `json:"description" yaml:"description"`
}

type ChannelStats struct {
	Channel            string         `json:"channel" yaml:"channel"`
	TotalVideos        int            `json:"total_videos" yaml:"total_videos"`
	FirstWatched       time.Time      `json:"first_watched" yaml:"first_watched"`
	LastWatched        time.Time      `json:"last_watched" yaml:"last_watched"`
	ViewingPeriodDays  int            `json:"viewing_period_days" yaml:"viewing_period_days"`
	PeakHours          []int          `json:"peak_hours" yaml:"peak_hours"`
	PeakDays           []string       `json:"peak_days" yaml:"peak_days"`
	HourlyDistribution map[int]int    `json:"hourly_distribution" yaml:"hourly_distribution"`
	DailyDistribution  map[string]int `json:"daily_distribution" yaml:"daily_distribution"`
}
