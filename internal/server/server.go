// Package server exposes a Session as MCP tools over stdio.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/session"
)

const (
	Name = "watch-history-tools"

	noDataMessage     = "Please call analyze_watch_history first to load data"
	defaultTopicLimit = 20
	defaultPrompts    = 3
	homepageChannels  = 10
)

type Server struct {
	session *session.Session
	mcp     *server.MCPServer
}

// New registers every tool against sess.
func New(sess *session.Session, version string) *Server {
	s := &Server{
		session: sess,
		mcp: server.NewMCPServer(Name, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio blocks serving requests on stdin/stdout. Logs go to stderr.
func (s *Server) ServeStdio() error {
	logger := log.New(os.Stderr, Name+": ", log.LstdFlags)
	return server.ServeStdio(s.mcp, server.WithErrorLogger(logger))
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("analyze_watch_history",
		mcp.WithDescription("Parse a watch-history.json export and report overall statistics. Replaces any loaded data."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the watch-history.json file")),
	), s.analyzeWatchHistory)

	s.mcp.AddTool(mcp.NewTool("load_cached_data",
		mcp.WithDescription("Restore the most recently analyzed watch history from the cache."),
	), s.loadCachedData)

	s.mcp.AddTool(mcp.NewTool("clear_cache",
		mcp.WithDescription("Delete the cached watch history and unload it."),
	), s.clearCache)

	s.mcp.AddTool(mcp.NewTool("get_top_topics",
		mcp.WithDescription("Top keywords from video titles, language breakdown and inferred categories."),
		mcp.WithNumber("limit", mcp.DefaultNumber(defaultTopicLimit), mcp.Description("Maximum number of keywords")),
	), s.getTopTopics)

	s.mcp.AddTool(mcp.NewTool("get_time_patterns",
		mcp.WithDescription("Viewing patterns by hour of day and day of week."),
	), s.getTimePatterns)

	s.mcp.AddTool(mcp.NewTool("generate_music_prompt",
		mcp.WithDescription("Generate a music prompt from the viewing taste profile."),
	), s.generateMusicPrompt)

	s.mcp.AddTool(mcp.NewTool("get_channel_stats",
		mcp.WithDescription("Statistics for channels whose name contains the given text."),
		mcp.WithString("channel_name", mcp.Required(), mcp.Description("Channel name or part of it, case-insensitive")),
	), s.getChannelStats)

	s.mcp.AddTool(mcp.NewTool("get_monthly_trends",
		mcp.WithDescription("Monthly video counts, top categories and channels, and the overall trend."),
	), s.getMonthlyTrends)

	s.mcp.AddTool(mcp.NewTool("get_content_by_time",
		mcp.WithDescription("What content is watched in each part of the day."),
	), s.getContentByTime)

	s.mcp.AddTool(mcp.NewTool("generate_music_prompts",
		mcp.WithDescription("Generate the main music prompt plus up to four variations."),
		mcp.WithNumber("count", mcp.DefaultNumber(defaultPrompts), mcp.Description("Number of prompts, 1-5")),
	), s.generateMusicPrompts)

	s.mcp.AddTool(mcp.NewTool("detect_phases",
		mcp.WithDescription("Detect multi-week phases dominated by one content category."),
		mcp.WithNumber("min_phase_days", mcp.DefaultNumber(analysis.DefaultMinPhaseDays), mcp.Description("Minimum phase length in days")),
	), s.detectPhases)

	s.mcp.AddTool(mcp.NewTool("get_diversity_score",
		mcp.WithDescription("Channel diversity score based on entropy and concentration."),
	), s.getDiversityScore)

	s.mcp.AddTool(mcp.NewTool("export_analysis",
		mcp.WithDescription("Export the complete analysis."),
		mcp.WithString("format", mcp.DefaultString("markdown"), mcp.Enum("markdown", "json", "yaml"), mcp.Description("Output format")),
	), s.exportAnalysis)

	s.mcp.AddTool(mcp.NewTool("suggest_content",
		mcp.WithDescription("Suggest content based on the taste profile and viewing schedule."),
	), s.suggestContent)
}

// jsonResult returns v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

// toolError reports err to the caller as a failed tool call.
func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, session.ErrNoDataLoaded) {
		return mcp.NewToolResultError(noDataMessage)
	}
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) analyzeWatchHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stats, err := s.session.Load(path)
	if err != nil {
		return toolError(err), nil
	}

	top := stats.TopChannels
	if len(top) > homepageChannels {
		top = top[:homepageChannels]
	}
	return jsonResult(map[string]any{
		"total_videos":       stats.TotalVideos,
		"unique_channels":    stats.UniqueChannels,
		"date_range":         stats.DateRange(),
		"top_channels":       top,
		"videos_per_day_avg": stats.VideosPerDayAvg,
		"message":            fmt.Sprintf("Analyzed %d videos from %d channels", stats.TotalVideos, stats.UniqueChannels),
	})
}

func (s *Server) loadCachedData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.session.LoadCache() {
		return jsonResult(map[string]any{
			"status":  "no_cache",
			"message": "No cached data found. Please run analyze_watch_history first.",
		})
	}
	stats, err := s.session.Statistics()
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"status":          "loaded",
		"file_path":       s.session.FilePath(),
		"total_videos":    stats.TotalVideos,
		"unique_channels": stats.UniqueChannels,
		"message":         fmt.Sprintf("Loaded %d videos from cache", stats.TotalVideos),
	})
}

func (s *Server) clearCache(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.session.ClearCache() {
		return jsonResult(map[string]any{"status": "error", "message": "Failed to clear cache"})
	}
	return jsonResult(map[string]any{"status": "cleared", "message": "Cache cleared successfully"})
}

func (s *Server) getTopTopics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ta, err := s.session.Topics(req.GetInt("limit", defaultTopicLimit))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"keywords":           ta.Keywords,
		"language_breakdown": ta.LanguageBreakdown,
		"categories":         ta.Categories,
		"message":            fmt.Sprintf("Extracted %d keywords", len(ta.Keywords)),
	})
}

func (s *Server) getTimePatterns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := s.session.TimePatterns()
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"peak_hours":          p.PeakHours,
		"peak_days":           p.PeakDays,
		"late_night_ratio":    p.LateNightRatio,
		"weekend_ratio":       p.WeekendRatio,
		"hourly_distribution": p.HourlyDistribution,
		"daily_distribution":  p.DailyDistribution,
		"insight":             analysis.TimeInsight(p),
	})
}

func (s *Server) generateMusicPrompt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, prompt, err := s.session.Prompt()
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"taste_profile": profile,
		"prompt":        prompt,
		"message":       "Generated prompt: " + prompt.FullPrompt,
	})
}

func (s *Server) getChannelStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("channel_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stats, err := s.session.ChannelStats(name)
	if errors.Is(err, analysis.ErrNotFound) {
		return mcp.NewToolResultError("No videos found for channel: " + name), nil
	}
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"channel":             stats.Channel,
		"total_videos":        stats.TotalVideos,
		"first_watched":       stats.FirstWatched,
		"last_watched":        stats.LastWatched,
		"viewing_period_days": stats.ViewingPeriodDays,
		"peak_hours":          stats.PeakHours,
		"peak_days":           stats.PeakDays,
		"hourly_distribution": stats.HourlyDistribution,
		"daily_distribution":  stats.DailyDistribution,
		"message":             fmt.Sprintf("Found %d videos from %s", stats.TotalVideos, stats.Channel),
	})
}

func (s *Server) getMonthlyTrends(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	months, err := s.session.MonthlyTrends(analysis.DefaultMonthlyTopN)
	if err != nil {
		return toolError(err), nil
	}
	trend := analysis.SummarizeTrend(months)
	return jsonResult(map[string]any{
		"months":         months,
		"total_months":   len(months),
		"trend":          trend.Label,
		"growth_percent": trend.GrowthPercent,
		"message":        fmt.Sprintf("Analyzed %d months of viewing history. Trend: %s", len(months), trend.Label),
	})
}

func (s *Server) getContentByTime(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slots, err := s.session.ContentByTime(analysis.DefaultContentTopN)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"time_slots": slots,
		"insights":   analysis.ContentInsights(slots),
		"message":    fmt.Sprintf("Analyzed content patterns across %d time slots", len(slots)),
	})
}

func (s *Server) generateMusicPrompts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompts, err := s.session.Prompts(req.GetInt("count", defaultPrompts))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"prompts": prompts,
		"count":   len(prompts),
		"message": fmt.Sprintf("Generated %d prompt variations", len(prompts)),
	})
}

func (s *Server) detectPhases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	phases, err := s.session.Phases(req.GetInt("min_phase_days", analysis.DefaultMinPhaseDays))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"phases":       phases,
		"total_phases": len(phases),
		"message":      fmt.Sprintf("Detected %d distinct viewing phases", len(phases)),
	})
}

func (s *Server) getDiversityScore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.session.Diversity()
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"overall_score":             d.OverallScore,
		"channel_entropy":           d.ChannelEntropy,
		"top_channel_concentration": d.TopChannelConcentration,
		"unique_ratio":              d.UniqueRatio,
		"interpretation":            d.Interpretation,
		"message":                   fmt.Sprintf("Diversity score: %v/100 - %s", d.OverallScore, d.Interpretation),
	})
}

func (s *Server) exportAnalysis(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := req.GetString("format", "markdown")
	content, err := s.session.Export(format)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) suggestContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sugg, err := s.session.Suggest()
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(sugg)
}
