package report

import (
	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/counter"
	"github.com/ademuri/watch-history-tools/internal/generator"
	"github.com/ademuri/watch-history-tools/internal/history"
	"github.com/ademuri/watch-history-tools/internal/topics"
)

const (
	favoriteChannels   = 5
	suggestedGenres    = 3
	perGenre           = 2
	maxExploration     = 5
	lateNightThreshold = 0.3
	weekendThreshold   = 0.5
	morningBefore      = 10
)

var genreSuggestions = map[string][]string{
	"Lo-fi":   {"Study playlists", "Ambient music channels", "Chill hop compilations"},
	"Jazz":    {"Smooth jazz collections", "Live jazz performances", "Jazz cafe playlists"},
	"K-pop":   {"K-pop dance practices", "Behind-the-scenes content", "Music show stages"},
	"Hip-hop": {"Freestyle sessions", "Producer tutorials", "Hip-hop documentaries"},
	"Pop":     {"Pop music charts", "Artist interviews", "Music video reactions"},
	"Indie":   {"Indie artist spotlights", "Acoustic sessions", "Indie music festivals"},
	"EDM":     {"DJ sets", "Festival recordings", "Electronic music tutorials"},
	"Rock":    {"Live concert recordings", "Guitar tutorials", "Rock documentaries"},
}

type exploration struct {
	category string
	items    []string
}

var explorations = []exploration{
	{"music", []string{"Podcasts about music", "Music production tutorials", "Artist documentaries"}},
	{"gaming", []string{"Game development streams", "Esports tournaments", "Gaming podcasts"}},
	{"tech", []string{"Science channels", "DIY electronics", "Future tech documentaries"}},
	{"education", []string{"Language learning", "Skill-building courses", "Documentary channels"}},
	{"entertainment", []string{"Stand-up comedy", "Film analysis", "Behind-the-scenes content"}},
}

type Suggestions struct {
	CurrentFavorites []string       `json:"current_favorites" yaml:"current_favorites"`
	PrimaryGenres    []string       `json:"primary_genres" yaml:"primary_genres"`
	Suggestions      SuggestionSets `json:"suggestions" yaml:"suggestions"`
}

type SuggestionSets struct {
	BasedOnGenres []string            `json:"based_on_genres" yaml:"based_on_genres"`
	ExploreNew    []string            `json:"explore_new" yaml:"explore_new"`
	TimeBased     map[string][]string `json:"time_based" yaml:"time_based"`
}

// Suggest proposes content from the taste profile, the categories not yet
// watched and the viewing schedule.
func Suggest(entries []history.Entry, ta topics.Analysis, tp analysis.TimePattern, taste generator.TasteProfile) Suggestions {
	channels := counter.New[string]()
	for _, e := range entries {
		if name := e.ChannelName(); name != "" {
			channels.Add(name)
		}
	}
	favorites := []string{}
	for _, p := range channels.MostCommon(favoriteChannels) {
		favorites = append(favorites, p.Key)
	}

	return Suggestions{
		CurrentFavorites: favorites,
		PrimaryGenres:    taste.PrimaryGenres,
		Suggestions: SuggestionSets{
			BasedOnGenres: suggestByGenre(taste.PrimaryGenres),
			ExploreNew:    suggestExploration(ta.Categories),
			TimeBased:     suggestByTime(tp),
		},
	}
}

func suggestByGenre(genres []string) []string {
	if len(genres) > suggestedGenres {
		genres = genres[:suggestedGenres]
	}
	var out []string
	for _, g := range genres {
		if items, ok := genreSuggestions[g]; ok {
			out = append(out, items[:perGenre]...)
		}
	}
	if len(out) == 0 {
		return []string{"Explore trending music", "New artist discoveries"}
	}
	return out
}

func suggestExploration(categories []string) []string {
	current := make(map[string]bool, len(categories))
	for _, c := range categories {
		current[c] = true
	}
	var out []string
	for _, e := range explorations {
		if !current[e.category] {
			out = append(out, e.items[0])
		}
	}
	if len(out) > maxExploration {
		out = out[:maxExploration]
	}
	if len(out) == 0 {
		return []string{"Explore new content categories"}
	}
	return out
}

func suggestByTime(tp analysis.TimePattern) map[string][]string {
	out := map[string][]string{}
	if tp.LateNightRatio > lateNightThreshold {
		out["late_night"] = []string{"Relaxing content", "ASMR", "Ambient music", "Meditation guides"}
	}
	if tp.WeekendRatio > weekendThreshold {
		out["weekend"] = []string{"Long-form documentaries", "Movie reviews", "Binge-worthy series"}
	}
	for _, h := range tp.PeakHours {
		if h < morningBefore {
			out["morning"] = []string{"News summaries", "Motivation content", "Quick tutorials"}
			break
		}
	}
	if len(out) == 0 {
		out["general"] = []string{"Curated playlists based on your preferences"}
	}
	return out
}
