// Package generator turns topic and time-of-day analysis into a taste
// profile and short text prompts for music generation services.
package generator

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/topics"
)

const (
	// MaxPromptRunes is the longest FullPrompt any generator returns.
	MaxPromptRunes = 195

	profileKeywords = 15
	maxGenres       = 3
	maxMoods        = 5
	promptMoods     = 3
	maxVariations   = 5
	lateNightRatio  = 0.3
	morningBefore   = 10
	eveningAfter    = 18
)

type TasteProfile struct {
	PrimaryGenres      []string `json:"primary_genres" yaml:"primary_genres"`
	MoodKeywords       []string `json:"mood_keywords" yaml:"mood_keywords"`
	EnergyLevel        string   `json:"energy_level" yaml:"energy_level"`
	TempoPreference    string   `json:"tempo_preference" yaml:"tempo_preference"`
	TimeContext        string   `json:"time_context" yaml:"time_context"`
	LanguagePreference string   `json:"language_preference" yaml:"language_preference"`
}

type Prompt struct {
	Label       string `json:"label" yaml:"label"`
	StyleTags   string `json:"style" yaml:"style"`
	Mood        string `json:"mood" yaml:"mood"`
	TempoBPM    string `json:"tempo" yaml:"tempo"`
	Instruments string `json:"instruments" yaml:"instruments"`
	FullPrompt  string `json:"full_prompt" yaml:"full_prompt"`
}

// BuildTasteProfile derives genres, moods and energy from the top keywords
// and picks a time-of-day context from the viewing pattern.
func BuildTasteProfile(ta topics.Analysis, tp analysis.TimePattern) TasteProfile {
	keywords := ta.Keywords
	if len(keywords) > profileKeywords {
		keywords = keywords[:profileKeywords]
	}

	var genres, moods []string
	tempoVotes := map[string]int{}
	for _, k := range keywords {
		s, ok := styleByKeyword[strings.ToLower(k.Word)]
		if !ok {
			continue
		}
		if !slices.Contains(genres, s.genre) {
			genres = append(genres, s.genre)
		}
		moods = append(moods, s.mood)
		tempoVotes[s.tempo]++
	}

	timeContext := timeContextFor(tp)
	moods = append(moods, moodsByTimeContext[timeContext]...)

	tempo := tempoModerate
	if len(tempoVotes) > 0 {
		// Ties go to the faster tempo.
		best := -1
		for _, t := range []string{tempoFast, tempoModerate, tempoSlow} {
			if tempoVotes[t] > best {
				tempo, best = t, tempoVotes[t]
			}
		}
	}

	if len(genres) == 0 {
		if slices.Contains(ta.Categories, "music") {
			genres = []string{"Pop", "Indie"}
		} else {
			genres = []string{"Lo-fi", "Ambient"}
		}
	}
	if len(genres) > maxGenres {
		genres = genres[:maxGenres]
	}

	moods = dedupe(moods)
	if len(moods) > maxMoods {
		moods = moods[:maxMoods]
	}
	if len(moods) == 0 {
		moods = []string{neutralMood}
	}

	return TasteProfile{
		PrimaryGenres:      genres,
		MoodKeywords:       moods,
		EnergyLevel:        energyByTempo[tempo],
		TempoPreference:    tempo,
		TimeContext:        timeContext,
		LanguagePreference: languagePreference(ta.LanguageBreakdown),
	}
}

func timeContextFor(tp analysis.TimePattern) string {
	switch {
	case tp.LateNightRatio > lateNightRatio:
		return contextLateNight
	case len(tp.PeakHours) > 0 && slices.Min(tp.PeakHours) < morningBefore:
		return contextMorning
	case len(tp.PeakHours) > 0 && slices.Max(tp.PeakHours) > eveningAfter:
		return contextEvening
	default:
		return contextAfternoon
	}
}

func languagePreference(lb topics.LanguageBreakdown) string {
	switch {
	case lb.Korean > lb.English*2:
		return "korean"
	case lb.English > lb.Korean*2:
		return "english"
	default:
		return "mixed"
	}
}

// GeneratePrompt builds the main prompt for a profile.
func GeneratePrompt(p TasteProfile) Prompt {
	moods := p.MoodKeywords
	if len(moods) > promptMoods {
		moods = moods[:promptMoods]
	}
	tempo, ok := bpmByTempo[p.TempoPreference]
	if !ok {
		tempo = defaultBPM
	}
	primary := defaultGenre
	if len(p.PrimaryGenres) > 0 {
		primary = p.PrimaryGenres[0]
	}
	instruments, ok := instrumentsByGenre[primary]
	if !ok {
		instruments = defaultInstruments
	}

	return newPrompt("Main Style", strings.Join(p.PrimaryGenres, ", "), strings.Join(moods, ", "), tempo, instruments)
}

func newPrompt(label, style, mood, tempo, instruments string) Prompt {
	return Prompt{
		Label:       label,
		StyleTags:   style,
		Mood:        mood,
		TempoBPM:    tempo,
		Instruments: instruments,
		FullPrompt:  composePrompt(style, mood, tempo, instruments),
	}
}

type variation struct {
	label string
	apply func(p TasteProfile, base Prompt) Prompt
}

var variations = []variation{
	{"Energy Variation", energyVariation},
	{"Mood Variation", moodVariation},
	{"Instrument Variation", instrumentVariation},
	{"Genre Fusion", fusionVariation},
}

// GenerateVariations returns the main prompt followed by up to four
// variations of it. count is clamped to [1, 5].
func GenerateVariations(p TasteProfile, count int) []Prompt {
	if count < 1 {
		count = 1
	}
	if count > maxVariations {
		count = maxVariations
	}

	base := GeneratePrompt(p)
	prompts := []Prompt{base}
	for _, v := range variations[:count-1] {
		prompt := v.apply(p, base)
		prompt.Label = v.label
		prompts = append(prompts, prompt)
	}
	return prompts
}

func energyVariation(p TasteProfile, base Prompt) Prompt {
	shift, ok := energyShifts[p.EnergyLevel]
	if !ok {
		shift = defaultEnergyShift
	}
	return newPrompt("", base.StyleTags, shift.mood, shift.tempo, base.Instruments)
}

func moodVariation(_ TasteProfile, base Prompt) Prompt {
	var moods []string
	for _, m := range splitTags(base.Mood) {
		if contrast, ok := moodContrasts[strings.ToLower(m)]; ok {
			moods = append(moods, contrast)
		} else {
			moods = append(moods, m)
		}
	}
	if len(moods) > 2 {
		moods = moods[:2]
	}
	return newPrompt("", base.StyleTags, strings.Join(moods, ", "), base.TempoBPM, base.Instruments)
}

func instrumentVariation(_ TasteProfile, base Prompt) Prompt {
	instruments, ok := alternateInstruments[base.Instruments]
	if !ok {
		instruments = fallbackInstruments
	}
	return newPrompt("", base.StyleTags, base.Mood, base.TempoBPM, instruments)
}

func fusionVariation(_ TasteProfile, base Prompt) Prompt {
	primary := defaultGenre
	if tags := splitTags(base.StyleTags); len(tags) > 0 {
		primary = tags[0]
	}
	f, ok := fusions[primary]
	if !ok {
		f = fusion{primary + " Fusion", "fresh, unique"}
	}
	return newPrompt("", f.style, f.mood, base.TempoBPM, base.Instruments)
}

// composePrompt joins the non-empty fields with ", ". Instruments are
// dropped first, then tempo, then trailing mood and style tags. A single
// remaining tag that is still too long is cut at a rune boundary.
func composePrompt(style, mood, tempo, instruments string) string {
	for _, fields := range [][]string{
		{style, mood, tempo, instruments},
		{style, mood, tempo},
		{style, mood},
	} {
		if s := joinFields(fields...); fits(s) {
			return s
		}
	}

	tags := append(splitTags(style), splitTags(mood)...)
	for len(tags) > 1 {
		tags = tags[:len(tags)-1]
		if s := strings.Join(tags, ", "); fits(s) {
			return s
		}
	}
	if len(tags) == 0 {
		return ""
	}
	return truncateRunes(tags[0], MaxPromptRunes)
}

func fits(s string) bool {
	return utf8.RuneCountInString(s) <= MaxPromptRunes
}

func joinFields(fields ...string) string {
	var parts []string
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ", ")
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
