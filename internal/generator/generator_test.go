package generator

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/topics"
)

func keywords(words ...string) []topics.Keyword {
	var ks []topics.Keyword
	for i, w := range words {
		ks = append(ks, topics.Keyword{Word: w, Count: len(words) - i})
	}
	return ks
}

func TestBuildTasteProfile(t *testing.T) {
	ta := topics.Analysis{
		Keywords:          keywords("lofi", "study", "jazz", "chill", "lo-fi"),
		LanguageBreakdown: topics.LanguageBreakdown{Korean: 10, English: 3},
		Categories:        []string{"music"},
	}
	tp := analysis.TimePattern{PeakHours: []int{2, 23}, LateNightRatio: 0.4}

	p := BuildTasteProfile(ta, tp)
	if !reflect.DeepEqual(p.PrimaryGenres, []string{"Lo-fi", "Jazz", "Chill"}) {
		t.Errorf("PrimaryGenres = %v", p.PrimaryGenres)
	}
	wantMoods := []string{"chill", "smooth", "relaxed", "Melancholic", "Dreamy"}
	if !reflect.DeepEqual(p.MoodKeywords, wantMoods) {
		t.Errorf("MoodKeywords = %v, want %v", p.MoodKeywords, wantMoods)
	}
	if p.TempoPreference != "slow" || p.EnergyLevel != "low" {
		t.Errorf("tempo=%s energy=%s, want slow/low", p.TempoPreference, p.EnergyLevel)
	}
	if p.TimeContext != "late_night" {
		t.Errorf("TimeContext = %s", p.TimeContext)
	}
	if p.LanguagePreference != "korean" {
		t.Errorf("LanguagePreference = %s", p.LanguagePreference)
	}
}

func TestBuildTasteProfile_defaults(t *testing.T) {
	p := BuildTasteProfile(topics.Analysis{Categories: []string{"general"}}, analysis.TimePattern{PeakHours: []int{14}})
	if !reflect.DeepEqual(p.PrimaryGenres, []string{"Lo-fi", "Ambient"}) {
		t.Errorf("PrimaryGenres = %v", p.PrimaryGenres)
	}
	if p.EnergyLevel != "medium" || p.TempoPreference != "moderate" {
		t.Errorf("energy=%s tempo=%s, want medium/moderate", p.EnergyLevel, p.TempoPreference)
	}
	if p.TimeContext != "afternoon" || p.LanguagePreference != "mixed" {
		t.Errorf("TimeContext=%s LanguagePreference=%s", p.TimeContext, p.LanguagePreference)
	}
	if !reflect.DeepEqual(p.MoodKeywords, []string{"Focused", "Productive", "Moderate"}) {
		t.Errorf("MoodKeywords = %v", p.MoodKeywords)
	}

	p = BuildTasteProfile(topics.Analysis{Categories: []string{"music"}, LanguageBreakdown: topics.LanguageBreakdown{English: 3}}, analysis.TimePattern{PeakHours: []int{20, 12}})
	if !reflect.DeepEqual(p.PrimaryGenres, []string{"Pop", "Indie"}) {
		t.Errorf("PrimaryGenres = %v", p.PrimaryGenres)
	}
	if p.TimeContext != "evening" || p.LanguagePreference != "english" {
		t.Errorf("TimeContext=%s LanguagePreference=%s", p.TimeContext, p.LanguagePreference)
	}
}

func TestBuildTasteProfile_tempoTieGoesFast(t *testing.T) {
	p := BuildTasteProfile(topics.Analysis{Keywords: keywords("ballad", "rock")}, analysis.TimePattern{PeakHours: []int{8}})
	if p.TempoPreference != "fast" || p.EnergyLevel != "high" {
		t.Errorf("tempo=%s energy=%s, want fast/high", p.TempoPreference, p.EnergyLevel)
	}
	if p.TimeContext != "morning" {
		t.Errorf("TimeContext = %s", p.TimeContext)
	}
}

func TestGeneratePrompt(t *testing.T) {
	p := TasteProfile{
		PrimaryGenres:   []string{"Jazz", "Lo-fi"},
		MoodKeywords:    []string{"smooth", "chill", "Relaxed", "Warm"},
		TempoPreference: "moderate",
	}
	got := GeneratePrompt(p)
	want := "Jazz, Lo-fi, smooth, chill, Relaxed, 90-110 BPM, piano, upright bass, brushed drums, saxophone"
	if got.FullPrompt != want {
		t.Errorf("FullPrompt = %q, want %q", got.FullPrompt, want)
	}
	if got.Label != "Main Style" || got.Mood != "smooth, chill, Relaxed" {
		t.Errorf("prompt = %+v", got)
	}

	got = GeneratePrompt(TasteProfile{PrimaryGenres: []string{"Polka"}, MoodKeywords: []string{"Balanced"}, TempoPreference: "weird"})
	if got.TempoBPM != "100 BPM" || got.Instruments != "piano, guitar, drums" {
		t.Errorf("defaults = %+v", got)
	}
}

func TestComposePrompt_truncation(t *testing.T) {
	long := strings.Repeat("x", 100)
	tests := []struct {
		name                           string
		style, mood, tempo, instrument string
		want                           string
	}{
		{"fits", "Jazz", "smooth", "90-110 BPM", "piano", "Jazz, smooth, 90-110 BPM, piano"},
		{"drop instruments", "Jazz", "smooth", "90-110 BPM", long + long, "Jazz, smooth, 90-110 BPM"},
		{"drop tempo", "Jazz", long, long, "piano", "Jazz, " + long},
		{"drop mood tags", "Jazz", long + ", " + long, "1", "2", "Jazz, " + long},
	}
	for _, tt := range tests {
		if got := composePrompt(tt.style, tt.mood, tt.tempo, tt.instrument); got != tt.want {
			t.Errorf("%s: composePrompt() = %q, want %q", tt.name, got, tt.want)
		}
	}

	huge := strings.Repeat("가", 300)
	if got := composePrompt(huge, "", "", ""); utf8.RuneCountInString(got) != MaxPromptRunes || !utf8.ValidString(got) {
		t.Errorf("composePrompt(huge) has %d runes", utf8.RuneCountInString(got))
	}
}

func TestGenerateVariations_count(t *testing.T) {
	p := TasteProfile{PrimaryGenres: []string{"Lo-fi"}, MoodKeywords: []string{"chill"}, EnergyLevel: "low", TempoPreference: "slow"}
	if got := GenerateVariations(p, 0); len(got) != 1 {
		t.Errorf("GenerateVariations(0) returned %d prompts, want 1", len(got))
	}
	if got := GenerateVariations(p, 10); len(got) != 5 {
		t.Errorf("GenerateVariations(10) returned %d prompts, want 5", len(got))
	}
}

func TestGenerateVariations(t *testing.T) {
	p := TasteProfile{
		PrimaryGenres:   []string{"Lo-fi", "Jazz"},
		MoodKeywords:    []string{"chill", "smooth", "Dreamy"},
		EnergyLevel:     "low",
		TempoPreference: "slow",
	}
	got := GenerateVariations(p, 5)

	labels := []string{"Main Style", "Energy Variation", "Mood Variation", "Instrument Variation", "Genre Fusion"}
	for i, prompt := range got {
		if prompt.Label != labels[i] {
			t.Errorf("prompt %d label = %q, want %q", i, prompt.Label, labels[i])
		}
	}

	if e := got[1]; e.TempoBPM != "90-110 BPM" || e.Mood != "uplifting, energetic" {
		t.Errorf("energy variation = %+v", e)
	}
	if m := got[2]; m.Mood != "upbeat, happy, edgy, bold" {
		t.Errorf("mood variation = %q", m.Mood)
	}
	if i := got[3]; i.Instruments != "warm synth pads, gentle guitar, subtle percussion" {
		t.Errorf("instrument variation = %q", i.Instruments)
	}
	if f := got[4]; f.StyleTags != "Lo-fi Jazz" || f.Mood != "smooth, sophisticated" {
		t.Errorf("fusion variation = %+v", f)
	}

	unknown := GenerateVariations(TasteProfile{PrimaryGenres: []string{"Polka"}, EnergyLevel: "medium"}, 5)
	if unknown[1].TempoBPM != "120-140 BPM" || unknown[4].StyleTags != "Polka Fusion" || unknown[4].Mood != "fresh, unique" {
		t.Errorf("fallback variations = %+v", unknown)
	}
	if unknown[3].Instruments != "piano, soft synths, ambient textures, gentle percussion" {
		t.Errorf("fallback instruments = %q", unknown[3].Instruments)
	}
}

func TestGenerateVariations_lengthBound(t *testing.T) {
	long := strings.Repeat("Shoegaze Revival ", 8)
	profiles := []TasteProfile{
		{PrimaryGenres: []string{long, long, long}, MoodKeywords: []string{long, long, long}, EnergyLevel: "high", TempoPreference: "fast"},
		{PrimaryGenres: []string{"Jazz"}, MoodKeywords: []string{long}, TempoPreference: "moderate"},
		{},
	}
	for _, p := range profiles {
		for _, prompt := range GenerateVariations(p, 5) {
			if n := utf8.RuneCountInString(prompt.FullPrompt); n > MaxPromptRunes {
				t.Errorf("%s prompt has %d runes: %q", prompt.Label, n, prompt.FullPrompt)
			}
		}
	}
}
