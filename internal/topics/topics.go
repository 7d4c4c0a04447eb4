// Package topics extracts keywords from video titles and classifies them
// into a small fixed set of content categories.
package topics

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ademuri/watch-history-tools/internal/counter"
	"github.com/ademuri/watch-history-tools/internal/history"
)

var (
	hangulPattern = regexp.MustCompile(`[가-힣]+`)
	latinPattern  = regexp.MustCompile(`[a-zA-Z]+`)
	// Inner hyphens and ampersands stay attached so that "lo-fi" and "r&b"
	// reach the synonym table whole.
	latinWordPattern = regexp.MustCompile(`[a-zA-Z]+(?:[-&][a-zA-Z]+)*`)
)

const (
	minHangulRunes = 2
	minLatinRunes  = 3
)

type Keyword struct {
	Word  string `json:"keyword" yaml:"keyword"`
	Count int    `json:"count" yaml:"count"`
}

type LanguageBreakdown struct {
	Korean  int `json:"korean" yaml:"korean"`
	English int `json:"english" yaml:"english"`
}

type Analysis struct {
	Keywords          []Keyword         `json:"keywords" yaml:"keywords"`
	LanguageBreakdown LanguageBreakdown `json:"language_breakdown" yaml:"language_breakdown"`
	Categories        []string          `json:"categories" yaml:"categories"`
}

var (
	canonicalTags = make(map[string]bool)
	variantToTag  = make(map[string]string)
	phrases       []phraseRewrite
)

type phraseRewrite struct {
	pattern *regexp.Regexp
	tag     string
}

func init() {
	for _, set := range synonymSets {
		canonicalTags[set.canonical] = true
	}
	for _, set := range synonymSets {
		for _, v := range set.variants {
			v = strings.ToLower(v)
			if _, seen := variantToTag[v]; !seen {
				variantToTag[v] = set.canonical
			}
			if strings.Contains(v, " ") {
				phrases = append(phrases, phraseRewrite{
					pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(v) + `\b`),
					tag:     set.canonical,
				})
			}
		}
	}
	// "lofi hip hop" has to be rewritten before "hip hop".
	sort.SliceStable(phrases, func(i, j int) bool {
		return len(phrases[i].pattern.String()) > len(phrases[j].pattern.String())
	})
}

// Normalize maps a word onto its canonical tag. Unknown words come back
// lower-cased. Normalize(Normalize(w)) == Normalize(w) for every w.
func Normalize(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	if canonicalTags[w] {
		return w
	}
	if tag, ok := variantToTag[w]; ok {
		return tag
	}
	return w
}

// rewritePhrases replaces multi-word synonyms in already lower-cased text
// with their tag.
func rewritePhrases(lower string) string {
	for _, p := range phrases {
		lower = p.pattern.ReplaceAllString(lower, p.tag)
	}
	return lower
}

func hangulWords(title string) []string {
	var words []string
	for _, w := range hangulPattern.FindAllString(title, -1) {
		if utf8.RuneCountInString(w) < minHangulRunes || koreanStopwords[w] {
			continue
		}
		words = append(words, Normalize(w))
	}
	return words
}

func latinWords(title string) []string {
	var words []string
	for _, w := range latinWordPattern.FindAllString(rewritePhrases(strings.ToLower(title)), -1) {
		if utf8.RuneCountInString(w) < minLatinRunes || englishStopwords[w] {
			continue
		}
		words = append(words, Normalize(w))
	}
	return words
}

// ExtractKeywords is the pattern-based extractor: Hangul runs and Latin
// words, stopwords dropped, synonyms folded, ranked by frequency.
func ExtractKeywords(titles []string, limit int) []Keyword {
	c := counter.New[string]()
	for _, title := range titles {
		for _, w := range hangulWords(title) {
			c.Add(w)
		}
		for _, w := range latinWords(title) {
			c.Add(w)
		}
	}
	return toKeywords(c, limit)
}

func toKeywords(c *counter.Counter[string], limit int) []Keyword {
	pairs := c.MostCommon(limit)
	keywords := make([]Keyword, len(pairs))
	for i, p := range pairs {
		keywords[i] = Keyword{Word: p.Key, Count: p.Count}
	}
	return keywords
}

// InferCategories returns every category with at least one keyword among
// the extracted ones, or just DefaultCategory.
func InferCategories(keywords []Keyword) []string {
	present := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		present[strings.ToLower(k.Word)] = true
	}

	var detected []string
	for _, cat := range categories {
		for _, kw := range cat.keywords {
			if present[kw] {
				detected = append(detected, cat.name)
				break
			}
		}
	}
	if len(detected) == 0 {
		return []string{DefaultCategory}
	}
	return detected
}

// MatchCategories returns the categories whose keywords occur anywhere in
// the title, each at most once. The result may be empty.
func MatchCategories(title string) []string {
	lower := strings.ToLower(title)
	var matched []string
	for _, cat := range categories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, cat.name)
				break
			}
		}
	}
	return matched
}

// Languages counts titles containing Hangul, and titles with Latin letters
// but no Hangul. Titles with both count only as Korean; titles with neither
// are not counted.
func Languages(titles []string) LanguageBreakdown {
	var lb LanguageBreakdown
	for _, t := range titles {
		switch {
		case hangulPattern.MatchString(t):
			lb.Korean++
		case latinPattern.MatchString(t):
			lb.English++
		}
	}
	return lb
}

// AnalyzeTopics extracts keywords from the clean titles of entries using
// ex, or the pattern-based extractor when ex is nil.
func AnalyzeTopics(entries []history.Entry, limit int, ex Extractor) Analysis {
	if ex == nil {
		ex = SimpleExtractor{}
	}
	titles := CleanTitles(entries)
	keywords := ex.Extract(titles, limit)
	return Analysis{
		Keywords:          keywords,
		LanguageBreakdown: Languages(titles),
		Categories:        InferCategories(keywords),
	}
}

func CleanTitles(entries []history.Entry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.CleanTitle()
	}
	return titles
}
