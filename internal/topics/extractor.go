package topics

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/ademuri/watch-history-tools/internal/counter"
)

// Extractor turns titles into ranked keywords.
type Extractor interface {
	Extract(titles []string, limit int) []Keyword
	Name() string
}

type SimpleExtractor struct{}

func (SimpleExtractor) Extract(titles []string, limit int) []Keyword {
	return ExtractKeywords(titles, limit)
}

func (SimpleExtractor) Name() string {
	return "simple"
}

// MecabExtractor takes Hangul nouns from a mecab-ko morphological analysis
// and Latin words the same way SimpleExtractor does.
type MecabExtractor struct {
	Path string
}

func (m MecabExtractor) Name() string {
	return "mecab"
}

func (m MecabExtractor) Extract(titles []string, limit int) []Keyword {
	nouns, err := m.nouns(titles)
	if err != nil {
		log.Printf("mecab extraction failed, using simple extractor: %v", err)
		return ExtractKeywords(titles, limit)
	}

	c := counter.New[string]()
	for _, n := range nouns {
		c.Add(n)
	}
	for _, title := range titles {
		for _, w := range latinWords(title) {
			c.Add(w)
		}
	}
	return toKeywords(c, limit)
}

func (m MecabExtractor) nouns(titles []string) ([]string, error) {
	var in bytes.Buffer
	for _, t := range titles {
		// mecab reads one sentence per line.
		in.WriteString(strings.ReplaceAll(t, "\n", " "))
		in.WriteByte('\n')
	}
	cmd := exec.Command(m.Path)
	cmd.Stdin = &in
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", m.Path, err)
	}
	return parseMecabNouns(bytes.NewReader(out))
}

// parseMecabNouns reads mecab-ko output ("surface\tTAG,...", with EOS
// between sentences) and keeps common and proper nouns written in Hangul.
func parseMecabNouns(r io.Reader) ([]string, error) {
	var nouns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "EOS" || line == "" {
			continue
		}
		surface, features, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		tag, _, _ := strings.Cut(features, ",")
		if tag != "NNG" && tag != "NNP" {
			continue
		}
		if !hangulPattern.MatchString(surface) || utf8.RuneCountInString(surface) < minHangulRunes {
			continue
		}
		nouns = append(nouns, Normalize(surface))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mecab output: %w", err)
	}
	return nouns, nil
}

// NewExtractor picks an extractor for mode ("auto", "simple" or "mecab").
// The mecab binary is looked up once here; when it is missing the simple
// extractor is returned.
func NewExtractor(mode, mecabPath string) Extractor {
	if mecabPath == "" {
		mecabPath = "mecab"
	}
	switch mode {
	case "simple":
		return SimpleExtractor{}
	case "", "auto", "mecab":
		path, err := exec.LookPath(mecabPath)
		if err != nil {
			if mode == "mecab" {
				log.Printf("%s not found, using simple extractor", mecabPath)
			}
			return SimpleExtractor{}
		}
		return MecabExtractor{Path: path}
	default:
		log.Printf("unknown extractor %q, using simple extractor", mode)
		return SimpleExtractor{}
	}
}
