package textkit

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TopWordsLimit caps Stats.TopWords.
const TopWordsLimit = 10

// WordCount is a word and how often it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Stats summarizes a block of text.
type Stats struct {
	Words        int         `json:"words"`
	Characters   int         `json:"characters"`
	SpecialChars int         `json:"specialChars"`
	Paragraphs   int         `json:"paragraphs"`
	TopWords     []WordCount `json:"topWords"`
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Analyze counts words, characters, special characters and paragraphs
// of text and ranks its most frequent words.
func Analyze(text string) Stats {
	fields := strings.Fields(text)
	stats := Stats{
		Words:      len(fields),
		Characters: utf8.RuneCountInString(text),
		TopWords:   []WordCount{},
	}

	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			stats.SpecialChars++
		}
	}

	for _, p := range paragraphBreak.Split(text, -1) {
		if p != "" {
			stats.Paragraphs++
		}
	}

	counts := make(map[string]int)
	for _, f := range fields {
		clean := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToLower(r)
			}
			return -1
		}, f)
		if clean != "" {
			counts[clean]++
		}
	}
	for w, n := range counts {
		stats.TopWords = append(stats.TopWords, WordCount{Word: w, Count: n})
	}
	sort.Slice(stats.TopWords, func(i, j int) bool {
		a, b := stats.TopWords[i], stats.TopWords[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Word < b.Word
	})
	if len(stats.TopWords) > TopWordsLimit {
		stats.TopWords = stats.TopWords[:TopWordsLimit]
	}
	return stats
}
