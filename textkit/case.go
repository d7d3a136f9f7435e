// Package textkit implements the text tools: case conversion, word
// statistics, line diffs and placeholder text.
package textkit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnknownCase = errors.New("unknown text case")

// Case names accepted by Convert.
const (
	Upper      = "uppercase"
	Lower      = "lowercase"
	Capitalize = "capitalize"
	Sentence   = "sentence"
	Title      = "title"
	Camel      = "camel"
	Pascal     = "pascal"
	Snake      = "snake"
	Kebab      = "kebab"
	Constant   = "constant"
)

// Cases lists the supported case names in display order.
var Cases = []string{Upper, Lower, Capitalize, Sentence, Title, Camel, Pascal, Snake, Kebab, Constant}

var smallWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "but": true,
	"or": true, "for": true, "nor": true, "on": true, "at": true,
	"to": true, "from": true, "by": true, "in": true, "of": true,
}

var (
	whitespace   = regexp.MustCompile(`\s+`)
	sentenceHead = regexp.MustCompile(`(^\s*\pL|[.!?]\s+\pL)`)
	nonWordSnake = regexp.MustCompile(`[^\pL\pN_]`)
	nonWordKebab = regexp.MustCompile(`[^\pL\pN-]`)
)

// Convert rewrites text in the named case.
func Convert(text, name string) (string, error) {
	switch name {
	case Upper:
		return cases.Upper(language.Und).String(text), nil
	case Lower:
		return cases.Lower(language.Und).String(text), nil
	case Capitalize:
		return cases.Title(language.Und, cases.NoLower).String(text), nil
	case Sentence:
		lower := cases.Lower(language.Und).String(text)
		return sentenceHead.ReplaceAllStringFunc(lower, strings.ToUpper), nil
	case Title:
		return titleCase(text), nil
	case Camel:
		return joinWords(words(text), true), nil
	case Pascal:
		return joinWords(words(text), false), nil
	case Snake:
		s := whitespace.ReplaceAllString(strings.TrimSpace(text), "_")
		return strings.ToLower(nonWordSnake.ReplaceAllString(s, "")), nil
	case Kebab:
		s := whitespace.ReplaceAllString(strings.TrimSpace(text), "-")
		return strings.ToLower(nonWordKebab.ReplaceAllString(s, "")), nil
	case Constant:
		s := whitespace.ReplaceAllString(strings.TrimSpace(text), "_")
		return strings.ToUpper(nonWordSnake.ReplaceAllString(s, "")), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCase, name)
	}
}

func titleCase(text string) string {
	upperFirst := cases.Title(language.Und, cases.NoLower)
	parts := strings.Split(cases.Lower(language.Und).String(text), " ")
	for i, w := range parts {
		if i == 0 || !smallWords[w] {
			parts[i] = upperFirst.String(w)
		}
	}
	return strings.Join(parts, " ")
}

// words splits text into alphanumeric runs, also breaking before an
// upper case letter that follows a lower case one ("fooBar" is two
// words).
func words(text string) []string {
	var out []string
	var cur []rune
	var prev rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && unicode.IsLower(prev) {
				flush()
			}
			cur = append(cur, r)
		default:
			flush()
		}
		prev = r
	}
	flush()
	return out
}

func joinWords(ws []string, lowerFirst bool) string {
	var b strings.Builder
	for i, w := range ws {
		rs := []rune(w)
		if i == 0 && lowerFirst {
			rs[0] = unicode.ToLower(rs[0])
		} else {
			rs[0] = unicode.ToUpper(rs[0])
		}
		b.WriteString(string(rs))
	}
	return b.String()
}
