package textkit

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	ErrUnknownLoremType = errors.New("unknown lorem ipsum type")
	ErrLoremCount       = errors.New("lorem ipsum count out of range")
)

// Lorem unit names accepted by Lorem.Generate.
const (
	LoremParagraphs = "paragraphs"
	LoremSentences  = "sentences"
	LoremWords      = "words"
)

const (
	DefaultLoremType  = LoremParagraphs
	DefaultLoremCount = 5

	minSentencesPerParagraph = 4
	maxSentencesPerParagraph = 8
	minWordsPerSentence      = 4
	maxWordsPerSentence      = 16
)

// LoremLimits caps the count accepted for each unit.
var LoremLimits = map[string]int{
	LoremParagraphs: 50,
	LoremSentences:  200,
	LoremWords:      1000,
}

var loremWords = strings.Fields(`
	lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod
	tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam
	quis nostrud exercitation ullamco laboris nisi aliquip ex ea commodo
	consequat duis aute irure in reprehenderit voluptate velit esse cillum
	eu fugiat nulla pariatur excepteur sint occaecat cupidatat non proident
	sunt culpa qui officia deserunt mollit anim id est laborum at vero eos
	accusamus iusto odio dignissimos ducimus blanditiis praesentium
	voluptatum deleniti atque corrupti quos dolores quas molestias
	excepturi occaecati cupiditate similique mollitia animi dolorum fuga
	harum quidem rerum facilis expedita distinctio nam libero tempore cum
	soluta nobis eligendi optio cumque nihil impedit quo minus quod maxime
	placeat facere possimus omnis voluptas assumenda repellendus
	temporibus autem quibusdam officiis debitis aut necessitatibus saepe
	eveniet voluptates repudiandae recusandae itaque earum hic tenetur
	sapiente delectus reiciendis voluptatibus maiores alias perferendis
	doloribus asperiores repellat`)

// Lorem produces placeholder text. It is not safe for concurrent use.
type Lorem struct {
	rng *rand.Rand
}

func NewLorem(seed uint64) *Lorem {
	return &Lorem{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate returns count units of kind. Paragraphs are separated by a
// newline; sentences and words by a space.
func (l *Lorem) Generate(kind string, count int) (string, error) {
	limit, ok := LoremLimits[kind]
	if !ok {
		return "", ErrUnknownLoremType
	}
	if count < 1 || count > limit {
		return "", fmt.Errorf("%w: %s count must be between 1 and %d", ErrLoremCount, kind, limit)
	}

	switch kind {
	case LoremWords:
		return l.words(count), nil
	case LoremSentences:
		return l.sentences(count), nil
	default:
		return l.paragraphs(count), nil
	}
}

func (l *Lorem) between(lo, hi int) int {
	return lo + l.rng.IntN(hi-lo+1)
}

func (l *Lorem) words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = loremWords[l.rng.IntN(len(loremWords))]
	}
	return strings.Join(out, " ")
}

func (l *Lorem) sentence() string {
	s := l.words(l.between(minWordsPerSentence, maxWordsPerSentence))
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func (l *Lorem) sentences(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = l.sentence()
	}
	return strings.Join(out, " ")
}

func (l *Lorem) paragraphs(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = l.sentences(l.between(minSentencesPerParagraph, maxSentencesPerParagraph))
	}
	return strings.Join(out, "\n")
}
