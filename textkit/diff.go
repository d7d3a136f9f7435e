package textkit

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Chunk is a run of consecutive lines that were added, removed or left
// unchanged between two texts. Value keeps the line terminators.
type Chunk struct {
	Value   string `json:"value"`
	Count   int    `json:"count"`
	Added   bool   `json:"added"`
	Removed bool   `json:"removed"`
}

// DiffLines compares before and after line by line. Removed chunks come
// before the added chunks that replace them.
func DiffLines(before, after string) []Chunk {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	chunks := make([]Chunk, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Value:   d.Text,
			Count:   countLines(d.Text),
			Added:   d.Type == diffmatchpatch.DiffInsert,
			Removed: d.Type == diffmatchpatch.DiffDelete,
		})
	}
	return chunks
}

func countLines(s string) int {
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
