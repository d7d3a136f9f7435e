package textkit

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		text, name, want string
	}{
		{"Hello World", Upper, "HELLO WORLD"},
		{"Hello World", Lower, "hello world"},
		{"hello wORLD", Capitalize, "Hello WORLD"},
		{"hello world. HOW are you?  fine!", Sentence, "Hello world. How are you?  Fine!"},
		{"the lord of the rings", Title, "The Lord of the Rings"},
		{"a tale OF two cities", Title, "A Tale of Two Cities"},
		{"hello big world", Camel, "helloBigWorld"},
		{"Hello, big world!", Pascal, "HelloBigWorld"},
		{"helloWorld again", Pascal, "HelloWorldAgain"},
		{"  Hello World! ", Snake, "hello_world"},
		{"Hello   World", Kebab, "hello-world"},
		{"max retry count", Constant, "MAX_RETRY_COUNT"},
		{"", Upper, ""},
		{"", Camel, ""},
	}
	for _, tt := range tests {
		got, err := Convert(tt.text, tt.name)
		if err != nil {
			t.Errorf("Convert(%q, %s): %v", tt.text, tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Convert(%q, %s) = %q, want %q", tt.text, tt.name, got, tt.want)
		}
	}
}

func TestConvertUnknownCase(t *testing.T) {
	if _, err := Convert("x", "sarcasm"); !errors.Is(err, ErrUnknownCase) {
		t.Errorf("err = %v, want ErrUnknownCase", err)
	}
	for _, name := range Cases {
		if _, err := Convert("some text", name); err != nil {
			t.Errorf("Convert with listed case %q: %v", name, err)
		}
	}
}

func TestAnalyze(t *testing.T) {
	got := Analyze("Hello, world!\n\nHello again.")
	want := Stats{
		Words:        4,
		Characters:   27,
		SpecialChars: 3,
		Paragraphs:   2,
		TopWords: []WordCount{
			{Word: "hello", Count: 2},
			{Word: "again", Count: 1},
			{Word: "world", Count: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Analyze mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	got := Analyze("")
	want := Stats{TopWords: []WordCount{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Analyze(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeTopWordsLimit(t *testing.T) {
	got := Analyze("a b c d e f g h i j k l a")
	if len(got.TopWords) != TopWordsLimit {
		t.Fatalf("got %d top words, want %d", len(got.TopWords), TopWordsLimit)
	}
	if got.TopWords[0] != (WordCount{Word: "a", Count: 2}) {
		t.Errorf("first top word = %+v", got.TopWords[0])
	}
	if got.TopWords[1].Word != "b" {
		t.Errorf("ties not ordered by word: %+v", got.TopWords[1])
	}
}

func TestDiffLines(t *testing.T) {
	tests := []struct {
		name          string
		before, after string
		want          []Chunk
	}{
		{
			name:   "replaced line",
			before: "a\nb\nc\n",
			after:  "a\nx\nc\n",
			want: []Chunk{
				{Value: "a\n", Count: 1},
				{Value: "b\n", Count: 1, Removed: true},
				{Value: "x\n", Count: 1, Added: true},
				{Value: "c\n", Count: 1},
			},
		},
		{
			name:   "identical",
			before: "a\nb\n",
			after:  "a\nb\n",
			want:   []Chunk{{Value: "a\nb\n", Count: 2}},
		},
		{
			name:   "from empty",
			before: "",
			after:  "new\nlines",
			want:   []Chunk{{Value: "new\nlines", Count: 2, Added: true}},
		},
		{
			name:   "removed tail",
			before: "keep\ndrop\n",
			after:  "keep\n",
			want: []Chunk{
				{Value: "keep\n", Count: 1},
				{Value: "drop\n", Count: 1, Removed: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DiffLines(tt.before, tt.after)); diff != "" {
				t.Errorf("DiffLines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffLinesManyLines(t *testing.T) {
	var before, after strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&before, "line %d\n", i)
		if i == 120 {
			after.WriteString("changed\n")
			continue
		}
		fmt.Fprintf(&after, "line %d\n", i)
	}

	got := DiffLines(before.String(), after.String())
	if len(got) != 4 {
		t.Fatalf("got %d chunks, want 4: %+v", len(got), got)
	}
	if got[0].Count != 120 || got[3].Count != 179 {
		t.Errorf("unchanged counts = %d, %d", got[0].Count, got[3].Count)
	}
	if got[1] != (Chunk{Value: "line 120\n", Count: 1, Removed: true}) {
		t.Errorf("removed chunk = %+v", got[1])
	}
	if got[2] != (Chunk{Value: "changed\n", Count: 1, Added: true}) {
		t.Errorf("added chunk = %+v", got[2])
	}
}

func TestLoremBounds(t *testing.T) {
	l := NewLorem(7)

	text, err := l.Generate(LoremParagraphs, 6)
	if err != nil {
		t.Fatal(err)
	}
	paragraphs := strings.Split(text, "\n")
	if len(paragraphs) != 6 {
		t.Fatalf("got %d paragraphs, want 6", len(paragraphs))
	}
	for _, p := range paragraphs {
		sentences := strings.SplitAfter(p, ".")
		sentences = sentences[:len(sentences)-1]
		if len(sentences) < 4 || len(sentences) > 8 {
			t.Errorf("paragraph has %d sentences: %q", len(sentences), p)
		}
		for _, s := range sentences {
			words := strings.Fields(s)
			if len(words) < 4 || len(words) > 16 {
				t.Errorf("sentence has %d words: %q", len(words), s)
			}
			if first := strings.TrimSpace(s)[:1]; first != strings.ToUpper(first) {
				t.Errorf("sentence not capitalized: %q", s)
			}
		}
	}

	text, err = l.Generate(LoremWords, 25)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Fields(text)); n != 25 || strings.Contains(text, ".") {
		t.Errorf("words: got %d fields in %q", n, text)
	}

	text, err = l.Generate(LoremSentences, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(text, "."); n != 3 {
		t.Errorf("sentences: got %d periods in %q", n, text)
	}
}

func TestLoremSeeded(t *testing.T) {
	a, _ := NewLorem(42).Generate(LoremSentences, 5)
	b, _ := NewLorem(42).Generate(LoremSentences, 5)
	if a != b {
		t.Errorf("same seed gave different text:\n%s\n%s", a, b)
	}
}

func TestLoremErrors(t *testing.T) {
	l := NewLorem(1)
	if _, err := l.Generate("chapters", 2); !errors.Is(err, ErrUnknownLoremType) {
		t.Errorf("unknown type: err = %v", err)
	}
	for _, count := range []int{0, -1, LoremLimits[LoremWords] + 1} {
		if _, err := l.Generate(LoremWords, count); !errors.Is(err, ErrLoremCount) {
			t.Errorf("count %d: err = %v", count, err)
		}
	}
}
