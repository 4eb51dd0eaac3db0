package chunk

import (
	"strings"
	"testing"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

func ann(id, typ, text string, offset, length int, extra map[string]string) *bioc.Annotation {
	infons := map[string]string{bioc.InfonType: typ}
	for k, v := range extra {
		infons[k] = v
	}
	return &bioc.Annotation{
		ID:       id,
		Infons:   infons,
		Text:     text,
		Location: bioc.Location{Offset: offset, Length: length},
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New(Kind("bogus"), Options{}); err == nil {
		t.Fatal("want error for unknown kind")
	}
}

func TestNewKnownKinds(t *testing.T) {
	for _, kind := range []Kind{KindPassage, KindAnnotationAware, KindSlidingWindow, KindGroupedSlidingWindow} {
		if _, err := New(kind, Options{}); err != nil {
			t.Errorf("New(%q): %v", kind, err)
		}
	}
}

func TestPassageChunker(t *testing.T) {
	doc := &bioc.Document{Passages: []*bioc.Passage{
		{
			Offset: 0,
			Text:   "first passage",
			Infons: map[string]string{bioc.InfonSectionTitle: "Intro"},
			Annotations: []*bioc.Annotation{
				ann("0", "Disease", "cancer", 6, 6, map[string]string{"identifier": "MESH:D009369"}),
			},
		},
		{Offset: 14, Text: "second passage"},
	}}

	c, err := New(KindPassage, Options{})
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.Chunk(doc)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if chunks[0].Sequence != 1 || chunks[1].Sequence != 2 {
		t.Errorf("sequences = %d, %d", chunks[0].Sequence, chunks[1].Sequence)
	}
	if chunks[0].Text != "first passage" || chunks[0].Offset != 0 {
		t.Errorf("chunk 0 = %+v", chunks[0])
	}
	if len(chunks[0].Annotations) != 1 {
		t.Fatalf("chunk 0 annotations = %d", len(chunks[0].Annotations))
	}
	a := chunks[0].Annotations[0]
	if a.Label != "Identifier" || a.Identifier != "MESH:D009369" {
		t.Errorf("resolved annotation = %+v", a)
	}
	if chunks[1].Text != "second passage" || chunks[1].Offset != 14 {
		t.Errorf("chunk 1 = %+v", chunks[1])
	}
}

func TestAnnotationAwareChunkerFlushesBeforeOverflow(t *testing.T) {
	doc := &bioc.Document{Passages: []*bioc.Passage{
		{
			Offset:      0,
			Text:        "one two three",
			Infons:      map[string]string{bioc.InfonSectionTitle: "A"},
			Annotations: []*bioc.Annotation{ann("0", "Gene", "two", 4, 3, nil)},
		},
		{
			Offset:      14,
			Text:        "four five six",
			Infons:      map[string]string{bioc.InfonSectionTitle: "B"},
			Annotations: []*bioc.Annotation{ann("1", "Disease", "five", 5, 4, nil)},
		},
		{Offset: 28, Text: "seven eight"},
	}}

	c, err := New(KindAnnotationAware, Options{MaxTokensPerChunk: 5})
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.Chunk(doc)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}

	// 3+3 would exceed 5, so the first passage flushes alone; 3+2 fits.
	if chunks[0].Text != "one two three" {
		t.Errorf("chunk 0 text = %q", chunks[0].Text)
	}
	if chunks[1].Text != "four five six seven eight" {
		t.Errorf("chunk 1 text = %q", chunks[1].Text)
	}
	if chunks[1].Offset != 14 || chunks[1].Infons[bioc.InfonSectionTitle] != "B" {
		t.Errorf("chunk 1 metadata = %+v", chunks[1])
	}
	if len(chunks[0].Annotations) != 1 || chunks[0].Annotations[0].ID != "0" {
		t.Errorf("chunk 0 annotations = %+v", chunks[0].Annotations)
	}
	if len(chunks[1].Annotations) != 1 || chunks[1].Annotations[0].ID != "1" {
		t.Errorf("chunk 1 annotations = %+v", chunks[1].Annotations)
	}
}

func TestAnnotationAwareChunkerSingleOversizedPassage(t *testing.T) {
	doc := &bioc.Document{Passages: []*bioc.Passage{
		{Text: strings.Repeat("tok ", 20)},
	}}
	c, _ := New(KindAnnotationAware, Options{MaxTokensPerChunk: 5})
	chunks := c.Chunk(doc)
	// A single passage is never split, even past the budget.
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
}

func TestSlidingWindowChunker(t *testing.T) {
	// 6 words + 5 spaces = 11 tokens.
	text := "a b c d e f"
	doc := &bioc.Document{Passages: []*bioc.Passage{
		{
			Offset: 100,
			Text:   text,
			Annotations: []*bioc.Annotation{
				ann("0", "Gene", "a", 0, 1, nil),
				ann("1", "Disease", "f", 10, 1, nil),
			},
		},
	}}

	c, err := New(KindSlidingWindow, Options{WindowSize: 5, Stride: 2})
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.Chunk(doc)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}

	wantTexts := []string{"a b c", "b c d", "c d e f"}
	wantOffsets := []int{100, 102, 104}
	for i, ck := range chunks {
		if ck.Text != wantTexts[i] {
			t.Errorf("chunk %d text = %q, want %q", i, ck.Text, wantTexts[i])
		}
		if ck.Offset != wantOffsets[i] {
			t.Errorf("chunk %d offset = %d, want %d", i, ck.Offset, wantOffsets[i])
		}
		if ck.Sequence != i+1 {
			t.Errorf("chunk %d sequence = %d", i, ck.Sequence)
		}
	}

	if len(chunks[0].Annotations) != 1 || chunks[0].Annotations[0].ID != "0" {
		t.Errorf("chunk 0 annotations = %+v", chunks[0].Annotations)
	}
	if len(chunks[1].Annotations) != 0 {
		t.Errorf("chunk 1 annotations = %+v", chunks[1].Annotations)
	}
	if len(chunks[2].Annotations) != 1 || chunks[2].Annotations[0].ID != "1" {
		t.Errorf("chunk 2 annotations = %+v", chunks[2].Annotations)
	}
}

func TestSlidingWindowShortTextSingleWindow(t *testing.T) {
	doc := &bioc.Document{Passages: []*bioc.Passage{{Text: "short text here"}}}
	c, _ := New(KindSlidingWindow, Options{})
	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].Text != "short text here" {
		t.Errorf("text = %q", chunks[0].Text)
	}
}

func TestSlidingWindowEmptyPassage(t *testing.T) {
	doc := &bioc.Document{Passages: []*bioc.Passage{{Text: ""}}}
	c, _ := New(KindSlidingWindow, Options{})
	if chunks := c.Chunk(doc); len(chunks) != 0 {
		t.Fatalf("chunks = %d, want 0", len(chunks))
	}
}

func TestSlidingWindowReconstruction(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("tok")
		b.WriteString(strings.Repeat(" ", i%3+1))
	}
	text := strings.TrimRight(b.String(), " ")
	doc := &bioc.Document{Passages: []*bioc.Passage{{Offset: 0, Text: text}}}

	c, _ := New(KindSlidingWindow, Options{WindowSize: 16, Stride: 8})
	chunks := c.Chunk(doc)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want several", len(chunks))
	}

	// Splice chunks back together by character offset: each chunk past the
	// first contributes only the part beyond the previous chunk's end.
	rebuilt := chunks[0].Text
	end := chunks[0].Offset + len(chunks[0].Text)
	for _, ck := range chunks[1:] {
		if ck.Offset > end {
			t.Fatalf("gap between chunks at offset %d", ck.Offset)
		}
		tail := end - ck.Offset
		if tail < len(ck.Text) {
			rebuilt += ck.Text[tail:]
			end = ck.Offset + len(ck.Text)
		}
	}
	if rebuilt != text {
		t.Errorf("reconstruction mismatch:\n%q\n%q", rebuilt, text)
	}
}

func TestSlidingWindowPreservesSpacing(t *testing.T) {
	text := "alpha  beta\tgamma delta epsilon zeta"
	doc := &bioc.Document{Passages: []*bioc.Passage{{Text: text}}}
	c, _ := New(KindSlidingWindow, Options{WindowSize: 1000})
	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("spacing not preserved: %q", chunks[0].Text)
	}
}

func TestGroupedSlidingWindowChunker(t *testing.T) {
	// 6 words + 5 spaces = 11 tokens; windows as in the plain sliding test.
	doc := &bioc.Document{Passages: []*bioc.Passage{
		{
			Offset: 0,
			Text:   "a b c d e f",
			Annotations: []*bioc.Annotation{
				ann("0", "Gene", "a", 0, 1, nil),
				ann("1", "Disease", "f", 10, 1, nil),
				ann("2", "Gene", "f", 10, 1, nil),
			},
		},
	}}

	c, err := New(KindGroupedSlidingWindow, Options{WindowSize: 5, Stride: 2})
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.Chunk(doc)

	// Gene hits windows 1 and 3, Disease window 3 only; empty windows drop.
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	if chunks[0].GroupType != "Gene" || chunks[0].Text != "a b c" {
		t.Errorf("chunk 0 = %+v", chunks[0])
	}
	if chunks[1].GroupType != "Gene" || chunks[1].Text != "c d e f" {
		t.Errorf("chunk 1 = %+v", chunks[1])
	}
	if chunks[2].GroupType != "Disease" || chunks[2].Text != "c d e f" {
		t.Errorf("chunk 2 = %+v", chunks[2])
	}
	if len(chunks[2].Annotations) != 1 || chunks[2].Annotations[0].ID != "1" {
		t.Errorf("chunk 2 annotations = %+v", chunks[2].Annotations)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.MaxTokensPerChunk != DefaultMaxTokensPerChunk {
		t.Errorf("MaxTokensPerChunk = %d", o.MaxTokensPerChunk)
	}
	if o.WindowSize != DefaultWindowSize {
		t.Errorf("WindowSize = %d", o.WindowSize)
	}
	if o.Stride != DefaultWindowSize/2 {
		t.Errorf("Stride = %d", o.Stride)
	}
}
