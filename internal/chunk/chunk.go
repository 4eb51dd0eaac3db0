// Package chunk splits consolidated documents into bounded chunks for
// embedding, each chunk carrying the annotations that overlap its span.
package chunk

import (
	"fmt"
	"regexp"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

// Kind selects a chunking strategy.
type Kind string

const (
	KindPassage              Kind = "passage"
	KindAnnotationAware      Kind = "annotation_aware"
	KindSlidingWindow        Kind = "sliding_window"
	KindGroupedSlidingWindow Kind = "grouped_annotation_sliding_window"
)

// Defaults applied when Options fields are zero.
const (
	DefaultMaxTokensPerChunk = 512
	DefaultWindowSize        = 512
)

// Options holds strategy parameters. Stride defaults to WindowSize/2.
type Options struct {
	MaxTokensPerChunk int
	WindowSize        int
	Stride            int
}

func (o Options) withDefaults() Options {
	if o.MaxTokensPerChunk <= 0 {
		o.MaxTokensPerChunk = DefaultMaxTokensPerChunk
	}
	if o.WindowSize <= 0 {
		o.WindowSize = DefaultWindowSize
	}
	if o.Stride <= 0 {
		o.Stride = o.WindowSize / 2
	}
	return o
}

// Annotation is the chunk-level view of a bioc annotation: a copy with the
// display identifier already resolved. Offsets stay relative to the passage
// the annotation originally belonged to.
type Annotation struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Type       string `json:"type"`
	Label      string `json:"label"`
	Identifier string `json:"identifier"`
	Offset     int    `json:"offset"`
	Length     int    `json:"length"`
}

// Chunk is an independent bounded text unit. It holds copies of text,
// infons and annotations; once produced it does not reference its source
// document.
type Chunk struct {
	Text        string            `json:"text"`
	Offset      int               `json:"offset"`
	Infons      map[string]string `json:"infons,omitempty"`
	Annotations []Annotation      `json:"annotations"`
	Sequence    int               `json:"sequence"`
	// GroupType is set by the grouped sliding-window chunker only.
	GroupType string `json:"group_type,omitempty"`
}

// Chunker is the contract all strategies implement.
type Chunker interface {
	Chunk(doc *bioc.Document) []Chunk
}

// New returns the chunker for kind, or an error for unknown kinds.
func New(kind Kind, opts Options) (Chunker, error) {
	opts = opts.withDefaults()
	switch kind {
	case KindPassage:
		return &PassageChunker{}, nil
	case KindAnnotationAware:
		return &AnnotationAwareChunker{maxTokens: opts.MaxTokensPerChunk}, nil
	case KindSlidingWindow:
		return &SlidingWindowChunker{windowSize: opts.WindowSize, stride: opts.Stride}, nil
	case KindGroupedSlidingWindow:
		return &GroupedSlidingWindowChunker{windowSize: opts.WindowSize, stride: opts.Stride}, nil
	default:
		return nil, fmt.Errorf("chunk: unknown chunker kind %q", kind)
	}
}

// tokenRe splits text into alternating word and whitespace tokens, so joining
// tokens reproduces the original spacing exactly.
var tokenRe = regexp.MustCompile(`\S+|\s+`)

func tokenize(text string) []string {
	return tokenRe.FindAllString(text, -1)
}

func annotationViews(p *bioc.Passage) []Annotation {
	if len(p.Annotations) == 0 {
		return nil
	}
	out := make([]Annotation, 0, len(p.Annotations))
	for _, a := range p.Annotations {
		out = append(out, annotationView(a))
	}
	return out
}

func annotationView(a *bioc.Annotation) Annotation {
	label, value := ResolveIdentifier(a)
	return Annotation{
		ID:         a.ID,
		Text:       a.Text,
		Type:       a.Type(),
		Label:      label,
		Identifier: value,
		Offset:     a.Location.Offset,
		Length:     a.Location.Length,
	}
}
