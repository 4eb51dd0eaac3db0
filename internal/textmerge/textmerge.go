// Package textmerge folds a chunk's annotations back into renderable text
// for model consumption.
package textmerge

import (
	"fmt"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/chunk"
)

// Kind selects an annotation/text merging strategy.
type Kind string

const (
	KindAppend  Kind = "append"
	KindInline  Kind = "inline"
	KindPrepend Kind = "prepend"
)

// Merger renders chunk text with its annotations folded in.
type Merger interface {
	Merge(text string, anns []chunk.Annotation) string
}

// New returns the merger for kind, or an error for unknown kinds.
func New(kind Kind) (Merger, error) {
	switch kind {
	case KindAppend:
		return &AppendMerger{}, nil
	case KindInline:
		return &InlineMerger{}, nil
	case KindPrepend:
		return &PrependMerger{}, nil
	default:
		return nil, fmt.Errorf("textmerge: unknown merger kind %q", kind)
	}
}

// annotationKey identifies an annotation for deduplication: two annotations
// with the same text, type and identifier render identically.
type annotationKey struct {
	text       string
	typ        string
	label      string
	identifier string
}

func keyOf(a chunk.Annotation) annotationKey {
	return annotationKey{text: a.Text, typ: a.Type, label: a.Label, identifier: a.Identifier}
}

// distinct returns annotations deduplicated by key, preserving first
// occurrence order.
func distinct(anns []chunk.Annotation) []chunk.Annotation {
	seen := make(map[annotationKey]struct{}, len(anns))
	var out []chunk.Annotation
	for _, a := range anns {
		k := keyOf(a)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	return out
}
