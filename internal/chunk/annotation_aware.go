package chunk

import (
	"strings"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

// AnnotationAwareChunker accumulates whole passages into a token buffer and
// flushes it whenever adding the next passage would exceed the token budget.
// Chunk boundaries therefore only ever fall on passage boundaries.
type AnnotationAwareChunker struct {
	maxTokens int
}

func (c *AnnotationAwareChunker) Chunk(doc *bioc.Document) []Chunk {
	var chunks []Chunk
	var (
		buf    []string
		anns   []Annotation
		infons map[string]string
		offset int
	)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text:        strings.Join(buf, " "),
			Offset:      offset,
			Infons:      bioc.CopyInfons(infons),
			Annotations: anns,
			Sequence:    len(chunks) + 1,
		})
		buf = nil
		anns = nil
		infons = nil
	}

	for _, p := range doc.Passages {
		tokens := strings.Fields(p.Text)
		if len(buf) > 0 && len(buf)+len(tokens) > c.maxTokens {
			flush()
		}
		if len(buf) == 0 {
			// The first passage in the buffer supplies infons and offset.
			infons = p.Infons
			offset = p.Offset
		}
		anns = append(anns, annotationViews(p)...)
		buf = append(buf, tokens...)
	}
	flush()
	return chunks
}
