package chunk

import (
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

// PassageChunker emits one chunk per passage, verbatim.
type PassageChunker struct{}

func (c *PassageChunker) Chunk(doc *bioc.Document) []Chunk {
	chunks := make([]Chunk, 0, len(doc.Passages))
	for _, p := range doc.Passages {
		chunks = append(chunks, Chunk{
			Text:        p.Text,
			Offset:      p.Offset,
			Infons:      bioc.CopyInfons(p.Infons),
			Annotations: annotationViews(p),
			Sequence:    len(chunks) + 1,
		})
	}
	return chunks
}
