package chunk

import (
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

// GroupedSlidingWindowChunker runs the sliding-window mechanics once per
// distinct annotation type in each passage, keeping a window only when an
// annotation of that type overlaps it. Different types produce independent
// chunk streams; overlapping windows across types are expected and kept.
type GroupedSlidingWindowChunker struct {
	windowSize int
	stride     int
}

func (c *GroupedSlidingWindowChunker) Chunk(doc *bioc.Document) []Chunk {
	var chunks []Chunk
	for _, p := range doc.Passages {
		windows := slideWindows(p.Text, c.windowSize, c.stride)
		if len(windows) == 0 {
			continue
		}
		for _, group := range groupByType(p.Annotations) {
			for _, w := range windows {
				var hits []Annotation
				for _, a := range group.annotations {
					if overlaps(a, w) {
						hits = append(hits, annotationView(a))
					}
				}
				if len(hits) == 0 {
					continue
				}
				chunks = append(chunks, Chunk{
					Text:        w.text,
					Offset:      p.Offset + w.charStart,
					Infons:      bioc.CopyInfons(p.Infons),
					Annotations: hits,
					Sequence:    len(chunks) + 1,
					GroupType:   group.typ,
				})
			}
		}
	}
	return chunks
}

type annotationGroup struct {
	typ         string
	annotations []*bioc.Annotation
}

// groupByType buckets annotations by their type infon, preserving the order
// in which types are first encountered.
func groupByType(anns []*bioc.Annotation) []annotationGroup {
	var groups []annotationGroup
	index := map[string]int{}
	for _, a := range anns {
		t := a.Type()
		i, ok := index[t]
		if !ok {
			i = len(groups)
			index[t] = i
			groups = append(groups, annotationGroup{typ: t})
		}
		groups[i].annotations = append(groups[i].annotations, a)
	}
	return groups
}
