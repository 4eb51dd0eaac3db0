package textmerge

import (
	"fmt"
	"strings"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/chunk"
)

// PrependMerger renders deduplicated annotation blocks first, then the chunk
// text, so the model sees the entity table before the prose.
type PrependMerger struct{}

func (m *PrependMerger) Merge(text string, anns []chunk.Annotation) string {
	var b strings.Builder
	if len(anns) > 0 {
		b.WriteString("Annotations:\n")
		for _, a := range distinct(anns) {
			fmt.Fprintf(&b, "Text - %s\nType - %s\n%s - %s\n", a.Text, a.Type, a.Label, a.Identifier)
		}
	}
	fmt.Fprintf(&b, "Chunk Text:\n%s", text)
	return b.String()
}
