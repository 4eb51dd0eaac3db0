package textmerge

import (
	"fmt"
	"strings"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/chunk"
)

// AppendMerger renders the chunk text followed by an "Annotations:" section
// with one block per annotation.
type AppendMerger struct{}

func (m *AppendMerger) Merge(text string, anns []chunk.Annotation) string {
	out := strings.TrimSpace(text)
	if len(anns) == 0 {
		return out
	}
	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n\nAnnotations:\n")
	for _, a := range anns {
		fmt.Fprintf(&b, "Text - %s\nType - %s\n%s - %s\nText Offset - %d\nText Length - %d\n\n",
			a.Text, a.Type, a.Label, a.Identifier, a.Offset, a.Length)
	}
	return strings.TrimSpace(b.String())
}
