package textmerge

import (
	"fmt"
	"strings"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/chunk"
)

// InlineMerger rewrites every occurrence of each annotation's text in place
// with an inline identifier tag. The replacement is a whole-text literal
// substring replace, independent of annotation offsets: when one annotation's
// text is a substring of another, or the same surface form appears in an
// unrelated context, all occurrences are rewritten identically. That is the
// contract of this strategy, not an accident.
type InlineMerger struct{}

func (m *InlineMerger) Merge(text string, anns []chunk.Annotation) string {
	for _, a := range distinct(anns) {
		if a.Text == "" {
			continue
		}
		tag := fmt.Sprintf("%s << Type-%s, %s-%s >>", a.Text, a.Type, a.Label, a.Identifier)
		text = strings.ReplaceAll(text, a.Text, tag)
	}
	return text
}
