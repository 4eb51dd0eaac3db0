// Package merge combines the per-tagger annotated copies of one article into
// a single document with a consistent, type-filtered annotation set.
package merge

import (
	"fmt"
	"log"
	"strconv"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

// Tagger identifies one of the upstream normalizers.
type Tagger string

const (
	TaggerDisease  Tagger = "disease"
	TaggerChemical Tagger = "chemical"
	TaggerCellLine Tagger = "cellline"
	TaggerTmVar    Tagger = "tmvar"
	// TaggerGNorm2 is the fallback when no tmvar output exists for an
	// article; it uses the same admission predicate as tmvar.
	TaggerGNorm2 Tagger = "gnorm2"
)

// Priority is the fixed processing order. The first tagger present supplies
// the structural skeleton of the merged document.
var Priority = []Tagger{TaggerDisease, TaggerChemical, TaggerCellLine, TaggerTmVar}

// TaggerDoc pairs a tagger name with its annotated copy of the article.
type TaggerDoc struct {
	Tagger Tagger
	Doc    *bioc.Document
}

// StructureMismatchError reports a tagger document whose passage count
// diverges from the first tagger's. The whole article is rejected.
type StructureMismatchError struct {
	Tagger Tagger
	Got    int
	Want   int
}

func (e *StructureMismatchError) Error() string {
	return fmt.Sprintf("merge: tagger %q has %d passages, first tagger has %d", e.Tagger, e.Got, e.Want)
}

// Merger builds one consolidated annotation set from N tagger documents.
type Merger struct {
	logger *log.Logger
}

// New constructs a Merger. logger may be nil.
func New(logger *log.Logger) *Merger {
	if logger == nil {
		logger = log.New(log.Writer(), "[MERGE] ", log.LstdFlags)
	}
	return &Merger{logger: logger}
}

// keep reports whether an annotation of the given type is admitted for the
// tagger. Each tagger only contributes the entity class it is trusted for;
// tmvar (and its gnorm2 fallback) supplies everything the others do not.
func keep(t Tagger, annType string) bool {
	switch t {
	case TaggerDisease:
		return annType == "Disease"
	case TaggerChemical:
		return annType == "Chemical"
	case TaggerCellLine:
		return annType == "CellLine"
	case TaggerTmVar, TaggerGNorm2:
		return annType != "Chemical" && annType != "Disease" && annType != "CellLine"
	default:
		return false
	}
}

// Merge produces one document from the ordered tagger documents. The first
// document's passage order, text and infons are inherited wholesale; later
// documents contribute annotations only, appended to the matching passage by
// index. Kept annotations are renumbered with a single counter starting at 0.
//
// The inputs are not mutated.
func (m *Merger) Merge(docs []TaggerDoc) (*bioc.Document, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("merge: no tagger documents provided")
	}
	for _, td := range docs {
		switch td.Tagger {
		case TaggerDisease, TaggerChemical, TaggerCellLine, TaggerTmVar, TaggerGNorm2:
		default:
			return nil, fmt.Errorf("merge: unknown tagger %q", td.Tagger)
		}
		if td.Doc == nil {
			return nil, fmt.Errorf("merge: tagger %q has no document", td.Tagger)
		}
	}

	docs = orderByPriority(docs)
	first := docs[0]
	merged := first.Doc.Clone()
	want := len(merged.Passages)
	for _, td := range docs[1:] {
		if got := len(td.Doc.Passages); got != want {
			return nil, &StructureMismatchError{Tagger: td.Tagger, Got: got, Want: want}
		}
	}

	nextID := 0
	for _, p := range merged.Passages {
		kept := p.Annotations[:0]
		for _, ann := range p.Annotations {
			if !keep(first.Tagger, ann.Type()) {
				continue
			}
			ann.ID = strconv.Itoa(nextID)
			nextID++
			kept = append(kept, ann)
		}
		p.Annotations = kept
	}

	for _, td := range docs[1:] {
		for i, src := range td.Doc.Passages {
			dst := merged.Passages[i]
			for _, ann := range src.Annotations {
				if !keep(td.Tagger, ann.Type()) {
					continue
				}
				c := ann.Clone()
				c.ID = strconv.Itoa(nextID)
				nextID++
				dst.Annotations = append(dst.Annotations, c)
			}
		}
	}

	m.logger.Printf("merged %d tagger documents for %s: %d annotations", len(docs), merged.ID, nextID)
	return merged, nil
}

// orderByPriority arranges tagger documents into the fixed processing order.
// gnorm2 occupies the tmvar slot. Taggers absent from the input are skipped;
// duplicates keep their first occurrence.
func orderByPriority(docs []TaggerDoc) []TaggerDoc {
	slot := func(t Tagger) Tagger {
		if t == TaggerGNorm2 {
			return TaggerTmVar
		}
		return t
	}
	byTagger := make(map[Tagger]TaggerDoc, len(docs))
	for _, td := range docs {
		s := slot(td.Tagger)
		if _, ok := byTagger[s]; !ok {
			byTagger[s] = td
		}
	}
	out := make([]TaggerDoc, 0, len(byTagger))
	for _, t := range Priority {
		if td, ok := byTagger[t]; ok {
			out = append(out, td)
		}
	}
	return out
}
