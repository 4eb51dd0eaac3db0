package consolidate

import (
	"regexp"
	"strings"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

// Dot-leader characters used by tables of contents to connect a heading to
// its page number: '.', one-dot leader, two-dot leader, ellipsis, middle dot,
// midline ellipsis.
const dotChars = ".․‥…·⋯"

var (
	// "word ......... 12" shape, newlines allowed.
	dottedPageRe = regexp.MustCompile(`(?s)^.+[.\x{2024}\x{2025}\x{2026}\x{00B7}\x{22EF}\s-]+\d+\s*$`)

	// Front-matter headings: "Table of Contents", "Contents",
	// "List of (In-Text) Tables/Figures", "List of Images".
	frontMatterRe = regexp.MustCompile(`(?i)^\s*\b(table\s+of\s+contents|contents|list\s+of\s+(in[-\s]?text\s+)?tables?|list\s+of\s+(in[-\s]?text\s+)?figures?|list\s+of\s+images?)\b`)
)

// Dot thresholds: passages with a front-matter title need fewer leaders to be
// flagged than untitled dotted passages.
const (
	titledDotThreshold   = 100
	untitledDotThreshold = 250
)

// normalizeForMatch collapses all whitespace runs to single spaces.
func normalizeForMatch(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func countDotLeaders(s string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(dotChars, r) {
			n++
		}
	}
	return n
}

// isTOCLike reports whether a section passage looks like a table of contents:
// a front-matter title with at least 100 dot leaders and a dotted-page shape,
// or any title with at least 250 dot leaders and the same shape.
func isTOCLike(p *bioc.Passage) bool {
	if p.Infon(bioc.InfonType) != "section" {
		return false
	}
	text := normalizeForMatch(p.Text)
	title := normalizeForMatch(p.Infon(bioc.InfonSectionTitle))
	dots := countDotLeaders(text)
	if title != "" && frontMatterRe.MatchString(title) && dots >= titledDotThreshold && dottedPageRe.MatchString(text) {
		return true
	}
	return dots >= untitledDotThreshold && dottedPageRe.MatchString(text)
}

// RemoveTOC strips TOC-like passages from the document and returns them for
// audit; nothing is silently dropped.
func (c *Consolidator) RemoveTOC(doc *bioc.Document) []*bioc.Passage {
	var removed []*bioc.Passage
	kept := doc.Passages[:0]
	for _, p := range doc.Passages {
		if isTOCLike(p) {
			removed = append(removed, p)
			continue
		}
		kept = append(kept, p)
	}
	doc.Passages = kept
	if len(removed) > 0 {
		c.logger.Printf("removed %d TOC-like passages from document %s", len(removed), doc.ID)
	}
	return removed
}
