package chunk

import (
	"sort"
	"strings"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

const (
	labelNCBIGene     = "NCBI Gene"
	labelNCBITaxonomy = "NCBI Taxonomy"
	labelIdentifier   = "Identifier"

	// IdentifierNA is the value used when no identifier can be resolved.
	IdentifierNA = "N/A"
)

// ResolveIdentifier picks the display identifier for an annotation by type:
// genes carry an "NCBI Gene" infon, species/strains/genera "NCBI Taxonomy",
// chemicals/diseases/cell lines a generic "identifier", tmVar-style
// annotations an "Identifier". Anything else falls back to a comma join of
// its remaining infon values. The value is "N/A" when nothing resolves.
func ResolveIdentifier(a *bioc.Annotation) (label, value string) {
	infon := func(key string) string {
		if a.Infons == nil {
			return ""
		}
		return a.Infons[key]
	}
	switch strings.ToLower(a.Type()) {
	case "gene":
		return labelNCBIGene, orNA(infon(labelNCBIGene))
	case "species", "strain", "genus":
		return labelNCBITaxonomy, orNA(infon(labelNCBITaxonomy))
	case "chemical", "disease", "cellline":
		return labelIdentifier, orNA(infon("identifier"))
	}
	if v := infon("Identifier"); v != "" {
		return labelIdentifier, v
	}
	return labelIdentifier, orNA(joinOtherInfons(a.Infons))
}

// joinOtherInfons comma-joins infon values other than the type and identifier
// keys, sorted by key for deterministic output.
func joinOtherInfons(infons map[string]string) string {
	if len(infons) == 0 {
		return ""
	}
	keys := make([]string, 0, len(infons))
	for k := range infons {
		switch strings.ToLower(k) {
		case "type", "identifier", "ncbi gene", "ncbi taxonomy":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vals := make([]string, 0, len(keys))
	for _, k := range keys {
		vals = append(vals, infons[k])
	}
	return strings.Join(vals, ", ")
}

func orNA(s string) string {
	if s == "" {
		return IdentifierNA
	}
	return s
}
