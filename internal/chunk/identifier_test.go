package chunk

import (
	"testing"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

func TestResolveIdentifier(t *testing.T) {
	tests := []struct {
		name      string
		infons    map[string]string
		wantLabel string
		wantValue string
	}{
		{
			name:      "gene",
			infons:    map[string]string{"type": "Gene", "NCBI Gene": "672"},
			wantLabel: "NCBI Gene",
			wantValue: "672",
		},
		{
			name:      "gene without identifier",
			infons:    map[string]string{"type": "Gene"},
			wantLabel: "NCBI Gene",
			wantValue: "N/A",
		},
		{
			name:      "species",
			infons:    map[string]string{"type": "Species", "NCBI Taxonomy": "9606"},
			wantLabel: "NCBI Taxonomy",
			wantValue: "9606",
		},
		{
			name:      "strain",
			infons:    map[string]string{"type": "Strain", "NCBI Taxonomy": "10090"},
			wantLabel: "NCBI Taxonomy",
			wantValue: "10090",
		},
		{
			name:      "disease",
			infons:    map[string]string{"type": "Disease", "identifier": "MESH:D008545"},
			wantLabel: "Identifier",
			wantValue: "MESH:D008545",
		},
		{
			name:      "chemical",
			infons:    map[string]string{"type": "Chemical", "identifier": "MESH:D001241"},
			wantLabel: "Identifier",
			wantValue: "MESH:D001241",
		},
		{
			name:      "cell line case-insensitive type",
			infons:    map[string]string{"type": "CellLine", "identifier": "CVCL_0023"},
			wantLabel: "Identifier",
			wantValue: "CVCL_0023",
		},
		{
			name:      "variant with Identifier infon",
			infons:    map[string]string{"type": "ProteinMutation", "Identifier": "rs113488022"},
			wantLabel: "Identifier",
			wantValue: "rs113488022",
		},
		{
			name:      "unknown type joins remaining infons sorted by key",
			infons:    map[string]string{"type": "Mutation", "b_key": "second", "a_key": "first"},
			wantLabel: "Identifier",
			wantValue: "first, second",
		},
		{
			name:      "nothing to resolve",
			infons:    map[string]string{"type": "Mutation"},
			wantLabel: "Identifier",
			wantValue: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &bioc.Annotation{Infons: tt.infons}
			label, value := ResolveIdentifier(a)
			if label != tt.wantLabel || value != tt.wantValue {
				t.Errorf("ResolveIdentifier = (%q, %q), want (%q, %q)", label, value, tt.wantLabel, tt.wantValue)
			}
		})
	}
}
