// Package bioc holds the in-memory model for BioC collections plus the XML
// codec used to read tagger outputs and write consolidated documents.
package bioc

// Infon keys recognized on passages throughout the pipeline.
const (
	InfonType         = "type"
	InfonSectionTitle = "section_title"
	InfonProvenance   = "provenance"
	InfonSection      = "section"
)

// Collection is the top-level BioC container.
type Collection struct {
	Source    string
	Date      string
	Key       string
	Documents []*Document
}

// Document is one article: an ordered sequence of passages.
type Document struct {
	ID       string
	Passages []*Passage
}

// Passage is a contiguous labeled block of document text. Annotation spans
// are relative to the passage's own text.
type Passage struct {
	Offset      int
	Text        string
	Infons      map[string]string
	Annotations []*Annotation
}

// Annotation is a typed span [Offset, Offset+Length) within a passage.
type Annotation struct {
	ID       string
	Infons   map[string]string
	Location Location
	Text     string
}

// Location anchors an annotation within its passage.
type Location struct {
	Offset int
	Length int
}

// Type returns the annotation's "type" infon, or "" when absent.
func (a *Annotation) Type() string {
	if a.Infons == nil {
		return ""
	}
	return a.Infons[InfonType]
}

// Infon returns the passage infon for key, or "" when absent.
func (p *Passage) Infon(key string) string {
	if p.Infons == nil {
		return ""
	}
	return p.Infons[key]
}

// Clone returns a deep copy of the annotation.
func (a *Annotation) Clone() *Annotation {
	return &Annotation{
		ID:       a.ID,
		Infons:   CopyInfons(a.Infons),
		Location: a.Location,
		Text:     a.Text,
	}
}

// Clone returns a deep copy of the passage, annotations included.
func (p *Passage) Clone() *Passage {
	out := &Passage{
		Offset: p.Offset,
		Text:   p.Text,
		Infons: CopyInfons(p.Infons),
	}
	if len(p.Annotations) > 0 {
		out.Annotations = make([]*Annotation, 0, len(p.Annotations))
		for _, ann := range p.Annotations {
			out.Annotations = append(out.Annotations, ann.Clone())
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{ID: d.ID}
	if len(d.Passages) > 0 {
		out.Passages = make([]*Passage, 0, len(d.Passages))
		for _, p := range d.Passages {
			out.Passages = append(out.Passages, p.Clone())
		}
	}
	return out
}

// CopyInfons copies an infon map; nil in, nil out.
func CopyInfons(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
