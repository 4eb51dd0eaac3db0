package bioc

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
)

// Wire-format structs mirroring the BioC DTD. The model types use maps for
// infons, so (un)marshalling goes through these.

type xmlCollection struct {
	XMLName   xml.Name      `xml:"collection"`
	Source    string        `xml:"source"`
	Date      string        `xml:"date"`
	Key       string        `xml:"key"`
	Documents []xmlDocument `xml:"document"`
}

type xmlDocument struct {
	ID       string       `xml:"id"`
	Passages []xmlPassage `xml:"passage"`
}

type xmlPassage struct {
	Infons      []xmlInfon      `xml:"infon"`
	Offset      int             `xml:"offset"`
	Text        string          `xml:"text"`
	Annotations []xmlAnnotation `xml:"annotation"`
}

type xmlAnnotation struct {
	ID       string      `xml:"id,attr"`
	Infons   []xmlInfon  `xml:"infon"`
	Location xmlLocation `xml:"location"`
	Text     string      `xml:"text"`
}

type xmlLocation struct {
	Offset int `xml:"offset,attr"`
	Length int `xml:"length,attr"`
}

type xmlInfon struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Parse reads a BioC XML collection from r.
func Parse(r io.Reader) (*Collection, error) {
	var wire xmlCollection
	if err := xml.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode bioc collection: %w", err)
	}
	col := &Collection{Source: wire.Source, Date: wire.Date, Key: wire.Key}
	for _, wd := range wire.Documents {
		doc := &Document{ID: wd.ID}
		for _, wp := range wd.Passages {
			p := &Passage{
				Offset: wp.Offset,
				Text:   wp.Text,
				Infons: infonMap(wp.Infons),
			}
			for _, wa := range wp.Annotations {
				p.Annotations = append(p.Annotations, &Annotation{
					ID:       wa.ID,
					Infons:   infonMap(wa.Infons),
					Location: Location{Offset: wa.Location.Offset, Length: wa.Location.Length},
					Text:     wa.Text,
				})
			}
			doc.Passages = append(doc.Passages, p)
		}
		col.Documents = append(col.Documents, doc)
	}
	return col, nil
}

// Write serializes the collection as indented BioC XML.
func Write(w io.Writer, col *Collection) error {
	wire := xmlCollection{Source: col.Source, Date: col.Date, Key: col.Key}
	for _, doc := range col.Documents {
		wd := xmlDocument{ID: doc.ID}
		for _, p := range doc.Passages {
			wp := xmlPassage{
				Infons: infonList(p.Infons),
				Offset: p.Offset,
				Text:   p.Text,
			}
			for _, a := range p.Annotations {
				wp.Annotations = append(wp.Annotations, xmlAnnotation{
					ID:       a.ID,
					Infons:   infonList(a.Infons),
					Location: xmlLocation{Offset: a.Location.Offset, Length: a.Location.Length},
					Text:     a.Text,
				})
			}
			wd.Passages = append(wd.Passages, wp)
		}
		wire.Documents = append(wire.Documents, wd)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(wire); err != nil {
		return fmt.Errorf("encode bioc collection: %w", err)
	}
	return enc.Close()
}

func infonMap(in []xmlInfon) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for _, i := range in {
		out[i.Key] = i.Value
	}
	return out
}

// infonList renders infons sorted by key so output is deterministic.
func infonList(in map[string]string) []xmlInfon {
	if len(in) == 0 {
		return nil
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]xmlInfon, 0, len(keys))
	for _, k := range keys {
		out = append(out, xmlInfon{Key: k, Value: in[k]})
	}
	return out
}
