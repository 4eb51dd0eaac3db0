package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/merge"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/pipeline"
)

// LoadTaggerDocs reads the per-tagger BioC files for one article. taggers maps
// tagger name to the subdirectory under inputDir holding that tagger's output;
// the file itself is <articleID>.xml. A missing tmvar file falls back to the
// gnorm2 output when one is configured. Taggers whose files are absent are
// skipped; at least one must be present.
func LoadTaggerDocs(inputDir, articleID string, taggers map[string]string) ([]merge.TaggerDoc, error) {
	var docs []merge.TaggerDoc
	for _, t := range merge.Priority {
		dir, ok := taggers[string(t)]
		if !ok {
			continue
		}
		doc, err := readTaggerDoc(filepath.Join(inputDir, dir, articleID+".xml"))
		if err != nil {
			if os.IsNotExist(err) && t == merge.TaggerTmVar {
				if alt, ok := taggers[string(merge.TaggerGNorm2)]; ok {
					doc, err = readTaggerDoc(filepath.Join(inputDir, alt, articleID+".xml"))
					if err == nil {
						docs = append(docs, merge.TaggerDoc{Tagger: merge.TaggerGNorm2, Doc: doc})
						continue
					}
				}
			}
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("load %s output for %s: %w", t, articleID, err)
		}
		docs = append(docs, merge.TaggerDoc{Tagger: t, Doc: doc})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no tagger outputs found for article %s under %s", articleID, inputDir)
	}
	return docs, nil
}

func readTaggerDoc(path string) (*bioc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	col, err := bioc.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(col.Documents) == 0 {
		return nil, fmt.Errorf("%s: collection holds no documents", path)
	}
	return col.Documents[0], nil
}

// WriteArtifacts persists one processed article under outputDir: the
// consolidated BioC XML, the chunk records as JSON, and (when any passages
// were dropped) the removed passages for audit.
func WriteArtifacts(outputDir, articleID string, res *pipeline.Result) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	col := &bioc.Collection{Source: "pubtator", Documents: []*bioc.Document{res.Document}}
	if err := writeXML(filepath.Join(outputDir, articleID+".consolidated.xml"), col); err != nil {
		return err
	}

	chunksPath := filepath.Join(outputDir, articleID+".chunks.json")
	buf, err := json.MarshalIndent(res.Chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode chunks: %w", err)
	}
	if err := os.WriteFile(chunksPath, buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", chunksPath, err)
	}

	if len(res.RemovedPassages) > 0 {
		removed := &bioc.Collection{
			Source:    "pubtator",
			Documents: []*bioc.Document{{ID: res.Document.ID, Passages: res.RemovedPassages}},
		}
		if err := writeXML(filepath.Join(outputDir, articleID+".removed.xml"), removed); err != nil {
			return err
		}
	}
	return nil
}

func writeXML(path string, col *bioc.Collection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := bioc.Write(f, col); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
