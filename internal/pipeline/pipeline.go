// Package pipeline wires the merge, consolidate, chunk and text-merge stages
// into one synchronous per-document run.
package pipeline

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/chunk"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/consolidate"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/merge"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/telemetry"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/textmerge"
)

// Options selects strategies and thresholds for one Processor. Zero values
// take the package defaults of each stage.
type Options struct {
	Chunker     chunk.Kind
	Merger      textmerge.Kind
	Chunk       chunk.Options
	Consolidate consolidate.Options
}

// Input is one article with its per-tagger annotated copies.
type Input struct {
	ArticleID string
	Taggers   []merge.TaggerDoc
}

// Payload carries the bookkeeping the downstream writer and embedder expect
// alongside each chunk.
type Payload struct {
	ChunkID         string            `json:"chunk_id"`
	ChunkName       string            `json:"chunk_name"`
	ChunkLength     int               `json:"chunk_length"`
	TokenCount      int               `json:"token_count"`
	AnnotationCount int               `json:"chunk_annotations_count"`
	AnnotationIDs   []string          `json:"chunk_annotations_ids"`
	AnnotationTypes []string          `json:"chunk_annotations_types"`
	ChunkOffset     int               `json:"chunk_offset"`
	ChunkInfons     map[string]string `json:"chunk_infons,omitempty"`
	ChunkerType     string            `json:"chunker_type"`
	MergerType      string            `json:"merger_type"`
	ArticleID       string            `json:"article_id"`
	ProcessedAt     time.Time         `json:"processed_at"`
}

// ChunkRecord is one pipeline output row: the raw chunk, its rendered text
// and the payload.
type ChunkRecord struct {
	Sequence    int                `json:"chunk_sequence"`
	ChunkText   string             `json:"chunk_text"`
	MergedText  string             `json:"merged_text"`
	Annotations []chunk.Annotation `json:"chunk_annotations"`
	Payload     Payload            `json:"payload"`
}

// Result of a full pipeline run for one article.
type Result struct {
	Document        *bioc.Document
	RemovedPassages []*bioc.Passage
	Chunks          []ChunkRecord
}

// Processor runs the full pipeline. It holds no per-document state, so one
// Processor can serve many documents; documents are independent, so callers
// may run one document per worker without locking.
type Processor struct {
	opts    Options
	merger  *merge.Merger
	cons    *consolidate.Consolidator
	chunker chunk.Chunker
	text    textmerge.Merger
	logger  *log.Logger
	metrics *telemetry.Metrics
}

// New validates the strategy selection and builds a Processor. logger and
// metrics may be nil.
func New(opts Options, logger *log.Logger, metrics *telemetry.Metrics) (*Processor, error) {
	if opts.Chunker == "" {
		opts.Chunker = chunk.KindSlidingWindow
	}
	if opts.Merger == "" {
		opts.Merger = textmerge.KindAppend
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[PIPELINE] ", log.LstdFlags)
	}
	chunker, err := chunk.New(opts.Chunker, opts.Chunk)
	if err != nil {
		return nil, err
	}
	text, err := textmerge.New(opts.Merger)
	if err != nil {
		return nil, err
	}
	return &Processor{
		opts:    opts,
		merger:  merge.New(logger),
		cons:    consolidate.New(opts.Consolidate, logger),
		chunker: chunker,
		text:    text,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Process runs merge → consolidate → chunk → text-merge for one article.
// The stages are pure with respect to external state: a failure leaves
// nothing to clean up and the run can be retried wholesale.
func (p *Processor) Process(in Input) (*Result, error) {
	if in.ArticleID == "" {
		return nil, fmt.Errorf("pipeline: article id is required")
	}

	doc, err := p.timedMerge(in)
	if err != nil {
		if p.metrics != nil {
			p.metrics.DocumentsFailed.Inc()
		}
		return nil, err
	}

	start := time.Now()
	removed := p.cons.Consolidate(doc)
	p.observe("consolidate", start)

	start = time.Now()
	chunks := p.chunker.Chunk(doc)
	p.observe("chunk", start)

	now := time.Now().UTC()
	records := make([]ChunkRecord, 0, len(chunks))
	for _, ck := range chunks {
		merged := p.text.Merge(ck.Text, ck.Annotations)
		records = append(records, ChunkRecord{
			Sequence:    ck.Sequence,
			ChunkText:   ck.Text,
			MergedText:  merged,
			Annotations: ck.Annotations,
			Payload: Payload{
				ChunkID:         uuid.NewString(),
				ChunkName:       fmt.Sprintf("%s_chunk_%d", in.ArticleID, ck.Sequence),
				ChunkLength:     len(ck.Text),
				TokenCount:      len(strings.Fields(ck.Text)),
				AnnotationCount: len(ck.Annotations),
				AnnotationIDs:   annotationIDs(ck.Annotations),
				AnnotationTypes: annotationTypes(ck.Annotations),
				ChunkOffset:     ck.Offset,
				ChunkInfons:     ck.Infons,
				ChunkerType:     string(p.opts.Chunker),
				MergerType:      string(p.opts.Merger),
				ArticleID:       in.ArticleID,
				ProcessedAt:     now,
			},
		})
	}

	if p.metrics != nil {
		p.metrics.DocumentsProcessed.Inc()
		p.metrics.ChunksProduced.Add(float64(len(records)))
		p.metrics.PassagesRemoved.Add(float64(len(removed)))
	}
	p.logger.Printf("article %s: %d passages, %d removed, %d chunks",
		in.ArticleID, len(doc.Passages), len(removed), len(records))

	return &Result{Document: doc, RemovedPassages: removed, Chunks: records}, nil
}

func (p *Processor) timedMerge(in Input) (*bioc.Document, error) {
	start := time.Now()
	doc, err := p.merger.Merge(in.Taggers)
	p.observe("merge", start)
	if err != nil {
		return nil, err
	}
	if doc.ID == "" {
		doc.ID = in.ArticleID
	}
	return doc, nil
}

func (p *Processor) observe(stage string, start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func annotationIDs(anns []chunk.Annotation) []string {
	if len(anns) == 0 {
		return nil
	}
	out := make([]string, 0, len(anns))
	for _, a := range anns {
		out = append(out, a.ID)
	}
	return out
}

// annotationTypes returns the distinct annotation types in first-seen order.
func annotationTypes(anns []chunk.Annotation) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, a := range anns {
		if _, ok := seen[a.Type]; ok {
			continue
		}
		seen[a.Type] = struct{}{}
		out = append(out, a.Type)
	}
	return out
}
