// Package consolidate reshapes a merged document's passages: TOC-like
// passages are removed, then undersized passages are iteratively merged until
// every passage meets a word-count threshold or no merge remains.
package consolidate

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

// Defaults for Options fields left at zero.
const (
	DefaultThresholdWords = 100
	DefaultMaxIterations  = 5
)

// Options configures a Consolidator. Zero values take the defaults above.
type Options struct {
	ThresholdWords int
	MaxIterations  int
	// PreferBackwardMerge flips the salvage order for undersized runs:
	// absorb into the previous passage before trying the next one.
	PreferBackwardMerge bool
}

// Consolidator performs TOC removal and iterative small-passage merging.
type Consolidator struct {
	thresholdWords      int
	maxIterations       int
	preferMergeWithNext bool
	logger              *log.Logger
}

// New builds a Consolidator. logger may be nil.
func New(opts Options, logger *log.Logger) *Consolidator {
	if opts.ThresholdWords <= 0 {
		opts.ThresholdWords = DefaultThresholdWords
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[CONSOLIDATE] ", log.LstdFlags)
	}
	return &Consolidator{
		thresholdWords:      opts.ThresholdWords,
		maxIterations:       opts.MaxIterations,
		preferMergeWithNext: !opts.PreferBackwardMerge,
		logger:              logger,
	}
}

// Consolidate runs both sub-steps in order and returns the removed TOC
// passages for audit.
func (c *Consolidator) Consolidate(doc *bioc.Document) []*bioc.Passage {
	removed := c.RemoveTOC(doc)
	c.MergeSmallPassages(doc)
	return removed
}

var execSummaryRe = regexp.MustCompile(`(?i)^\s*executive\s+summary\s*$`)

// isExecutiveSummaryTitle guards the "Executive Summary" section from being
// absorbed by a preceding run of small passages.
func isExecutiveSummaryTitle(title string) bool {
	return execSummaryRe.MatchString(title)
}

// normalizeSingleLine folds newlines and tabs into single spaces and trims.
func normalizeSingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// mergeProvenance combines two provenance infons. JSON lists concatenate,
// scalars are wrapped into lists; if re-encoding fails the values are joined
// with " | ".
func mergeProvenance(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	var va, vb interface{}
	if err := json.Unmarshal([]byte(a), &va); err != nil {
		va = a
	}
	if err := json.Unmarshal([]byte(b), &vb); err != nil {
		vb = b
	}
	la, aIsList := va.([]interface{})
	lb, bIsList := vb.([]interface{})
	var combined []interface{}
	switch {
	case aIsList && bIsList:
		combined = append(la, lb...)
	case aIsList:
		combined = append(la, vb)
	case bIsList:
		combined = append([]interface{}{va}, lb...)
	default:
		combined = []interface{}{va, vb}
	}
	out, err := json.Marshal(combined)
	if err != nil {
		return normalizeSingleLine(a) + " | " + normalizeSingleLine(b)
	}
	return string(out)
}

// joinTitles joins non-empty section titles with " | ", falling back to
// "body_content" when none exist.
func joinTitles(titles []string) string {
	var parts []string
	for _, t := range titles {
		if t != "" {
			parts = append(parts, t)
		}
	}
	joined := strings.TrimSpace(strings.Join(parts, " | "))
	if joined == "" {
		return "body_content"
	}
	return joined
}

// mergedPassage assembles a consolidated passage from base infons plus the
// combined text, titles, provenance and annotations of its members.
// Annotation offsets are carried over unchanged, relative to the passage each
// annotation originally belonged to.
func mergedPassage(base *bioc.Passage, text string, titles []string, members []*bioc.Passage) *bioc.Passage {
	p := &bioc.Passage{
		Offset: base.Offset,
		Text:   text,
		Infons: bioc.CopyInfons(base.Infons),
	}
	if p.Infons == nil {
		p.Infons = map[string]string{}
	}
	p.Infons[bioc.InfonSectionTitle] = joinTitles(titles)
	if p.Infons[bioc.InfonType] == "" {
		p.Infons[bioc.InfonType] = "section"
	}
	prov := ""
	for _, m := range members {
		prov = mergeProvenance(prov, m.Infon(bioc.InfonProvenance))
	}
	if prov != "" {
		p.Infons[bioc.InfonProvenance] = prov
	} else {
		delete(p.Infons, bioc.InfonProvenance)
	}
	for _, m := range members {
		p.Annotations = append(p.Annotations, m.Annotations...)
	}
	return p
}

// MergeSmallPassages repeatedly merges runs of sub-threshold passages until
// a pass changes nothing or the iteration cap is reached. Each pass scans
// left to right: a run of consecutive small passages is emitted on its own
// when its combined word count reaches the threshold, otherwise merged
// forward into the next passage (unless that is the executive summary),
// otherwise backward into the previously emitted passage, otherwise emitted
// undersized as a last resort.
func (c *Consolidator) MergeSmallPassages(doc *bioc.Document) {
	changed := true
	for iter := 0; changed && iter < c.maxIterations; iter++ {
		changed = false
		old := doc.Passages
		n := len(old)
		out := make([]*bioc.Passage, 0, n)
		i := 0
		for i < n {
			cur := old[i]
			curText := normalizeSingleLine(cur.Text)
			if wordCount(curText) >= c.thresholdWords {
				p := cur.Clone()
				p.Text = curText
				out = append(out, p)
				i++
				continue
			}

			// Accumulate the run of consecutive small passages.
			runTexts := []string{curText}
			runTitles := []string{cur.Infon(bioc.InfonSectionTitle)}
			run := []*bioc.Passage{cur}
			j := i + 1
			for j < n {
				nxtText := normalizeSingleLine(old[j].Text)
				if wordCount(nxtText) >= c.thresholdWords {
					break
				}
				runTexts = append(runTexts, nxtText)
				runTitles = append(runTitles, old[j].Infon(bioc.InfonSectionTitle))
				run = append(run, old[j])
				j++
			}
			runText := normalizeSingleLine(strings.Join(nonEmpty(runTexts), " "))

			if wordCount(runText) >= c.thresholdWords {
				out = append(out, mergedPassage(run[len(run)-1], runText, runTitles, run))
				i = j
				changed = true
				continue
			}

			if c.preferMergeWithNext && j < n &&
				!isExecutiveSummaryTitle(old[j].Infon(bioc.InfonSectionTitle)) {
				nxt := old[j]
				nxtText := normalizeSingleLine(nxt.Text)
				titles := append(append([]string{}, runTitles...), nxt.Infon(bioc.InfonSectionTitle))
				members := append(append([]*bioc.Passage{}, run...), nxt)
				text := normalizeSingleLine(runText + " " + nxtText)
				out = append(out, mergedPassage(nxt, text, titles, members))
				i = j + 1
				changed = true
				continue
			}

			if len(out) > 0 {
				prev := out[len(out)-1]
				out = out[:len(out)-1]
				titles := append([]string{prev.Infon(bioc.InfonSectionTitle)}, runTitles...)
				members := append([]*bioc.Passage{prev}, run...)
				text := normalizeSingleLine(normalizeSingleLine(prev.Text) + " " + runText)
				out = append(out, mergedPassage(prev, text, titles, members))
				i = j
				changed = true
				continue
			}

			// No next and no previous: the run is the whole document (or its
			// start with no salvage target). Emit undersized.
			out = append(out, mergedPassage(run[len(run)-1], runText, runTitles, run))
			i = j
		}
		doc.Passages = out
	}
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
