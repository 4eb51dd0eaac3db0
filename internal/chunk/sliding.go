package chunk

import (
	"strings"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/bioc"
)

// SlidingWindowChunker runs an independent overlapping window over each
// passage. Tokenization keeps interstitial whitespace as its own tokens, so
// joining a window's tokens reproduces the original spacing exactly. The
// final window absorbs the tail rather than emitting a trivial trailing
// chunk.
type SlidingWindowChunker struct {
	windowSize int
	stride     int
}

func (c *SlidingWindowChunker) Chunk(doc *bioc.Document) []Chunk {
	var chunks []Chunk
	for _, p := range doc.Passages {
		for _, w := range slideWindows(p.Text, c.windowSize, c.stride) {
			ck := Chunk{
				Text:     w.text,
				Offset:   p.Offset + w.charStart,
				Infons:   bioc.CopyInfons(p.Infons),
				Sequence: len(chunks) + 1,
			}
			for _, a := range p.Annotations {
				if overlaps(a, w) {
					ck.Annotations = append(ck.Annotations, annotationView(a))
				}
			}
			chunks = append(chunks, ck)
		}
	}
	return chunks
}

// window is one sliding-window slice of a passage, with its character span
// in passage-relative coordinates.
type window struct {
	text      string
	charStart int
	charEnd   int
}

// slideWindows produces the window sequence for a text: advance by stride,
// and when the tokens remaining past the current window are no more than one
// stride, extend that window to the end and stop.
func slideWindows(text string, windowSize, stride int) []window {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	// prefix[k] = character length of tokens[:k]
	prefix := make([]int, len(tokens)+1)
	for k, t := range tokens {
		prefix[k+1] = prefix[k] + len(t)
	}

	var out []window
	for i := 0; i < len(tokens); i += stride {
		end := i + windowSize
		final := len(tokens)-end <= stride
		if final {
			end = len(tokens)
		}
		out = append(out, window{
			text:      strings.Join(tokens[i:end], ""),
			charStart: prefix[i],
			charEnd:   prefix[end],
		})
		if final {
			break
		}
	}
	return out
}

// overlaps reports whether the annotation's passage-relative span intersects
// the window's character span; partial overlap counts. A span that strictly
// contains the whole window (start before it, end after it) does NOT count —
// that is the inherited contract of this strategy, kept as-is.
func overlaps(a *bioc.Annotation, w window) bool {
	start := a.Location.Offset
	end := start + a.Location.Length
	return (w.charStart <= start && start < w.charEnd) ||
		(w.charStart < end && end <= w.charEnd)
}
