// Package cloze turns a fill-in-the-blank passage into an ordered sequence
// of segments. Blanks are authored by wrapping the correct answer in double
// underscores: "The quick __brown__ fox".
package cloze

import "regexp"

type SegmentKind string

const (
	SegmentLiteral SegmentKind = "literal"
	SegmentBlank   SegmentKind = "blank"
)

// Segment is either a literal run of passage text or a blank carrying the
// canonical correct answer.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// Non-greedy: the shortest span between successive marker pairs wins.
var blankPattern = regexp.MustCompile(`__(.*?)__`)

// Parse scans clozeText for __answer__ markers and returns the segment
// sequence in passage order. Empty literal fragments are dropped, so blanks
// at the start or end of the passage produce no surrounding segments. An
// unterminated lone marker produces no blank; the text including the marker
// is preserved as a literal. Parse is pure and idempotent.
func Parse(clozeText string) []Segment {
	if clozeText == "" {
		return nil
	}

	var segments []Segment
	last := 0
	for _, m := range blankPattern.FindAllStringSubmatchIndex(clozeText, -1) {
		if lit := clozeText[last:m[0]]; lit != "" {
			segments = append(segments, Segment{Kind: SegmentLiteral, Text: lit})
		}
		segments = append(segments, Segment{Kind: SegmentBlank, Text: clozeText[m[2]:m[3]]})
		last = m[1]
	}
	if lit := clozeText[last:]; lit != "" {
		segments = append(segments, Segment{Kind: SegmentLiteral, Text: lit})
	}

	return segments
}

// Blanks returns the canonical answers of the blank segments, in passage
// order. Index i is the join key for the respondent's i-th cloze answer.
func Blanks(segments []Segment) []string {
	var answers []string
	for _, seg := range segments {
		if seg.Kind == SegmentBlank {
			answers = append(answers, seg.Text)
		}
	}
	return answers
}

// CountBlanks reports how many blanks the passage contains.
func CountBlanks(clozeText string) int {
	return len(blankPattern.FindAllStringIndex(clozeText, -1))
}

// Reassemble is the inverse of Parse: literals are emitted as-is and blanks
// are re-wrapped in their markers, reproducing the original passage.
func Reassemble(segments []Segment) string {
	var out []byte
	for _, seg := range segments {
		if seg.Kind == SegmentBlank {
			out = append(out, "__"...)
			out = append(out, seg.Text...)
			out = append(out, "__"...)
			continue
		}
		out = append(out, seg.Text...)
	}
	return string(out)
}
