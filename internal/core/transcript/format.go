package transcript

import (
	"regexp"
	"strings"

	"github.com/kirillkom/docchat/internal/core/ports"
)

var emphasisPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// FormatInline turns bot text into text, emphasis and line-break nodes.
// Only `**x**` pairs (never spanning a line) and newlines are recognized;
// anything else, including an unmatched `**`, stays literal text.
func FormatInline(text string) []ports.Segment {
	var out []ports.Segment
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out = append(out, ports.Segment{Kind: ports.SegmentLineBreak})
		}
		out = appendEmphasis(out, line)
	}
	return out
}

func appendEmphasis(out []ports.Segment, line string) []ports.Segment {
	last := 0
	for _, m := range emphasisPattern.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > last {
			out = append(out, ports.Segment{Kind: ports.SegmentText, Text: line[last:m[0]]})
		}
		out = append(out, ports.Segment{Kind: ports.SegmentEmphasis, Text: line[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(line) {
		out = append(out, ports.Segment{Kind: ports.SegmentText, Text: line[last:]})
	}
	return out
}
