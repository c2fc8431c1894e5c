package transcript

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kirillkom/docchat/internal/core/ports"
)

func TestFormatInlineEmphasisAndLineBreak(t *testing.T) {
	got := FormatInline("**hi** there\nagain")
	want := []ports.Segment{
		{Kind: ports.SegmentEmphasis, Text: "hi"},
		{Kind: ports.SegmentText, Text: " there"},
		{Kind: ports.SegmentLineBreak},
		{Kind: ports.SegmentText, Text: "again"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected segments: %#v", got)
	}
}

func TestFormatInlineMultiplePairsAreNonOverlapping(t *testing.T) {
	got := FormatInline("**a** and **b**")
	want := []ports.Segment{
		{Kind: ports.SegmentEmphasis, Text: "a"},
		{Kind: ports.SegmentText, Text: " and "},
		{Kind: ports.SegmentEmphasis, Text: "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected segments: %#v", got)
	}
}

func TestFormatInlineUnmatchedMarkerStaysLiteral(t *testing.T) {
	got := FormatInline("**a** and **b")
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %#v", got)
	}
	if got[1].Kind != ports.SegmentText || got[1].Text != " and **b" {
		t.Fatalf("expected literal tail, got %#v", got[1])
	}
}

func TestFormatInlineDoesNotSpanLines(t *testing.T) {
	got := FormatInline("**a\nb**")
	for _, seg := range got {
		if seg.Kind == ports.SegmentEmphasis {
			t.Fatalf("emphasis must not span a newline: %#v", got)
		}
	}
	if plainText(got) != "**a\nb**" {
		t.Fatalf("expected literal text preserved, got %q", plainText(got))
	}
}

func TestFormatInlineKeepsMarkupAsText(t *testing.T) {
	got := FormatInline("<b>x</b> [link](http://x)")
	if len(got) != 1 || got[0].Kind != ports.SegmentText || got[0].Text != "<b>x</b> [link](http://x)" {
		t.Fatalf("expected a single literal text node, got %#v", got)
	}
}

func TestFormatInlineIsIdempotentWithoutSurvivingMarkers(t *testing.T) {
	first := FormatInline("**hi** there\nagain")
	plain := plainText(first)
	second := FormatInline(plain)
	if plainText(second) != plain {
		t.Fatalf("expected stable plain text, got %q vs %q", plainText(second), plain)
	}
	for _, seg := range second {
		if seg.Kind == ports.SegmentEmphasis {
			t.Fatalf("expected no emphasis on second pass, got %#v", second)
		}
	}
}

func TestFormatInlineEmptyText(t *testing.T) {
	if got := FormatInline(""); len(got) != 0 {
		t.Fatalf("expected no segments, got %#v", got)
	}
}

func plainText(segments []ports.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Kind == ports.SegmentLineBreak {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
