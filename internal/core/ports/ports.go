package ports

import (
	"context"

	"github.com/kirillkom/docchat/internal/core/domain"
)

// Completion runs on the UI thread once its task has finished.
type Completion func()

// Task runs off the UI thread and reports back through a Completion.
type Task func(ctx context.Context) Completion

// Scheduler is the single logical UI thread. Go must return immediately;
// the returned Completion of the task is applied later on the UI thread.
type Scheduler interface {
	Go(task Task)
}

// SegmentKind classifies formatted text nodes.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentEmphasis
	SegmentLineBreak
)

// Segment is a formatted text node. Text is never interpreted as markup.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Entry is one projected transcript element.
type Entry struct {
	ID       string
	Sender   domain.Sender
	Pending  bool
	Segments []Segment
}

// TranscriptView displays projected transcript entries.
type TranscriptView interface {
	Render(entries []Entry)
	ScrollToBottom()
}

// IntakeSurface is the drop/pick region plus the filename banner.
type IntakeSurface interface {
	SetBusy(busy bool)
	ShowAttached(name string, pages int)
}

// InputSurface is the question text input.
type InputSurface interface {
	ClearInput()
}
