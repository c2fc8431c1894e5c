package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/kirillkom/docchat/internal/core/domain"
	"github.com/kirillkom/docchat/internal/core/ports"
	"github.com/kirillkom/docchat/internal/core/transcript"
)

// queueScheduler keeps tasks until the test drains them, so the state
// between dispatch and completion can be inspected.
type queueScheduler struct {
	tasks []ports.Task
}

func (s *queueScheduler) Go(task ports.Task) {
	s.tasks = append(s.tasks, task)
}

func (s *queueScheduler) RunAll() {
	for len(s.tasks) > 0 {
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		if done := task(context.Background()); done != nil {
			done()
		}
	}
}

type fileFake struct {
	name     string
	mimeType string
	body     string
	pages    int
}

func (f fileFake) Name() string     { return f.name }
func (f fileFake) MIMEType() string { return f.mimeType }
func (f fileFake) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.body)), nil
}
func (f fileFake) Pages() (int, error) {
	if f.pages == 0 {
		return 0, errors.New("no pages")
	}
	return f.pages, nil
}

type uploaderFake struct {
	calls int
	name  string
	err   error
}

func (f *uploaderFake) Upload(_ context.Context, file ports.FileLike) (*domain.UploadResult, error) {
	f.calls++
	f.name = file.Name()
	if f.err != nil {
		return nil, f.err
	}
	return &domain.UploadResult{Message: "Document uploaded successfully"}, nil
}

type answererFake struct {
	questions []string
	result    *domain.AskResult
	err       error
}

func (f *answererFake) Ask(_ context.Context, question string) (*domain.AskResult, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type intakeFake struct {
	busy         bool
	busyCalls    int
	attached     string
	attachedSeen bool
	pages        int
}

func (f *intakeFake) SetBusy(busy bool) {
	f.busy = busy
	f.busyCalls++
}

func (f *intakeFake) ShowAttached(name string, pages int) {
	f.attached = name
	f.attachedSeen = true
	f.pages = pages
}

type inputFake struct {
	cleared int
}

func (f *inputFake) ClearInput() {
	f.cleared++
}

type recorderFake struct {
	uploads []string
	asks    []string
}

func (f *recorderFake) RecordUpload(status string) { f.uploads = append(f.uploads, status) }
func (f *recorderFake) RecordAsk(status string)    { f.asks = append(f.asks, status) }

type viewFake struct {
	entries []ports.Entry
	scrolls int
}

func (f *viewFake) Render(entries []ports.Entry) { f.entries = entries }
func (f *viewFake) ScrollToBottom()              { f.scrolls++ }

func newRenderer() (*transcript.Renderer, *viewFake) {
	view := &viewFake{}
	return transcript.NewRenderer(transcript.NewStore(), view), view
}
