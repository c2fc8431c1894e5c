package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/docchat/internal/core/domain"
	"github.com/kirillkom/docchat/internal/core/ports"
	"github.com/kirillkom/docchat/internal/core/transcript"
)

const (
	msgUnsupportedType = "⚠️ Please upload a valid PDF file."
	msgUploadFailed    = "❌ Error uploading document. Please try again."
	msgUploadedFormat  = "✅ Document \"%s\" uploaded successfully! I'm ready to answer your questions."
)

type UploadController struct {
	uploader  ports.DocumentUploader
	scheduler ports.Scheduler
	renderer  *transcript.Renderer
	intake    ports.IntakeSurface
	recorder  ports.OutcomeRecorder

	slot domain.DocumentSlot
	// generation identifies the latest accepted submission; completions of
	// older ones are dropped.
	generation uint64
}

func NewUploadController(
	uploader ports.DocumentUploader,
	scheduler ports.Scheduler,
	renderer *transcript.Renderer,
	intake ports.IntakeSurface,
	recorder ports.OutcomeRecorder,
) *UploadController {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &UploadController{
		uploader:  uploader,
		scheduler: scheduler,
		renderer:  renderer,
		intake:    intake,
		recorder:  recorder,
		slot:      domain.NewDocumentSlot(),
	}
}

func (c *UploadController) Slot() domain.DocumentSlot {
	return c.slot
}

// Submit validates the candidate and schedules its upload. A nil candidate
// is an empty drop and does nothing. A PDF submitted while another upload is
// in flight supersedes it.
func (c *UploadController) Submit(candidate ports.FileLike) error {
	if candidate == nil {
		return nil
	}

	mimeType := candidate.MIMEType()
	if mimeType != domain.PDFMimeType {
		c.renderer.AppendBot(msgUnsupportedType)
		c.recorder.RecordUpload("rejected")
		slog.Info("upload_rejected", "filename", candidate.Name(), "mime_type", mimeType)
		return domain.WrapError(domain.ErrUnsupportedType, "submit document", fmt.Errorf("mime type %q", mimeType))
	}

	name := candidate.Name()
	if c.slot.Submitting() {
		slog.Info("upload_superseded", "previous", c.slot.Name, "filename", name)
	}
	c.generation++
	generation := c.generation
	c.slot.Begin(name)
	c.intake.SetBusy(true)

	c.scheduler.Go(func(ctx context.Context) ports.Completion {
		result, err := c.uploader.Upload(ctx, candidate)
		pages := 0
		if err == nil {
			pages = countPages(candidate)
		}
		return func() {
			if generation != c.generation {
				c.recorder.RecordUpload("superseded")
				slog.Info("upload_stale_completion", "filename", name, "error", err)
				return
			}
			c.resolve(name, pages, result, err)
		}
	})
	return nil
}

func (c *UploadController) resolve(name string, pages int, result *domain.UploadResult, err error) {
	if err != nil {
		c.slot.Fail()
		c.intake.SetBusy(false)
		c.renderer.AppendBot(msgUploadFailed)
		c.recorder.RecordUpload("error")
		slog.Error("upload_failed", "filename", name, "error", err)
		return
	}

	c.slot.Attach(pages)
	c.intake.ShowAttached(name, pages)
	c.renderer.AppendBot(fmt.Sprintf(msgUploadedFormat, name))
	c.recorder.RecordUpload("success")

	serverMessage := ""
	if result != nil {
		serverMessage = result.Message
	}
	slog.Info("upload_completed", "filename", name, "pages", pages, "server_message", serverMessage)
}

func countPages(candidate ports.FileLike) int {
	counter, ok := candidate.(ports.PageCounter)
	if !ok {
		return 0
	}
	pages, err := counter.Pages()
	if err != nil {
		slog.Debug("page_count_failed", "filename", candidate.Name(), "error", err)
		return 0
	}
	return pages
}

type noopRecorder struct{}

func (noopRecorder) RecordUpload(string) {}
func (noopRecorder) RecordAsk(string)    {}
