package ports

import (
	"context"
	"io"

	"github.com/kirillkom/docchat/internal/core/domain"
)

// FileLike is a candidate document offered to the intake surface.
type FileLike interface {
	Name() string
	MIMEType() string
	Open() (io.ReadCloser, error)
}

// PageCounter is implemented by sources that can inspect the document.
type PageCounter interface {
	Pages() (int, error)
}

// DocumentUploader sends the document to the upload endpoint.
type DocumentUploader interface {
	Upload(ctx context.Context, file FileLike) (*domain.UploadResult, error)
}

// QuestionAnswerer sends a question to the question endpoint.
type QuestionAnswerer interface {
	Ask(ctx context.Context, question string) (*domain.AskResult, error)
}

// OutcomeRecorder receives controller outcomes for metrics.
type OutcomeRecorder interface {
	RecordUpload(status string)
	RecordAsk(status string)
}
