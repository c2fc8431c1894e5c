package ports

import "github.com/kirillkom/docchat/internal/core/domain"

// DocumentIntake is the inbound contract for attaching the session document.
type DocumentIntake interface {
	Submit(candidate FileLike) error
	Slot() domain.DocumentSlot
}

// Conversation is the inbound contract for asking questions.
type Conversation interface {
	Send(text string) error
	Busy() bool
}
