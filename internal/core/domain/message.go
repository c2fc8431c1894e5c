package domain

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type MessageKind string

const (
	KindFinal   MessageKind = "final"
	KindPending MessageKind = "pending"
)

// MessageRecord is one transcript entry. Text is empty for pending records.
type MessageRecord struct {
	ID     string      `json:"id"`
	Sender Sender      `json:"sender"`
	Kind   MessageKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
}

func (m MessageRecord) Pending() bool {
	return m.Kind == KindPending
}

// AskResult is the decoded body of a question endpoint response.
type AskResult struct {
	Answer        string
	AnswerPresent bool
}

// UploadResult is the decoded body of an upload endpoint response.
type UploadResult struct {
	Message string `json:"message,omitempty"`
}
