package domain

// PDFMimeType is the only document type the intake surface accepts.
const PDFMimeType = "application/pdf"

type SlotState string

const (
	SlotEmpty      SlotState = "empty"
	SlotSubmitting SlotState = "submitting"
	SlotAttached   SlotState = "attached"
	SlotFailed     SlotState = "failed"
)

// DocumentSlot is the single document attached to a session.
type DocumentSlot struct {
	Name  string    `json:"name"`
	State SlotState `json:"state"`
	Pages int       `json:"pages,omitempty"`
}

func NewDocumentSlot() DocumentSlot {
	return DocumentSlot{State: SlotEmpty}
}

// Begin moves the slot into Submitting for a new candidate. Any previous
// name is discarded so a failed or superseded upload never leaves it visible.
func (s *DocumentSlot) Begin(name string) {
	s.Name = name
	s.Pages = 0
	s.State = SlotSubmitting
}

func (s *DocumentSlot) Attach(pages int) {
	s.Pages = pages
	s.State = SlotAttached
}

func (s *DocumentSlot) Fail() {
	s.Pages = 0
	s.State = SlotFailed
}

func (s DocumentSlot) Submitting() bool {
	return s.State == SlotSubmitting
}
