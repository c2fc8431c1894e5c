package transcript

import (
	"github.com/kirillkom/docchat/internal/core/domain"
	"github.com/kirillkom/docchat/internal/core/ports"
)

// Handle identifies a projected record for later removal.
type Handle string

// Renderer is the only path controllers use to mutate the transcript. Every
// mutation re-projects the store into the view and pins it to the bottom.
type Renderer struct {
	store *Store
	view  ports.TranscriptView
}

func NewRenderer(store *Store, view ports.TranscriptView) *Renderer {
	if store == nil {
		store = NewStore()
	}
	return &Renderer{store: store, view: view}
}

func (r *Renderer) Append(rec domain.MessageRecord) Handle {
	stored := r.store.Append(rec)
	r.project()
	return Handle(stored.ID)
}

func (r *Renderer) AppendBot(text string) Handle {
	return r.Append(domain.MessageRecord{Sender: domain.SenderBot, Kind: domain.KindFinal, Text: text})
}

func (r *Renderer) AppendUser(text string) Handle {
	return r.Append(domain.MessageRecord{Sender: domain.SenderUser, Kind: domain.KindFinal, Text: text})
}

func (r *Renderer) AppendPending() Handle {
	return r.Append(domain.MessageRecord{Sender: domain.SenderBot, Kind: domain.KindPending})
}

func (r *Renderer) Remove(h Handle) {
	if h == "" {
		return
	}
	if r.store.Remove(string(h)) {
		r.project()
	}
}

func (r *Renderer) Records() []domain.MessageRecord {
	return r.store.Records()
}

func (r *Renderer) Len() int {
	return r.store.Len()
}

// Entries projects the current records without touching the view.
func (r *Renderer) Entries() []ports.Entry {
	records := r.store.Records()
	entries := make([]ports.Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, project(rec))
	}
	return entries
}

func (r *Renderer) project() {
	if r.view == nil {
		return
	}
	r.view.Render(r.Entries())
	r.view.ScrollToBottom()
}

func project(rec domain.MessageRecord) ports.Entry {
	entry := ports.Entry{
		ID:      rec.ID,
		Sender:  rec.Sender,
		Pending: rec.Pending(),
	}
	switch {
	case rec.Pending():
	case rec.Sender == domain.SenderBot:
		entry.Segments = FormatInline(rec.Text)
	default:
		entry.Segments = []ports.Segment{{Kind: ports.SegmentText, Text: rec.Text}}
	}
	return entry
}
