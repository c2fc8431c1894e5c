package usecase

import (
	"errors"
	"testing"

	"github.com/kirillkom/docchat/internal/core/domain"
)

func newConversation(answerer *answererFake) (*ConversationController, *queueScheduler, *inputFake, *viewFake) {
	renderer, view := newRenderer()
	sched := &queueScheduler{}
	input := &inputFake{}
	return NewConversationController(answerer, sched, renderer, input, nil), sched, input, view
}

func TestSendEmptyTextIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		answerer := &answererFake{}
		uc, sched, input, view := newConversation(answerer)

		if err := uc.Send(text); err != nil {
			t.Fatalf("Send(%q) error = %v", text, err)
		}
		if len(sched.tasks) != 0 || len(view.entries) != 0 || input.cleared != 0 {
			t.Fatalf("expected no effect for %q", text)
		}
	}
}

func TestSendProducesUserPendingThenAnswer(t *testing.T) {
	answerer := &answererFake{result: &domain.AskResult{Answer: "**Yes**\nwithin 30 days", AnswerPresent: true}}
	uc, sched, input, view := newConversation(answerer)

	if err := uc.Send("  What is the refund policy?  "); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if input.cleared != 1 {
		t.Fatalf("expected input cleared once, got %d", input.cleared)
	}
	if len(view.entries) != 2 {
		t.Fatalf("expected user + pending entries, got %d", len(view.entries))
	}
	if view.entries[0].Sender != domain.SenderUser || view.entries[0].Segments[0].Text != "What is the refund policy?" {
		t.Fatalf("unexpected user entry %#v", view.entries[0])
	}
	if !view.entries[1].Pending || view.entries[1].Sender != domain.SenderBot {
		t.Fatalf("expected pending bot entry, got %#v", view.entries[1])
	}
	if !uc.Busy() {
		t.Fatalf("expected busy while question is outstanding")
	}

	sched.RunAll()

	if len(answerer.questions) != 1 || answerer.questions[0] != "What is the refund policy?" {
		t.Fatalf("unexpected questions %v", answerer.questions)
	}
	if len(view.entries) != 2 {
		t.Fatalf("expected user + answer entries, got %d", len(view.entries))
	}
	for _, e := range view.entries {
		if e.Pending {
			t.Fatalf("pending entry must be gone after resolution")
		}
	}
	answer := view.entries[1]
	if answer.Sender != domain.SenderBot || len(answer.Segments) != 3 {
		t.Fatalf("unexpected answer entry %#v", answer)
	}
	if uc.Busy() {
		t.Fatalf("expected not busy after resolution")
	}
	if view.scrolls < 4 {
		t.Fatalf("expected scroll after every mutation, got %d", view.scrolls)
	}
}

func TestSendTransportFailureShowsApology(t *testing.T) {
	answerer := &answererFake{err: domain.WrapError(domain.ErrTransportFailure, "ask question", errors.New("connection refused"))}
	uc, sched, _, view := newConversation(answerer)

	if err := uc.Send("hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	sched.RunAll()

	if len(view.entries) != 2 {
		t.Fatalf("expected user + apology, got %d", len(view.entries))
	}
	if view.entries[1].Pending {
		t.Fatalf("expected pending removed")
	}
	if got := view.entries[1].Segments[0].Text; got != msgAskFailed {
		t.Fatalf("expected apology, got %q", got)
	}
	if uc.Busy() {
		t.Fatalf("expected input ready after failure")
	}
}

func TestSendWhileInFlightIsRefused(t *testing.T) {
	answerer := &answererFake{result: &domain.AskResult{Answer: "ok", AnswerPresent: true}}
	uc, sched, input, view := newConversation(answerer)

	_ = uc.Send("first")
	err := uc.Send("second")
	if !errors.Is(err, domain.ErrQuestionInFlight) {
		t.Fatalf("expected question in flight, got %v", err)
	}
	if len(sched.tasks) != 1 || len(view.entries) != 2 || input.cleared != 1 {
		t.Fatalf("expected refused send to have no effect")
	}

	sched.RunAll()
	if err := uc.Send("second"); err != nil {
		t.Fatalf("expected send after resolution, got %v", err)
	}
}

func TestSendMissingAnswerRendersEmptyMessage(t *testing.T) {
	answerer := &answererFake{result: &domain.AskResult{}}
	uc, sched, _, view := newConversation(answerer)

	_ = uc.Send("anything?")
	sched.RunAll()

	if len(view.entries) != 2 || view.entries[1].Pending {
		t.Fatalf("expected resolved answer entry, got %#v", view.entries)
	}
	if len(view.entries[1].Segments) != 0 {
		t.Fatalf("expected empty answer, got %#v", view.entries[1].Segments)
	}
}

func TestSendDoesNotRequireAttachedDocument(t *testing.T) {
	answerer := &answererFake{result: &domain.AskResult{Answer: "General refunds take 14 days.", AnswerPresent: true}}
	uc, sched, _, view := newConversation(answerer)

	_ = uc.Send("What is the refund policy?")
	sched.RunAll()

	if len(answerer.questions) != 1 {
		t.Fatalf("expected ask request without a document")
	}
	if got := view.entries[1].Segments[0].Text; got != "General refunds take 14 days." {
		t.Fatalf("expected verbatim answer, got %q", got)
	}
}
