package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kirillkom/docchat/internal/core/domain"
	"github.com/kirillkom/docchat/internal/core/ports"
	"github.com/kirillkom/docchat/internal/core/transcript"
)

const msgAskFailed = "⚠️ Sorry, something went wrong. Please try again."

type ConversationController struct {
	answerer  ports.QuestionAnswerer
	scheduler ports.Scheduler
	renderer  *transcript.Renderer
	input     ports.InputSurface
	recorder  ports.OutcomeRecorder

	busy bool
}

func NewConversationController(
	answerer ports.QuestionAnswerer,
	scheduler ports.Scheduler,
	renderer *transcript.Renderer,
	input ports.InputSurface,
	recorder ports.OutcomeRecorder,
) *ConversationController {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &ConversationController{
		answerer:  answerer,
		scheduler: scheduler,
		renderer:  renderer,
		input:     input,
		recorder:  recorder,
	}
}

func (c *ConversationController) Busy() bool {
	return c.busy
}

// Send posts one question. Only one question may be outstanding; the
// pending indicator is inserted before dispatch and removed by its handle
// when that request completes.
func (c *ConversationController) Send(text string) error {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil
	}
	if c.busy {
		return domain.ErrQuestionInFlight
	}

	c.renderer.AppendUser(question)
	c.input.ClearInput()
	pending := c.renderer.AppendPending()
	c.busy = true

	c.scheduler.Go(func(ctx context.Context) ports.Completion {
		result, err := c.answerer.Ask(ctx, question)
		return func() {
			c.resolve(pending, result, err)
		}
	})
	return nil
}

func (c *ConversationController) resolve(pending transcript.Handle, result *domain.AskResult, err error) {
	c.busy = false
	c.renderer.Remove(pending)

	if err != nil {
		c.renderer.AppendBot(msgAskFailed)
		c.recorder.RecordAsk("error")
		slog.Error("ask_failed", "error", err)
		return
	}

	answer := ""
	if result != nil {
		answer = result.Answer
	}
	if result == nil || !result.AnswerPresent {
		slog.Warn("ask_answer_missing")
	}
	c.renderer.AppendBot(answer)
	c.recorder.RecordAsk("success")
}
