package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kirillkom/docchat/internal/core/ports"
)

// completionMsg carries a finished task back onto the Update loop.
type completionMsg struct {
	done ports.Completion
}

// scheduler turns controller tasks into bubbletea commands. Tasks queued
// during one Update are flushed as a batch when that Update returns.
type scheduler struct {
	ctx    context.Context
	queued []tea.Cmd
}

func newScheduler(ctx context.Context) *scheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &scheduler{ctx: ctx}
}

func (s *scheduler) Go(task ports.Task) {
	ctx := s.ctx
	s.queued = append(s.queued, func() tea.Msg {
		return completionMsg{done: task(ctx)}
	})
}

func (s *scheduler) flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
