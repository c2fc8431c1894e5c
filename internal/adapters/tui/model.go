package tui

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kirillkom/docchat/internal/core/domain"
	"github.com/kirillkom/docchat/internal/core/ports"
)

const attachCommand = "/attach"

// FileOpener resolves a dropped or typed path into a candidate document.
type FileOpener func(path string) (ports.FileLike, error)

type submitPathMsg struct {
	path string
}

// Model is the terminal session. It implements the transcript view, the
// intake surface and the input surface, and runs the controllers on its
// Update loop, which is the only goroutine that touches session state.
type Model struct {
	sched  *scheduler
	open   FileOpener
	intake ports.DocumentIntake
	chat   ports.Conversation

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	entries       []ports.Entry
	intakeVisible bool
	intakeBusy    bool
	attachedName  string
	attachedPages int
	status        string
	initialPath   string

	width  int
	height int
}

func New(ctx context.Context, open FileOpener) *Model {
	in := textinput.New()
	in.Placeholder = "Ask a question about your document..."
	in.CharLimit = 4000
	in.Prompt = "> "
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		sched:         newScheduler(ctx),
		open:          open,
		viewport:      viewport.New(78, 16),
		input:         in,
		spinner:       sp,
		intakeVisible: true,
		width:         80,
		height:        24,
	}
}

// Scheduler is handed to the controllers so their tasks run as commands.
func (m *Model) Scheduler() ports.Scheduler {
	return m.sched
}

func (m *Model) Bind(intake ports.DocumentIntake, chat ports.Conversation) {
	m.intake = intake
	m.chat = chat
}

// SubmitOnStart queues path as if it had been dropped once the program runs.
func (m *Model) SubmitOnStart(path string) {
	m.initialPath = path
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initialPath != "" {
		path := m.initialPath
		cmds = append(cmds, func() tea.Msg { return submitPathMsg{path: path} })
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			cmds = append(cmds, m.handleEnter(m.input.Value()))
			cmds = append(cmds, m.sched.flush())
			return m, tea.Batch(cmds...)
		}

	case submitPathMsg:
		m.submitPath(msg.path)
		return m, m.sched.flush()

	case completionMsg:
		hadPending := m.hasPending()
		if msg.done != nil {
			msg.done()
		}
		cmds = append(cmds, m.sched.flush())
		if !hadPending && m.hasPending() {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.hasPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.viewport.SetContent(m.renderTranscript())
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleEnter(value string) tea.Cmd {
	text := strings.TrimSpace(value)
	m.status = ""

	if path, ok := strings.CutPrefix(text, attachCommand); ok && (path == "" || path[0] == ' ') {
		m.input.Reset()
		m.intakeVisible = true
		if strings.TrimSpace(path) != "" {
			m.submitPath(path)
		}
		return nil
	}
	if m.intakeVisible && looksLikeFile(text) {
		m.input.Reset()
		m.submitPath(text)
		return nil
	}

	hadPending := m.hasPending()
	if err := m.chat.Send(value); err != nil {
		if errors.Is(err, domain.ErrQuestionInFlight) {
			m.status = "Still waiting for the previous answer..."
		}
		return nil
	}
	if !hadPending && m.hasPending() {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) submitPath(path string) {
	candidate, err := m.open(path)
	if err != nil {
		m.status = "Cannot open file: " + err.Error()
		slog.Warn("intake_open_failed", "path", path, "error", err)
		return
	}
	_ = m.intake.Submit(candidate)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-12, 3)
	m.input.Width = max(width-4, 10)
	m.viewport.SetContent(m.renderTranscript())
}

// Render implements ports.TranscriptView.
func (m *Model) Render(entries []ports.Entry) {
	m.entries = entries
	m.viewport.SetContent(m.renderTranscript())
}

// ScrollToBottom implements ports.TranscriptView.
func (m *Model) ScrollToBottom() {
	m.viewport.GotoBottom()
}

// SetBusy implements ports.IntakeSurface.
func (m *Model) SetBusy(busy bool) {
	m.intakeBusy = busy
}

// ShowAttached implements ports.IntakeSurface.
func (m *Model) ShowAttached(name string, pages int) {
	m.attachedName = name
	m.attachedPages = pages
	m.intakeVisible = false
	m.intakeBusy = false
}

// ClearInput implements ports.InputSurface.
func (m *Model) ClearInput() {
	m.input.Reset()
}

// looksLikeFile reports whether a pasted line names an existing file. Bare
// words need a .pdf suffix so a one-word question is never taken as a path.
func looksLikeFile(text string) bool {
	text = strings.Trim(text, `"'`)
	if text == "" || strings.ContainsAny(text, "\n") {
		return false
	}
	if !strings.ContainsRune(text, filepath.Separator) && !strings.HasPrefix(text, "~") &&
		!strings.EqualFold(filepath.Ext(text), ".pdf") {
		return false
	}
	if strings.HasPrefix(text, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return false
		}
		text = home + text[1:]
	}
	info, err := os.Stat(text)
	return err == nil && !info.IsDir()
}
