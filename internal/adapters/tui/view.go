package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kirillkom/docchat/internal/core/domain"
	"github.com/kirillkom/docchat/internal/core/ports"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("docchat") + "\n")

	switch {
	case m.intakeVisible:
		style := intakeStyle
		hint := "Drop a PDF here (paste its path) or type /attach <path>"
		if m.intakeBusy {
			style = intakeBusyStyle
			hint = "Uploading..."
		}
		b.WriteString(style.Width(max(m.width-4, 20)).Render(hint) + "\n")
	default:
		b.WriteString(bannerStyle.Render(bannerText(m.attachedName, m.attachedPages)) + "\n")
	}

	b.WriteString(transcriptStyle.Render(m.viewport.View()) + "\n")
	b.WriteString(m.input.View() + "\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("Enter: send • /attach <path>: upload a PDF • Esc/Ctrl+C: quit"))
	return b.String()
}

func bannerText(name string, pages int) string {
	if pages > 0 {
		return fmt.Sprintf("📄 %s · %d pages", name, pages)
	}
	return "📄 " + name
}

// renderTranscript builds the viewport content. Segment text is written as
// plain data; only emphasis nodes get styling.
func (m *Model) renderTranscript() string {
	width := max(m.viewport.Width-2, 10)
	var b strings.Builder
	for i, entry := range m.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := botLabelStyle.Render("Bot: ")
		if entry.Sender == domain.SenderUser {
			label = userLabelStyle.Render("You: ")
		}
		body := m.spinner.View() + " thinking"
		if !entry.Pending {
			body = renderSegments(entry.Segments)
		}
		b.WriteString(lipgloss.NewStyle().Width(width).Render(label + body))
	}
	return b.String()
}

func renderSegments(segments []ports.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case ports.SegmentEmphasis:
			b.WriteString(emphasisStyle.Render(seg.Text))
		case ports.SegmentLineBreak:
			b.WriteByte('\n')
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

func (m *Model) hasPending() bool {
	for _, entry := range m.entries {
		if entry.Pending {
			return true
		}
	}
	return false
}
