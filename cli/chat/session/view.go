package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/malonaz/gemchat/cli/chat/styles"
	"github.com/malonaz/gemchat/internal/conversation"
	"github.com/malonaz/gemchat/internal/markdown"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	b.WriteString(styles.ViewportStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	if _, editing := m.conversation.Editing(); editing {
		b.WriteString(styles.EditAreaStyle.Render(m.textarea.View()))
	} else {
		b.WriteString(styles.TextAreaStyle.Render(m.textarea.View()))
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return m.alertClipboardWrite.Render(b.String())
}

func (m *Model) renderTitle() string {
	return styles.TitleStyle.Width(m.width).Render(m.title)
}

func (m *Model) renderFooter() string {
	var help string
	switch {
	case m.isEditing():
		help = "Editing message: Ctrl+S to save, Esc to cancel"
	case m.focusedComponent == FocusViewport:
		help = "↑/↓ message • [/] code block • e edit • l like • d dislike • x delete • c copy • y copy code • Tab input"
	case m.busy:
		help = fmt.Sprintf("%s %s is typing... (Ctrl+C to interrupt)", m.spinner.View(), m.opts.AssistantName)
	default:
		help = "Enter send • Alt+Enter newline • Alt+P/N history • Tab browse • Ctrl+C quit"
	}
	footer := styles.HelpStyle.Render(help)
	if m.err != nil {
		footer += "\n" + styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return footer
}

func (m *Model) footerHeight() int {
	return lipgloss.Height(m.renderFooter())
}

func (m *Model) isEditing() bool {
	_, editing := m.conversation.Editing()
	return editing
}

func (m *Model) renderMessages() string {
	var b strings.Builder
	messages := m.conversation.Messages()
	m.messageViewportOffsets = make([]int, len(messages))
	copiedMessage, hasCopiedMessage := m.conversation.CopiedMessage()
	copiedCode, hasCopiedCode := m.conversation.CopiedCode()
	editState, editing := m.conversation.Editing()

	for i, message := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		m.messageViewportOffsets[i] = lipgloss.Height(b.String()) - 1
		selected := m.focusedComponent == FocusViewport && i == m.navigationMessageIndex

		b.WriteString(m.renderHeader(message, selected, hasCopiedMessage && copiedMessage == message.ID))
		b.WriteString("\n")

		if editing && editState.ID == message.ID {
			b.WriteString(styles.EditingMessageStyle.Render(styles.EditingLabelStyle.Render("editing below...")))
			continue
		}

		opts := markdown.DefaultRenderOptions()
		if selected {
			opts.SelectedCode = m.navigationBlockIndex
		}
		if hasCopiedCode && copiedCode.MessageID == message.ID {
			opts.CopiedCode = copiedCode.Index
		}
		rendered := m.renderer.Render(message.Text, opts)
		if message.IsUser() {
			b.WriteString(styles.UserMessageStyle.Render(rendered))
		} else {
			b.WriteString(styles.AIMessageStyle.Render(rendered))
		}
	}

	if m.busy {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(styles.NameStyle.Render(m.opts.AssistantName))
		b.WriteString("\n")
		cursor := styles.CursorStyle.Render(styles.Cursor)
		if m.partial != "" {
			b.WriteString(styles.AIMessageStyle.Render(m.renderer.Render(m.partial, markdown.DefaultRenderOptions()) + cursor))
		} else {
			b.WriteString(styles.AIMessageStyle.Render(m.spinner.View() + " " + cursor))
		}
	}

	return b.String()
}

func (m *Model) renderHeader(message conversation.Message, selected, copied bool) string {
	name := m.opts.AssistantName
	if message.IsUser() {
		name = m.opts.UserName
	}
	parts := []string{styles.NameStyle.Render(name)}
	switch message.Reaction {
	case conversation.ReactionLike:
		parts = append(parts, styles.LikeStyle.Render("👍 Like"))
	case conversation.ReactionDislike:
		parts = append(parts, styles.DislikeStyle.Render("👎 Dislike"))
	}
	if copied {
		parts = append(parts, styles.CopiedStyle.Render("✓ copied"))
	}
	header := strings.Join(parts, " ")
	if selected {
		header = styles.SelectedMarkerStyle.Render("▶ ") + header
	}
	if message.IsUser() {
		return lipgloss.NewStyle().MarginLeft(styles.MessageMargin).Render(header)
	}
	return header
}
