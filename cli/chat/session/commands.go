package session

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.dalton.dog/bubbleup"

	"github.com/malonaz/gemchat/internal/conversation"
	"github.com/malonaz/gemchat/internal/gemini"
	"github.com/malonaz/gemchat/internal/markdown"
	"github.com/malonaz/gemchat/internal/types"
)

var errProgramNotSet = errors.New("program not set")

func (m *Model) sendMessage() tea.Cmd {
	userInput := m.textarea.Value()
	if strings.TrimSpace(userInput) == "" {
		return nil
	}
	// A reply already received for the previous prompt lands before this one.
	m.interruptTask()
	if _, err := m.conversation.AddUser(userInput); err != nil {
		return nil
	}

	m.history.Add(userInput)
	m.historyNavigating = false
	m.textarea.Reset()
	m.adjustTextareaHeight()
	m.navigationMessageIndex = -1 // Reset the navigation on send.
	m.navigationBlockIndex = -1

	cmd := m.startRequest(userInput, gemini.FallbackReply)
	m.refreshViewport(true)
	return cmd
}

// startRequest interrupts any request in flight, then requests a reply to
// prompt and reveals it. fallback is the reply used if the request fails.
func (m *Model) startRequest(prompt, fallback string) tea.Cmd {
	m.interruptTask()

	p := m.getProgram()
	if p == nil {
		m.err = errProgramNotSet
		return nil
	}

	m.generation++
	generation := m.generation
	taskCtx, cancel := context.WithCancel(m.ctx)
	m.cancelTask = cancel
	m.busy = true
	m.partial = ""
	m.pendingReply = nil
	m.err = nil

	completer := m.completer
	animator := m.animator
	log.Info("request started", "generation", generation)

	go func() {
		text := gemini.CompleteOrFallback(taskCtx, completer, prompt, fallback)
		if taskCtx.Err() != nil {
			// Interrupted before the reply arrived.
			return
		}
		p.Send(types.ResponseMsg{Generation: generation, Text: text})
		err := animator.Run(taskCtx, text, func(partial string) {
			p.Send(types.RevealFrameMsg{Generation: generation, Partial: partial})
		})
		p.Send(types.RevealDoneMsg{Generation: generation, Text: text, Err: err})
	}()
	return m.spinner.Tick
}

// interruptTask stops the request in flight. A reply that was already
// received is committed in full so it is never lost.
func (m *Model) interruptTask() {
	if !m.busy {
		return
	}
	if m.cancelTask != nil {
		m.cancelTask()
	}
	if m.pendingReply != nil {
		m.conversation.AddAssistant(*m.pendingReply)
	}
	log.Info("request interrupted", "generation", m.generation, "flushed", m.pendingReply != nil)
	m.finishTask()
	// Anything still in flight for the interrupted generation is now stale.
	m.generation++
}

// commitReply appends the reply of the current request.
func (m *Model) commitReply(text string) {
	m.conversation.AddAssistant(text)
	m.finishTask()
}

func (m *Model) finishTask() {
	m.busy = false
	m.cancelTask = nil
	m.pendingReply = nil
	m.partial = ""
}

// startEdit starts editing the navigated message in the textarea.
func (m *Model) startEdit() tea.Cmd {
	message, ok := m.navigatedMessage()
	if !ok {
		return nil
	}
	if err := m.conversation.StartEdit(message.ID); err != nil {
		return nil
	}
	m.stashedInput = m.textarea.Value()
	m.textarea.SetValue(message.Text)
	m.focusedComponent = FocusTextarea
	m.adjustTextareaHeight()
	m.refreshViewport(false)
	return m.textarea.Focus()
}

// saveEdit commits the edit in progress and requests a new reply to it.
func (m *Model) saveEdit() tea.Cmd {
	if err := m.conversation.SetDraft(m.textarea.Value()); err != nil {
		return nil
	}
	// Flushed before truncating, so a reply to a later prompt goes with it.
	m.interruptTask()
	text, err := m.conversation.SaveEdit()
	m.restoreInput()
	if err != nil {
		m.err = err
		m.refreshViewport(false)
		return nil
	}
	m.navigationMessageIndex = -1
	m.navigationBlockIndex = -1
	cmd := m.startRequest(text, gemini.FallbackEditedReply)
	m.refreshViewport(true)
	return cmd
}

// cancelEdit discards the edit in progress.
func (m *Model) cancelEdit() {
	m.conversation.CancelEdit()
	m.restoreInput()
	m.refreshViewport(false)
}

func (m *Model) restoreInput() {
	m.textarea.SetValue(m.stashedInput)
	m.stashedInput = ""
	m.adjustTextareaHeight()
}

// copyMessage copies the navigated assistant message.
func (m *Model) copyMessage() tea.Cmd {
	message, ok := m.navigatedMessage()
	if !ok || message.IsUser() {
		return nil
	}
	if err := m.clipboard.Write(message.Text); err != nil {
		log.Error("copying message", "message_id", message.ID, "error", err)
		return nil
	}
	m.conversation.MarkMessageCopied(message.ID)
	m.refreshViewport(false)
	id := message.ID
	return tea.Batch(
		m.alertClipboardWrite.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!"),
		tea.Tick(m.copiedIndicator, func(time.Time) tea.Msg { return types.CopiedExpiredMsg{MessageID: id} }),
	)
}

// copyCodeBlock copies the navigated code block.
func (m *Model) copyCodeBlock() tea.Cmd {
	message, ok := m.navigatedMessage()
	if !ok || m.navigationBlockIndex < 0 {
		return nil
	}
	blocks := markdown.CodeSegments(message.Text)
	if m.navigationBlockIndex >= len(blocks) {
		return nil
	}
	if err := m.clipboard.Write(blocks[m.navigationBlockIndex].Content); err != nil {
		log.Error("copying code block", "message_id", message.ID, "error", err)
		return nil
	}
	codeKey := conversation.CodeKey{MessageID: message.ID, Index: m.navigationBlockIndex}
	m.conversation.MarkCodeCopied(codeKey)
	m.refreshViewport(false)
	return tea.Batch(
		m.alertClipboardWrite.NewAlertCmd(bubbleup.InfoKey, "Code copied to clipboard!"),
		tea.Tick(m.copiedIndicator, func(time.Time) tea.Msg { return types.CodeCopiedExpiredMsg{Key: codeKey} }),
	)
}

// react sets a reaction on the navigated message.
func (m *Model) react(reaction conversation.Reaction) {
	message, ok := m.navigatedMessage()
	if !ok {
		return
	}
	if err := m.conversation.React(message.ID, reaction); err != nil {
		return
	}
	m.refreshViewport(false)
}

// deleteMessage deletes the navigated user message.
func (m *Model) deleteMessage() {
	message, ok := m.navigatedMessage()
	if !ok || !message.IsUser() {
		return
	}
	editing := m.conversation.IsEditing(message.ID)
	if err := m.conversation.Delete(message.ID); err != nil {
		return
	}
	if editing {
		m.restoreInput()
	}
	if m.navigationMessageIndex >= m.conversation.Len() {
		m.navigationMessageIndex = m.conversation.Len() - 1
	}
	m.navigationBlockIndex = -1
	m.refreshViewport(false)
}
