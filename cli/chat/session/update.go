package session

import (
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/malonaz/gemchat/internal/conversation"
	"github.com/malonaz/gemchat/internal/types"
)

type KeyMapSession struct {
	CycleFocus key.Binding
	Interrupt  key.Binding
}

type KeyMapViewport struct {
	ToTop             key.Binding
	ToBottom          key.Binding
	ToPreviousMessage key.Binding
	ToNextMessage     key.Binding
	ToPreviousBlock   key.Binding
	ToNextBlock       key.Binding
	ScrollUp          key.Binding
	ScrollDown        key.Binding
	Edit              key.Binding
	Like              key.Binding
	Dislike           key.Binding
	Delete            key.Binding
	CopyMessage       key.Binding
	CopyBlock         key.Binding
}

type InputKeyMap struct {
	Send                 key.Binding
	PreviousHistoryEntry key.Binding
	NextHistoryEntry     key.Binding
}

type EditKeyMap struct {
	Save    key.Binding
	Cancel  key.Binding
	Newline key.Binding
}

var keyMapSession = KeyMapSession{
	CycleFocus: key.NewBinding(
		key.WithKeys("tab"),
	),
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

var keyMapViewport = KeyMapViewport{
	ToTop: key.NewBinding(
		key.WithKeys("home", "g"),
	),
	ToBottom: key.NewBinding(
		key.WithKeys("end", "G"),
	),

	// Message navigation.
	ToPreviousMessage: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	ToNextMessage: key.NewBinding(
		key.WithKeys("down", "j"),
	),

	// Code block navigation.
	ToPreviousBlock: key.NewBinding(
		key.WithKeys("["),
	),
	ToNextBlock: key.NewBinding(
		key.WithKeys("]"),
	),

	// Scrolling.
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+p"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+n"),
	),

	// Message actions.
	Edit: key.NewBinding(
		key.WithKeys("e"),
	),
	Like: key.NewBinding(
		key.WithKeys("l"),
	),
	Dislike: key.NewBinding(
		key.WithKeys("d"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
	),
	CopyMessage: key.NewBinding(
		key.WithKeys("c"),
	),
	CopyBlock: key.NewBinding(
		key.WithKeys("y"),
	),
}

var inputKeyMap = InputKeyMap{
	Send: key.NewBinding(
		key.WithKeys("enter", "ctrl+j"),
	),
	PreviousHistoryEntry: key.NewBinding(
		key.WithKeys("alt+p"),
	),
	NextHistoryEntry: key.NewBinding(
		key.WithKeys("alt+n"),
	),
}

var editKeyMap = EditKeyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
	),
	Newline: key.NewBinding(
		key.WithKeys("enter", "ctrl+j"),
	),
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alertClipboardWrite.Update(msg)
	m.alertClipboardWrite = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case spinner.TickMsg, cursor.BlinkMsg:
	default:
		log.Debug("update", "msg_type", fmt.Sprintf("%T", msg), "generation", m.generation, "busy", m.busy)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			cmds = append(cmds, cmd)
			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()

	case types.ResponseMsg:
		if msg.Generation != m.generation || !m.busy {
			return m, tea.Batch(cmds...)
		}
		text := msg.Text
		m.pendingReply = &text
		return m, tea.Batch(cmds...)

	case types.RevealFrameMsg:
		if msg.Generation != m.generation || !m.busy {
			return m, tea.Batch(cmds...)
		}
		m.partial = msg.Partial
		m.refreshViewport(false)
		return m, tea.Batch(cmds...)

	case types.RevealDoneMsg:
		if msg.Generation != m.generation || !m.busy {
			return m, tea.Batch(cmds...)
		}
		if msg.Err != nil {
			log.Warn("reveal interrupted", "generation", msg.Generation, "error", msg.Err)
		}
		m.commitReply(msg.Text)
		m.refreshViewport(false)
		m.recalculateLayout()
		return m, tea.Batch(cmds...)

	case types.CopiedExpiredMsg:
		m.conversation.ClearMessageCopied(msg.MessageID)
		m.refreshViewport(false)
		return m, tea.Batch(cmds...)

	case types.CodeCopiedExpiredMsg:
		m.conversation.ClearCodeCopied(msg.Key)
		m.refreshViewport(false)
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.busy && m.partial == "" {
			m.refreshViewport(false)
		}
	}

	if m.focusedComponent == FocusTextarea {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.adjustTextareaHeight()
		if m.isEditing() {
			_ = m.conversation.SetDraft(m.textarea.Value())
		}
	}

	switch msg.(type) {
	case tea.KeyMsg:
		if m.focusedComponent == FocusViewport {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey handles the keys bound by the session. It returns false when the
// key should go to the focused component instead.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keyMapSession.Interrupt):
		if m.busy {
			m.interruptTask()
			m.refreshViewport(false)
			return nil, true
		}
		m.quitting = true
		m.cancel()
		return tea.Quit, true

	case key.Matches(msg, keyMapSession.CycleFocus):
		if m.isEditing() {
			return nil, true
		}
		switch m.focusedComponent {
		case FocusTextarea:
			m.focusedComponent = FocusViewport
			m.textarea.Blur()
			if m.navigationMessageIndex == -1 {
				m.toBottom()
			}
			m.refreshViewport(false)
			m.scrollToNavigatedMessage()
			return nil, true
		default:
			m.focusedComponent = FocusTextarea
			m.refreshViewport(false)
			return m.textarea.Focus(), true
		}
	}

	switch m.focusedComponent {
	case FocusTextarea:
		if m.isEditing() {
			return m.handleEditKey(msg)
		}
		return m.handleInputKey(msg)
	default:
		return m.handleViewportKey(msg)
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	km := inputKeyMap
	switch {
	case key.Matches(msg, km.Send):
		return m.sendMessage(), true

	case key.Matches(msg, km.PreviousHistoryEntry):
		if entry, ok := m.history.Previous(m.textarea.Value()); ok {
			m.textarea.SetValue(entry)
			m.historyNavigating = true
			m.adjustTextareaHeight()
		}
		return nil, true

	case key.Matches(msg, km.NextHistoryEntry):
		if entry, ok := m.history.Next(); ok {
			m.textarea.SetValue(entry)
			m.historyNavigating = true
			m.adjustTextareaHeight()
		}
		return nil, true
	}

	if m.historyNavigating {
		switch msg.Type {
		case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete:
			m.history.Reset()
			m.historyNavigating = false
		}
	}
	return nil, false
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	km := editKeyMap
	switch {
	case key.Matches(msg, km.Save):
		return m.saveEdit(), true
	case key.Matches(msg, km.Cancel):
		m.cancelEdit()
		return nil, true
	case key.Matches(msg, km.Newline):
		m.textarea.InsertString("\n")
		m.adjustTextareaHeight()
		_ = m.conversation.SetDraft(m.textarea.Value())
		return nil, true
	}
	return nil, false
}

func (m *Model) handleViewportKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	km := keyMapViewport
	switch {
	case key.Matches(msg, km.ToTop):
		if m.toTop() {
			m.refreshViewport(false)
			m.scrollToNavigatedMessage()
		}
		return nil, true

	case key.Matches(msg, km.ToBottom):
		if m.toBottom() {
			m.refreshViewport(false)
			m.scrollToNavigatedMessage()
		}
		return nil, true

	case key.Matches(msg, km.ToPreviousMessage):
		if m.toPreviousMessage() {
			m.refreshViewport(false)
			m.scrollToNavigatedMessage()
		}
		return nil, true

	case key.Matches(msg, km.ToNextMessage):
		if m.toNextMessage() {
			m.refreshViewport(false)
			m.scrollToNavigatedMessage()
		}
		return nil, true

	case key.Matches(msg, km.ToPreviousBlock):
		if m.toPreviousBlock() {
			m.refreshViewport(false)
			m.scrollToNavigatedMessage()
		}
		return nil, true

	case key.Matches(msg, km.ToNextBlock):
		if m.toNextBlock() {
			m.refreshViewport(false)
			m.scrollToNavigatedMessage()
		}
		return nil, true

	case key.Matches(msg, km.ScrollUp):
		m.viewport.LineUp(3)
		return nil, true

	case key.Matches(msg, km.ScrollDown):
		m.viewport.LineDown(3)
		return nil, true

	case key.Matches(msg, km.Edit):
		return m.startEdit(), true

	case key.Matches(msg, km.Like):
		m.react(conversation.ReactionLike)
		return nil, true

	case key.Matches(msg, km.Dislike):
		m.react(conversation.ReactionDislike)
		return nil, true

	case key.Matches(msg, km.Delete):
		m.deleteMessage()
		return nil, true

	case key.Matches(msg, km.CopyMessage):
		return m.copyMessage(), true

	case key.Matches(msg, km.CopyBlock):
		return m.copyCodeBlock(), true
	}
	return nil, false
}

// Filter returns the filter function for the tea.Program. Quitting the
// program interrupts any request in flight.
func (m *Model) Filter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if _, ok := msg.(tea.QuitMsg); ok {
			m.cancel()
		}
		return msg
	}
}
