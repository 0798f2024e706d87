package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/malonaz/gemchat/cli/chat/styles"
	"github.com/malonaz/gemchat/internal/clipboard"
	"github.com/malonaz/gemchat/internal/conversation"
	"github.com/malonaz/gemchat/internal/debug"
	"github.com/malonaz/gemchat/internal/gemini"
	"github.com/malonaz/gemchat/internal/history"
	"github.com/malonaz/gemchat/internal/markdown"
	"github.com/malonaz/gemchat/internal/reveal"
	"github.com/malonaz/gemchat/internal/types"
)

const (
	FocusTextarea FocusedComponent = iota
	FocusViewport
)

var log *slog.Logger

// FocusedComponent is the component receiving key presses.
type FocusedComponent int

// Sender delivers messages to the running program from other goroutines.
// *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Dependencies of a session.
type Dependencies struct {
	Completer gemini.Completer
	Animator  *reveal.Animator
	Clipboard clipboard.Writer
	Renderer  *markdown.Renderer
	// How long copied indicators stay visible.
	CopiedIndicator time.Duration
	// Optional. Used to assign message ids.
	Clock func() time.Time
}

// Model represents the Bubble Tea model for the chat session.
type Model struct {
	// Core dependencies
	ctx             context.Context
	cancel          context.CancelFunc
	opts            types.ChatOptions
	completer       gemini.Completer
	animator        *reveal.Animator
	clipboard       clipboard.Writer
	copiedIndicator time.Duration

	// Chat state
	conversation           *conversation.Conversation
	messageViewportOffsets []int // Tracks the line offset of each message in the viewport.

	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *markdown.Renderer

	// UI state
	title            string
	titleHeight      int
	width            int
	height           int
	ready            bool
	err              error
	quitting         bool
	focusedComponent FocusedComponent

	// Alert notifications.
	alertClipboardWrite bubbleup.AlertModel

	// Request state. A request is busy from the moment it is sent until its
	// reply is committed or it is interrupted.
	busy         bool
	generation   types.Generation
	cancelTask   context.CancelFunc
	pendingReply *string // Reply received for the current generation, not yet committed.
	partial      string  // Text revealed so far.

	// Program reference for sending messages from goroutines
	program   Sender
	programMu sync.Mutex

	// Input history
	history           *history.History
	historyNavigating bool

	// What the textarea held before an edit started.
	stashedInput string

	// Tracks the index of the message we're currently navigating. (-1 if none is selected).
	navigationMessageIndex int
	navigationBlockIndex   int // Index among the code blocks of the navigated message. (-1 if none).
}

// New creates a new chat session model.
func New(ctx context.Context, opts types.ChatOptions, deps Dependencies) *Model {
	log = debug.GetLogger()
	ctx, cancel := context.WithCancel(ctx)

	// Create textarea for input
	ta := textarea.New()
	ta.Placeholder = "Type your message... (Enter to send, Alt+Enter for a new line, Tab to browse messages, Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(styles.DefaultTextareaWidth)
	ta.SetHeight(styles.MinTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.Prompt = ""

	// Create spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	alertClipboardWrite := bubbleup.NewAlertModel(25, false, 2)

	var conversationOpts []conversation.Option
	if deps.Clock != nil {
		conversationOpts = append(conversationOpts, conversation.WithClock(deps.Clock))
	}

	m := &Model{
		ctx:                    ctx,
		cancel:                 cancel,
		opts:                   opts,
		completer:              deps.Completer,
		animator:               deps.Animator,
		clipboard:              deps.Clipboard,
		copiedIndicator:        deps.CopiedIndicator,
		conversation:           conversation.New(conversationOpts...),
		textarea:               ta,
		spinner:                sp,
		renderer:               deps.Renderer,
		alertClipboardWrite:    *alertClipboardWrite,
		focusedComponent:       FocusTextarea,
		history:                history.NewHistory(),
		navigationMessageIndex: -1,
		navigationBlockIndex:   -1,
	}
	m.setTitle()
	return m
}

// SetProgram sets the program reference for async message sending.
func (m *Model) SetProgram(p Sender) {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	m.program = p
}

// getProgram safely gets the program reference.
func (m *Model) getProgram() Sender {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	return m.program
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.alertClipboardWrite.Init(),
	)
}

// Close interrupts any request in flight. No goroutine started by the
// session outlives it.
func (m *Model) Close() {
	m.cancel()
}

// Conversation exposes the message list. It must only be read from the
// program's update loop.
func (m *Model) Conversation() *conversation.Conversation {
	return m.conversation
}

// Busy returns true while a request is in flight.
func (m *Model) Busy() bool { return m.busy }

// navigatedMessage returns the message being navigated.
func (m *Model) navigatedMessage() (conversation.Message, bool) {
	messages := m.conversation.Messages()
	if m.navigationMessageIndex < 0 || m.navigationMessageIndex >= len(messages) {
		return conversation.Message{}, false
	}
	return messages[m.navigationMessageIndex], true
}

func (m *Model) setTitle() {
	m.title = " 🤖 " + m.opts.Model + " │ 👤 " + m.opts.UserName + " │ 💬 " + m.opts.SessionID + " "
}
