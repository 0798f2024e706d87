package conversation

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrMessageNotFound is returned when an operation targets an unknown id.
	ErrMessageNotFound = errors.New("message not found")
	// ErrNotEditable is returned when editing a message that is not a user message.
	ErrNotEditable = errors.New("only user messages can be edited")
	// ErrNotEditing is returned when no message is being edited.
	ErrNotEditing = errors.New("no message is being edited")
	// ErrEmptyMessage is returned when adding a blank user message.
	ErrEmptyMessage = errors.New("message is empty")
)

// Role of a message author.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Reaction on a message. A message is never both liked and disliked.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionLike
	ReactionDislike
)

// String implements fmt.Stringer.
func (r Reaction) String() string {
	switch r {
	case ReactionLike:
		return "like"
	case ReactionDislike:
		return "dislike"
	default:
		return "none"
	}
}

// Message is a single chat message.
type Message struct {
	// Creation time in milliseconds. Unique within a conversation.
	ID       int64
	Role     Role
	Text     string
	Reaction Reaction
}

// IsUser returns true if the message was written by the user.
func (m Message) IsUser() bool { return m.Role == RoleUser }

// EditState is the message being edited and its pending text.
type EditState struct {
	ID    int64
	Draft string
}

// CodeKey identifies a code block: the message and the index of the block
// among the message's code segments.
type CodeKey struct {
	MessageID int64
	Index     int
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithClock sets the clock used to assign message ids.
func WithClock(clock func() time.Time) Option {
	return func(c *Conversation) { c.clock = clock }
}

// Conversation is the ordered message list and the per-message UI state.
// It is not safe for concurrent use; the session's update loop owns it.
type Conversation struct {
	messages []Message
	editing  *EditState

	copiedMessage *int64
	copiedCode    *CodeKey

	clock  func() time.Time
	lastID int64
}

// New returns an empty conversation.
func New(opts ...Option) *Conversation {
	c := &Conversation{clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nextID returns a millisecond timestamp, bumped if needed so ids stay
// strictly increasing.
func (c *Conversation) nextID() int64 {
	id := c.clock().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// Messages returns a copy of the messages, in order.
func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }

// Get returns the message with the given id.
func (c *Conversation) Get(id int64) (Message, bool) {
	i := c.index(id)
	if i < 0 {
		return Message{}, false
	}
	return c.messages[i], true
}

func (c *Conversation) index(id int64) int {
	for i, message := range c.messages {
		if message.ID == id {
			return i
		}
	}
	return -1
}

// AddUser appends a user message. Blank text is rejected.
func (c *Conversation) AddUser(text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}
	return c.add(RoleUser, text), nil
}

// AddAssistant appends an assistant message.
func (c *Conversation) AddAssistant(text string) Message {
	return c.add(RoleAI, text)
}

func (c *Conversation) add(role Role, text string) Message {
	message := Message{ID: c.nextID(), Role: role, Text: text}
	c.messages = append(c.messages, message)
	return message
}

// StartEdit puts a user message in editing mode, its text as the draft.
// Any other edit in progress is discarded.
func (c *Conversation) StartEdit(id int64) error {
	i := c.index(id)
	if i < 0 {
		return ErrMessageNotFound
	}
	if !c.messages[i].IsUser() {
		return ErrNotEditable
	}
	c.editing = &EditState{ID: id, Draft: c.messages[i].Text}
	return nil
}

// Editing returns the current edit state, if any.
func (c *Conversation) Editing() (EditState, bool) {
	if c.editing == nil {
		return EditState{}, false
	}
	return *c.editing, true
}

// IsEditing returns true if the given message is being edited.
func (c *Conversation) IsEditing(id int64) bool {
	return c.editing != nil && c.editing.ID == id
}

// SetDraft replaces the pending text of the edit in progress.
func (c *Conversation) SetDraft(text string) error {
	if c.editing == nil {
		return ErrNotEditing
	}
	c.editing.Draft = text
	return nil
}

// CancelEdit discards the edit in progress.
func (c *Conversation) CancelEdit() {
	c.editing = nil
}

// SaveEdit commits the draft: the edited message takes the draft as text and
// every later message is removed. It returns the text to send again. If the
// edited message no longer exists nothing changes.
func (c *Conversation) SaveEdit() (string, error) {
	if c.editing == nil {
		return "", ErrNotEditing
	}
	i := c.index(c.editing.ID)
	if i < 0 {
		return "", errors.Wrapf(ErrMessageNotFound, "saving edit of message %d", c.editing.ID)
	}
	draft := c.editing.Draft
	c.messages[i].Text = draft
	c.messages = c.messages[:i+1]
	c.editing = nil
	return draft, nil
}

// React sets the reaction of a message. Setting the current reaction again
// keeps it.
func (c *Conversation) React(id int64, reaction Reaction) error {
	i := c.index(id)
	if i < 0 {
		return ErrMessageNotFound
	}
	c.messages[i].Reaction = reaction
	return nil
}

// Delete removes a message and its reaction. Deleting the message being
// edited also ends the edit.
func (c *Conversation) Delete(id int64) error {
	i := c.index(id)
	if i < 0 {
		return ErrMessageNotFound
	}
	c.messages = append(c.messages[:i], c.messages[i+1:]...)
	if c.IsEditing(id) {
		c.editing = nil
	}
	return nil
}

// MarkMessageCopied shows the copied indicator on a message, replacing any
// previous one.
func (c *Conversation) MarkMessageCopied(id int64) {
	c.copiedMessage = &id
}

// ClearMessageCopied hides the copied indicator if it is still on `id`.
func (c *Conversation) ClearMessageCopied(id int64) {
	if c.copiedMessage != nil && *c.copiedMessage == id {
		c.copiedMessage = nil
	}
}

// CopiedMessage returns the message showing the copied indicator.
func (c *Conversation) CopiedMessage() (int64, bool) {
	if c.copiedMessage == nil {
		return 0, false
	}
	return *c.copiedMessage, true
}

// MarkCodeCopied shows the copied indicator on a code block, replacing any
// previous one.
func (c *Conversation) MarkCodeCopied(key CodeKey) {
	c.copiedCode = &key
}

// ClearCodeCopied hides the code block copied indicator if it is still on
// `key`.
func (c *Conversation) ClearCodeCopied(key CodeKey) {
	if c.copiedCode != nil && *c.copiedCode == key {
		c.copiedCode = nil
	}
}

// CopiedCode returns the code block showing the copied indicator.
func (c *Conversation) CopiedCode() (CodeKey, bool) {
	if c.copiedCode == nil {
		return CodeKey{}, false
	}
	return *c.copiedCode, true
}
