package conversation

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	now := time.UnixMilli(1_700_000_000_000)
	return func() time.Time { return now }
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	c := New(WithClock(fixedClock()))
	first, err := c.AddUser("hello")
	require.NoError(t, err)
	second := c.AddAssistant("hi")
	third, err := c.AddUser("again")
	require.NoError(t, err)

	assert.Equal(t, int64(1_700_000_000_000), first.ID)
	assert.Equal(t, first.ID+1, second.ID)
	assert.Equal(t, second.ID+1, third.ID)

	messages := c.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, RoleAI, messages[1].Role)
	assert.Equal(t, "again", messages[2].Text)
}

func TestAddUserRejectsBlank(t *testing.T) {
	c := New()
	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := c.AddUser(text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Zero(t, c.Len())
}

func TestMessagesReturnsCopy(t *testing.T) {
	c := New()
	_, err := c.AddUser("hello")
	require.NoError(t, err)
	messages := c.Messages()
	messages[0].Text = "changed"
	got, ok := c.Get(messages[0].ID)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Text)
}

func TestEditAndSaveTruncates(t *testing.T) {
	c := New(WithClock(fixedClock()))
	u1, _ := c.AddUser("first")
	c.AddAssistant("answer one")
	c.AddUser("second")
	c.AddAssistant("answer two")

	require.NoError(t, c.StartEdit(u1.ID))
	state, ok := c.Editing()
	require.True(t, ok)
	assert.Equal(t, EditState{ID: u1.ID, Draft: "first"}, state)

	require.NoError(t, c.SetDraft("first, edited"))
	text, err := c.SaveEdit()
	require.NoError(t, err)
	assert.Equal(t, "first, edited", text)

	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, u1.ID, messages[0].ID)
	assert.Equal(t, "first, edited", messages[0].Text)
	_, ok = c.Editing()
	assert.False(t, ok)

	// After the re-issued completion exactly one assistant message follows.
	c.AddAssistant("new answer")
	messages = c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, RoleAI, messages[1].Role)
}

func TestCancelEditKeepsText(t *testing.T) {
	c := New()
	u, _ := c.AddUser("original")
	require.NoError(t, c.StartEdit(u.ID))
	require.NoError(t, c.SetDraft("draft"))
	c.CancelEdit()

	got, _ := c.Get(u.ID)
	assert.Equal(t, "original", got.Text)
	assert.False(t, c.IsEditing(u.ID))
	_, err := c.SaveEdit()
	assert.ErrorIs(t, err, ErrNotEditing)
	assert.ErrorIs(t, c.SetDraft("x"), ErrNotEditing)
}

func TestStartEditErrors(t *testing.T) {
	c := New()
	ai := c.AddAssistant("reply")
	assert.ErrorIs(t, c.StartEdit(ai.ID), ErrNotEditable)
	assert.ErrorIs(t, c.StartEdit(12345), ErrMessageNotFound)
}

func TestSaveEditOfMissingMessage(t *testing.T) {
	c := New()
	u, _ := c.AddUser("hello")
	c.AddAssistant("world")
	c.editing = &EditState{ID: u.ID + 100, Draft: "ghost"}

	_, err := c.SaveEdit()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMessageNotFound))
	assert.Equal(t, 2, c.Len(), "nothing changes")
}

func TestReactions(t *testing.T) {
	c := New()
	m := c.AddAssistant("reply")

	require.NoError(t, c.React(m.ID, ReactionDislike))
	got, _ := c.Get(m.ID)
	assert.Equal(t, ReactionDislike, got.Reaction)

	require.NoError(t, c.React(m.ID, ReactionLike))
	got, _ = c.Get(m.ID)
	assert.Equal(t, ReactionLike, got.Reaction, "liking a disliked message moves it to liked")

	require.NoError(t, c.React(m.ID, ReactionLike))
	got, _ = c.Get(m.ID)
	assert.Equal(t, ReactionLike, got.Reaction, "liking twice keeps the like")

	assert.ErrorIs(t, c.React(999, ReactionLike), ErrMessageNotFound)
	assert.Equal(t, "like", ReactionLike.String())
	assert.Equal(t, "none", ReactionNone.String())
}

func TestDelete(t *testing.T) {
	c := New(WithClock(fixedClock()))
	u, _ := c.AddUser("hello")
	ai := c.AddAssistant("world")
	require.NoError(t, c.React(u.ID, ReactionLike))
	require.NoError(t, c.StartEdit(u.ID))

	require.NoError(t, c.Delete(u.ID))
	_, ok := c.Get(u.ID)
	assert.False(t, ok)
	assert.Equal(t, -1, c.index(u.ID))
	assert.Equal(t, 0, c.index(ai.ID))
	_, editing := c.Editing()
	assert.False(t, editing, "deleting the edited message ends the edit")

	assert.ErrorIs(t, c.Delete(u.ID), ErrMessageNotFound)
}

func TestDeleteOtherMessageKeepsEdit(t *testing.T) {
	c := New(WithClock(fixedClock()))
	u, _ := c.AddUser("hello")
	ai := c.AddAssistant("world")
	require.NoError(t, c.StartEdit(u.ID))
	require.NoError(t, c.Delete(ai.ID))
	assert.True(t, c.IsEditing(u.ID))
}

func TestCopiedIndicators(t *testing.T) {
	c := New(WithClock(fixedClock()))
	a := c.AddAssistant("one")
	b := c.AddAssistant("two")

	c.MarkMessageCopied(a.ID)
	c.MarkMessageCopied(b.ID)
	id, ok := c.CopiedMessage()
	require.True(t, ok)
	assert.Equal(t, b.ID, id)

	// An expiry for an older copy leaves the newer indicator alone.
	c.ClearMessageCopied(a.ID)
	_, ok = c.CopiedMessage()
	assert.True(t, ok)
	c.ClearMessageCopied(b.ID)
	_, ok = c.CopiedMessage()
	assert.False(t, ok)

	key := CodeKey{MessageID: a.ID, Index: 1}
	c.MarkCodeCopied(key)
	got, ok := c.CopiedCode()
	require.True(t, ok)
	assert.Equal(t, key, got)
	c.ClearCodeCopied(CodeKey{MessageID: a.ID, Index: 0})
	_, ok = c.CopiedCode()
	assert.True(t, ok)
	c.ClearCodeCopied(key)
	_, ok = c.CopiedCode()
	assert.False(t, ok)
}
