package types

import (
	"github.com/malonaz/gemchat/internal/conversation"
)

// ChatOptions holds the options for the chat session.
type ChatOptions struct {
	// Short id of the session, shown in the title.
	SessionID     string
	Model         string
	UserName      string
	AssistantName string
}

// Generation identifies one request and its reveal. Messages carrying an
// older generation than the session's current one are stale and dropped.
type Generation uint64

// ResponseMsg is sent when a completion request finishes, with either the
// reply or the fallback text.
type ResponseMsg struct {
	Generation Generation
	Text       string
}

// RevealFrameMsg carries the partially revealed reply.
type RevealFrameMsg struct {
	Generation Generation
	Partial    string
}

// RevealDoneMsg is sent once the reveal of Text has finished. Err is set when
// the reveal was interrupted.
type RevealDoneMsg struct {
	Generation Generation
	Text       string
	Err        error
}

// CopiedExpiredMsg hides the copied indicator of a message.
type CopiedExpiredMsg struct {
	MessageID int64
}

// CodeCopiedExpiredMsg hides the copied indicator of a code block.
type CodeCopiedExpiredMsg struct {
	Key conversation.CodeKey
}
