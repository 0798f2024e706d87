package session

import "github.com/malonaz/gemchat/internal/markdown"

// codeBlockCount returns the number of code blocks of the message at index i.
func (m *Model) codeBlockCount(i int) int {
	messages := m.conversation.Messages()
	if i < 0 || i >= len(messages) {
		return 0
	}
	return len(markdown.CodeSegments(messages[i].Text))
}

// toTop navigates to the first message.
// Returns true if navigation occurred and re-render is needed.
func (m *Model) toTop() bool {
	if m.conversation.Len() == 0 || m.navigationMessageIndex == 0 {
		return false
	}
	m.navigationMessageIndex = 0
	m.navigationBlockIndex = -1
	return true
}

// toBottom navigates to the last message.
// Returns true if navigation occurred and re-render is needed.
func (m *Model) toBottom() bool {
	last := m.conversation.Len() - 1
	if last < 0 || m.navigationMessageIndex == last {
		return false
	}
	m.navigationMessageIndex = last
	m.navigationBlockIndex = -1
	return true
}

// toPreviousMessage navigates to the previous message.
// Returns true if navigation occurred and re-render is needed.
func (m *Model) toPreviousMessage() bool {
	if m.conversation.Len() == 0 {
		return false
	}

	// Initialize at last message if not navigating
	if m.navigationMessageIndex == -1 {
		m.navigationMessageIndex = m.conversation.Len() - 1
		m.navigationBlockIndex = -1
		return true
	}

	// Already at first message
	if m.navigationMessageIndex == 0 {
		return false
	}

	m.navigationMessageIndex--
	m.navigationBlockIndex = -1
	return true
}

// toNextMessage navigates to the next message.
// Returns true if navigation occurred and re-render is needed.
func (m *Model) toNextMessage() bool {
	if m.navigationMessageIndex == -1 || m.navigationMessageIndex >= m.conversation.Len()-1 {
		return false
	}
	m.navigationMessageIndex++
	m.navigationBlockIndex = -1
	return true
}

// toPreviousBlock navigates to the previous code block, moving to earlier
// messages when the current one has none left.
// Returns true if navigation occurred and re-render is needed.
func (m *Model) toPreviousBlock() bool {
	if m.conversation.Len() == 0 {
		return false
	}

	start := m.navigationMessageIndex
	if start == -1 {
		start = m.conversation.Len()
	} else if m.navigationBlockIndex > 0 {
		m.navigationBlockIndex--
		return true
	} else if count := m.codeBlockCount(start); m.navigationBlockIndex == -1 && count > 0 {
		m.navigationBlockIndex = count - 1
		return true
	}

	for i := start - 1; i >= 0; i-- {
		if count := m.codeBlockCount(i); count > 0 {
			m.navigationMessageIndex = i
			m.navigationBlockIndex = count - 1
			return true
		}
	}
	return false
}

// toNextBlock navigates to the next code block, moving to later messages
// when the current one has none left.
// Returns true if navigation occurred and re-render is needed.
func (m *Model) toNextBlock() bool {
	if m.navigationMessageIndex == -1 {
		return false
	}

	if m.navigationBlockIndex < m.codeBlockCount(m.navigationMessageIndex)-1 {
		m.navigationBlockIndex++
		return true
	}

	for i := m.navigationMessageIndex + 1; i < m.conversation.Len(); i++ {
		if m.codeBlockCount(i) > 0 {
			m.navigationMessageIndex = i
			m.navigationBlockIndex = 0
			return true
		}
	}
	return false
}
