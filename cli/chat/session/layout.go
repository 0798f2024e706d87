package session

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/malonaz/gemchat/cli/chat/styles"
)

// adjustTextareaHeight resizes the textarea based on content line count.
func (m *Model) adjustTextareaHeight() {
	content := m.textarea.Value()
	lineCount := strings.Count(content, "\n") + 1

	newHeight := lineCount
	if newHeight < styles.MinTextareaHeight {
		newHeight = styles.MinTextareaHeight
	}
	if newHeight > styles.MaxTextareaHeight {
		newHeight = styles.MaxTextareaHeight
	}

	oldHeight := m.textarea.Height()
	if oldHeight != newHeight {
		m.textarea.SetHeight(newHeight)

		heightDiff := newHeight - oldHeight

		m.recalculateLayout()

		if heightDiff != 0 && m.ready {
			m.viewport.LineDown(heightDiff)
		}
	}
}

// refreshViewport re-renders the messages. The view follows new content if
// it was already at the bottom, or if gotoBottom is set.
func (m *Model) refreshViewport(gotoBottom bool) {
	if !m.ready {
		return
	}
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderMessages())
	if gotoBottom || wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// scrollToNavigatedMessage scrolls the viewport to show the currently navigated message,
// but only if it's not already fully visible.
func (m *Model) scrollToNavigatedMessage() {
	if m.navigationMessageIndex < 0 || m.navigationMessageIndex >= len(m.messageViewportOffsets) {
		return
	}

	startLine := m.messageViewportOffsets[m.navigationMessageIndex]

	var endLine int
	if m.navigationMessageIndex+1 < len(m.messageViewportOffsets) {
		endLine = m.messageViewportOffsets[m.navigationMessageIndex+1] - 1
	} else {
		endLine = m.viewport.TotalLineCount()
	}

	viewportTop := m.viewport.YOffset
	viewportBottom := viewportTop + m.viewport.Height

	if startLine >= viewportTop && endLine < viewportBottom {
		return // Already fully visible
	}

	m.viewport.SetYOffset(startLine)
}

// recalculateLayout adjusts viewport and textarea dimensions based on current state.
func (m *Model) recalculateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	m.titleHeight = lipgloss.Height(m.renderTitle())
	viewportHeight := m.height - m.titleHeight - m.footerHeight()
	viewportHeight -= m.textarea.Height() + styles.TextAreaStyle.GetVerticalFrameSize()
	if viewportHeight < styles.MinViewportHeight {
		viewportHeight = styles.MinViewportHeight
	}

	viewportWidth := m.width
	rendererWidth := viewportWidth - styles.MessageHorizontalFrameSize()
	if err := m.renderer.SetWidth(rendererWidth); err != nil {
		log.Error("resizing renderer", "error", err)
	}

	if !m.ready {
		m.viewport = viewport.New(viewportWidth, viewportHeight)
		m.ready = true
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
	} else {
		m.viewport.Width = viewportWidth
		m.viewport.Height = viewportHeight
		m.viewport.SetContent(m.renderMessages())
	}

	m.textarea.SetWidth(viewportWidth - styles.TextAreaStyle.GetHorizontalPadding() - styles.TextAreaStyle.GetHorizontalBorderSize())
}
