package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	// Textarea
	MinTextareaHeight    = 3
	MaxTextareaHeight    = 12
	DefaultTextareaWidth = 80
	TextAreaPaddingLeft  = 1

	// Viewport
	MinViewportHeight = 1

	// Messages
	MessagePaddingLeft = 2
	MessageMargin      = 10

	// Help
	HelpMarginTop = 0
)

// Cursor shown after a reply that is still being revealed.
const Cursor = "▋"

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#1db954") // Assistant green
	SecondaryColor = lipgloss.Color("#5c5c5c") // User gray
	AccentColor    = lipgloss.Color("#a5d6a7")
	SuccessColor   = lipgloss.Color("#81c784")
	ErrorColor     = lipgloss.Color("#ff6b6b")
	MutedColor     = lipgloss.Color("#757575")
	TextColor      = lipgloss.Color("#ffffff")
	DimTextColor   = lipgloss.Color("#9e9e9e")
	LikeColor      = lipgloss.Color("#388e3c")
	DislikeColor   = lipgloss.Color("#c62828")
	TitleBgColor   = lipgloss.Color("#212121")

	MessageSelectedColor = lipgloss.Color("#81c784")
)

// Title bar
var (
	TitleStyle = lipgloss.NewStyle().
		Background(TitleBgColor).
		Foreground(AccentColor).
		Bold(true)
)

// Messages.
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	UserMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(SecondaryColor).
				MarginLeft(MessageMargin)

	AIMessageStyle = lipgloss.NewStyle().
			Inherit(messageStyle).
			BorderForeground(PrimaryColor).
			MarginRight(MessageMargin)

	EditingMessageStyle = lipgloss.NewStyle().
				Inherit(UserMessageStyle).
				BorderStyle(lipgloss.DoubleBorder()).
				BorderForeground(AccentColor)

	NameStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	LikeStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(LikeColor).
			Padding(0, 1)

	DislikeStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(DislikeColor).
			Padding(0, 1)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	EditingLabelStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Italic(true)

	SelectedMarkerStyle = lipgloss.NewStyle().
				Foreground(MessageSelectedColor).
				Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// Error
var (
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
)

// Input area
var (
	TextAreaStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			PaddingLeft(TextAreaPaddingLeft)

	EditAreaStyle = lipgloss.NewStyle().
			Inherit(TextAreaStyle).
			BorderForeground(AccentColor)
)

// Spinner
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor)
)

// Help text
var (
	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true).
		MarginTop(HelpMarginTop)
)

// Viewport
var (
	ViewportStyle = lipgloss.NewStyle().Margin(0).Padding(0)
)

// MessageHorizontalFrameSize returns the horizontal frame size of messages.
func MessageHorizontalFrameSize() int {
	return AIMessageStyle.GetHorizontalFrameSize()
}
