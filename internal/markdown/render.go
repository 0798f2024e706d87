package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

// CodeStyle selects how code segments are drawn.
type CodeStyle string

const (
	// CodeStyleDecorative draws cosmetic keyword/string/literal/comment rows
	// above every raw code line.
	CodeStyleDecorative CodeStyle = "decorative"
	// CodeStyleSyntax highlights code segments through glamour.
	CodeStyleSyntax CodeStyle = "syntax"
)

// ParseCodeStyle returns the code style named s.
func ParseCodeStyle(s string) (CodeStyle, error) {
	switch style := CodeStyle(s); style {
	case CodeStyleDecorative, CodeStyleSyntax:
		return style, nil
	default:
		return "", errors.Errorf("unknown code style %q", s)
	}
}

// NoCode is used in RenderOptions when no code block is marked.
const NoCode = -1

var (
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	stringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	literalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9ff3"))
	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6a89cc"))

	codeLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0e0e0"))
	codeBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#424242")).Padding(0, 1)
	codeBoxSelected = codeBoxStyle.BorderForeground(lipgloss.Color("#81c784"))
	codeHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#757575")).Italic(true)
	copiedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a5d6a7")).Bold(true)
)

// RenderOptions marks code blocks of a message, by index among its code
// segments.
type RenderOptions struct {
	SelectedCode int
	CopiedCode   int
}

// DefaultRenderOptions marks nothing.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{SelectedCode: NoCode, CopiedCode: NoCode}
}

// Renderer draws parsed messages for the terminal.
type Renderer struct {
	style   CodeStyle
	width   int
	glamour *glamour.TermRenderer
}

// NewRenderer creates a new renderer.
func NewRenderer(style CodeStyle, width int) (*Renderer, error) {
	r := &Renderer{style: style, width: width}
	if style != CodeStyleSyntax {
		return r, nil
	}
	gr, err := glamour.NewTermRenderer(
		glamour.WithStyles(customStyle()),
		glamour.WithWordWrap(codeWidth(width)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating glamour renderer")
	}
	r.glamour = gr
	return r, nil
}

// Style returns the code style of this renderer.
func (r *Renderer) Style() CodeStyle { return r.style }

// SetWidth updates the renderer width, recreating internals if needed.
func (r *Renderer) SetWidth(width int) error {
	if r.width == width {
		return nil
	}
	newRenderer, err := NewRenderer(r.style, width)
	if err != nil {
		return err
	}
	*r = *newRenderer
	return nil
}

// Render parses and draws a message.
func (r *Renderer) Render(text string, opts RenderOptions) string {
	return r.RenderSegments(Parse(text), opts)
}

// RenderSegments draws already parsed segments.
func (r *Renderer) RenderSegments(segments []Segment, opts RenderOptions) string {
	var sb strings.Builder
	codeIndex := 0
	for i, segment := range segments {
		if i > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		if !segment.IsCode() {
			sb.WriteString(r.renderText(segment.Content))
			continue
		}
		sb.WriteString(r.renderCode(segment, codeIndex == opts.SelectedCode, codeIndex == opts.CopiedCode))
		codeIndex++
	}
	return sb.String()
}

func (r *Renderer) renderText(text string) string {
	if r.width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(r.width).Render(text)
}

func (r *Renderer) renderCode(segment Segment, selected, copied bool) string {
	header := codeHeaderStyle.Render(headerLabel(segment.Language))
	if copied {
		header += " " + copiedStyle.Render("✓ copied")
	}

	var body string
	if r.style == CodeStyleSyntax && r.glamour != nil {
		body = r.renderSyntax(segment)
	} else {
		body = renderDecorative(segment.Content)
	}

	box := codeBoxStyle
	if selected {
		box = codeBoxSelected
	}
	if r.width > 0 {
		box = box.Width(codeWidth(r.width))
	}
	return header + "\n" + box.Render(body)
}

func (r *Renderer) renderSyntax(segment Segment) string {
	rendered, err := r.glamour.Render(fence + segment.Language + "\n" + segment.Content + fence)
	if err != nil {
		return segment.Content
	}
	return strings.Trim(rendered, "\n")
}

// renderDecorative draws every line of content as its decoration rows
// followed by the raw line.
func renderDecorative(content string) string {
	lines := strings.Split(content, "\n")
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		d := Decorate(line)
		if d.Keyword != "" {
			rows = append(rows, keywordStyle.Render(d.Keyword))
		}
		if d.Strings != "" {
			rows = append(rows, stringStyle.Render(d.Strings))
		}
		if d.Literals != "" {
			rows = append(rows, literalStyle.Render(d.Literals))
		}
		if d.Comment != "" {
			rows = append(rows, commentStyle.Render(d.Comment))
		}
		rows = append(rows, codeLineStyle.Render(line))
	}
	return strings.Join(rows, "\n")
}

func headerLabel(language string) string {
	if name := CanonicalLanguage(language); name != "" {
		return name
	}
	return "code"
}

// codeWidth is the inner width of a code box given the outer width.
func codeWidth(width int) int {
	// Border and padding.
	if width > 4 {
		return width - 4
	}
	return width
}

// customStyle returns a modified glamour style for cleaner output.
func customStyle() ansi.StyleConfig {
	style := styles.DraculaStyleConfig
	zero := uint(0)
	style.Document.Margin = &zero
	style.CodeBlock.Margin = &zero
	style.CodeBlock.Indent = &zero
	style.CodeBlock.Prefix = ""
	style.CodeBlock.BlockPrefix = ""
	style.Document.BlockPrefix = ""
	style.Document.BlockSuffix = ""
	return style
}
