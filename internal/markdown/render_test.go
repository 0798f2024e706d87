package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDecorative(t *testing.T) {
	r, err := NewRenderer(CodeStyleDecorative, 0)
	require.NoError(t, err)

	out := r.Render("Here:\n```js\nconst a = true; // c\n```", DefaultRenderOptions())
	assert.Contains(t, out, "Here:")
	assert.Contains(t, out, "JavaScript")
	assert.Contains(t, out, "const a = true; // c")
	assert.NotContains(t, out, "copied")

	// Every decoration gets its own row above the raw line.
	rows := map[string]int{}
	for i, line := range strings.Split(out, "\n") {
		trimmed := strings.Trim(line, "│ ")
		if _, ok := rows[trimmed]; !ok {
			rows[trimmed] = i
		}
	}
	rawRow, ok := rows["const a = true; // c"]
	require.True(t, ok)
	for _, decoration := range []string{"const", "true", "// c"} {
		row, ok := rows[decoration]
		require.True(t, ok, decoration)
		assert.Less(t, row, rawRow, decoration)
	}
}

func TestRenderMarksCopiedBlock(t *testing.T) {
	r, err := NewRenderer(CodeStyleDecorative, 60)
	require.NoError(t, err)

	text := "```go\na\n```\n```go\nb\n```"
	out := r.Render(text, RenderOptions{SelectedCode: 1, CopiedCode: 1})
	assert.Equal(t, 1, strings.Count(out, "copied"))
	// The marker belongs to the second block.
	assert.Greater(t, strings.Index(out, "copied"), strings.Index(out, "a"))
}

func TestRenderSyntax(t *testing.T) {
	r, err := NewRenderer(CodeStyleSyntax, 80)
	require.NoError(t, err)
	assert.Equal(t, CodeStyleSyntax, r.Style())

	out := r.Render("```go\nfunc main() {}\n```", DefaultRenderOptions())
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "main")
}

func TestSetWidth(t *testing.T) {
	r, err := NewRenderer(CodeStyleDecorative, 40)
	require.NoError(t, err)
	require.NoError(t, r.SetWidth(40))
	require.NoError(t, r.SetWidth(100))
	assert.Equal(t, 100, r.width)
	assert.Equal(t, CodeStyleDecorative, r.Style())
}

func TestParseCodeStyle(t *testing.T) {
	style, err := ParseCodeStyle("syntax")
	require.NoError(t, err)
	assert.Equal(t, CodeStyleSyntax, style)

	style, err = ParseCodeStyle("decorative")
	require.NoError(t, err)
	assert.Equal(t, CodeStyleDecorative, style)

	_, err = ParseCodeStyle("rainbow")
	assert.Error(t, err)
}
