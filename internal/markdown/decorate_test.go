package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecorate(t *testing.T) {
	tests := []struct {
		line string
		want Decorations
	}{
		{
			line: "const x = 'a'; // set",
			want: Decorations{Keyword: "const", Strings: "'a'", Comment: "// set"},
		},
		{
			line: `return a === "b" || c === "d"`,
			want: Decorations{Keyword: "return", Strings: `"b" "d"`},
		},
		{
			line: "x = true && y == null",
			want: Decorations{Literals: "true null"},
		},
		{
			line: "constant = 1",
			want: Decorations{},
		},
		{
			line: "  if (x) {}",
			want: Decorations{},
		},
		{
			line: "let s = `tpl`",
			want: Decorations{Keyword: "let", Strings: "`tpl`"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Decorate(tt.line)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == Decorations{}, got.Empty())
		})
	}
}

func TestCanonicalLanguage(t *testing.T) {
	assert.Equal(t, "JavaScript", CanonicalLanguage("js"))
	assert.Equal(t, "Go", CanonicalLanguage("go"))
	assert.Equal(t, "", CanonicalLanguage(""))
	assert.Equal(t, "notalanguage", CanonicalLanguage("notalanguage"))
}
