package markdown

import (
	"regexp"
	"strings"
)

var (
	keywordRegexp = regexp.MustCompile(`^(const|let|var|function|class|import|export|return|if|for|while)\b`)
	stringRegexp  = regexp.MustCompile("('.*?'|\".*?\"|`.*?`)")
	literalRegexp = regexp.MustCompile(`\b(true|false|null|undefined)\b`)
	commentRegexp = regexp.MustCompile(`//.*`)
)

// Decorations are cosmetic highlights found on a single code line. Each is
// shown on its own row above the raw line, which is always shown in full.
type Decorations struct {
	// Leading keyword, if the line starts with one.
	Keyword string
	// Every quoted string, joined by a space.
	Strings string
	// Every true/false/null/undefined, joined by a space.
	Literals string
	// Every `//` comment, joined by a space.
	Comment string
}

// Empty returns true if nothing was found.
func (d Decorations) Empty() bool {
	return d.Keyword == "" && d.Strings == "" && d.Literals == "" && d.Comment == ""
}

// Decorate runs the independent lookups over a code line.
func Decorate(line string) Decorations {
	return Decorations{
		Keyword:  keywordRegexp.FindString(line),
		Strings:  strings.Join(stringRegexp.FindAllString(line, -1), " "),
		Literals: strings.Join(literalRegexp.FindAllString(line, -1), " "),
		Comment:  strings.Join(commentRegexp.FindAllString(line, -1), " "),
	}
}
