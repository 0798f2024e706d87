package markdown

import (
	"github.com/alecthomas/chroma/v2/lexers"
)

// CanonicalLanguage returns the display name of a language tag, as known to
// chroma's lexer registry ("js" gives "JavaScript"). Unknown tags are
// returned unchanged.
func CanonicalLanguage(tag string) string {
	if tag == "" {
		return ""
	}
	lexer := lexers.Get(tag)
	if lexer == nil {
		return tag
	}
	if config := lexer.Config(); config != nil && config.Name != "" {
		return config.Name
	}
	return tag
}
