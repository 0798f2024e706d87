package markdown

import "strings"

const fence = "```"

// Kind of a segment.
type Kind int

const (
	// KindText is plain text, displayed verbatim.
	KindText Kind = iota
	// KindCode is the body of a fenced code block.
	KindCode
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Segment is a contiguous piece of a message.
type Segment struct {
	Kind Kind
	// Language tag of a code segment. May be empty.
	Language string
	Content  string
}

// IsCode returns true if this is a code segment.
func (s Segment) IsCode() bool { return s.Kind == KindCode }

// parser splits a message into segments. It is a small state machine where
// each state returns the next one, nil meaning done.
type parser struct {
	input string
	// Start of the pending text run.
	start int
	// Current scan position.
	pos      int
	segments []Segment
}

type stateFn func(*parser) stateFn

// Parse splits text into text and code segments.
//
// A code block opens with three backticks, an optional tag of word
// characters and a newline, and closes at the next three backticks. The code
// content is everything in between. An opening fence that is never closed is
// not a code block and stays part of the surrounding text. Empty text
// segments are never emitted.
func Parse(text string) []Segment {
	p := &parser{input: text}
	for state := lexText; state != nil; {
		state = state(p)
	}
	return p.segments
}

// lexText scans forward to the next candidate fence.
func lexText(p *parser) stateFn {
	i := strings.Index(p.input[p.pos:], fence)
	if i < 0 {
		p.emitText(len(p.input))
		return nil
	}
	p.pos += i
	return lexFence
}

// lexFence tries to read a complete code block starting at p.pos. On failure
// the candidate is treated as text and scanning resumes one byte later.
func lexFence(p *parser) stateFn {
	j := p.pos + len(fence)
	for j < len(p.input) && isWordChar(p.input[j]) {
		j++
	}
	if j >= len(p.input) || p.input[j] != '\n' {
		p.pos++
		return lexText
	}
	body := j + 1
	end := strings.Index(p.input[body:], fence)
	if end < 0 {
		p.pos++
		return lexText
	}
	end += body

	p.emitText(p.pos)
	p.segments = append(p.segments, Segment{
		Kind:     KindCode,
		Language: p.input[p.pos+len(fence) : j],
		Content:  p.input[body:end],
	})
	p.pos = end + len(fence)
	p.start = p.pos
	return lexText
}

// emitText emits the pending text run up to `end`, if any.
func (p *parser) emitText(end int) {
	if end > p.start {
		p.segments = append(p.segments, Segment{Kind: KindText, Content: p.input[p.start:end]})
	}
	p.start = end
}

func isWordChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// CodeSegments returns only the code segments of text, in order.
func CodeSegments(text string) []Segment {
	var code []Segment
	for _, segment := range Parse(text) {
		if segment.IsCode() {
			code = append(code, segment)
		}
	}
	return code
}
