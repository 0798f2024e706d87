package clipboard

import (
	"sync"

	atotto "github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"golang.design/x/clipboard"

	"github.com/malonaz/gemchat/internal/debug"
)

// Writer copies text to a clipboard.
type Writer interface {
	Write(text string) error
}

// System is the clipboard of the machine. It uses the native clipboard and
// falls back to the external clipboard tools when it cannot initialise.
type System struct {
	once     sync.Once
	nativeOK bool
	init     func() error
	native   func(text string)
	fallback func(text string) error
}

// NewSystem returns the system clipboard.
func NewSystem() *System {
	return &System{
		init: clipboard.Init,
		native: func(text string) {
			clipboard.Write(clipboard.FmtText, []byte(text))
		},
		fallback: atotto.WriteAll,
	}
}

// Write copies text to the clipboard.
func (s *System) Write(text string) error {
	s.once.Do(func() {
		if err := s.init(); err != nil {
			debug.GetLogger().Warn("native clipboard unavailable, using fallback", "error", err)
			return
		}
		s.nativeOK = true
	})
	if s.nativeOK {
		s.native(text)
		return nil
	}
	if err := s.fallback(text); err != nil {
		return errors.Wrap(err, "writing to clipboard")
	}
	return nil
}

// Memory is an in-memory clipboard.
type Memory struct {
	mu     sync.Mutex
	writes []string
}

// Write implements Writer.
func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, text)
	return nil
}

// Last returns the last text written, if any.
func (m *Memory) Last() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return "", false
	}
	return m.writes[len(m.writes)-1], true
}
