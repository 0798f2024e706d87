package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	previous := Output
	buffer := &bytes.Buffer{}
	Output = buffer
	t.Cleanup(func() {
		Output = previous
		color.NoColor = noColor
	})
	return buffer
}

func TestTitleFillsWidth(t *testing.T) {
	buffer := captureOutput(t)
	Title("gemchat %s", "abc")
	line := strings.TrimSuffix(buffer.String(), "\n")
	assert.Contains(t, line, "gemchat abc")
	assert.Equal(t, Width(), len(line))
}

func TestPrinters(t *testing.T) {
	buffer := captureOutput(t)
	Name("simo")
	UserInput("hello")
	AIOutput("hi\n")
	Error("failed: %d", 3)
	Separator()
	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	assert.Equal(t, []string{"simo", "hello", "hi", "failed: 3", strings.Repeat("-", Width())}, lines)
}
