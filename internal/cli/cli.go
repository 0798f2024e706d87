package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/buger/goterm"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	userInputColor = color.New(color.FgWhite)
	nameColor      = color.New(color.FgGreen, color.Bold)
	aiOutputColor  = color.New(color.FgCyan)
	titleColor     = color.New(color.FgMagenta, color.Bold)
	separatorColor = color.New(color.FgHiBlack)
	errorColor     = color.New(color.FgRed)
	promptColor    = color.New(color.FgHiBlue)

	// Output is where everything is printed. Swapped in tests.
	Output io.Writer = os.Stdout
)

// Width of the terminal, with a fallback when it cannot be determined.
func Width() int {
	if width := goterm.Width(); width > 0 {
		return width
	}
	return 80
}

// Separator printed to cli.
func Separator() {
	separatorColor.Fprintln(Output, strings.Repeat("-", Width()))
}

// Title printed to cli.
func Title(text string, args ...any) {
	width := Width()
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := (width - len(title)) / 2
	if leftWidth < 0 {
		leftWidth = 0
	}
	rightWidth := width - len(title) - leftWidth
	if rightWidth < 0 {
		rightWidth = 0
	}
	titleColor.Fprintln(Output, strings.Repeat("-", leftWidth)+title+strings.Repeat("-", rightWidth))
}

// Name printed to cli, as the header of a message.
func Name(name string) {
	nameColor.Fprintln(Output, name)
}

// UserInput printed to cli.
func UserInput(text string) {
	userInputColor.Fprintln(Output, text)
}

// AIOutput printed to cli.
func AIOutput(text string) {
	aiOutputColor.Fprint(Output, text)
}

// Error printed to cli.
func Error(text string, args ...any) {
	errorColor.Fprintf(Output, text+"\n", args...)
}

// PromptUser for input. Ctrl+J finishes a multi-line prompt.
func PromptUser() (string, error) {
	exit := false
	config := &readline.Config{
		Prompt:          promptColor.Sprint("> "),
		InterruptPrompt: "^C",
		FuncFilterInputRune: func(r rune) (rune, bool) {
			if r == '\x0A' { // Ctrl + J
				exit = true
			}
			return r, true
		},
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return "", err
	}
	defer rl.Close()
	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
		if exit {
			break
		}
		rl.SetPrompt("")
	}
	return strings.Join(lines, "\n"), nil
}

// QueryUser a yes/no question.
func QueryUser(question string) bool {
	surveyQuestion := &survey.Confirm{
		Message: question,
	}
	confirm := false
	survey.AskOne(surveyQuestion, &confirm)
	return confirm
}
