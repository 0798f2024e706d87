package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malonaz/gemchat/cli/chat/session"
	"github.com/malonaz/gemchat/cli/chat/styles"
	"github.com/malonaz/gemchat/internal/clipboard"
	"github.com/malonaz/gemchat/internal/configuration"
	"github.com/malonaz/gemchat/internal/gemini"
	"github.com/malonaz/gemchat/internal/markdown"
	"github.com/malonaz/gemchat/internal/reveal"
	"github.com/malonaz/gemchat/internal/types"
)

// Models offered for completion of the --model flag.
var modelNames = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
	"gemini-1.5-pro",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
}

// Opts shared by the commands talking to the model.
type Opts struct {
	Model       string
	RevealDelay time.Duration
	CodeStyle   string
}

// GetOpts registers the shared flags on the given command, defaulting to the
// configuration.
func GetOpts(cmd *cobra.Command, config *configuration.Config) *Opts {
	opts := &Opts{}
	cmd.Flags().StringVarP(&opts.Model, "model", "m", config.Model, "Gemini model to use")
	cmd.Flags().DurationVar(&opts.RevealDelay, "reveal-delay", config.RevealDelay(), "Delay between two revealed lines")
	cmd.Flags().StringVar(&opts.CodeStyle, "code-style", config.CodeStyle, "How code blocks are drawn (decorative, syntax)")
	cmd.RegisterFlagCompletionFunc("model", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterModels(modelNames, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	return opts
}

// runtime holds what a command needs to request and display replies.
type runtime struct {
	completer *gemini.Client
	animator  *reveal.Animator
	renderer  *markdown.Renderer
}

func newRuntime(ctx context.Context, config *configuration.Config, opts *Opts, width int) (*runtime, error) {
	if opts.RevealDelay < 0 {
		return nil, errors.Errorf("reveal delay must be >= 0, got %s", opts.RevealDelay)
	}
	codeStyle, err := markdown.ParseCodeStyle(opts.CodeStyle)
	if err != nil {
		return nil, err
	}

	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:  config.GeminiAPIKey,
		BaseURL: config.GeminiAPIHost,
		Model:   opts.Model,
		Timeout: config.Timeout(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating gemini client")
	}
	renderer, err := markdown.NewRenderer(codeStyle, width)
	if err != nil {
		return nil, errors.Wrap(err, "creating renderer")
	}
	return &runtime{
		completer: client,
		animator:  reveal.New(opts.RevealDelay),
		renderer:  renderer,
	}, nil
}

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config) *cobra.Command {
	var opts *Opts
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with Gemini in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(ctx, config, opts, styles.DefaultTextareaWidth)
			cobra.CheckErr(err)

			chatOpts := types.ChatOptions{
				SessionID:     uuid.New().String()[:8],
				Model:         opts.Model,
				UserName:      config.UserName,
				AssistantName: config.AssistantName,
			}

			// Create the model
			m := session.New(ctx, chatOpts, session.Dependencies{
				Completer:       rt.completer,
				Animator:        rt.animator,
				Clipboard:       clipboard.NewSystem(),
				Renderer:        rt.renderer,
				CopiedIndicator: config.CopiedIndicator(),
			})
			defer m.Close()

			// Create the Bubble Tea program
			p := tea.NewProgram(
				m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithFilter(m.Filter()),
				tea.WithMouseCellMotion(),
			)

			// Set the program reference for async message sending
			m.SetProgram(p)

			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("error running chat: %w", err)
			}
			return nil
		},
	}
	opts = GetOpts(cmd, config)
	return cmd
}

func filterModels(models []string, prefix string) []string {
	if prefix == "" {
		return models
	}

	var matches []string
	lowerPrefix := strings.ToLower(prefix)

	for _, model := range models {
		if strings.Contains(strings.ToLower(model), lowerPrefix) {
			matches = append(matches, model)
		}
	}

	return matches
}
