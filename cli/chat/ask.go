package chat

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malonaz/gemchat/internal/cli"
	"github.com/malonaz/gemchat/internal/clipboard"
	"github.com/malonaz/gemchat/internal/configuration"
	"github.com/malonaz/gemchat/internal/gemini"
	"github.com/malonaz/gemchat/internal/markdown"
	"github.com/malonaz/gemchat/internal/reveal"
)

// NewAskCmd instantiates and returns the ask command: one prompt, one reply,
// revealed on stdout.
func NewAskCmd(config *configuration.Config) *cobra.Command {
	var opts *Opts
	var copyCode bool
	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Ask Gemini a single question",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(ctx, config, opts, cli.Width())
			cobra.CheckErr(err)

			prompt := strings.Join(args, " ")
			interactive := prompt == ""
			if interactive {
				prompt, err = cli.PromptUser()
				cobra.CheckErr(err)
			}

			cli.Title("gemchat │ %s", opts.Model)
			reply, err := ask(ctx, rt.completer, rt.animator, rt.renderer, config, prompt)
			if err != nil {
				return err
			}

			code := markdown.CodeSegments(reply)
			if len(code) == 0 {
				return nil
			}
			if copyCode || (interactive && cli.QueryUser("Copy the last code block to the clipboard?")) {
				if err := clipboard.NewSystem().Write(code[len(code)-1].Content); err != nil {
					cli.Error("Could not copy: %v", err)
				}
			}
			return nil
		},
	}
	opts = GetOpts(cmd, config)
	cmd.Flags().BoolVar(&copyCode, "copy", false, "Copy the last code block of the reply to the clipboard")
	return cmd
}

// ask prints prompt, then requests a reply and reveals it line by line. Code
// blocks of the reply are drawn again with the renderer once it is complete.
func ask(
	ctx context.Context,
	completer gemini.Completer,
	animator *reveal.Animator,
	renderer *markdown.Renderer,
	config *configuration.Config,
	prompt string,
) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", nil
	}
	cli.Name(config.UserName)
	cli.UserInput(prompt)
	cli.Separator()

	reply := gemini.CompleteOrFallback(ctx, completer, prompt, gemini.FallbackReply)

	cli.Name(config.AssistantName)
	printed := 0
	err := animator.Run(ctx, reply, func(partial string) {
		cli.AIOutput(partial[printed:])
		printed = len(partial)
	})
	if err != nil {
		return "", err
	}

	if code := markdown.CodeSegments(reply); len(code) > 0 {
		cli.Separator()
		cli.AIOutput(renderer.RenderSegments(code, markdown.DefaultRenderOptions()) + "\n")
	}
	return reply, nil
}
