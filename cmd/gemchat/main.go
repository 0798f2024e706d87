package main

import (
	"github.com/spf13/cobra"

	"github.com/malonaz/gemchat/cli/chat"
	"github.com/malonaz/gemchat/internal/configuration"
	"github.com/malonaz/gemchat/internal/debug"
)

var rootCmd = &cobra.Command{
	Use:     "gemchat",
	Short:   "A terminal chat client for Gemini",
	Version: "1.0",
}

func main() {
	config, err := configuration.Parse(configuration.DefaultPath)
	cobra.CheckErr(err)
	debug.Configure(config.LogFile, config.LogLevel)
	debug.GetLogger().Info("starting", "model", config.Model)

	rootCmd.AddCommand(chat.NewCmd(config))
	rootCmd.AddCommand(chat.NewAskCmd(config))
	cobra.CheckErr(rootCmd.Execute())
}
