package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the meetingmate application
var rootCmd = &cobra.Command{
	Use:   "meetingmate",
	Short: "Conversational scheduling assistant for Google Calendar",
	Long: `meetingmate is a conversational scheduling assistant. It interprets
natural-language requests ("book a demo tomorrow at 5pm", "am I free
today?"), checks availability against Google Calendar, and books
meetings on your behalf.

It can run as:
  - An HTTP chat service (serve, the default)
  - An MCP (Model Context Protocol) server exposing the scheduling tools
  - An interactive terminal chat (chat)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "meetingmate version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
