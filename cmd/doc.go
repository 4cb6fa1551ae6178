// Package cmd implements the command-line interface for meetingmate.
//
// This package provides the following commands:
//   - serve: Start the chat server (http transport) or MCP server (stdio transport)
//   - chat: Talk to the scheduling assistant interactively from the terminal
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for the scheduling tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
