package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rvaidya/meetingmate/internal/tools"
)

func newGenerateDocsCmd() *cobra.Command {
	var (
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate scheduling tool documentation",
		Long: `Generate markdown documentation for the scheduling tools exposed to the
model and over MCP. This command introspects the tool definitions and
outputs their documentation in markdown format, ensuring the
documentation is always accurate and in sync with the actual tool
implementations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(outputFile string) error {
	// No credentials are needed to describe the tools; the handlers are
	// never invoked here.
	scheduler := tools.NewScheduler(nil, nil, time.UTC, nil)

	markdown := generateToolsMarkdown(scheduler.Tools())

	// Write to output
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
	} else {
		fmt.Print(markdown)
	}

	return nil
}

func generateToolsMarkdown(toolset []tools.Tool) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Scheduling Tools Reference\n\n")
	sb.WriteString("This document provides a complete reference of the tools the assistant uses to schedule meetings. The same tools are exposed when running meetingmate as an MCP server.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool definitions.\n\n")

	// Table of contents
	sb.WriteString("## Table of Contents\n\n")
	for _, t := range toolset {
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", t.Name, strings.ToLower(t.Name)))
	}
	sb.WriteString("\n")

	// Result conventions
	sb.WriteString("## Result Conventions\n\n")
	sb.WriteString("Every tool returns a human-readable string rather than structured data:\n\n")
	sb.WriteString(fmt.Sprintf("- Results starting with `%s` indicate a failure (bad input, provider error)\n", tools.FailureMarker))
	sb.WriteString(fmt.Sprintf("- Results starting with `%s` indicate a scheduling conflict\n", tools.ConflictMarker))
	sb.WriteString("- Any other result is a successful answer\n\n")

	for _, t := range toolset {
		sb.WriteString(generateToolMarkdown(t))
		sb.WriteString("\n")
	}

	return sb.String()
}

func generateToolMarkdown(tool tools.Tool) string {
	var sb strings.Builder

	// Tool name
	sb.WriteString(fmt.Sprintf("### %s\n\n", tool.Name))

	// Description
	if tool.Description != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", tool.Description))
	}

	if len(tool.Params) > 0 {
		sb.WriteString("**Arguments:**\n")

		for _, p := range tool.Params {
			requiredStr := "optional"
			if p.Required {
				requiredStr = "required"
			}

			sb.WriteString(fmt.Sprintf("- `%s` (%s): ", p.Name, requiredStr))
			if p.Description != "" {
				sb.WriteString(p.Description)
			} else {
				sb.WriteString(fmt.Sprintf("%s parameter", p.Type))
			}
			if len(p.Enum) > 0 {
				sb.WriteString(fmt.Sprintf(" One of: `%s`.", strings.Join(p.Enum, "`, `")))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
