package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rvaidya/meetingmate/internal/config"
	"github.com/rvaidya/meetingmate/internal/instrumentation"
	"github.com/rvaidya/meetingmate/internal/logging"
)

func newChatCmd() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the scheduling assistant from the terminal",
		Long: `Talk to the scheduling assistant directly, without running a server.

With a message argument the assistant answers once and exits:
  meetingmate chat "book a demo tomorrow at 5pm"

Without arguments an interactive session starts. The conversation keeps
its history until you exit, so follow-ups like "make it 6pm instead"
work the same way they do over the HTTP API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runChat(cfg, debugMode, strings.TrimSpace(strings.Join(args, " ")))
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runChat(cfg config.Config, debugMode bool, oneShot string) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.Setup(debugMode)

	// No metrics or audit trail for a local terminal session.
	stack, err := buildAssistant(ctx, cfg, logger, nil, instrumentation.AuditLoggingConfig{})
	if err != nil {
		return err
	}
	defer stack.Close()

	sess := stack.sessions.Get("")

	if oneShot != "" {
		fmt.Println(stack.orch.Run(ctx, sess, oneShot))
		return nil
	}

	fmt.Println("meetingmate: describe what you want to schedule, or type \"exit\" to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		fmt.Println(stack.orch.Run(ctx, sess, line))

		if ctx.Err() != nil {
			break
		}
	}
	return scanner.Err()
}
