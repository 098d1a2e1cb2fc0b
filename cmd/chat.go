package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/solace-cli/solace/internal/shared"
	"github.com/urfave/cli/v3"
)

// Shown when a message cannot be delivered, so support is reachable even
// while the backend is not.
const crisisFallback = `Unable to reach the support service right now.
If you need to talk to someone immediately:
  • National Suicide Prevention Lifeline: 988
  • Crisis Text Line: Text HOME to 741741`

// ChatSend sends one message to the support chatbot and prints the reply.
func (r *Runner) ChatSend(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	message := strings.TrimSpace(cmd.StringArg("message"))

	r.logger.Info("sending chat message", "length", len(message))

	exchange, err := r.svcs.Chat.Send(ctx, message)
	if errors.Is(err, shared.ErrUnreachable) {
		// The message cannot reach the backend; always surface crisis
		// resources rather than a bare connection error.
		r.writePlain("%s\n", crisisFallback)
		return fmt.Errorf("chat request failed: %w", err)
	}
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(exchange, true)
	}

	r.writePlain("%s\n", exchange.Response)
	return nil
}

// ChatHistory prints past conversation turns.
func (r *Runner) ChatHistory(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	skip := cmd.Int("skip")

	items, err := r.svcs.Chat.History(ctx, skip, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch chat history: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	if len(items) == 0 {
		r.writePlain("No conversation history yet.\n")
		return nil
	}

	for _, item := range items {
		r.writePlain("[%s]\n", item.CreatedAt.Format("2006-01-02 15:04"))
		r.writePlain("you: %s\n", item.Message)
		r.writePlain("solace: %s\n\n", item.Response)
	}

	return nil
}

// chatCommand handles chatbot operations
func chatCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Talk with the support chatbot",
		Commands: []*cli.Command{
			{
				Name:  "send",
				Usage: "Send a message and print the reply",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "message",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ChatSend,
			},
			{
				Name:  "history",
				Usage: "Show past conversation turns",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of turns to return",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "skip",
						Usage: "Number of turns to skip",
						Value: 0,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ChatHistory,
			},
		},
	}
}
