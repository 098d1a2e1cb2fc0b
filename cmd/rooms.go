package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// RoomsList prints the available peer support rooms.
func (r *Runner) RoomsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	rooms, err := r.svcs.Support.Rooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch support rooms: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(rooms, true)
	}

	for _, room := range rooms {
		r.writePlain("%s  %s\n", room.ID, room.Name)
		if room.Description != "" {
			r.writePlain("  %s\n", room.Description)
		}
	}

	return nil
}

// RoomsMessages prints a room's recent message history.
func (r *Runner) RoomsMessages(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	roomID := cmd.StringArg("room")
	limit := cmd.Int("limit")
	skip := cmd.Int("skip")

	messages, err := r.svcs.Support.Messages(ctx, roomID, skip, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch room messages: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(messages, true)
	}

	if len(messages) == 0 {
		r.writePlain("No messages in this room yet.\n")
		return nil
	}

	for _, msg := range messages {
		r.writePlain("[%s] %s: %s\n", msg.CreatedAt.Format("15:04"), msg.Username, msg.Message)
	}

	return nil
}

// roomsCommand handles peer support room operations
func roomsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rooms",
		Usage: "Browse peer support rooms",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the available rooms",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.RoomsList,
			},
			{
				Name:  "messages",
				Usage: "Show a room's recent message history",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "room",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of messages to return",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "skip",
						Usage: "Number of messages to skip",
						Value: 0,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RoomsMessages,
			},
		},
	}
}
