package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ResourcesBooks prints the recommended book catalog.
func (r *Runner) ResourcesBooks(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	books, err := r.svcs.Resources.Books(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch books: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(books, true)
	}

	for _, book := range books {
		r.writePlain("%s by %s (%.1f★)\n", book.Title, book.Author, book.Rating)
		if book.Description != "" {
			r.writePlain("  %s\n", book.Description)
		}
	}

	return nil
}

// ResourcesArticles prints the recommended article catalog.
func (r *Runner) ResourcesArticles(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	articles, err := r.svcs.Resources.Articles(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch articles: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(articles, true)
	}

	for _, article := range articles {
		r.writePlain("%s (%s)\n", article.Title, article.Source)
		r.writePlain("  %s\n", article.URL)
	}

	return nil
}

// ResourcesVideos prints the recommended video catalog.
func (r *Runner) ResourcesVideos(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	videos, err := r.svcs.Resources.Videos(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch videos: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}

	for _, video := range videos {
		r.writePlain("%s (%s", video.Title, video.Creator)
		if video.Duration != "" {
			r.writePlain(", %s", video.Duration)
		}
		r.writePlain(")\n")
		r.writePlain("  %s\n", video.URL)
	}

	return nil
}

// ResourcesHotlines prints the crisis hotline catalog.
func (r *Runner) ResourcesHotlines(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	hotlines, err := r.svcs.Resources.Hotlines(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch hotlines: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(hotlines, true)
	}

	r.writePlainHeader("Crisis Hotlines")
	for _, hotline := range hotlines {
		r.writePlain("%s  %s\n", hotline.Name, hotline.Phone)
		if hotline.Description != "" {
			r.writePlain("  %s\n", hotline.Description)
		}
		if hotline.Availability != "" {
			r.writePlain("  %s\n", hotline.Availability)
		}
	}

	return nil
}

// resourcesCommand handles resource hub operations
func resourcesCommand(r *Runner) *cli.Command {
	jsonFlag := func() []cli.Flag {
		return []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}}
	}

	return &cli.Command{
		Name:    "resources",
		Aliases: []string{"res"},
		Usage:   "Browse the grief support resource hub",
		Commands: []*cli.Command{
			{
				Name:   "books",
				Usage:  "Recommended books",
				Flags:  jsonFlag(),
				Action: r.ResourcesBooks,
			},
			{
				Name:   "articles",
				Usage:  "Recommended articles",
				Flags:  jsonFlag(),
				Action: r.ResourcesArticles,
			},
			{
				Name:   "videos",
				Usage:  "Recommended videos",
				Flags:  jsonFlag(),
				Action: r.ResourcesVideos,
			},
			{
				Name:   "hotlines",
				Usage:  "Crisis hotlines",
				Flags:  jsonFlag(),
				Action: r.ResourcesHotlines,
			},
		},
	}
}
