package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// VoiceClone creates a synthesis voice from an audio sample.
func (r *Runner) VoiceClone(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	name := cmd.String("name")
	audioPath := cmd.String("file")

	file, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	r.logger.Info("cloning voice", "name", name, "file", audioPath)

	voice, err := r.svcs.Voice.Clone(ctx, name, filepath.Base(audioPath), file)
	if err != nil {
		return fmt.Errorf("voice clone failed: %w", err)
	}

	r.writePlain("✓ Voice cloned: %s (id %s)\n", voice.VoiceName, voice.VoiceID)
	return nil
}

// VoiceSay synthesizes speech from text.
func (r *Runner) VoiceSay(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	text := cmd.StringArg("text")
	voiceID := cmd.String("voice")

	r.logger.Info("synthesizing speech", "voice", voiceID, "length", len(text))

	synth, err := r.svcs.Voice.Synthesize(ctx, text, voiceID)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	r.writePlain("✓ Audio generated: %s\n", synth.Filename)
	if synth.AudioFile != "" {
		r.writePlain("Stored at: %s\n", synth.AudioFile)
	}
	return nil
}

// VoiceList prints the available synthesis voices.
func (r *Runner) VoiceList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	catalog, err := r.svcs.Voice.Voices(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch voices: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(catalog, true)
	}

	for _, voice := range catalog.Voices {
		r.writePlain("%s  %s", voice.VoiceID, voice.Name)
		if voice.Category != "" {
			r.writePlain("  (%s)", voice.Category)
		}
		r.writePlain("\n")
	}

	return nil
}

// VoiceStyle synthesizes text in the style of a reference recording.
func (r *Runner) VoiceStyle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	text := cmd.StringArg("text")
	referencePath := cmd.String("reference")

	file, err := os.Open(referencePath)
	if err != nil {
		return fmt.Errorf("failed to open reference audio: %w", err)
	}
	defer file.Close()

	r.logger.Info("style matching", "reference", referencePath, "length", len(text))

	synth, err := r.svcs.Voice.StyleMatch(ctx, text, filepath.Base(referencePath), file)
	if err != nil {
		return fmt.Errorf("style match failed: %w", err)
	}

	r.writePlain("✓ Audio generated: %s\n", synth.Filename)
	return nil
}

// voiceCommand handles voice cloning and synthesis operations
func voiceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "voice",
		Usage: "Voice cloning and speech synthesis",
		Commands: []*cli.Command{
			{
				Name:  "clone",
				Usage: "Create a synthesis voice from an audio sample",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Name for the cloned voice",
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the audio sample",
						Required: true,
					},
				},
				Action: r.VoiceClone,
			},
			{
				Name:  "say",
				Usage: "Synthesize speech from text",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "text",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "voice",
						Usage: "Voice ID to use",
					},
				},
				Action: r.VoiceSay,
			},
			{
				Name:   "list",
				Usage:  "List available synthesis voices",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.VoiceList,
			},
			{
				Name:  "style",
				Usage: "Synthesize text in the style of a reference recording",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "text",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "reference",
						Usage:    "Path to the reference audio",
						Required: true,
					},
				},
				Action: r.VoiceStyle,
			},
		},
	}
}
