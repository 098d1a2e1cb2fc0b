package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// UploadFile stores a file with the backend.
func (r *Runner) UploadFile(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	path := cmd.StringArg("path")
	fileType := cmd.String("type")
	description := cmd.String("description")

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	r.logger.Info("uploading file", "path", path, "type", fileType)

	uploaded, err := r.svcs.Uploads.Upload(ctx, fileType, description, filepath.Base(path), file)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	r.writePlain("✓ Uploaded %s (%d bytes)\n", uploaded.Filename, uploaded.Size)
	return nil
}

// UploadList shows what the backend reports about stored files.
func (r *Runner) UploadList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	message, err := r.svcs.Uploads.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	r.writePlainln("%s", message)
	return nil
}

// UploadDelete removes a previously uploaded file.
func (r *Runner) UploadDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	filename := cmd.StringArg("filename")

	if err := r.svcs.Uploads.Delete(ctx, filename); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	r.writePlain("✓ Deleted %s\n", filename)
	return nil
}

// uploadCommand handles file upload operations
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Store and manage files with the backend",
		Commands: []*cli.Command{
			{
				Name:  "file",
				Usage: "Upload a file",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Usage:    "File category: audio, document, or image",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Optional description",
					},
				},
				Action: r.UploadFile,
			},
			{
				Name:   "files",
				Usage:  "List uploaded files",
				Action: r.UploadList,
			},
			{
				Name:  "delete",
				Usage: "Delete an uploaded file",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "filename",
					},
				},
				Action: r.UploadDelete,
			},
		},
	}
}
