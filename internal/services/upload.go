// File uploads against the upload router
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/shared"
)

// UploadService stores letters, recordings, and documents with the backend.
type UploadService struct {
	api *client.Client
}

// upload categories accepted by the backend
var uploadTypes = map[string]bool{"audio": true, "document": true, "image": true}

// UploadedFile is the result of a file upload.
type UploadedFile struct {
	Filename    string `json:"filename"`
	FilePath    string `json:"file_path"`
	FileType    string `json:"file_type"`
	Description string `json:"description,omitempty"`
	Size        int64  `json:"size"`
	Message     string `json:"message"`
}

// Upload stores a file under one of the backend's categories: "audio",
// "document", or "image". description is optional.
func (s *UploadService) Upload(ctx context.Context, fileType, description, filename string, content io.Reader) (*UploadedFile, error) {
	if !uploadTypes[fileType] {
		return nil, fmt.Errorf("%w: file type must be audio, document, or image", shared.ErrInvalidInput)
	}

	fields := map[string]string{"file_type": fileType}
	if description != "" {
		fields["description"] = description
	}

	var uploaded UploadedFile

	req := client.Request{
		Method: http.MethodPost,
		Path:   "/upload/file",
		Multipart: &client.MultipartPayload{
			Field:    "file",
			Filename: filename,
			Reader:   content,
			Fields:   fields,
		},
	}
	if err := s.api.Do(ctx, req, &uploaded); err != nil {
		return nil, err
	}

	return &uploaded, nil
}

// List asks the backend for uploaded files. The endpoint currently
// returns only a status message, so that is all we can surface.
func (s *UploadService) List(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := s.api.Get(ctx, "/upload/files", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Delete removes an uploaded file by its stored filename.
func (s *UploadService) Delete(ctx context.Context, filename string) error {
	return s.api.Delete(ctx, "/upload/file/"+url.PathEscape(filename), nil)
}
