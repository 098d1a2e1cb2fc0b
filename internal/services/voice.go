// Voice cloning and speech synthesis against the voice router
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

// VoiceService wraps the backend's voice features: cloning a voice from a
// recording, synthesizing speech, and style matching. The heavy lifting
// happens server side; this client only moves audio and text.
type VoiceService struct {
	api *client.Client
}

// ClonedVoice is the result of a voice cloning request.
type ClonedVoice struct {
	VoiceID   string `json:"voice_id"`
	VoiceName string `json:"voice_name"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

// Synthesis is the result of a speech synthesis request. AudioFile is a
// backend-side path fetchable through the upload router.
type Synthesis struct {
	AudioFile string `json:"audio_file"`
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	VoiceID   string `json:"voice_id"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

// Voice describes one available synthesis voice.
type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// VoiceCatalog is the available-voices payload.
type VoiceCatalog struct {
	Voices []Voice `json:"voices"`
}

// Clone creates a synthesis voice from an audio sample.
func (s *VoiceService) Clone(ctx context.Context, voiceName, filename string, audio io.Reader) (*ClonedVoice, error) {
	query := url.Values{}
	if voiceName != "" {
		query.Set("voice_name", voiceName)
	}

	var cloned ClonedVoice

	req := client.Request{
		Method: http.MethodPost,
		Path:   "/voice/clone",
		Query:  query,
		Multipart: &client.MultipartPayload{
			Field:    "voice_file",
			Filename: filename,
			Reader:   audio,
		},
	}
	if err := s.api.Do(ctx, req, &cloned); err != nil {
		return nil, err
	}

	return &cloned, nil
}

// Synthesize renders text to speech with the given voice. An empty voiceID
// uses the backend default.
func (s *VoiceService) Synthesize(ctx context.Context, text, voiceID string) (*Synthesis, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is empty", shared.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("text", text)
	if voiceID != "" {
		query.Set("voice_id", voiceID)
	}

	var result Synthesis

	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/voice/synthesize", Query: query}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Voices lists the available synthesis voices.
func (s *VoiceService) Voices(ctx context.Context) (*VoiceCatalog, error) {
	var catalog VoiceCatalog

	if err := s.api.Get(ctx, "/voice/voices", nil, &catalog); err != nil {
		return nil, err
	}

	return &catalog, nil
}

// StyleMatch synthesizes text in the style of a reference recording.
func (s *VoiceService) StyleMatch(ctx context.Context, text, filename string, reference io.Reader) (*Synthesis, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is empty", shared.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("text", text)

	var result Synthesis

	req := client.Request{
		Method: http.MethodPost,
		Path:   "/voice/style-match",
		Query:  query,
		Multipart: &client.MultipartPayload{
			Field:    "reference_audio",
			Filename: filename,
			Reader:   reference,
		},
	}
	if err := s.api.Do(ctx, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
