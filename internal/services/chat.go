// AI companion chat against the chat router
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// ChatService talks to the AI grief companion. The message travels as a
// query parameter, matching the backend's primitive-parameter encoding.
type ChatService struct {
	api *client.Client
}

// Send delivers a message to the companion and returns the exchange.
func (s *ChatService) Send(ctx context.Context, message string) (*models.ChatExchange, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message is empty", shared.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("message", message)

	var exchange models.ChatExchange

	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/chat/message", Query: query}, &exchange); err != nil {
		return nil, err
	}

	return &exchange, nil
}

// History returns stored conversation turns, newest first.
func (s *ChatService) History(ctx context.Context, skip, limit int) ([]models.ChatHistoryItem, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var items []models.ChatHistoryItem

	if err := s.api.Get(ctx, "/chat/history", query, &items); err != nil {
		return nil, err
	}

	return items, nil
}
