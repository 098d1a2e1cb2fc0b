// Peer support rooms against the support router
package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
)

// SupportService reads peer-support rooms and their message history. Live
// room participation runs over the backend's WebSocket endpoint and is out
// of scope here; the TUI polls history instead.
type SupportService struct {
	api *client.Client
}

// Rooms lists the available support rooms. The catalog is fixed server
// side and requires no credential.
func (s *SupportService) Rooms(ctx context.Context) ([]models.SupportRoom, error) {
	var rooms []models.SupportRoom

	if err := s.api.Get(ctx, "/support/rooms", nil, &rooms); err != nil {
		return nil, err
	}

	return rooms, nil
}

// Messages returns a room's recent history, newest first.
func (s *SupportService) Messages(ctx context.Context, roomID string, skip, limit int) ([]models.SupportMessage, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var messages []models.SupportMessage

	if err := s.api.Get(ctx, "/support/rooms/"+url.PathEscape(roomID)+"/messages", query, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
