package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/solace-cli/solace/internal/models"
)

// roomItem adapts a [models.SupportRoom] to the bubbles list component.
type roomItem struct {
	room models.SupportRoom
}

func (i roomItem) Title() string       { return i.room.Name }
func (i roomItem) Description() string { return i.room.Description }
func (i roomItem) FilterValue() string { return i.room.Name }

// messageItem adapts a [models.SupportMessage] to the bubbles list component.
type messageItem struct {
	msg models.SupportMessage
}

func (i messageItem) Title() string {
	return fmt.Sprintf("%s · %s", i.msg.Username, i.msg.CreatedAt.Format("Jan 2 15:04"))
}

func (i messageItem) Description() string { return i.msg.Message }
func (i messageItem) FilterValue() string { return i.msg.Message }

func roomItems(rooms []models.SupportRoom) []list.Item {
	items := make([]list.Item, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, roomItem{room: r})
	}

	return items
}

func messageItems(msgs []models.SupportMessage) []list.Item {
	items := make([]list.Item, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, messageItem{msg: m})
	}

	return items
}

func newList(title string, width, height int) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return l
}
