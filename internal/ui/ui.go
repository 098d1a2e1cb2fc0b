package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/services"
)

// View identifies the active screen.
type View int

const (
	RoomListView View = iota
	MessageListView
	ChatView
	HotlineView
)

const (
	healthInterval  = 15 * time.Second
	messagePageSize = 50
)

type (
	roomsFetchedMsg    struct{ rooms []models.SupportRoom }
	messagesFetchedMsg struct {
		roomID   string
		messages []models.SupportMessage
	}
	hotlinesFetchedMsg struct{ hotlines []models.Hotline }
	healthCheckedMsg   struct{ healthy bool }
	healthTickMsg      struct{}
	errMsg             struct{ err error }
)

// Model is the root bubbletea model for the support-room browser.
type Model struct {
	ctx  context.Context
	svcs *services.Services
	view View

	rooms       list.Model
	messages    list.Model
	currentRoom models.SupportRoom
	hotlines    []models.Hotline

	input      textinput.Model
	transcript []chatTurn
	sending    bool

	connectivity client.Connectivity
	keys         keyMap
	help         help.Model
	width        int
	height       int
	err          error
}

func New(ctx context.Context, svcs *services.Services) Model {
	return Model{
		ctx:          ctx,
		svcs:         svcs,
		view:         RoomListView,
		rooms:        newList("Support Rooms", 0, 0),
		messages:     newList("Messages", 0, 0),
		input:        newChatInput(),
		connectivity: svcs.API.Status(),
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchRooms(), m.fetchHotlines(), m.checkHealth())
}

func (m Model) fetchRooms() tea.Cmd {
	return func() tea.Msg {
		rooms, err := m.svcs.Support.Rooms(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}

		return roomsFetchedMsg{rooms: rooms}
	}
}

func (m Model) fetchMessages(roomID string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := m.svcs.Support.Messages(m.ctx, roomID, 0, messagePageSize)
		if err != nil {
			return errMsg{err: err}
		}

		return messagesFetchedMsg{roomID: roomID, messages: msgs}
	}
}

func (m Model) fetchHotlines() tea.Cmd {
	return func() tea.Msg {
		lines, err := m.svcs.Resources.Hotlines(m.ctx)
		if err != nil {
			// Hotlines are a fallback catalog; failure to prefetch is not fatal.
			return errMsg{err: err}
		}

		return hotlinesFetchedMsg{hotlines: lines}
	}
}

func (m Model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		return healthCheckedMsg{healthy: m.svcs.API.Health(m.ctx)}
	}
}

func scheduleHealthTick() tea.Cmd {
	return tea.Tick(healthInterval, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listHeight := msg.Height - 4
		m.rooms.SetSize(msg.Width, listHeight)
		m.messages.SetSize(msg.Width, listHeight)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case roomsFetchedMsg:
		m.err = nil
		return m, m.rooms.SetItems(roomItems(msg.rooms))
	case messagesFetchedMsg:
		m.err = nil
		m.view = MessageListView
		m.messages.Title = m.currentRoom.Name
		return m, m.messages.SetItems(messageItems(msg.messages))
	case hotlinesFetchedMsg:
		m.hotlines = msg.hotlines
		return m, nil
	case chatSentMsg:
		m.sending = false
		m.err = nil
		m.transcript = append(m.transcript, chatTurn{message: msg.message, response: msg.reply})
		return m, nil
	case chatFailedMsg:
		m.sending = false
		m.connectivity = m.svcs.API.Status()
		if msg.unreachable {
			m.transcript = append(m.transcript, chatTurn{message: msg.message, failed: true})
			return m, nil
		}
		m.err = msg.err
		return m, nil
	case healthCheckedMsg:
		m.connectivity = m.svcs.API.Status()
		return m, scheduleHealthTick()
	case healthTickMsg:
		return m, m.checkHealth()
	case errMsg:
		m.err = msg.err
		m.connectivity = m.svcs.API.Status()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.view == ChatView {
		return m.updateChat(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Chat):
		m.view = ChatView
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Hotlines):
		m.view = HotlineView
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.view != RoomListView {
			m.view = RoomListView
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		switch m.view {
		case RoomListView:
			return m, m.fetchRooms()
		case MessageListView:
			return m, m.fetchMessages(m.currentRoom.ID)
		case HotlineView:
			return m, m.fetchHotlines()
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.view == RoomListView {
			if item, ok := m.rooms.SelectedItem().(roomItem); ok {
				m.currentRoom = item.room
				return m, m.fetchMessages(item.room.ID)
			}
		}
		return m, nil
	}

	switch m.view {
	case RoomListView:
		m.rooms, cmd = m.rooms.Update(msg)
	case MessageListView:
		m.messages, cmd = m.messages.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	var body string

	switch m.view {
	case RoomListView:
		body = m.rooms.View()
	case MessageListView:
		body = m.messages.View()
	case ChatView:
		body = m.renderChat()
	case HotlineView:
		body = m.renderHotlines()
	}

	if m.connectivity == client.ConnectivityDisconnected && m.view != HotlineView && m.view != ChatView {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderHotlineFallback())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar(), m.help.View(m.keys))
}

func (m Model) statusBar() string {
	var status string
	switch m.connectivity {
	case client.ConnectivityConnected:
		status = styles.ok.Render("● connected")
	case client.ConnectivityDisconnected:
		status = styles.err.Render("● disconnected")
	default:
		status = styles.help.Render("● checking...")
	}

	if m.err != nil {
		return status + "  " + styles.err.Render(m.err.Error())
	}

	return status
}

func (m Model) renderHotlines() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Crisis Hotlines"))
	b.WriteString("\n\n")

	if len(m.hotlines) == 0 {
		b.WriteString(styles.help.Render("No hotlines loaded. Press r to refresh."))
		return b.String()
	}

	for _, h := range m.hotlines {
		b.WriteString(fmt.Sprintf("%s  %s\n", styles.warn.Render(h.Name), styles.ok.Render(h.Phone)))
		if h.Description != "" {
			b.WriteString("  " + h.Description + "\n")
		}
		if h.Availability != "" {
			b.WriteString("  " + styles.help.Render(h.Availability) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderHotlineFallback() string {
	if len(m.hotlines) == 0 {
		return styles.warn.Render("Backend unreachable. Press h for crisis hotlines.")
	}

	first := m.hotlines[0]

	return styles.warn.Render(fmt.Sprintf("Backend unreachable. If you need support now: %s %s (press h for more)", first.Name, first.Phone))
}
