package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solace-cli/solace/internal/shared"
)

// Lines shown in place of a companion reply when a send cannot reach the
// backend. Support has to stay visible even while the service is down.
var crisisLines = []string{
	"If you're in crisis, please reach out:",
	"National Suicide Prevention Lifeline: 988",
	"Crisis Text Line: Text HOME to 741741",
}

type chatTurn struct {
	message  string
	response string
	failed   bool
}

type chatSentMsg struct {
	message string
	reply   string
}

type chatFailedMsg struct {
	message     string
	unreachable bool
	err         error
}

func newChatInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "Say what's on your mind..."
	input.CharLimit = 500
	return input
}

func (m Model) sendChat(message string) tea.Cmd {
	return func() tea.Msg {
		exchange, err := m.svcs.Chat.Send(m.ctx, message)
		if err != nil {
			return chatFailedMsg{
				message:     message,
				unreachable: errors.Is(err, shared.ErrUnreachable),
				err:         err,
			}
		}

		return chatSentMsg{message: message, reply: exchange.Response}
	}
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Plain letters belong to the input here, so only ctrl+c quits.
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.view = RoomListView
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		message := strings.TrimSpace(m.input.Value())
		if message == "" || m.sending {
			return m, nil
		}
		m.sending = true
		m.input.Reset()
		return m, m.sendChat(message)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) renderChat() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Companion Chat"))
	b.WriteString("\n\n")

	for _, turn := range m.transcript {
		b.WriteString(styles.ok.Render("you: ") + turn.message + "\n")
		if turn.failed {
			b.WriteString(styles.err.Render("not delivered") + "\n")
			for _, line := range crisisLines {
				b.WriteString(styles.warn.Render(line) + "\n")
			}
		} else {
			b.WriteString("companion: " + turn.response + "\n")
		}
		b.WriteString("\n")
	}

	if m.sending {
		b.WriteString(styles.help.Render("sending...") + "\n")
	}

	b.WriteString(fmt.Sprintf("\n%s\n", m.input.View()))

	return b.String()
}
