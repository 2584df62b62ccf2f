package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chatModel "github.com/neurox-app/mindcare/backend/internal/model/chat"
	"github.com/neurox-app/mindcare/backend/internal/model/content"
	"github.com/neurox-app/mindcare/backend/internal/service/chat"
)

const (
	defaultWidth         = 80
	defaultHeight        = 24
	inputCharLimit       = 500
	chromeHeightReserved = 6
	minContentHeight     = 5
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type (
	snapshotMsg struct{ snapshot chatModel.Snapshot }
	closedMsg   struct{}
)

// model renders one session. Session state changes arrive through snapshotMsg.
type model struct {
	session *chat.Session
	updates <-chan chatModel.Snapshot
	cancel  func()
	notice  content.Notice

	input       textinput.Model
	contentView viewport.Model

	snapshot chatModel.Snapshot
	width    int
	height   int
}

func newChatModel(session *chat.Session, notice content.Notice) model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultWidth - 3
	input.Prompt = "> "

	updates, cancel := session.Subscribe(4)

	m := model{
		session:     session,
		updates:     updates,
		cancel:      cancel,
		notice:      notice,
		input:       input,
		contentView: viewport.New(defaultWidth, defaultHeight-chromeHeightReserved),
		snapshot:    session.Snapshot(),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.refreshContent()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSnapshot(m.updates))
}

func waitForSnapshot(updates <-chan chatModel.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg{snapshot: snap}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancel()
			return m, tea.Quit
		case tea.KeyEnter:
			if m.submit(m.input.Value()) {
				m.input.Reset()
			}
		case tea.KeyPgUp:
			m.contentView.ViewUp()
		case tea.KeyPgDown:
			m.contentView.ViewDown()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - chromeHeightReserved
		if contentHeight < minContentHeight {
			contentHeight = minContentHeight
		}
		m.contentView.Width = msg.Width
		m.contentView.Height = contentHeight
		m.input.Width = msg.Width - 3
		m.refreshContent()

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.refreshContent()
		cmds = append(cmds, waitForSnapshot(m.updates))

	case closedMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit sends typed text, or a suggested message when the input is /N.
func (m *model) submit(value string) bool {
	if strings.HasPrefix(value, "/") {
		if n, err := strconv.Atoi(strings.TrimSpace(value[1:])); err == nil {
			return m.session.SubmitQuickReply(n - 1)
		}
	}
	return m.session.Submit(value)
}

func (m *model) refreshContent() {
	var sb strings.Builder
	for _, msg := range m.snapshot.Messages {
		if msg.Sender == chatModel.SenderUser {
			sb.WriteString(boldStyle.Render("You"))
		} else {
			sb.WriteString(accentStyle.Render("MindCare"))
		}
		sb.WriteString(dimStyle.Render("  " + msg.Timestamp.Local().Format("15:04")))
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Width(m.width).Render(msg.Text))
		sb.WriteString("\n\n")
	}
	if m.snapshot.Composing {
		sb.WriteString(dimStyle.Render("MindCare is typing..."))
		sb.WriteString("\n")
	}
	m.contentView.SetContent(sb.String())
	m.contentView.GotoBottom()
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("MindCare Chat"))
	sb.WriteString("\n")
	sb.WriteString(m.contentView.View())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(m.quickReplyHint()))
	sb.WriteString("\n")
	sb.WriteString(noticeStyle.Render(m.noticeLine()))
	return sb.String()
}

func (m model) quickReplyHint() string {
	replies := m.session.QuickReplies()
	parts := make([]string, 0, len(replies))
	for i, text := range replies {
		parts = append(parts, "/"+strconv.Itoa(i+1)+" "+text)
	}
	return strings.Join(parts, " · ")
}

func (m model) noticeLine() string {
	if m.notice.Title == "" {
		return ""
	}
	contacts := make([]string, 0, len(m.notice.Resources))
	for _, r := range m.notice.Resources {
		contacts = append(contacts, r.Name+": "+r.Contact)
	}
	return m.notice.Title + ": " + strings.Join(contacts, " | ")
}
