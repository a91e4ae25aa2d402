package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-writeups/internal/service"
)

const homeTagline = "Security research writeups: HackTheBox, TryHackMe and custom labs."

type homeAction int

const (
	homeBrowse homeAction = iota
	homeSession
)

// HomeModel is the landing page.
type HomeModel struct {
	idx     int
	session service.SessionState
	status  string
}

func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

func (m *HomeModel) Init() tea.Cmd {
	return nil
}

func (m *HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionChangedMsg:
		m.session = msg.State
		m.status = ""
		return m, nil
	case authNoticeMsg:
		m.status = msg.text
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items())-1 {
			m.idx++
		}
	case "enter":
		if homeAction(m.idx) == homeBrowse {
			return m, navigateCmd(PageWriteups)
		}
		if m.session.SignedIn() {
			return m, func() tea.Msg { return requestSignOutMsg{} }
		}
		return m, navigateCmd(PageAuth)
	}

	return m, nil
}

func (m *HomeModel) items() []string {
	sessionItem := "Sign in or create an account"
	if m.session.SignedIn() {
		sessionItem = "Sign out"
	}
	return []string{"Browse writeups", sessionItem}
}

func (m *HomeModel) View() string {
	var b strings.Builder

	b.WriteString(homeTagline)
	b.WriteString("\n\n")

	if m.session.SignedIn() {
		b.WriteString(fmt.Sprintf("Signed in as %s\n\n", m.session.User.DisplayName()))
	}

	if m.status != "" {
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n\n")
	}

	items := m.items()
	actionColWidth := 0
	for _, item := range items {
		if w := lipgloss.Width(item); w > actionColWidth {
			actionColWidth = w
		}
	}

	for i, item := range items {
		cursor := " "
		line := fmt.Sprintf("%-*s", actionColWidth, item)
		if i == m.idx {
			cursor = ">"
			line = selectedStyle.Render(line)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, line))
	}

	return renderPage("WRITEUPS PORTFOLIO", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate │ v: version │ q: quit")
}
