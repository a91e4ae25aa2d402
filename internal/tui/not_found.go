package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-writeups/internal/app"
)

// NotFoundModel is the catch-all page for unknown destinations and slugs
// that match no writeup.
type NotFoundModel struct{}

func NewNotFoundModel() *NotFoundModel {
	return &NotFoundModel{}
}

func (m *NotFoundModel) Init() tea.Cmd {
	return nil
}

func (m *NotFoundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, navigateCmd(PageHome)
		case "esc":
			return m, navigateCmd(PageWriteups)
		}
	}
	return m, nil
}

func (m *NotFoundModel) View() string {
	return renderPage("404", app.MsgWriteupNotFound+"\n\nThe page you are looking for does not exist.", "enter: home │ esc: writeups")
}
