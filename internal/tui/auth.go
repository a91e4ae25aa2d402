// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-writeups/internal/app"
	"github.com/MKhiriev/go-writeups/internal/service"
)

type authMode int

const (
	authModeLogin authMode = iota
	authModeRegister
)

const (
	fieldEmail = iota
	fieldPassword
	fieldDisplayName
)

// AuthModel is the sign-in / sign-up screen. It renders the email and
// password inputs, plus a display name input in register mode, and dispatches
// an async submit command. While a submit is pending further submits are
// ignored. A successful sign-in is observed by [RootModel] through the
// session change message, which redirects to the landing page.
type AuthModel struct {
	ctx      context.Context
	sessions service.SessionManager

	mode       authMode
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	notice     string
}

// NewAuthModel creates an [AuthModel] in login mode with the email field
// focused.
func NewAuthModel(ctx context.Context, sessions service.SessionManager) *AuthModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	displayName := textinput.New()
	displayName.Placeholder = "display name (optional)"
	displayName.CharLimit = 64
	displayName.Width = 40

	return &AuthModel{
		ctx:      ctx,
		sessions: sessions,
		inputs:   []textinput.Model{email, password, displayName},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AuthModel) capturesInput() bool {
	return true
}

// Update implements [tea.Model]. Handled messages:
//   - authResultMsg — clears submitting state and shows the error or notice.
//   - esc           — navigates back to the landing page.
//   - ctrl+t        — toggles between login and register.
//   - tab/shift+tab — moves focus between the visible inputs.
//   - enter         — dispatches the async submit command.
//
// All other key events are forwarded to the focused input widget.
func (m *AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = submitErrorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.inputs[fieldPassword].SetValue("")
		if msg.mode == authModeRegister && !m.sessions.Snapshot().SignedIn() {
			m.notice = app.MsgConfirmationPending
			m.setMode(authModeLogin)
		}
		return m, nil

	case SessionChangedMsg:
		if msg.State.SignedIn() {
			m.reset()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.errMsg = ""
			return m, navigateCmd(PageHome)
		case "ctrl+t":
			if m.submitting {
				return m, nil
			}
			m.errMsg = ""
			m.notice = ""
			if m.mode == authModeLogin {
				m.setMode(authModeRegister)
			} else {
				m.setMode(authModeLogin)
			}
			return m, nil
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			m.errMsg = ""
			m.notice = ""
			m.submitting = true
			return m, m.cmdSubmit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *AuthModel) View() string {
	var b strings.Builder
	b.WriteString("Field         │ Value\n")
	b.WriteString("──────────────┼────────────────────────────────────────────\n")
	b.WriteString("Email         │ [")
	b.WriteString(m.inputs[fieldEmail].View())
	b.WriteString("]\n")
	b.WriteString("Password      │ [")
	b.WriteString(m.inputs[fieldPassword].View())
	b.WriteString("]\n")
	if m.mode == authModeRegister {
		b.WriteString("Display name  │ [")
		b.WriteString(m.inputs[fieldDisplayName].View())
		b.WriteString("]\n")
	}

	switch {
	case m.submitting:
		b.WriteString("\n[PROCESSING...]\n")
	case m.mode == authModeRegister:
		b.WriteString("\n[SIGN UP]\n")
	default:
		b.WriteString("\n[SIGN IN]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	title := "SIGN IN"
	toggle := "ctrl+t: create an account"
	if m.mode == authModeRegister {
		title = "SIGN UP"
		toggle = "ctrl+t: have an account? sign in"
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit │ "+toggle)
}

func (m *AuthModel) cmdSubmit() tea.Cmd {
	ctx := m.ctx
	sessions := m.sessions
	mode := m.mode
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()
	displayName := m.inputs[fieldDisplayName].Value()

	return func() tea.Msg {
		var err error
		if mode == authModeRegister {
			err = sessions.SignUp(ctx, email, password, displayName)
		} else {
			err = sessions.SignIn(ctx, email, password)
		}
		return authResultMsg{mode: mode, err: err}
	}
}

func (m *AuthModel) setMode(mode authMode) {
	m.mode = mode
	if m.focus >= m.visibleInputs() {
		m.setFocus(fieldEmail)
	}
}

func (m *AuthModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.errMsg = ""
	m.notice = ""
	m.submitting = false
	m.setMode(authModeLogin)
	m.setFocus(fieldEmail)
}

func (m *AuthModel) visibleInputs() int {
	if m.mode == authModeRegister {
		return len(m.inputs)
	}
	return fieldDisplayName
}

func (m *AuthModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *AuthModel) focusNext() {
	m.setFocus((m.focus + 1) % m.visibleInputs())
}

func (m *AuthModel) focusPrev() {
	n := m.visibleInputs()
	m.setFocus((m.focus - 1 + n) % n)
}
