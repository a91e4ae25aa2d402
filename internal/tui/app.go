package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/models"
)

// inputCapturer is implemented by pages that consume plain key presses while
// a text field is focused. The router skips its global hotkeys for them.
type inputCapturer interface {
	capturesInput() bool
}

// requestSignOutMsg asks the router to end the session.
type requestSignOutMsg struct{}

// RootModel is a TUI router:
// 1) keeps active page and the session snapshot
// 2) handles global hotkeys and the navigation bar
// 3) handles NavigateTo and session change messages
// 4) delegates all other messages to the active page
type RootModel struct {
	ctx      context.Context
	sessions service.SessionManager

	pages   map[Page]tea.Model
	current Page
	session service.SessionState

	buildInfo     models.AppBuildInfo
	showBuildInfo bool
	quitByUser    bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(ctx context.Context, sessions service.SessionManager, pages map[Page]tea.Model, startPage Page, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		ctx:       ctx,
		sessions:  sessions,
		pages:     pages,
		current:   startPage,
		session:   sessions.Snapshot(),
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	page := r.page()
	if page == nil {
		return nil
	}
	return page.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, handled := r.handleGlobalKey(msg); handled {
			return next, cmd
		}
		if r.showBuildInfo {
			return r, nil
		}

	case tea.WindowSizeMsg:
		return r, r.broadcast(msg)

	case NavigateTo:
		return r.navigate(msg)

	case SessionChangedMsg:
		r.session = msg.State
		cmd := r.broadcast(msg)
		if msg.State.SignedIn() && r.current == PageAuth {
			return r, tea.Batch(cmd, navigateCmd(PageHome))
		}
		return r, cmd

	case requestSignOutMsg:
		return r, r.cmdSignOut()

	case signedOutMsg:
		return r, func() tea.Msg {
			return NavigateTo{Page: PageHome, Payload: authNoticeMsg{text: "Signed out"}}
		}
	}

	page := r.page()
	if page == nil {
		return r, nil
	}

	updated, cmd := page.Update(msg)
	r.pages[r.current] = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}

	nav := renderNavBar(r.current, r.session.SignedIn())
	page := r.page()
	if page == nil {
		return nav + "\n\n" + renderPage("WRITEUPS", "", "")
	}
	return nav + "\n\n" + page.View()
}

// handleGlobalKey processes router-level hotkeys. handled is false when the
// key must go to the active page.
func (r RootModel) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		r.quitByUser = true
		return r, tea.Quit, true
	}

	if r.showBuildInfo {
		if key.Matches(msg, keys.esc, keys.version) {
			r.showBuildInfo = false
		}
		return r, nil, true
	}

	if capturer, ok := r.page().(inputCapturer); ok && capturer.capturesInput() {
		return r, nil, false
	}

	switch {
	case key.Matches(msg, keys.quit):
		r.quitByUser = true
		return r, tea.Quit, true
	case key.Matches(msg, keys.version) && r.current == PageHome:
		r.showBuildInfo = true
		return r, nil, true
	case key.Matches(msg, keys.home):
		return r, navigateCmd(PageHome), true
	case key.Matches(msg, keys.writeups):
		return r, navigateCmd(PageWriteups), true
	case key.Matches(msg, keys.session):
		if r.session.SignedIn() {
			return r, r.cmdSignOut(), true
		}
		return r, navigateCmd(PageAuth), true
	}

	return r, nil, false
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	target := nav.Page
	if _, exists := r.pages[target]; !exists {
		target = PageNotFound
	}
	// a signed-in user has nothing to do on the auth page
	if target == PageAuth && r.session.SignedIn() {
		target = PageHome
	}

	next, exists := r.pages[target]
	if !exists {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = target

	if nav.Payload != nil {
		payload := nav.Payload
		return r, func() tea.Msg { return payload }
	}
	return r, next.Init()
}

// broadcast delivers msg to every page so inactive pages stay in sync.
func (r RootModel) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.pages))
	for name, page := range r.pages {
		updated, cmd := page.Update(msg)
		r.pages[name] = updated
		// only the visible page may schedule work
		if name == r.current {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (r RootModel) cmdSignOut() tea.Cmd {
	ctx := r.ctx
	sessions := r.sessions

	return func() tea.Msg {
		_ = sessions.SignOut(ctx)
		return signedOutMsg{}
	}
}

func (r RootModel) page() tea.Model {
	return r.pages[r.current]
}

func navigateCmd(page Page) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page} }
}
