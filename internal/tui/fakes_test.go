package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-writeups/internal/catalog"
	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/models"
)

type fakeCatalog struct {
	items     []models.Writeup
	loadErr   error
	byslug    map[string]*models.Writeup
	getErr    error
	loads     int
	refreshes int
}

func (f *fakeCatalog) Load(context.Context) ([]models.Writeup, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.items, nil
}

func (f *fakeCatalog) Get(_ context.Context, slug string) (*models.Writeup, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byslug[slug], nil
}

func (f *fakeCatalog) Filter(list []models.Writeup, sel models.FilterSelection) []models.Writeup {
	return catalog.Filter(list, sel)
}

func (f *fakeCatalog) Refresh() {
	f.refreshes++
}

type fakeSessions struct {
	mu        sync.Mutex
	state     service.SessionState
	signInErr error
	signUpErr error
	// signUpSignsIn decides whether a successful sign-up issues a session.
	signUpSignsIn bool

	signIns  int
	signUps  int
	signOuts int
	lastName string
}

func (f *fakeSessions) Init(context.Context) {}
func (f *fakeSessions) Dispose()             {}

func (f *fakeSessions) SignIn(_ context.Context, email, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	if f.signInErr != nil {
		return f.signInErr
	}
	f.state = service.SessionState{Status: service.StatusSignedIn, User: models.User{Email: email}}
	return nil
}

func (f *fakeSessions) SignUp(_ context.Context, email, _, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps++
	f.lastName = displayName
	if f.signUpErr != nil {
		return f.signUpErr
	}
	if f.signUpSignsIn {
		f.state = service.SessionState{Status: service.StatusSignedIn, User: models.User{Email: email}}
	}
	return nil
}

func (f *fakeSessions) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts++
	f.state = service.SessionState{Status: service.StatusSignedOut}
	return nil
}

func (f *fakeSessions) RefreshIfExpiring(context.Context, time.Duration) error { return nil }

func (f *fakeSessions) Snapshot() service.SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSessions) Subscribe(func(service.SessionState)) func() { return func() {} }

func signedIn(name string) service.SessionState {
	return service.SessionState{
		Status: service.StatusSignedIn,
		User:   models.User{Email: name + "@example.com", Metadata: models.UserMetadata{DisplayName: name}},
	}
}

// runCmd executes cmd and flattens batches. Commands producing timer based
// messages must not be passed here.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func strPtr(s string) *string { return &s }

func sampleCatalog() []models.Writeup {
	return []models.Writeup{
		{Title: "Lame", Slug: "lame", Platform: models.PlatformHTB, Difficulty: models.DifficultyEasy, Status: models.StatusCompleted, Tags: []string{"smb", "linux"}, Content: strPtr("# Lame\n\nsmb exploit")},
		{Title: "Blue", Slug: "blue", Platform: models.PlatformTHM, Difficulty: models.DifficultyEasy, Status: models.StatusActive, Tags: []string{"eternalblue", "windows"}},
		{Title: "Pwn Lab", Slug: "pwn-lab", Platform: models.PlatformCustom, Difficulty: models.DifficultyHard, Status: models.StatusLocked, Tags: []string{"pwn"}},
	}
}
