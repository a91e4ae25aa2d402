package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/models"
)

const (
	rendererStyleAuto  = "auto"
	rendererStyleNoTTY = "notty"

	defaultWrapWidth = 80
	statusTimeout    = 2 * time.Second
)

// DetailModel shows one writeup with its markdown body rendered by glamour.
type DetailModel struct {
	ctx     context.Context
	catalog service.CatalogStore

	style    string
	viewport viewport.Model
	width    int

	slug    string
	writeup *models.Writeup
	loading bool
	errMsg  string
	status  string
}

// NewDetailModel creates the page. style is a glamour style path, or
// "auto" to pick one from the terminal background.
func NewDetailModel(ctx context.Context, catalogStore service.CatalogStore, style string) *DetailModel {
	return &DetailModel{
		ctx:      ctx,
		catalog:  catalogStore,
		style:    style,
		viewport: viewport.New(defaultWrapWidth, 20),
		width:    defaultWrapWidth,
	}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenWriteupMsg:
		m.slug = msg.Slug
		m.writeup = nil
		m.errMsg = ""
		m.status = ""
		m.loading = true
		return m, m.cmdLoad(msg.Slug)

	case writeupLoadedMsg:
		if msg.slug != m.slug {
			// stale response for a page the user already left
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = fetchErrorMessage(msg.err)
			return m, nil
		}
		if msg.writeup == nil {
			return m, navigateCmd(PageNotFound)
		}
		m.writeup = msg.writeup
		m.viewport.SetContent(m.renderBody())
		m.viewport.GotoTop()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = max(msg.Width-6, 20)
		m.viewport.Width = m.width
		m.viewport.Height = max(msg.Height-14, 5)
		if m.writeup != nil {
			m.viewport.SetContent(m.renderBody())
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Slug copied to clipboard"
		}
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, navigateCmd(PageWriteups)
		case "c":
			if m.writeup != nil {
				return m, cmdCopy(m.writeup.Slug)
			}
			return m, nil
		case "r":
			if m.errMsg != "" && m.slug != "" {
				m.catalog.Refresh()
				return m.Update(OpenWriteupMsg{Slug: m.slug})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *DetailModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading writeup...")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\nPress r to retry.")
	case m.writeup == nil:
		b.WriteString("No writeup selected")
	default:
		w := m.writeup
		b.WriteString(fmt.Sprintf("%s  [%s · %s · %s]\n", w.Title, w.Platform, w.Difficulty, w.Status))
		if w.Points != nil {
			b.WriteString(fmt.Sprintf("Points: %d\n", *w.Points))
		}
		if len(w.Tags) > 0 {
			b.WriteString("Tags: ")
			b.WriteString(tagStyle.Render(strings.Join(w.Tags, ", ")))
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("Slug: %s   Published: %s\n\n", w.Slug, w.CreatedAt.Format(time.DateOnly)))
		b.WriteString(m.viewport.View())
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(noticeStyle.Render(m.status))
	}

	return renderPage("WRITEUP", b.String(), "↑/↓: scroll │ c: copy slug │ esc: back")
}

// renderBody renders the description and content markdown. Rendering
// failures fall back to the raw text.
func (m *DetailModel) renderBody() string {
	w := m.writeup
	var md strings.Builder
	if w.Description != nil && *w.Description != "" {
		md.WriteString("> ")
		md.WriteString(*w.Description)
		md.WriteString("\n\n")
	}
	if w.Content != nil && *w.Content != "" {
		md.WriteString(*w.Content)
	} else {
		md.WriteString("_No content available._")
	}

	renderer, err := m.newRenderer()
	if err != nil {
		return md.String()
	}
	out, err := renderer.Render(md.String())
	if err != nil {
		return md.String()
	}
	return out
}

func (m *DetailModel) newRenderer() (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStylePath(m.style)
	if m.style == rendererStyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}
	return glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(m.width))
}

func (m *DetailModel) cmdLoad(slug string) tea.Cmd {
	ctx := m.ctx
	catalogStore := m.catalog

	return func() tea.Msg {
		w, err := catalogStore.Get(ctx, slug)
		return writeupLoadedMsg{slug: slug, writeup: w, err: err}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}
