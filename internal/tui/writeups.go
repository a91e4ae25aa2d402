package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-writeups/internal/catalog"
	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/models"
)

const writeupsPageSize = 12

// WriteupsModel is the catalog page: a search box, two facets and the list
// of matching writeups.
type WriteupsModel struct {
	ctx     context.Context
	catalog service.CatalogStore

	all      []models.Writeup
	filtered []models.Writeup
	sel      models.FilterSelection

	search  textinput.Model
	spinner spinner.Model

	idx     int
	offset  int
	loading bool
	errMsg  string
}

func NewWriteupsModel(ctx context.Context, catalogStore service.CatalogStore) *WriteupsModel {
	search := textinput.New()
	search.Placeholder = "Search by title or tag..."
	search.CharLimit = 100
	search.Width = 40
	search.Prompt = "/ "

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &WriteupsModel{
		ctx:     ctx,
		catalog: catalogStore,
		sel:     models.NewFilterSelection(),
		search:  search,
		spinner: s,
	}
}

// Init loads the catalog. Cached responses make re-entering the page cheap.
func (m *WriteupsModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *WriteupsModel) capturesInput() bool {
	return m.search.Focused()
}

func (m *WriteupsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case writeupsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = fetchErrorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.all = msg.items
		m.applyFilter()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *WriteupsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.sel.Search {
		m.sel.Search = m.search.Value()
		m.applyFilter()
	}
	return m, cmd
}

func (m *WriteupsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.search):
		return m, m.search.Focus()
	case key.Matches(msg, keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.down):
		m.moveCursor(1)
	case key.Matches(msg, keys.platform):
		m.sel.Platform = catalog.NextChoice(catalog.PlatformChoices, m.sel.Platform)
		m.applyFilter()
	case key.Matches(msg, keys.platformRev):
		m.sel.Platform = catalog.PrevChoice(catalog.PlatformChoices, m.sel.Platform)
		m.applyFilter()
	case key.Matches(msg, keys.difficulty):
		m.sel.Difficulty = catalog.NextChoice(catalog.DifficultyChoices, m.sel.Difficulty)
		m.applyFilter()
	case key.Matches(msg, keys.diffRev):
		m.sel.Difficulty = catalog.PrevChoice(catalog.DifficultyChoices, m.sel.Difficulty)
		m.applyFilter()
	case key.Matches(msg, keys.reset):
		m.sel = models.NewFilterSelection()
		m.search.SetValue("")
		m.applyFilter()
	case key.Matches(msg, keys.retry):
		if m.loading {
			return m, nil
		}
		m.catalog.Refresh()
		return m, m.Init()
	case key.Matches(msg, keys.enter):
		if w, ok := m.current(); ok {
			return m, func() tea.Msg {
				return NavigateTo{Page: PageDetail, Payload: OpenWriteupMsg{Slug: w.Slug}}
			}
		}
	case key.Matches(msg, keys.esc):
		return m, navigateCmd(PageHome)
	}

	return m, nil
}

func (m *WriteupsModel) applyFilter() {
	m.filtered = m.catalog.Filter(m.all, m.sel)
	if m.idx >= len(m.filtered) {
		m.idx = len(m.filtered) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
	m.clampOffset()
}

func (m *WriteupsModel) moveCursor(delta int) {
	next := m.idx + delta
	if next < 0 || next >= len(m.filtered) {
		return
	}
	m.idx = next
	m.clampOffset()
}

func (m *WriteupsModel) clampOffset() {
	if m.idx < m.offset {
		m.offset = m.idx
	}
	if m.idx >= m.offset+writeupsPageSize {
		m.offset = m.idx - writeupsPageSize + 1
	}
}

func (m *WriteupsModel) current() (models.Writeup, bool) {
	if len(m.filtered) == 0 || m.idx < 0 || m.idx >= len(m.filtered) {
		return models.Writeup{}, false
	}
	return m.filtered[m.idx], true
}

func (m *WriteupsModel) View() string {
	var b strings.Builder

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Platform: [%s]   Difficulty: [%s]\n\n", m.sel.Platform, m.sel.Difficulty))

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading writeups...\n")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
		b.WriteString("Press r to retry.\n")
	case len(m.filtered) == 0:
		b.WriteString("No writeups found\n")
		b.WriteString(helpStyle.Render(catalog.EmptyStateMessage(len(m.all))))
		b.WriteString("\n")
	default:
		m.writeRows(&b)
	}

	stats := catalog.Summarize(m.all)
	b.WriteString(fmt.Sprintf("\nTotal: %d │ Completed: %d │ In progress: %d │ Shown: %d",
		stats.Total, stats.Completed, stats.InProgress, len(m.filtered)))

	hotKeys := "/: search │ p/P: platform │ d/D: difficulty │ x: reset │ r: reload │ enter: open │ esc: home"
	if m.search.Focused() {
		hotKeys = "type to filter │ enter/esc: done"
	}
	return renderPage("WRITEUPS", b.String(), hotKeys)
}

func (m *WriteupsModel) writeRows(b *strings.Builder) {
	end := min(m.offset+writeupsPageSize, len(m.filtered))
	for i := m.offset; i < end; i++ {
		w := m.filtered[i]
		cursor := " "
		title := fmt.Sprintf("%-32s", fitText(w.Title, 32))
		if i == m.idx {
			cursor = ">"
			title = selectedStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %s %-6s %-6s %-9s %s\n",
			cursor, title, w.Platform, w.Difficulty, w.Status, tagStyle.Render(strings.Join(w.Tags, ", "))))
	}
	if end < len(m.filtered) {
		b.WriteString(helpStyle.Render(fmt.Sprintf("… %d more", len(m.filtered)-end)))
		b.WriteString("\n")
	}
}

func (m *WriteupsModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	catalogStore := m.catalog

	return func() tea.Msg {
		items, err := catalogStore.Load(ctx)
		return writeupsLoadedMsg{items: items, err: err}
	}
}
