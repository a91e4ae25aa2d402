package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: quit"))

	return b.String()
}

// renderNavBar draws the top navigation. The last entry reads LOGOUT while a
// session is active and LOGIN otherwise.
func renderNavBar(current Page, signedIn bool) string {
	sessionLabel := "LOGIN"
	if signedIn {
		sessionLabel = "LOGOUT"
	}

	entries := []struct {
		key   string
		label string
		page  Page
	}{
		{"1", "HOME", PageHome},
		{"2", "WRITEUPS", PageWriteups},
		{"3", sessionLabel, PageAuth},
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		label := e.key + " " + e.label
		if e.page == current || (e.page == PageWriteups && current == PageDetail) {
			parts = append(parts, navActiveStyle.Render(label))
			continue
		}
		parts = append(parts, navStyle.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "   "))
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
