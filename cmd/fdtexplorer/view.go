package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout helpers

func (m Model) treePaneWidth() int {
	w := m.width * 2 / 5
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) propPaneWidth() int {
	w := m.width - m.treePaneWidth() - 2
	if w < 20 {
		w = 20
	}
	return w
}

// paneHeight is the inner height available to both panes.
func (m Model) paneHeight() int {
	h := m.height - 5 // header, status bar, borders
	if h < 3 {
		h = 3
	}
	return h
}

// pageSize is the number of tree rows on one screen.
func (m Model) pageSize() int {
	return m.paneHeight() - 2
}

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTreePane(),
		m.renderPropPane(),
	)
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	title := headerStyle.Render("fdtexplorer")
	path := ""
	if e := m.selectedEntry(); e != nil {
		path = pathStyle.Render(e.path)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", path)
}

func (m Model) renderTreePane() string {
	page := m.pageSize()
	width := m.treePaneWidth() - 4

	var rows []string
	end := m.scroll + page
	if end > len(m.visible) {
		end = len(m.visible)
	}
	matchSet := make(map[int]bool, len(m.matches))
	for _, ei := range m.matches {
		matchSet[ei] = true
	}

	for vi := m.scroll; vi < end; vi++ {
		e := m.entries[m.visible[vi]]

		marker := "  "
		if e.children > 0 {
			if m.expanded[e.path] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		line := strings.Repeat("  ", e.depth) + marker + e.name
		line = truncate(line, width)

		switch {
		case vi == m.cursor:
			line = cursorStyle.Render(line)
		case matchSet[m.visible[vi]]:
			line = matchStyle.Render(line)
		}
		rows = append(rows, line)
	}
	for len(rows) < page {
		rows = append(rows, "")
	}

	content := strings.Join(rows, "\n")
	return activePaneStyle.Width(m.treePaneWidth()).Render(content)
}

func (m Model) renderPropPane() string {
	return paneStyle.Width(m.propPaneWidth()).Render(m.propView.View())
}

func (m Model) renderStatusBar() string {
	if m.inputMode == SearchMode {
		return statusStyle.Render(searchPromptStyle.Render("/") + m.inputBuffer + "█")
	}

	var parts []string
	parts = append(parts, statusCount(len(m.visible), len(m.entries)))
	if m.searchQuery != "" {
		parts = append(parts, fmt.Sprintf("search %q: %d/%d", m.searchQuery, m.matchIdx+1, len(m.matches)))
	}
	if m.statusMessage != "" {
		parts = append(parts, m.statusMessage)
	}
	parts = append(parts, helpStyle.Render("? help · q quit"))

	return statusStyle.Render(strings.Join(parts, "  │  "))
}

func statusCount(visible, total int) string {
	return fmt.Sprintf("%d/%d nodes", visible, total)
}

func (m Model) renderHelp() string {
	type entry struct{ key, desc string }
	sections := []struct {
		title   string
		entries []entry
	}{
		{"Navigation", []entry{
			{"↑/k, ↓/j", "move up/down"},
			{"→/l", "expand node"},
			{"←/h", "collapse / go to parent"},
			{"enter", "toggle expand"},
			{"g / G", "top / bottom"},
			{"pgup/pgdn", "page up/down"},
			{"p", "go to parent"},
			{"E / C", "expand all / collapse all"},
		}},
		{"Search", []entry{
			{"/", "search names and compatibles"},
			{"n / N", "next / previous match"},
		}},
		{"Other", []entry{
			{"?", "toggle this help"},
			{"q", "quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("fdtexplorer help"))
	b.WriteString("\n\n")
	for _, s := range sections {
		b.WriteString(helpTitleStyle.Render(s.title))
		b.WriteString("\n")
		for _, e := range s.entries {
			b.WriteString(helpKeyStyle.Render(e.key))
			b.WriteString(helpDescStyle.Render(e.desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("press ? or esc to close"))
	return b.String()
}
