package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propView.Width = m.propPaneWidth() - 4
		m.propView.Height = m.paneHeight() - 2
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		if m.inputMode == SearchMode {
			return m.updateSearchInput(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.propView, cmd = m.propView.Update(msg)
	return m, cmd
}

// updateSearchInput handles keys while the search prompt is open.
func (m Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = NormalMode
		m.inputBuffer = ""
		return m, nil

	case tea.KeyEnter:
		m.inputMode = NormalMode
		m.runSearch(m.inputBuffer)
		m.inputBuffer = ""
		if len(m.matches) > 0 {
			m.jumpToEntry(m.matches[0])
			m.statusMessage = ""
		} else {
			m.statusMessage = "no matches"
		}
		return m, nil

	case tea.KeyBackspace:
		if len(m.inputBuffer) > 0 {
			m.inputBuffer = m.inputBuffer[:len(m.inputBuffer)-1]
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		m.inputBuffer += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// updateNormal handles keys in normal browsing mode.
func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Esc):
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.inputMode = SearchMode
		m.inputBuffer = ""
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.visible))
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.visible))
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if e := m.selectedEntry(); e != nil && e.children > 0 {
			m.expanded[e.path] = true
			m.rebuildVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if e := m.selectedEntry(); e != nil && e.children > 0 {
			m.expanded[e.path] = !m.expanded[e.path]
			m.rebuildVisible()
			m.clampScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if e := m.selectedEntry(); e != nil {
			if e.children > 0 && m.expanded[e.path] {
				m.expanded[e.path] = false
				m.rebuildVisible()
			} else {
				m.goToParent()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.GoToParent):
		m.goToParent()
		return m, nil

	case key.Matches(msg, m.keys.ExpandAll):
		for _, e := range m.entries {
			if e.children > 0 {
				m.expanded[e.path] = true
			}
		}
		m.rebuildVisible()
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.CollapseAll):
		m.expanded = map[string]bool{"/": true}
		m.cursor = 0
		m.scroll = 0
		m.rebuildVisible()
		m.refreshProps()
		return m, nil

	case key.Matches(msg, m.keys.NextMatch):
		m.cycleMatch(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.cycleMatch(-1)
		return m, nil
	}

	// Anything else scrolls the property pane.
	var cmd tea.Cmd
	m.propView, cmd = m.propView.Update(msg)
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.clampScroll()
	m.refreshProps()
}

// clampScroll keeps the cursor row on screen.
func (m *Model) clampScroll() {
	page := m.pageSize()
	if page <= 0 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+page {
		m.scroll = m.cursor - page + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *Model) goToParent() {
	e := m.selectedEntry()
	if e == nil || e.depth == 0 {
		return
	}
	for vi := m.cursor - 1; vi >= 0; vi-- {
		if m.entries[m.visible[vi]].depth == e.depth-1 {
			m.cursor = vi
			break
		}
	}
	m.clampScroll()
	m.refreshProps()
}

func (m *Model) cycleMatch(dir int) {
	if len(m.matches) == 0 {
		m.statusMessage = "no search active"
		return
	}
	m.matchIdx = (m.matchIdx + dir + len(m.matches)) % len(m.matches)
	m.jumpToEntry(m.matches[m.matchIdx])
}
