package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"protodoc/pkg/document"
	"protodoc/pkg/engine"
	"protodoc/pkg/source"
	"protodoc/pkg/termout"
)

// docMsg carries a freshly rendered preview, or the load error.
type docMsg struct {
	content string
	err     error
}

// Model is the Bubble Tea model for the live preview.
type Model struct {
	path     string
	cfg      document.Config
	viewport viewport.Model
	ready    bool
	err      error
	loadedAt time.Time
}

// newModel creates a preview model for the given protocol file.
func newModel(path string) Model {
	return Model{
		path: path,
		cfg:  document.DefaultConfig(),
	}
}

// loadDocCmd loads and renders the protocol file off the UI loop.
func loadDocCmd(path string, cfg document.Config, width int) tea.Cmd {
	return func() tea.Msg {
		p, err := source.LoadFile(path)
		if err != nil {
			return docMsg{err: err}
		}
		content := termout.Render(engine.Render(p, cfg), termout.Options{
			Width:       width,
			MaxRowUnits: cfg.MaxRowUnits,
			Color:       true,
		})
		return docMsg{content: content}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return watchFile(m.path)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, loadDocCmd(m.path, m.cfg, m.contentWidth())
		}

	case tea.WindowSizeMsg:
		headerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		return m, loadDocCmd(m.path, m.cfg, m.contentWidth())

	case fsChangeMsg:
		// Reload and re-arm the watcher.
		return m, tea.Batch(
			loadDocCmd(m.path, m.cfg, m.contentWidth()),
			watchFile(m.path),
		)

	case docMsg:
		m.err = msg.err
		if msg.err == nil {
			m.loadedAt = time.Now()
			m.viewport.SetContent(msg.content)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// contentWidth returns the width the document is rendered against.
func (m Model) contentWidth() int {
	if !m.ready || m.viewport.Width <= 0 {
		return 80
	}
	return m.viewport.Width
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.statusBar() + "\n" + m.viewport.View()
}

// statusBar renders the one-line header above the preview.
func (m Model) statusBar() string {
	theme := termout.DefaultTheme()
	style := lipgloss.NewStyle().Bold(true).Foreground(theme.Title)

	status := m.path
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(theme.Fail)
		return style.Render(status) + " " + errStyle.Render(fmt.Sprintf("[%v]", m.err))
	}
	if !m.loadedAt.IsZero() {
		status += " (rendered " + m.loadedAt.Format("15:04:05") + ")"
	}
	return style.Render(status)
}
