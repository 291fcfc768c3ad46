package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// previewModel is the scrollable markdown overlay opened from the picker.
type previewModel struct {
	title    string
	viewport viewport.Model

	width  int
	height int
}

func (m previewModel) setSize(width, height int) previewModel {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)
	return m
}

// activate renders the markdown body for display. Rendering failures fall
// back to the raw markdown; a preview should never be a hard error.
func (m previewModel) activate(title, markdown string) previewModel {
	m.title = title

	content := markdown
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, m.width-4)),
	)
	if err == nil {
		if rendered, err := r.Render(markdown); err == nil {
			content = rendered
		}
	}

	m.viewport = viewport.New(m.width, max(1, m.height-2))
	m.viewport.SetContent(content)
	return m
}

func (m previewModel) update(msg tea.Msg) (previewModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m previewModel) view() string {
	pct := previewPctStyle.Render(fmt.Sprintf(" %3.0f%% ", m.viewport.ScrollPercent()*100))
	barWidth := m.width - lipgloss.Width(pct)
	title := previewTitleStyle.Render(ansi.Truncate(m.title, max(1, barWidth-2), "…"))

	return title + pct + "\n" + m.viewport.View() + "\n" +
		helpStyle.Render("j/k scroll · esc back")
}
