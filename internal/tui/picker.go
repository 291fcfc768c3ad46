// Package tui implements the interactive picker used by `skilldock install
// --pick`: a multi-select list of discovered skills (with a markdown preview
// overlay) followed by a multi-select list of target agents.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user backs out of a picker.
var ErrCancelled = errors.New("selection cancelled")

// PickItem is one selectable row.
type PickItem struct {
	Label   string
	Detail  string
	Body    string // markdown shown by the preview overlay; empty disables it
	Checked bool
}

// pickEntry wraps a PickItem index for the bubbles list. The model owns the
// item state; entries only carry the index so toggles need no list rebuild.
type pickEntry struct {
	m     *pickerModel
	index int
}

func (e pickEntry) FilterValue() string { return e.m.items[e.index].Label }

// pickDelegate renders one checkbox row per item.
type pickDelegate struct{}

func (d pickDelegate) Height() int                             { return 1 }
func (d pickDelegate) Spacing() int                            { return 0 }
func (d pickDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d pickDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(pickEntry)
	if !ok {
		return
	}
	it := e.m.items[e.index]

	box := "[ ]"
	if it.Checked {
		box = checkedStyle.Render("[x]")
	}

	line := fmt.Sprintf("%s %s", box, it.Label)
	if it.Detail != "" {
		line += "  " + mutedStyle.Render(it.Detail)
	}

	if index == m.Index() {
		fmt.Fprint(w, cursorStyle.Render("> ")+line)
		return
	}
	fmt.Fprint(w, "  "+normalItemStyle.Render(line))
}

// pickerModel is the multi-select picker program.
type pickerModel struct {
	title string
	items []PickItem

	list    list.Model
	preview previewModel

	width  int
	height int

	showPreview bool
	confirmed   bool
	cancelled   bool
}

func newPickerModel(title string, items []PickItem) *pickerModel {
	m := &pickerModel{title: title, items: items}

	entries := make([]list.Item, len(items))
	for i := range items {
		entries[i] = pickEntry{m: m, index: i}
	}

	l := list.New(entries, pickDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.SetShowPagination(false)
	m.list = l

	return m
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(1, msg.Height-3))
		m.preview = m.preview.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.showPreview {
			if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Preview) || key.Matches(msg, keys.Quit) {
				m.showPreview = false
				return m, nil
			}
			var cmd tea.Cmd
			m.preview, cmd = m.preview.update(msg)
			return m, cmd
		}

		// Don't intercept keys while filtering.
		if m.list.SettingFilter() {
			break
		}

		switch {
		case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Back):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			m.confirmed = true
			return m, tea.Quit

		case key.Matches(msg, keys.Toggle):
			if e, ok := m.list.SelectedItem().(pickEntry); ok {
				m.items[e.index].Checked = !m.items[e.index].Checked
			}
			return m, nil

		case key.Matches(msg, keys.ToggleAll):
			all := true
			for i := range m.items {
				if !m.items[i].Checked {
					all = false
					break
				}
			}
			for i := range m.items {
				m.items[i].Checked = !all
			}
			return m, nil

		case key.Matches(msg, keys.Preview):
			if e, ok := m.list.SelectedItem().(pickEntry); ok {
				it := m.items[e.index]
				if it.Body != "" {
					m.preview = m.preview.activate(it.Label, it.Body)
					m.showPreview = true
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *pickerModel) View() string {
	if m.showPreview {
		return m.preview.view()
	}

	header := titleStyle.Render(m.title) + "\n\n"
	help := "\n" + helpStyle.Render("space toggle · a all · p preview · / filter · enter confirm · esc cancel")
	return header + m.list.View() + help
}

// checkedIndexes returns the indexes of the checked items.
func (m *pickerModel) checkedIndexes() []int {
	var out []int
	for i, it := range m.items {
		if it.Checked {
			out = append(out, i)
		}
	}
	return out
}

// RunPicker shows a full-screen multi-select over items and returns the
// indexes of the checked ones. Cancelling returns ErrCancelled; confirming
// with nothing checked returns an empty slice.
func RunPicker(title string, items []PickItem) ([]int, error) {
	m := newPickerModel(title, items)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	if m.cancelled || !m.confirmed {
		return nil, ErrCancelled
	}
	return m.checkedIndexes(), nil
}
