// Package tui is the interactive front end. It forwards key presses to a
// todo.Store and re-renders from the snapshots the store publishes.
package tui

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeConfirm
)

// frameHeight is the top and bottom border of the outer frame.
const frameHeight = 2

const minListHeight = 5

// confirmDoneMsg carries the answer of the empty-trash dialog.
type confirmDoneMsg struct{ ok bool }

var (
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey   = key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit"))
	checkKey  = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "check"))
	removeKey = key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "trash/restore"))
	filterKey = key.NewBinding(key.WithKeys("tab", "1", "2", "3", "4"), key.WithHelp("tab/1-4", "view"))
	emptyKey  = key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "empty trash"))
	quitKey   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// Model is the bubbletea model over a todo.Store.
type Model struct {
	store  *todo.Store
	snap   *todo.Snapshot // refreshed by the store subscription
	cancel func()

	list list.Model
	mode mode

	ti       textinput.Model // shared by add and edit
	editID   int64
	inputErr string

	confirm   *huh.Form
	confirmed *bool

	status string

	height int
}

// New builds a model bound to st.
func New(st *todo.Store) Model {
	snap := st.Snapshot()
	m := Model{
		store: st,
		snap:  &snap,
	}
	m.cancel = st.Subscribe(func(s todo.Snapshot) { *m.snap = s })

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("item", "items")
	bindings := func() []key.Binding {
		return []key.Binding{addKey, editKey, checkKey, removeKey, filterKey, emptyKey}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings
	l.KeyMap.Quit = quitKey
	m.list = l

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.sync()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(st *todo.Store) error {
	m := New(st)
	defer m.cancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-frameHeight)
		m.ti.Width = msg.Width - 10
		return m, nil
	case confirmDoneMsg:
		return m.finishConfirm(msg.ok), nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	m.status = ""

	switch km.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "a":
		if f := m.snap.Filter; f == model.FilterChecked || f == model.FilterRemoved {
			m.status = "switch to All or Active to add"
			return m, nil
		}
		m.mode = modeAdd
		m.inputErr = ""
		m.ti.SetValue(m.snap.Draft)
		m.ti.CursorEnd()
		m.ti.Placeholder = "New item text..."
		return m, m.ti.Focus()

	case "e", "enter":
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		if it.Checked || it.Removed {
			m.status = "checked or removed items cannot be edited"
			return m, nil
		}
		m.mode = modeEdit
		m.editID = it.ID
		m.inputErr = ""
		m.ti.SetValue(it.Text)
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit item text..."
		return m, m.ti.Focus()

	case " ", "x":
		if it, ok := m.selected(); ok {
			if it.Removed {
				m.status = "restore the item before checking it"
				return m, nil
			}
			m.store.ToggleChecked(it.ID)
			m.sync()
		}
		return m, nil

	case "d", "delete":
		if it, ok := m.selected(); ok {
			m.store.ToggleRemoved(it.ID)
			if it.Removed {
				m.status = "restored"
			} else {
				m.status = "moved to trash"
			}
			m.sync()
		}
		return m, nil

	case "tab":
		m.store.SetFilter(m.snap.Filter.Next())
		m.sync()
		return m, nil

	case "1", "2", "3", "4":
		m.store.SetFilter(model.Filters[km.String()[0]-'1'])
		m.list.Select(0)
		m.sync()
		return m, nil

	case "D":
		if m.snap.Filter != model.FilterRemoved || m.snap.Counts.Removed == 0 {
			m.status = "nothing to empty here"
			return m, nil
		}
		return m.startConfirm()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			if _, added := m.store.SubmitDraft(); !added {
				m.inputErr = "Text cannot be empty"
				return m, nil
			}
			m.closeInput()
			m.status = "added"
			m.list.Select(0)
			m.sync()
			return m, nil
		case "esc":
			m.store.CancelDraft()
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	if m.ti.Value() != m.snap.Draft {
		m.store.SetDraft(m.ti.Value())
	}
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			// Store.Edit accepts empty text; the dialog does not.
			text := strings.TrimSpace(m.ti.Value())
			if text == "" {
				m.inputErr = "Text cannot be empty"
				return m, nil
			}
			m.store.Edit(m.editID, text)
			m.closeInput()
			m.status = "saved"
			m.sync()
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) startConfirm() (tea.Model, tea.Cmd) {
	ok := false
	m.confirmed = &ok
	n := m.snap.Counts.Removed
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Permanently delete %d item(s) in the trash?", n)).
				Affirmative("Empty trash").
				Negative("Cancel").
				Value(m.confirmed),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
	m.mode = modeConfirm
	return m, m.confirm.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		return m.finishConfirm(false), nil
	}
	f, cmd := m.confirm.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.confirm = form
	}
	switch m.confirm.State {
	case huh.StateCompleted:
		answer := *m.confirmed
		return m, func() tea.Msg { return confirmDoneMsg{ok: answer} }
	case huh.StateAborted:
		return m, func() tea.Msg { return confirmDoneMsg{ok: false} }
	}
	return m, cmd
}

func (m Model) finishConfirm(ok bool) Model {
	m.mode = modeBrowse
	m.confirm = nil
	m.confirmed = nil
	if !ok {
		m.status = "trash kept"
		return m
	}
	n := m.store.EmptyRemoved()
	m.status = fmt.Sprintf("deleted %d item(s)", n)
	m.sync()
	return m
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

// sync pushes the latest snapshot into the list.
func (m *Model) sync() {
	vis := m.snap.Visible
	items := make([]list.Item, 0, len(vis))
	for _, it := range vis {
		items = append(items, listItem{Item: it})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	c := m.snap.Counts
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(m.snap.Filter.Title()),
		successStyle.Render("✔"), c.Checked,
		pendingStyle.Render("•"), c.Unchecked,
		accentStyle.Render("Trash"), c.Removed,
	)
}

func (m Model) View() string {
	var below []string
	switch m.mode {
	case modeAdd, modeEdit:
		title := "Add new item"
		if m.mode == modeEdit {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " - " + errorStyle.Render(m.inputErr)
		}
		below = append(below, frameStyle.Render(title+"\n"+m.ti.View()))
	case modeConfirm:
		below = append(below, frameStyle.Render("Empty trash\n"+m.confirm.View()))
	}
	if m.status != "" {
		below = append(below, mutedStyle.Render(m.status))
	}

	// The list gives up rows to whatever is drawn under it.
	l := m.list
	if m.height > 0 {
		h := m.height - frameHeight
		for _, b := range below {
			h -= lipgloss.Height(b)
		}
		l.SetHeight(max(h, minListHeight))
		l.Select(l.Index())
	}

	content := l.View()
	for _, b := range below {
		content += "\n" + b
	}
	return frameStyle.Render(content)
}
