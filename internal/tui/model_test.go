package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/teatest"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T, st *todo.Store) *teatest.Driver {
	t.Helper()
	m := New(st)
	t.Cleanup(m.cancel)
	return teatest.New(t, m, teatest.WithSize(100, 30))
}

func current(t *testing.T, d *teatest.Driver) Model {
	t.Helper()
	m, ok := d.Model.(Model)
	require.True(t, ok, "model type %T", d.Model)
	return m
}

func seeded(texts ...string) *todo.Store {
	st := todo.New()
	for _, s := range texts {
		st.Add(s)
	}
	return st
}

func TestAdd_TypesIntoDraftAndSubmits(t *testing.T) {
	st := todo.New()
	d := newDriver(t, st)

	d.Press("a")
	assert.Equal(t, modeAdd, current(t, d).mode)
	d.Type("buy milk")
	assert.Equal(t, "buy milk", st.Draft(), "input is mirrored into the draft")

	d.Press("enter")
	assert.Equal(t, modeBrowse, current(t, d).mode)
	require.Len(t, st.Items(), 1)
	assert.Equal(t, "buy milk", st.Items()[0].Text)
	assert.Empty(t, st.Draft())
	assert.Contains(t, d.View(), "buy milk")
}

func TestAdd_EmptyKeepsDialogOpen(t *testing.T) {
	st := todo.New()
	d := newDriver(t, st)

	d.Press("a")
	d.Press("enter")
	assert.Equal(t, modeAdd, current(t, d).mode)
	assert.Contains(t, d.View(), "Text cannot be empty")
	assert.Empty(t, st.Items())
}

func TestAdd_EscClearsDraft(t *testing.T) {
	st := todo.New()
	d := newDriver(t, st)

	d.Press("a")
	d.Type("half")
	d.Press("esc")
	assert.Equal(t, modeBrowse, current(t, d).mode)
	assert.Empty(t, st.Draft())
	assert.Empty(t, st.Items())
}

func TestAdd_DisabledInTrashView(t *testing.T) {
	st := seeded("a")
	d := newDriver(t, st)

	d.Press("4")
	assert.Equal(t, model.FilterRemoved, st.Filter())
	d.Press("a")
	assert.Equal(t, modeBrowse, current(t, d).mode)
}

func TestCheckAndTrash(t *testing.T) {
	st := seeded("older", "newer")
	d := newDriver(t, st)

	d.Press("space")
	assert.True(t, st.Items()[0].Checked, "cursor starts on the newest item")

	d.Press("d")
	assert.True(t, st.Items()[0].Removed)
	assert.NotContains(t, d.View(), "newer")

	d.Press("4")
	assert.Contains(t, d.View(), "newer")
	d.Press("space")
	assert.True(t, st.Items()[0].Checked, "removed items cannot be checked")

	d.Press("d")
	assert.False(t, st.Items()[0].Removed, "d restores in the trash view")
}

func TestEdit(t *testing.T) {
	st := seeded("tpyo")
	d := newDriver(t, st)

	d.Press("e")
	require.Equal(t, modeEdit, current(t, d).mode)
	for range "tpyo" {
		d.Press("backspace")
	}
	d.Type("typo")
	d.Press("enter")

	assert.Equal(t, "typo", st.Items()[0].Text)
	assert.Equal(t, modeBrowse, current(t, d).mode)
}

func TestEdit_RefusedForCheckedItems(t *testing.T) {
	st := seeded("done")
	st.ToggleChecked(st.Items()[0].ID)
	d := newDriver(t, st)

	d.Press("e")
	assert.Equal(t, modeBrowse, current(t, d).mode)
	assert.Contains(t, d.View(), "cannot be edited")
}

func TestFilterCycle(t *testing.T) {
	st := seeded("a")
	d := newDriver(t, st)

	for _, want := range []model.Filter{model.FilterUnchecked, model.FilterChecked, model.FilterRemoved, model.FilterAll} {
		d.Press("tab")
		assert.Equal(t, want, st.Filter())
		assert.Contains(t, d.View(), want.Title())
	}
}

func TestEmptyTrash_OnlyFromTrashView(t *testing.T) {
	st := seeded("a")
	st.ToggleRemoved(st.Items()[0].ID)
	d := newDriver(t, st)

	d.Press("D")
	assert.Equal(t, modeBrowse, current(t, d).mode)

	d.Press("4")
	d.Press("D")
	assert.Equal(t, modeConfirm, current(t, d).mode)
	assert.Contains(t, d.View(), "Empty trash")
}

func TestEmptyTrash_Confirmed(t *testing.T) {
	st := seeded("keep", "bin")
	st.ToggleRemoved(st.Items()[0].ID)
	d := newDriver(t, st)

	d.Press("4")
	d.Press("D")
	d.Send(confirmDoneMsg{ok: true})

	assert.Equal(t, modeBrowse, current(t, d).mode)
	require.Len(t, st.Items(), 1)
	assert.Equal(t, "keep", st.Items()[0].Text)
	assert.Contains(t, d.View(), "deleted 1 item(s)")
}

func TestEmptyTrash_EscCancels(t *testing.T) {
	st := seeded("bin")
	st.ToggleRemoved(st.Items()[0].ID)
	d := newDriver(t, st)

	d.Press("4")
	d.Press("D")
	d.Press("esc")

	assert.Equal(t, modeBrowse, current(t, d).mode)
	assert.Len(t, st.Items(), 1)
}

func TestQuit(t *testing.T) {
	d := newDriver(t, todo.New())
	d.Press("q")
	assert.True(t, d.Quitting)
}

func lineIndex(t *testing.T, lines []string, text string) int {
	t.Helper()
	for i, l := range lines {
		if strings.Contains(l, text) {
			return i
		}
	}
	t.Fatalf("%q not in view", text)
	return -1
}

func TestView_RowsAreConsecutive(t *testing.T) {
	d := newDriver(t, seeded("one", "two", "three"))

	lines := strings.Split(d.View(), "\n")
	three := lineIndex(t, lines, "three")
	assert.Equal(t, three+1, lineIndex(t, lines, "two"))
	assert.Equal(t, three+2, lineIndex(t, lines, "one"))
}

func TestView_FitsWindow(t *testing.T) {
	texts := make([]string, 40)
	for i := range texts {
		texts[i] = fmt.Sprintf("item %02d", i)
	}
	d := newDriver(t, seeded(texts...))

	fits := func(stage string) {
		t.Helper()
		assert.LessOrEqual(t, lipgloss.Height(d.View()), 30, stage)
	}
	fits("browse")
	assert.Contains(t, d.View(), "All tasks", "title stays on screen")

	d.Press("a")
	fits("add dialog")
	assert.Contains(t, d.View(), "Add new item")
	d.Press("enter")
	fits("add dialog with error")
	d.Press("esc")

	d.Press("e")
	fits("edit dialog")
	d.Press("esc")

	d.Press("d")
	fits("status line")
	d.Press("4")
	d.Press("D")
	fits("confirm dialog")
}

func TestEdit_EmptyTextRefused(t *testing.T) {
	st := seeded("keep me")
	d := newDriver(t, st)

	d.Press("e")
	for range "keep me" {
		d.Press("backspace")
	}
	d.Type("  ")
	d.Press("enter")

	assert.Equal(t, modeEdit, current(t, d).mode)
	assert.Contains(t, d.View(), "Text cannot be empty")
	assert.Equal(t, "keep me", st.Items()[0].Text)
}
