package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/memberadmin/internal/member"
	"github.com/jask/memberadmin/internal/service"
	"github.com/jask/memberadmin/internal/testdata"
)

type stubSource struct {
	res    service.LoadResult
	err    error
	source string
}

func (s *stubSource) Load(_ context.Context, source string) (service.LoadResult, error) {
	s.source = source
	return s.res, s.err
}

func runes(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestApp(t *testing.T, n int) *App {
	t.Helper()
	a := New(context.Background(), service.NewConsole(10, nil), nil, "", nil)
	send(t, a, membersLoadedMsg{Result: service.LoadResult{Records: testdata.Numbered(n)}})
	return a
}

func send(t *testing.T, a *App, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		next, c := a.Update(msg)
		require.Same(t, a, next)
		cmd = c
	}
	return cmd
}

func TestInitLoadsFromSource(t *testing.T) {
	src := &stubSource{res: service.LoadResult{Records: testdata.Numbered(12), Skipped: 2}}
	a := New(context.Background(), service.NewConsole(10, nil), src, "file:///tmp/members.json", nil)
	require.Contains(t, a.View(), "loading members...")

	cmd := a.Init()
	require.NotNil(t, cmd)
	send(t, a, cmd())

	require.Equal(t, "file:///tmp/members.json", src.source)
	require.Len(t, a.console.Records(), 12)
	out := a.View()
	require.Contains(t, out, "loaded 12 members, skipped 2 malformed")
	require.Contains(t, out, "0 of 12 row(s) selected.")
	require.Contains(t, out, "U10")
	require.NotContains(t, out, "U11")
}

func TestLoadFailureLeavesTableEmpty(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	a := New(context.Background(), service.NewConsole(10, nil), src, "http://127.0.0.1:1/members.json", nil)

	send(t, a, a.Init()())

	require.False(t, a.loading)
	require.Empty(t, a.console.Records())
	out := a.View()
	require.Contains(t, out, "No members.")
	require.Contains(t, out, "0 of 0 row(s) selected.")
}

func TestSelectPageAcrossPages(t *testing.T) {
	a := newTestApp(t, 25)

	send(t, a, runes("a"))
	require.Len(t, a.console.Selected(), 10)
	require.Contains(t, a.View(), "10 of 25 row(s) selected.")

	send(t, a, runes("l"), runes("a"))
	require.Equal(t, 2, a.console.Page())
	require.Len(t, a.console.Selected(), 20)

	send(t, a, runes("a"))
	require.Empty(t, a.console.Selected(), "header toggle on a fully selected page clears the selection")
}

func TestCursorToggleAndDelete(t *testing.T) {
	a := newTestApp(t, 3)

	send(t, a, runes("j"), tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []member.ID{"2"}, a.console.Selected())

	send(t, a, runes("d"))
	require.Len(t, a.console.Records(), 2)
	require.Empty(t, a.console.Selected(), "deleted ids leave the selection")

	send(t, a, runes("j"), runes("j"), runes("d"))
	require.Equal(t, []string{"U1"}, testdata.Names(a.console.Records()))
	require.Equal(t, 0, a.cursor)
}

func TestDeleteSelectedKey(t *testing.T) {
	a := newTestApp(t, 25)

	send(t, a, runes("a"), runes("D"))
	require.Len(t, a.console.Records(), 15)
	require.Empty(t, a.console.Selected())
	require.Contains(t, a.View(), "deleted 10 members")
	require.Equal(t, "U11", a.console.View().Rows[0].Name)
}

func TestGotoPageKeys(t *testing.T) {
	a := newTestApp(t, 25)

	send(t, a, runes("3"))
	require.Equal(t, 3, a.console.Page())
	send(t, a, runes("9"))
	require.Equal(t, 3, a.console.Page(), "out of range page clamps to the last")
	send(t, a, runes("g"))
	require.Equal(t, 1, a.console.Page())
	send(t, a, runes("G"))
	require.Equal(t, 3, a.console.Page())
	send(t, a, runes("h"))
	require.Equal(t, 2, a.console.Page())
}

func TestSearchFlow(t *testing.T) {
	a := newTestApp(t, 25)
	send(t, a, runes("l"))
	require.Equal(t, 2, a.console.Page())

	send(t, a, runes("/"))
	require.Equal(t, viewSearch, a.state)

	send(t, a, runes("U2"))
	require.Equal(t, "U2", a.console.Query())
	require.Equal(t, 1, a.console.Page(), "search resets to the first page")
	v := a.console.View()
	require.Equal(t, 7, v.FilteredCount)

	send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewBrowse, a.state)
	require.Contains(t, a.View(), "Search: U2")

	send(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Empty(t, a.console.Query())
	require.Equal(t, 25, a.console.View().FilteredCount)
}

func TestSearchSuggestsOnNoMatch(t *testing.T) {
	a := newTestApp(t, 5)

	send(t, a, runes("/"), runes("exampel"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, a.console.View().Rows)
	require.Contains(t, a.View(), `No matches for "exampel". Did you mean "example"?`)

	send(t, a, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewBrowse, a.state)
	require.Len(t, a.console.View().Rows, 5)
}

func TestEditSaveAndCancel(t *testing.T) {
	a := newTestApp(t, 3)

	send(t, a, runes("e"))
	require.Equal(t, viewEdit, a.state)
	id, ok := a.console.EditTarget()
	require.True(t, ok)
	require.Equal(t, member.ID("1"), id)
	require.Equal(t, "U1", a.fields[0].Value())

	send(t, a, runes("x"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, runes("!"))
	require.Equal(t, 2, a.focus)
	require.Equal(t, "U1", a.console.Records()[0].Name, "draft is detached until save")

	send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewBrowse, a.state)
	got := a.console.Records()[0]
	require.Equal(t, "U1x", got.Name)
	require.Equal(t, "member!", got.Role)
	_, ok = a.console.EditTarget()
	require.False(t, ok)

	send(t, a, runes("j"), runes("e"), runes("zzz"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewBrowse, a.state)
	require.Equal(t, "U2", a.console.Records()[1].Name)
}

func TestEditFieldCyclesBackwards(t *testing.T) {
	a := newTestApp(t, 1)

	send(t, a, runes("e"), tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, len(member.Fields)-1, a.focus)
	require.True(t, a.fields[a.focus].Focused())
	require.False(t, a.fields[0].Focused())
}

func TestEditRowRendering(t *testing.T) {
	a := newTestApp(t, 2)

	send(t, a, runes("e"))
	out := a.View()
	require.Contains(t, out, "save · cancel")
	require.Contains(t, out, "enter save")
	require.Equal(t, 1, strings.Count(out, "edit · "), "only the idle row shows row actions")
}

func TestQuitKey(t *testing.T) {
	a := newTestApp(t, 1)

	cmd := send(t, a, runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpTruncatesToWidth(t *testing.T) {
	a := newTestApp(t, 1)

	send(t, a, tea.WindowSizeMsg{Width: 20, Height: 10})
	require.LessOrEqual(t, ansi.StringWidth(a.renderHelp()), 20)
}
