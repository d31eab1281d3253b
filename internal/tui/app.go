package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/memberadmin/internal/member"
	"github.com/jask/memberadmin/internal/service"
)

// MemberSource loads the initial member list.
type MemberSource interface {
	Load(ctx context.Context, source string) (service.LoadResult, error)
}

// App is the Bubble Tea model for the member console.
type App struct {
	ctx     context.Context
	console *service.Console
	members MemberSource
	source  string
	log     *slog.Logger
	keys    keyMap

	state   appState
	cursor  int
	search  textinput.Model
	fields  []textinput.Model
	focus   int
	status  string
	loading bool
	width   int
}

type appState string

const (
	viewBrowse appState = "browse"
	viewSearch appState = "search"
	viewEdit   appState = "edit"
)

func New(ctx context.Context, console *service.Console, members MemberSource, source string, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name, email or role"

	fields := make([]textinput.Model, len(member.Fields))
	for i, f := range member.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = string(f)
		in.Width = fieldWidths[i] - 2
		fields[i] = in
	}

	return &App{
		ctx:     ctx,
		console: console,
		members: members,
		source:  source,
		log:     logger,
		keys:    defaultKeyMap(),
		state:   viewBrowse,
		search:  search,
		fields:  fields,
		loading: members != nil,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadMembers()
}

// loadMembers fetches once. A failure leaves the console empty and is only
// logged.
func (a *App) loadMembers() tea.Cmd {
	if a.members == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := a.members.Load(a.ctx, a.source)
		if err != nil {
			return loadFailedMsg{err}
		}
		return membersLoadedMsg{Result: res}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case membersLoadedMsg:
		a.loading = false
		a.console.Load(m.Result.Records)
		a.status = fmt.Sprintf("loaded %d members", len(m.Result.Records))
		if m.Result.Skipped > 0 {
			a.status += fmt.Sprintf(", skipped %d malformed", m.Result.Skipped)
		}
		a.clampCursor()
	case loadFailedMsg:
		a.loading = false
		a.log.Error("member fetch failed", "source", a.source, "err", m.err)
	case tea.KeyMsg:
		switch a.state {
		case viewSearch:
			return a.handleSearchKey(m)
		case viewEdit:
			return a.handleEditKey(m)
		default:
			return a.handleBrowseKey(m)
		}
	}
	return a, nil
}

func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Search):
		a.state = viewSearch
		a.search.SetValue(a.console.Query())
		a.search.CursorEnd()
		return a, a.search.Focus()
	case key.Matches(m, a.keys.ClearSearch):
		if a.console.Query() != "" {
			a.console.Search("")
			a.search.SetValue("")
			a.cursor = 0
		}
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.console.View().Rows)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.PrevPage):
		a.console.PrevPage()
	case key.Matches(m, a.keys.NextPage):
		a.console.NextPage()
	case key.Matches(m, a.keys.FirstPage):
		a.console.FirstPage()
	case key.Matches(m, a.keys.LastPage):
		a.console.LastPage()
	case key.Matches(m, a.keys.GotoPage):
		n, _ := strconv.Atoi(m.String())
		a.console.GotoPage(n)
	case key.Matches(m, a.keys.Toggle):
		if row, ok := a.currentRow(); ok {
			a.console.ToggleSelect(row.ID)
		}
	case key.Matches(m, a.keys.ToggleAll):
		a.console.ToggleSelectAllVisible()
	case key.Matches(m, a.keys.Edit):
		if row, ok := a.currentRow(); ok && a.console.BeginEdit(row.ID) {
			return a, a.openEditor()
		}
	case key.Matches(m, a.keys.Delete):
		if row, ok := a.currentRow(); ok {
			if err := a.console.DeleteOne(row.ID); errors.Is(err, member.ErrRowLocked) {
				a.status = "cannot delete a row while it is being edited"
			}
		}
	case key.Matches(m, a.keys.DeleteSelected):
		res := a.console.DeleteSelected()
		a.status = fmt.Sprintf("deleted %d members", len(res.Removed))
		if res.Locked {
			a.status += " (row under edit kept)"
		}
	}
	a.clampCursor()
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case m.Type == tea.KeyEnter:
		a.state = viewBrowse
		a.search.Blur()
		return a, nil
	case key.Matches(m, a.keys.ClearSearch):
		a.state = viewBrowse
		a.search.Blur()
		a.search.SetValue("")
		a.console.Search("")
		a.cursor = 0
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	if v := a.search.Value(); v != a.console.Query() {
		a.console.Search(v)
		a.cursor = 0
	}
	a.clampCursor()
	return a, cmd
}

func (a *App) handleEditKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case key.Matches(m, a.keys.Accept):
		a.console.SaveEdit()
		a.closeEditor()
		a.status = "saved"
		a.clampCursor()
		return a, nil
	case key.Matches(m, a.keys.Cancel):
		a.console.CancelEdit()
		a.closeEditor()
		return a, nil
	case key.Matches(m, a.keys.NextField), key.Matches(m, a.keys.PrevField):
		dir := 1
		if key.Matches(m, a.keys.PrevField) {
			dir = -1
		}
		a.fields[a.focus].Blur()
		a.focus = (a.focus + dir + len(a.fields)) % len(a.fields)
		return a, a.fields[a.focus].Focus()
	}
	var cmd tea.Cmd
	a.fields[a.focus], cmd = a.fields[a.focus].Update(m)
	if err := a.console.EditField(string(member.Fields[a.focus]), a.fields[a.focus].Value()); err != nil {
		a.log.Error("edit field", "field", member.Fields[a.focus], "err", err)
	}
	return a, cmd
}

// openEditor seeds the inputs from the console draft.
func (a *App) openEditor() tea.Cmd {
	draft := a.console.View().Draft
	for i, f := range member.Fields {
		a.fields[i].SetValue(draft.Get(f))
		a.fields[i].CursorEnd()
		a.fields[i].Blur()
	}
	a.focus = 0
	a.state = viewEdit
	return a.fields[0].Focus()
}

func (a *App) closeEditor() {
	for i := range a.fields {
		a.fields[i].Blur()
	}
	a.state = viewBrowse
}

func (a *App) currentRow() (service.Row, bool) {
	rows := a.console.View().Rows
	if a.cursor < 0 || a.cursor >= len(rows) {
		return service.Row{}, false
	}
	return rows[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.console.View().Rows)
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// messages
type membersLoadedMsg struct {
	Result service.LoadResult
}

type loadFailedMsg struct{ err error }
