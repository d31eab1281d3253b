package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit           key.Binding
	Search         key.Binding
	ClearSearch    key.Binding
	Up             key.Binding
	Down           key.Binding
	PrevPage       key.Binding
	NextPage       key.Binding
	FirstPage      key.Binding
	LastPage       key.Binding
	GotoPage       key.Binding
	Toggle         key.Binding
	ToggleAll      key.Binding
	Edit           key.Binding
	Delete         key.Binding
	DeleteSelected key.Binding

	// search and edit modes
	Accept    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:       key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:       key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		FirstPage:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		LastPage:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		GotoPage:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "page")),
		Toggle:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		ToggleAll:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
		Edit:           key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:         key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		DeleteSelected: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),

		Accept:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Search, k.Up, k.Down, k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.GotoPage, k.Toggle, k.ToggleAll, k.Edit, k.Delete, k.DeleteSelected, k.Quit}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Accept, k.Cancel}
}

func (k keyMap) searchHelp() []key.Binding {
	done := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done"))
	return []key.Binding{done, k.ClearSearch}
}
