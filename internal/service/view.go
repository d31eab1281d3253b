package service

import "github.com/jask/memberadmin/internal/member"

// Row is one visible table row.
type Row struct {
	member.Record
	Selected bool
	Editing  bool
	// Deletable is false for the row under edit.
	Deletable bool
}

// View is a snapshot derived from the console state. It holds no references
// into the store.
type View struct {
	Query              string
	Page               int
	PageCount          int
	PageSize           int
	Pages              []int
	HasPrev            bool
	HasNext            bool
	Total              int
	FilteredCount      int
	SelectedCount      int
	AllVisibleSelected bool
	Editing            bool
	EditID             member.ID
	Draft              member.Draft
	Rows               []Row
}

// View recomputes the visible rows: store, then filter, then page window,
// then selection against the window.
func (c *Console) View() View {
	all := c.store.All()
	filtered := member.Filter(all, c.query)
	w := member.Window{Page: c.page, Size: c.pageSize, Total: len(filtered)}.Clamp()
	win := member.Paginate(filtered, w.Page, w.Size)

	visible := make([]member.ID, len(win))
	rows := make([]Row, len(win))
	for i, r := range win {
		visible[i] = r.ID
		editing := c.edit.Editing(r.ID)
		rows[i] = Row{
			Record:    r,
			Selected:  c.sel.Has(r.ID),
			Editing:   editing,
			Deletable: !editing,
		}
	}

	editID, editing := c.edit.Target()
	return View{
		Query:              c.query,
		Page:               w.Page,
		PageCount:          w.Count(),
		PageSize:           w.Size,
		Pages:              w.Pages(),
		HasPrev:            w.HasPrev(),
		HasNext:            w.HasNext(),
		Total:              len(all),
		FilteredCount:      len(filtered),
		SelectedCount:      c.sel.Len(),
		AllVisibleSelected: c.sel.IsAllVisibleSelected(visible),
		Editing:            editing,
		EditID:             editID,
		Draft:              c.edit.Draft(),
		Rows:               rows,
	}
}

// VisibleIDs returns the ids of the rows in the view.
func (v View) VisibleIDs() []member.ID {
	out := make([]member.ID, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.ID
	}
	return out
}
